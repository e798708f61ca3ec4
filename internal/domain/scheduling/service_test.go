package scheduling

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

// -- Mock Repository --

type mockAppointmentRepo struct {
	records    map[uuid.UUID]*Appointment
	lastParams map[string]string
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{records: make(map[uuid.UUID]*Appointment)}
}

func (m *mockAppointmentRepo) Create(_ context.Context, a *Appointment) error {
	a.ID = uuid.New()
	a.CreatedAt = time.Now()
	a.PatientName = "Pasien " + a.AppointmentCode
	cp := *a
	m.records[a.ID] = &cp
	return nil
}

func (m *mockAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	a, ok := m.records[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAppointmentRepo) Update(_ context.Context, a *Appointment) error {
	if _, ok := m.records[a.ID]; !ok {
		return db.ErrNotFound
	}
	cp := *a
	m.records[a.ID] = &cp
	return nil
}

func (m *mockAppointmentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.records[id]; !ok {
		return db.ErrNotFound
	}
	delete(m.records, id)
	return nil
}

func (m *mockAppointmentRepo) Search(_ context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	m.lastParams = params
	var result []*Appointment
	for _, a := range m.records {
		if v := params["department"]; v != "" && a.Department != v {
			continue
		}
		if v := params["status"]; v != "" && a.Status != v {
			continue
		}
		if v := params["appointment_date"]; v != "" && a.AppointmentDate.String() != v {
			continue
		}
		cp := *a
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].AppointmentTime < result[j].AppointmentTime })
	return result, len(result), nil
}

var testNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.Local)

func newTestService() (*Service, *mockAppointmentRepo) {
	repo := newMockAppointmentRepo()
	s := NewService(repo)
	s.now = func() time.Time { return testNow }
	return s, repo
}

func newAppointment(code string) *Appointment {
	return &Appointment{AppointmentCode: code, PatientID: uuid.New()}
}

func TestCreateAppointment_Defaults(t *testing.T) {
	svc, _ := newTestService()
	a := newAppointment("APT-001")
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if a.Department != DeptGeneral {
		t.Errorf("expected %s, got %s", DeptGeneral, a.Department)
	}
	if a.AppointmentDate.String() != "2024-03-10" {
		t.Errorf("expected today's date, got %s", a.AppointmentDate)
	}
	if a.AppointmentTime != DefaultTime {
		t.Errorf("expected %s, got %s", DefaultTime, a.AppointmentTime)
	}
	if a.Status != "scheduled" {
		t.Errorf("expected scheduled, got %s", a.Status)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(a *Appointment)
		want   string
	}{
		{"patient required", func(a *Appointment) { a.PatientID = uuid.Nil }, "patient_id is required"},
		{"code required", func(a *Appointment) { a.AppointmentCode = "" }, "appointment_code is required"},
		{"bad department", func(a *Appointment) { a.Department = "Poli Mata" }, "department must be one of"},
		{"bad status", func(a *Appointment) { a.Status = "done" }, "status must be one of"},
		{"bad time", func(a *Appointment) { a.AppointmentTime = "8 pagi" }, "appointment_time must be HH:MM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService()
			a := newAppointment("APT-002")
			tt.mutate(a)
			err := svc.CreateAppointment(context.Background(), a)
			if err == nil || !strings.HasPrefix(err.Error(), tt.want) {
				t.Fatalf("expected %q, got %v", tt.want, err)
			}
			if !validate.IsValidation(err) {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestCreateAppointment_NormalizesTime(t *testing.T) {
	svc, _ := newTestService()
	a := newAppointment("APT-003")
	a.AppointmentTime = "9:30"
	nilDoctor := uuid.Nil
	a.DoctorID = &nilDoctor
	if err := svc.CreateAppointment(context.Background(), a); err != nil {
		t.Fatalf("CreateAppointment: %v", err)
	}
	if a.AppointmentTime != "09:30" {
		t.Errorf("expected 09:30, got %s", a.AppointmentTime)
	}
	if a.DoctorID != nil {
		t.Error("expected empty doctor_id to be cleared")
	}
}

func TestSearchAppointments_DefaultsToToday(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	today := newAppointment("APT-010")
	svc.CreateAppointment(ctx, today)
	yesterday := newAppointment("APT-011")
	yesterday.AppointmentDate = caldate.MustParse("2024-03-09")
	svc.CreateAppointment(ctx, yesterday)

	items, total, err := svc.SearchAppointments(ctx, map[string]string{}, 20, 0)
	if err != nil {
		t.Fatalf("SearchAppointments: %v", err)
	}
	if total != 1 || items[0].ID != today.ID {
		t.Errorf("expected only today's appointment, got %d", total)
	}
	if repo.lastParams["appointment_date"] != "2024-03-10" {
		t.Errorf("expected today's date filter, got %v", repo.lastParams)
	}

	_, total, _ = svc.SearchAppointments(ctx, map[string]string{"all": "true"}, 20, 0)
	if total != 2 {
		t.Errorf("expected all appointments with all=true, got %d", total)
	}
	if _, ok := repo.lastParams["all"]; ok {
		t.Error("all should not reach the repository")
	}

	_, _, _ = svc.SearchAppointments(ctx, map[string]string{"date_from": "2024-03-01"}, 20, 0)
	if _, ok := repo.lastParams["appointment_date"]; ok {
		t.Error("a range filter should replace the today default")
	}
}

func TestSearchAppointments_Department(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	gigi := newAppointment("APT-020")
	gigi.Department = DeptDental
	svc.CreateAppointment(ctx, gigi)
	svc.CreateAppointment(ctx, newAppointment("APT-021"))
	svc.CreateAppointment(ctx, newAppointment("APT-022"))

	items, total, err := svc.SearchAppointments(ctx, map[string]string{"department": DeptDental}, 20, 0)
	if err != nil {
		t.Fatalf("SearchAppointments: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 dental appointment, got %d", total)
	}
	for _, a := range items {
		if a.Department != DeptDental {
			t.Errorf("unexpected department %s", a.Department)
		}
	}

	if _, _, err := svc.SearchAppointments(ctx, map[string]string{"department": "Poli Mata"}, 20, 0); !validate.IsValidation(err) {
		t.Errorf("expected validation error for unknown department, got %v", err)
	}
}

func TestUpdateAppointment_NotFound(t *testing.T) {
	svc, _ := newTestService()
	a := newAppointment("APT-030")
	a.ID = uuid.New()
	if err := svc.UpdateAppointment(context.Background(), a); err != db.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteAppointment(t *testing.T) {
	svc, _ := newTestService()
	a := newAppointment("APT-040")
	svc.CreateAppointment(context.Background(), a)
	if err := svc.DeleteAppointment(context.Background(), a.ID); err != nil {
		t.Fatalf("DeleteAppointment: %v", err)
	}
	_, total, _ := svc.SearchAppointments(context.Background(), map[string]string{}, 20, 0)
	if total != 0 {
		t.Errorf("expected no appointments after delete, got %d", total)
	}
}
