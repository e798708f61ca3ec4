package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

type Service struct {
	appts AppointmentRepository
	now   func() time.Time
}

func NewService(appts AppointmentRepository) *Service {
	return &Service{appts: appts, now: time.Now}
}

func (s *Service) today() caldate.Date {
	return caldate.Of(s.now())
}

// normalize fills defaults and checks every field the form would.
func (s *Service) normalize(a *Appointment) error {
	if a.PatientID == uuid.Nil {
		return validate.Errorf("patient_id is required")
	}
	if a.Department == "" {
		a.Department = DeptGeneral
	}
	if a.AppointmentDate.IsZero() {
		a.AppointmentDate = s.today()
	}
	if a.AppointmentTime == "" {
		a.AppointmentTime = DefaultTime
	}
	if a.Status == "" {
		a.Status = "scheduled"
	}
	if a.DoctorID != nil && *a.DoctorID == uuid.Nil {
		a.DoctorID = nil
	}

	t, err := validate.ClockTime("appointment_time", a.AppointmentTime)
	if err != nil {
		return err
	}
	a.AppointmentTime = t

	return validate.First(
		validate.Required("appointment_code", a.AppointmentCode),
		validate.OneOf("department", a.Department, Departments...),
		validate.OneOf("status", a.Status, Statuses...),
	)
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if err := s.normalize(a); err != nil {
		return err
	}
	return s.appts.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appts.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if err := s.normalize(a); err != nil {
		return err
	}
	return s.appts.Update(ctx, a)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appts.Delete(ctx, id)
}

// SearchAppointments lists today's queue unless a date filter is given or
// "all" is "true".
func (s *Service) SearchAppointments(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error) {
	all := params["all"] == "true"
	delete(params, "all")

	_, hasDate := params["appointment_date"]
	_, hasFrom := params["date_from"]
	_, hasTo := params["date_to"]
	if !all && !hasDate && !hasFrom && !hasTo {
		params["appointment_date"] = s.today().String()
	}

	if err := validate.First(
		validate.OneOf("department", params["department"], Departments...),
		validate.OneOf("status", params["status"], Statuses...),
	); err != nil {
		return nil, 0, err
	}
	return s.appts.Search(ctx, params, limit, offset)
}
