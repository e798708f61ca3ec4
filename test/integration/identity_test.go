package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/klinik/klinik/internal/domain/identity"
	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/pkg/caldate"
)

func TestPatientCRUD(t *testing.T) {
	ctx := context.Background()
	pool := newSchema(t)
	svc := identityService(pool)

	p := &identity.Patient{
		PatientCode: "P-0001",
		Name:        "Budi Santoso",
		DateOfBirth: caldate.MustParse("2000-01-01"),
		Gender:      "Laki-laki",
		Phone:       ptrStr("081234567890"),
	}

	t.Run("Create", func(t *testing.T) {
		if err := svc.CreatePatient(ctx, p); err != nil {
			t.Fatalf("CreatePatient: %v", err)
		}
		if p.ID == uuid.Nil {
			t.Fatal("expected non-nil ID")
		}
		if p.CreatedAt.IsZero() {
			t.Error("expected created_at to be set")
		}
	})

	t.Run("GetByID", func(t *testing.T) {
		got, err := svc.GetPatient(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetPatient: %v", err)
		}
		if got.Name != "Budi Santoso" || got.DateOfBirth != p.DateOfBirth {
			t.Errorf("unexpected patient: %+v", got)
		}
		if got.Phone == nil || *got.Phone != "081234567890" {
			t.Errorf("expected phone to round-trip, got %v", got.Phone)
		}
		if got.Age < 24 {
			t.Errorf("expected derived age, got %d", got.Age)
		}
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		dup := &identity.Patient{PatientCode: "P-0001", Name: "Another", DateOfBirth: caldate.MustParse("1999-02-02"), Gender: "Perempuan"}
		err := svc.CreatePatient(ctx, dup)
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
			t.Fatalf("expected unique violation, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		got, err := svc.GetPatient(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetPatient: %v", err)
		}
		got.Address = ptrStr("Jl. Merdeka No. 1")
		if err := svc.UpdatePatient(ctx, got); err != nil {
			t.Fatalf("UpdatePatient: %v", err)
		}
		again, err := svc.GetPatient(ctx, p.ID)
		if err != nil {
			t.Fatalf("GetPatient: %v", err)
		}
		if again.Address == nil || *again.Address != "Jl. Merdeka No. 1" {
			t.Errorf("expected updated address, got %v", again.Address)
		}
		if again.Name != "Budi Santoso" {
			t.Errorf("expected name to be kept, got %s", again.Name)
		}
	})

	t.Run("Search", func(t *testing.T) {
		createTestPatient(t, pool, "P-0002", "Siti Aminah")

		tests := []struct {
			q    string
			want int
		}{
			{"budi", 1},
			{"p-000", 2},
			{"7890", 1},
			{"b", 0},
			{"nobody", 0},
		}
		for _, tt := range tests {
			items, total, err := svc.SearchPatients(ctx, map[string]string{"q": tt.q}, 20, 0)
			if err != nil {
				t.Fatalf("SearchPatients(%q): %v", tt.q, err)
			}
			if len(items) != tt.want || (tt.want > 0 && total != tt.want) {
				t.Errorf("q=%q: expected %d results, got %d (total %d)", tt.q, tt.want, len(items), total)
			}
		}

		items, _, err := svc.SearchPatients(ctx, map[string]string{}, 20, 0)
		if err != nil {
			t.Fatalf("SearchPatients: %v", err)
		}
		if len(items) != 2 || items[0].Name != "Budi Santoso" {
			t.Errorf("expected patients ordered by name, got %d items", len(items))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := svc.DeletePatient(ctx, p.ID); err != nil {
			t.Fatalf("DeletePatient: %v", err)
		}
		if _, err := svc.GetPatient(ctx, p.ID); !errors.Is(err, db.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := svc.DeletePatient(ctx, p.ID); !errors.Is(err, db.ErrNotFound) {
			t.Errorf("expected ErrNotFound for second delete, got %v", err)
		}
	})
}

func TestDoctorSearchByDepartment(t *testing.T) {
	ctx := context.Background()
	pool := newSchema(t)
	svc := identityService(pool)

	createTestDoctor(t, pool, "dr. Andi", identity.GeneralPractitioner)
	createTestDoctor(t, pool, "drg. Rina", identity.Dentist)
	inactive := createTestDoctor(t, pool, "drg. Yusuf", identity.Dentist)

	off := false
	inactive.Active = &off
	if err := svc.UpdateDoctor(ctx, inactive); err != nil {
		t.Fatalf("UpdateDoctor: %v", err)
	}

	items, total, err := svc.SearchDoctors(ctx, map[string]string{"department": "Poli Gigi"}, 20, 0)
	if err != nil {
		t.Fatalf("SearchDoctors: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Name != "drg. Rina" {
		t.Errorf("expected only the active dentist, got %d items", len(items))
	}
}

func TestNurseCRUD(t *testing.T) {
	ctx := context.Background()
	pool := newSchema(t)
	svc := identityService(pool)

	n := &identity.Nurse{Name: "Ns. Dewi"}
	if err := svc.CreateNurse(ctx, n); err != nil {
		t.Fatalf("CreateNurse: %v", err)
	}
	if n.Active == nil || !*n.Active {
		t.Error("expected nurse to default to active")
	}

	items, total, err := svc.SearchNurses(ctx, map[string]string{"active": "true"}, 20, 0)
	if err != nil {
		t.Fatalf("SearchNurses: %v", err)
	}
	if total != 1 || items[0].ID != n.ID {
		t.Errorf("expected the created nurse, got %d items", total)
	}

	if err := svc.DeleteNurse(ctx, n.ID); err != nil {
		t.Fatalf("DeleteNurse: %v", err)
	}
	if _, err := svc.GetNurse(ctx, n.ID); !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
