package scheduling

import (
	"context"

	"github.com/google/uuid"
)

// AppointmentRepository filters on "department", "status", "patient_id",
// "doctor_id", "appointment_date", "date_from" and "date_to". Results are
// ordered by date, then time.
type AppointmentRepository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error)
}
