package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/pkg/caldate"
)

const (
	DeptGeneral = "Poli Umum"
	DeptDental  = "Poli Gigi"

	DefaultTime = "08:00"
)

var (
	Departments = []string{DeptGeneral, DeptDental}
	Statuses    = []string{"scheduled", "current", "waiting", "completed", "cancelled"}
)

// Appointment maps to the appointments table. PatientName, PatientCode and
// DoctorName are joined on read.
type Appointment struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	AppointmentCode string       `db:"appointment_code" json:"appointment_code"`
	PatientID       uuid.UUID    `db:"patient_id" json:"patient_id"`
	DoctorID        *uuid.UUID   `db:"doctor_id" json:"doctor_id"`
	Department      string       `db:"department" json:"department"`
	AppointmentDate caldate.Date `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string       `db:"appointment_time" json:"appointment_time"`
	Complaint       *string      `db:"complaint" json:"complaint"`
	Status          string       `db:"status" json:"status"`
	QueueNumber     *string      `db:"queue_number" json:"queue_number"`
	Notes           *string      `db:"notes" json:"notes"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`

	PatientName string  `db:"patient_name" json:"patient_name"`
	PatientCode string  `db:"patient_code" json:"patient_code"`
	DoctorName  *string `db:"doctor_name" json:"doctor_name"`
}
