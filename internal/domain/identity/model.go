package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/pkg/caldate"
)

var Genders = []string{"Laki-laki", "Perempuan"}

// Patient maps to the patients table.
type Patient struct {
	ID               uuid.UUID    `db:"id" json:"id"`
	PatientCode      string       `db:"patient_code" json:"patient_code"`
	Name             string       `db:"name" json:"name"`
	DateOfBirth      caldate.Date `db:"date_of_birth" json:"date_of_birth"`
	Gender           string       `db:"gender" json:"gender"`
	Phone            *string      `db:"phone" json:"phone"`
	Address          *string      `db:"address" json:"address"`
	EmergencyContact *string      `db:"emergency_contact" json:"emergency_contact"`
	CreatedAt        time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time    `db:"updated_at" json:"updated_at"`

	// Age is derived from DateOfBirth on every read.
	Age int `db:"-" json:"age"`
}

// Doctor maps to the doctors table.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Active         *bool     `db:"active" json:"active"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Nurse maps to the nurses table.
type Nurse struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Active    *bool     `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Staff specializations used to pick the doctor list per department.
const (
	GeneralPractitioner = "Dokter Umum"
	Dentist             = "Dokter Gigi"
)

// SpecializationFor returns the doctor specialization that serves department.
func SpecializationFor(department string) string {
	if department == "Poli Gigi" {
		return Dentist
	}
	return GeneralPractitioner
}
