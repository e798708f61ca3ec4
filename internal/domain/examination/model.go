package examination

import (
	"time"

	"github.com/google/uuid"
)

var (
	Types    = []string{"doctor", "nurse"}
	Statuses = []string{"draft", "completed"}
)

// VitalSigns is stored as a JSONB document on the examination row.
type VitalSigns struct {
	BloodPressureSystolic  *int     `json:"blood_pressure_systolic,omitempty"`
	BloodPressureDiastolic *int     `json:"blood_pressure_diastolic,omitempty"`
	HeartRate              *int     `json:"heart_rate,omitempty"`
	Temperature            *float64 `json:"temperature,omitempty"`
	RespiratoryRate        *int     `json:"respiratory_rate,omitempty"`
	OxygenSaturation       *int     `json:"oxygen_saturation,omitempty"`
	Weight                 *float64 `json:"weight,omitempty"`
	Height                 *float64 `json:"height,omitempty"`
}

// Examination is a SOAP note written by a doctor or a nurse, usually against
// an appointment.
type Examination struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	AppointmentID   *uuid.UUID `db:"appointment_id" json:"appointment_id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID        *uuid.UUID `db:"doctor_id" json:"doctor_id"`
	NurseID         *uuid.UUID `db:"nurse_id" json:"nurse_id"`
	ExaminationType string     `db:"examination_type" json:"examination_type"`
	Subjective      *string    `db:"subjective" json:"subjective"`
	Objective       *string    `db:"objective" json:"objective"`
	Assessment      *string    `db:"assessment" json:"assessment"`
	Plan            *string    `db:"plan" json:"plan"`
	VitalSigns      VitalSigns `db:"vital_signs" json:"vital_signs"`
	ExaminationDate time.Time  `db:"examination_date" json:"examination_date"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}
