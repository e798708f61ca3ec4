package emergency

import (
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/pkg/caldate"
)

var (
	Triages      = []string{"red", "yellow", "green"}
	CaseStatuses = []string{"active", "stable", "critical", "discharged"}
	BedStatuses  = []string{"available", "occupied", "cleaning", "maintenance"}
)

// Case maps to the igd_cases table. Patient, bed and doctor columns are
// joined on read; PatientAge is derived.
type Case struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	CaseCode      string     `db:"case_code" json:"case_code"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	Complaint     string     `db:"complaint" json:"complaint"`
	Triage        string     `db:"triage" json:"triage"`
	BedID         *uuid.UUID `db:"bed_id" json:"bed_id"`
	DoctorID      *uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Status        string     `db:"status" json:"status"`
	AdmissionTime time.Time  `db:"admission_time" json:"admission_time"`
	DischargeTime *time.Time `db:"discharge_time" json:"discharge_time"`
	Notes         *string    `db:"notes" json:"notes"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`

	PatientName        string       `db:"patient_name" json:"patient_name"`
	PatientCode        string       `db:"patient_code" json:"patient_code"`
	PatientDateOfBirth caldate.Date `db:"patient_date_of_birth" json:"patient_date_of_birth"`
	PatientAge         int          `db:"-" json:"patient_age"`
	BedNumber          *int         `db:"bed_number" json:"bed_number"`
	DoctorName         *string      `db:"doctor_name" json:"doctor_name"`
}

// Bed maps to the beds table. PatientName is joined on read.
type Bed struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	BedNumber   int        `db:"bed_number" json:"bed_number"`
	Status      string     `db:"status" json:"status"`
	PatientID   *uuid.UUID `db:"patient_id" json:"patient_id"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
	PatientName *string    `db:"patient_name" json:"patient_name"`
}
