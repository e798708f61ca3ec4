package diagnostics

import (
	"time"

	"github.com/google/uuid"
)

var (
	TestTypes  = []string{"Hematologi", "Kimia Klinik", "Mikrobiologi", "Urinalisis", "Imunologi"}
	Statuses   = []string{"pending", "in_progress", "completed", "cancelled"}
	Priorities = []string{"normal", "urgent", "stat"}
)

// LabTest maps to the lab_tests table. PatientName, PatientCode and
// DoctorName are joined on read.
type LabTest struct {
	ID                uuid.UUID  `db:"id" json:"id"`
	TestCode          string     `db:"test_code" json:"test_code"`
	PatientID         uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID          *uuid.UUID `db:"doctor_id" json:"doctor_id"`
	TestType          string     `db:"test_type" json:"test_type"`
	TestName          string     `db:"test_name" json:"test_name"`
	Status            string     `db:"status" json:"status"`
	Priority          string     `db:"priority" json:"priority"`
	RequestedDate     time.Time  `db:"requested_date" json:"requested_date"`
	SampleCollectedAt *time.Time `db:"sample_collected_at" json:"sample_collected_at"`
	CompletedAt       *time.Time `db:"completed_at" json:"completed_at"`
	Notes             *string    `db:"notes" json:"notes"`
	CreatedAt         time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at" json:"updated_at"`

	PatientName string  `db:"patient_name" json:"patient_name"`
	PatientCode string  `db:"patient_code" json:"patient_code"`
	DoctorName  *string `db:"doctor_name" json:"doctor_name"`
}
