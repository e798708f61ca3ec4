package rikkes

import (
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/pkg/caldate"
)

var (
	ParticipantStatuses = []string{"scheduled", "in_progress", "completed", "failed"}
	Results             = []string{"Fit", "Unfit", "Pending"}
	ExaminationStatuses = []string{"scheduled", "in_progress", "completed"}
)

// Participant is a person registered for a periodic fitness examination.
// OverallResult stays empty until the examiners decide.
type Participant struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	ParticipantCode string       `db:"participant_code" json:"participant_code"`
	Name            string       `db:"name" json:"name"`
	Rank            *string      `db:"rank" json:"rank"`
	Unit            *string      `db:"unit" json:"unit"`
	DateOfBirth     caldate.Date `db:"date_of_birth" json:"date_of_birth"`
	Gender          string       `db:"gender" json:"gender"`
	Phone           *string      `db:"phone" json:"phone"`
	ExaminationDate caldate.Date `db:"examination_date" json:"examination_date"`
	Batch           *string      `db:"batch" json:"batch"`
	Status          string       `db:"status" json:"status"`
	OverallResult   *string      `db:"overall_result" json:"overall_result"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`

	Age int `db:"-" json:"age"`
}

// Examination is one station of a participant's fitness examination.
type Examination struct {
	ID              uuid.UUID    `db:"id" json:"id"`
	ParticipantID   uuid.UUID    `db:"participant_id" json:"participant_id"`
	ExaminationType string       `db:"examination_type" json:"examination_type"`
	ExaminationName string       `db:"examination_name" json:"examination_name"`
	Result          *string      `db:"result" json:"result"`
	Status          string       `db:"status" json:"status"`
	Examiner        *string      `db:"examiner" json:"examiner"`
	Notes           *string      `db:"notes" json:"notes"`
	ExaminationDate caldate.Date `db:"examination_date" json:"examination_date"`
	CreatedAt       time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at" json:"updated_at"`
}
