package rikkes

import (
	"context"

	"github.com/google/uuid"
)

// ParticipantRepository filters on "status", "overall_result", "batch",
// "examination_date" and "q" (name or participant code).
type ParticipantRepository interface {
	Create(ctx context.Context, p *Participant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Participant, error)
	Update(ctx context.Context, p *Participant) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Participant, int, error)
}

// ExaminationRepository filters on "participant_id", "status" and
// "examination_type".
type ExaminationRepository interface {
	Create(ctx context.Context, e *Examination) error
	GetByID(ctx context.Context, id uuid.UUID) (*Examination, error)
	Update(ctx context.Context, e *Examination) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Examination, int, error)
}
