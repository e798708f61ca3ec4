package examination

import (
	"context"

	"github.com/google/uuid"
)

type ExaminationRepository interface {
	Create(ctx context.Context, e *Examination) error
	GetByID(ctx context.Context, id uuid.UUID) (*Examination, error)
	Update(ctx context.Context, e *Examination) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Examination, int, error)
}
