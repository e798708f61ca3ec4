package emergency

import (
	"context"

	"github.com/google/uuid"
)

// CaseRepository filters on "status", "triage" and "patient_id". Results are
// newest admission first.
type CaseRepository interface {
	Create(ctx context.Context, c *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	Update(ctx context.Context, c *Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Case, int, error)
}

// BedRepository filters on "status". Results are ordered by bed number.
type BedRepository interface {
	Create(ctx context.Context, b *Bed) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bed, error)
	Update(ctx context.Context, b *Bed) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Bed, int, error)
	// EnsureNumbers creates an available bed for each missing number and
	// reports how many were created.
	EnsureNumbers(ctx context.Context, numbers []int) (int, error)
}
