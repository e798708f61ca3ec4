package diagnostics

import (
	"context"

	"github.com/google/uuid"
)

// LabTestRepository filters on "status", "priority", "test_type",
// "patient_id" and "completed_from" (RFC 3339 or YYYY-MM-DD). Results are
// newest request first.
type LabTestRepository interface {
	Create(ctx context.Context, t *LabTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabTest, error)
	Update(ctx context.Context, t *LabTest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*LabTest, int, error)
}
