package diagnostics

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/platform/validate"
)

type Service struct {
	tests LabTestRepository
	now   func() time.Time
}

func NewService(tests LabTestRepository) *Service {
	return &Service{tests: tests, now: time.Now}
}

// normalize applies defaults and stamps completed_at the first time a test
// is marked completed.
func (s *Service) normalize(t *LabTest) error {
	if t.PatientID == uuid.Nil {
		return validate.Errorf("patient_id is required")
	}
	if t.DoctorID != nil && *t.DoctorID == uuid.Nil {
		t.DoctorID = nil
	}
	if t.Status == "" {
		t.Status = "pending"
	}
	if t.Priority == "" {
		t.Priority = "normal"
	}
	if t.RequestedDate.IsZero() {
		t.RequestedDate = s.now()
	}
	if t.Status == "completed" && t.CompletedAt == nil {
		now := s.now()
		t.CompletedAt = &now
	}

	return validate.First(
		validate.Required("test_code", t.TestCode),
		validate.Required("test_type", t.TestType),
		validate.OneOf("test_type", t.TestType, TestTypes...),
		validate.Required("test_name", t.TestName),
		validate.OneOf("status", t.Status, Statuses...),
		validate.OneOf("priority", t.Priority, Priorities...),
	)
}

func (s *Service) CreateLabTest(ctx context.Context, t *LabTest) error {
	if err := s.normalize(t); err != nil {
		return err
	}
	return s.tests.Create(ctx, t)
}

func (s *Service) GetLabTest(ctx context.Context, id uuid.UUID) (*LabTest, error) {
	return s.tests.GetByID(ctx, id)
}

func (s *Service) UpdateLabTest(ctx context.Context, t *LabTest) error {
	if err := s.normalize(t); err != nil {
		return err
	}
	return s.tests.Update(ctx, t)
}

func (s *Service) DeleteLabTest(ctx context.Context, id uuid.UUID) error {
	return s.tests.Delete(ctx, id)
}

func (s *Service) SearchLabTests(ctx context.Context, params map[string]string, limit, offset int) ([]*LabTest, int, error) {
	if err := validate.First(
		validate.OneOf("status", params["status"], Statuses...),
		validate.OneOf("priority", params["priority"], Priorities...),
		validate.OneOf("test_type", params["test_type"], TestTypes...),
	); err != nil {
		return nil, 0, err
	}
	return s.tests.Search(ctx, params, limit, offset)
}
