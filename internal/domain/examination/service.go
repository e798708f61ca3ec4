package examination

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/platform/validate"
)

type Service struct {
	exams ExaminationRepository
	now   func() time.Time
}

func NewService(exams ExaminationRepository) *Service {
	return &Service{exams: exams, now: time.Now}
}

func (s *Service) normalize(e *Examination) error {
	if e.PatientID == uuid.Nil {
		return validate.Errorf("patient_id is required")
	}
	for _, ref := range []**uuid.UUID{&e.AppointmentID, &e.DoctorID, &e.NurseID} {
		if *ref != nil && **ref == uuid.Nil {
			*ref = nil
		}
	}
	if e.Status == "" {
		e.Status = "draft"
	}
	if e.ExaminationDate.IsZero() {
		e.ExaminationDate = s.now()
	}
	return validate.First(
		validate.Required("examination_type", e.ExaminationType),
		validate.OneOf("examination_type", e.ExaminationType, Types...),
		validate.OneOf("status", e.Status, Statuses...),
	)
}

func (s *Service) CreateExamination(ctx context.Context, e *Examination) error {
	if err := s.normalize(e); err != nil {
		return err
	}
	return s.exams.Create(ctx, e)
}

func (s *Service) GetExamination(ctx context.Context, id uuid.UUID) (*Examination, error) {
	return s.exams.GetByID(ctx, id)
}

func (s *Service) UpdateExamination(ctx context.Context, e *Examination) error {
	if err := s.normalize(e); err != nil {
		return err
	}
	return s.exams.Update(ctx, e)
}

func (s *Service) DeleteExamination(ctx context.Context, id uuid.UUID) error {
	return s.exams.Delete(ctx, id)
}

func (s *Service) SearchExaminations(ctx context.Context, params map[string]string, limit, offset int) ([]*Examination, int, error) {
	if err := validate.First(
		validate.OneOf("examination_type", params["examination_type"], Types...),
		validate.OneOf("status", params["status"], Statuses...),
	); err != nil {
		return nil, 0, err
	}
	return s.exams.Search(ctx, params, limit, offset)
}
