package rikkes

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/display"
	"github.com/klinik/klinik/internal/domain/identity"
	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

type Service struct {
	participants ParticipantRepository
	exams        ExaminationRepository
	now          func() time.Time
}

func NewService(participants ParticipantRepository, exams ExaminationRepository) *Service {
	return &Service{participants: participants, exams: exams, now: time.Now}
}

// -- Participant --

func (s *Service) normalizeParticipant(p *Participant) error {
	if p.Status == "" {
		p.Status = "scheduled"
	}
	if p.ExaminationDate.IsZero() {
		p.ExaminationDate = caldate.Of(s.now())
	}
	if p.OverallResult != nil && *p.OverallResult == "" {
		p.OverallResult = nil
	}
	result := ""
	if p.OverallResult != nil {
		result = *p.OverallResult
	}

	if err := validate.First(
		validate.Required("participant_code", p.ParticipantCode),
		validate.Required("name", p.Name),
		validate.Required("gender", p.Gender),
		validate.OneOf("gender", p.Gender, identity.Genders...),
		validate.OneOf("status", p.Status, ParticipantStatuses...),
		validate.OneOf("overall_result", result, Results...),
	); err != nil {
		return err
	}
	if p.DateOfBirth.IsZero() {
		return validate.Errorf("date_of_birth is required")
	}
	if s.now().Before(p.DateOfBirth.In(time.Local)) {
		return validate.Errorf("date_of_birth cannot be in the future")
	}
	return nil
}

func (s *Service) withAge(p *Participant) *Participant {
	p.Age = display.AgeInYears(p.DateOfBirth, s.now())
	return p
}

func (s *Service) CreateParticipant(ctx context.Context, p *Participant) error {
	if err := s.normalizeParticipant(p); err != nil {
		return err
	}
	if err := s.participants.Create(ctx, p); err != nil {
		return err
	}
	s.withAge(p)
	return nil
}

func (s *Service) GetParticipant(ctx context.Context, id uuid.UUID) (*Participant, error) {
	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAge(p), nil
}

func (s *Service) UpdateParticipant(ctx context.Context, p *Participant) error {
	if err := s.normalizeParticipant(p); err != nil {
		return err
	}
	if err := s.participants.Update(ctx, p); err != nil {
		return err
	}
	s.withAge(p)
	return nil
}

func (s *Service) DeleteParticipant(ctx context.Context, id uuid.UUID) error {
	return s.participants.Delete(ctx, id)
}

func (s *Service) SearchParticipants(ctx context.Context, params map[string]string, limit, offset int) ([]*Participant, int, error) {
	if err := validate.First(
		validate.OneOf("status", params["status"], ParticipantStatuses...),
		validate.OneOf("overall_result", params["overall_result"], Results...),
	); err != nil {
		return nil, 0, err
	}
	items, total, err := s.participants.Search(ctx, params, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range items {
		s.withAge(p)
	}
	return items, total, nil
}

// -- Examination --

func (s *Service) normalizeExamination(e *Examination) error {
	if e.ParticipantID == uuid.Nil {
		return validate.Errorf("participant_id is required")
	}
	if e.Status == "" {
		e.Status = "scheduled"
	}
	if e.ExaminationDate.IsZero() {
		e.ExaminationDate = caldate.Of(s.now())
	}
	return validate.First(
		validate.Required("examination_type", e.ExaminationType),
		validate.Required("examination_name", e.ExaminationName),
		validate.OneOf("status", e.Status, ExaminationStatuses...),
	)
}

func (s *Service) CreateExamination(ctx context.Context, e *Examination) error {
	if err := s.normalizeExamination(e); err != nil {
		return err
	}
	return s.exams.Create(ctx, e)
}

func (s *Service) GetExamination(ctx context.Context, id uuid.UUID) (*Examination, error) {
	return s.exams.GetByID(ctx, id)
}

func (s *Service) UpdateExamination(ctx context.Context, e *Examination) error {
	if err := s.normalizeExamination(e); err != nil {
		return err
	}
	return s.exams.Update(ctx, e)
}

func (s *Service) DeleteExamination(ctx context.Context, id uuid.UUID) error {
	return s.exams.Delete(ctx, id)
}

func (s *Service) SearchExaminations(ctx context.Context, params map[string]string, limit, offset int) ([]*Examination, int, error) {
	if err := validate.OneOf("status", params["status"], ExaminationStatuses...); err != nil {
		return nil, 0, err
	}
	return s.exams.Search(ctx, params, limit, offset)
}
