package emergency

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/display"
	"github.com/klinik/klinik/internal/platform/validate"
)

type Service struct {
	cases CaseRepository
	beds  BedRepository
	now   func() time.Time
}

func NewService(cases CaseRepository, beds BedRepository) *Service {
	return &Service{cases: cases, beds: beds, now: time.Now}
}

func nilIfZero(id *uuid.UUID) *uuid.UUID {
	if id != nil && *id == uuid.Nil {
		return nil
	}
	return id
}

// -- IGD Case --

func (s *Service) normalizeCase(c *Case) error {
	if c.PatientID == uuid.Nil {
		return validate.Errorf("patient_id is required")
	}
	c.Triage = display.NormalizeTriage(c.Triage)
	if c.Status == "" {
		c.Status = "active"
	}
	if c.AdmissionTime.IsZero() {
		c.AdmissionTime = s.now()
	}
	if c.Status == "discharged" && c.DischargeTime == nil {
		t := s.now()
		c.DischargeTime = &t
	}
	c.BedID = nilIfZero(c.BedID)
	c.DoctorID = nilIfZero(c.DoctorID)

	if err := validate.First(
		validate.Required("case_code", c.CaseCode),
		validate.Required("complaint", c.Complaint),
		validate.Required("triage", c.Triage),
		validate.OneOf("triage", c.Triage, Triages...),
		validate.OneOf("status", c.Status, CaseStatuses...),
	); err != nil {
		return err
	}
	if c.DischargeTime != nil && c.DischargeTime.Before(c.AdmissionTime) {
		return validate.Errorf("discharge_time cannot be before admission_time")
	}
	return nil
}

func (s *Service) withAge(c *Case) *Case {
	c.PatientAge = display.AgeInYears(c.PatientDateOfBirth, s.now())
	return c
}

func (s *Service) CreateCase(ctx context.Context, c *Case) error {
	if err := s.normalizeCase(c); err != nil {
		return err
	}
	if err := s.cases.Create(ctx, c); err != nil {
		return err
	}
	s.withAge(c)
	return nil
}

func (s *Service) GetCase(ctx context.Context, id uuid.UUID) (*Case, error) {
	c, err := s.cases.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAge(c), nil
}

// UpdateCase does not touch the assigned bed; freeing it on discharge is a
// separate bed update.
func (s *Service) UpdateCase(ctx context.Context, c *Case) error {
	if err := s.normalizeCase(c); err != nil {
		return err
	}
	if err := s.cases.Update(ctx, c); err != nil {
		return err
	}
	s.withAge(c)
	return nil
}

func (s *Service) DeleteCase(ctx context.Context, id uuid.UUID) error {
	return s.cases.Delete(ctx, id)
}

// SearchCases lists active cases unless "status" is given; "status=all"
// lifts the filter.
func (s *Service) SearchCases(ctx context.Context, params map[string]string, limit, offset int) ([]*Case, int, error) {
	switch params["status"] {
	case "":
		params["status"] = "active"
	case "all":
		delete(params, "status")
	}
	if t, ok := params["triage"]; ok {
		params["triage"] = display.NormalizeTriage(t)
	}
	if err := validate.First(
		validate.OneOf("status", params["status"], CaseStatuses...),
		validate.OneOf("triage", params["triage"], Triages...),
	); err != nil {
		return nil, 0, err
	}

	items, total, err := s.cases.Search(ctx, params, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, c := range items {
		s.withAge(c)
	}
	return items, total, nil
}

// -- Bed --

func (s *Service) normalizeBed(b *Bed) error {
	if b.Status == "" {
		b.Status = "available"
	}
	b.PatientID = nilIfZero(b.PatientID)
	if b.BedNumber <= 0 {
		return validate.Errorf("bed_number must be a positive number")
	}
	return validate.OneOf("status", b.Status, BedStatuses...)
}

func (s *Service) CreateBed(ctx context.Context, b *Bed) error {
	if err := s.normalizeBed(b); err != nil {
		return err
	}
	return s.beds.Create(ctx, b)
}

func (s *Service) GetBed(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return s.beds.GetByID(ctx, id)
}

func (s *Service) UpdateBed(ctx context.Context, b *Bed) error {
	if err := s.normalizeBed(b); err != nil {
		return err
	}
	return s.beds.Update(ctx, b)
}

func (s *Service) DeleteBed(ctx context.Context, id uuid.UUID) error {
	return s.beds.Delete(ctx, id)
}

func (s *Service) SearchBeds(ctx context.Context, params map[string]string, limit, offset int) ([]*Bed, int, error) {
	if err := validate.OneOf("status", params["status"], BedStatuses...); err != nil {
		return nil, 0, err
	}
	return s.beds.Search(ctx, params, limit, offset)
}

// SeedBeds makes sure beds 1..count exist and returns how many were added.
func (s *Service) SeedBeds(ctx context.Context, count int) (int, error) {
	if count <= 0 {
		return 0, validate.Errorf("count must be positive, got %d", count)
	}
	numbers := make([]int, count)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return s.beds.EnsureNumbers(ctx, numbers)
}
