package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/display"
	"github.com/klinik/klinik/internal/platform/validate"
)

// MinSearchLength is the shortest patient query that is sent to the database.
const MinSearchLength = 2

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
	nurses   NurseRepository
	now      func() time.Time
}

func NewService(patients PatientRepository, doctors DoctorRepository, nurses NurseRepository) *Service {
	return &Service{patients: patients, doctors: doctors, nurses: nurses, now: time.Now}
}

// -- Patient --

func (s *Service) validatePatient(p *Patient) error {
	if err := validate.First(
		validate.Required("patient_code", p.PatientCode),
		validate.Required("name", p.Name),
		validate.Required("gender", p.Gender),
		validate.OneOf("gender", p.Gender, Genders...),
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

func (s *Service) withAge(p *Patient) *Patient {
	p.Age = display.AgeInYears(p.DateOfBirth, s.now())
	return p
}

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	p.PatientCode = strings.TrimSpace(p.PatientCode)
	if err := s.validatePatient(p); err != nil {
		return err
	}
	if err := s.patients.Create(ctx, p); err != nil {
		return err
	}
	s.withAge(p)
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withAge(p), nil
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if err := s.validatePatient(p); err != nil {
		return err
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return err
	}
	s.withAge(p)
	return nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.patients.Delete(ctx, id)
}

// SearchPatients returns nothing for a "q" shorter than MinSearchLength so
// partially typed queries do not scan the whole table.
func (s *Service) SearchPatients(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error) {
	if q, ok := params["q"]; ok {
		q = strings.TrimSpace(q)
		if len([]rune(q)) < MinSearchLength {
			return nil, 0, nil
		}
		params["q"] = q
	}
	if err := validate.OneOf("gender", params["gender"], Genders...); err != nil {
		return nil, 0, err
	}
	items, total, err := s.patients.Search(ctx, params, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	for _, p := range items {
		s.withAge(p)
	}
	return items, total, nil
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if err := validate.Required("name", d.Name); err != nil {
		return err
	}
	if d.Specialization == "" {
		d.Specialization = GeneralPractitioner
	}
	if d.Active == nil {
		active := true
		d.Active = &active
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if err := validate.Required("name", d.Name); err != nil {
		return err
	}
	if err := validate.Required("specialization", d.Specialization); err != nil {
		return err
	}
	if d.Active == nil {
		return validate.Errorf("active is required")
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

// SearchDoctors accepts "department" as a shorthand for the matching
// specialization and active doctors only, as the appointment form lists them.
func (s *Service) SearchDoctors(ctx context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error) {
	if dept, ok := params["department"]; ok {
		delete(params, "department")
		params["specialization"] = SpecializationFor(dept)
		if _, set := params["active"]; !set {
			params["active"] = "true"
		}
	}
	return s.doctors.Search(ctx, params, limit, offset)
}

// -- Nurse --

func (s *Service) CreateNurse(ctx context.Context, n *Nurse) error {
	if err := validate.Required("name", n.Name); err != nil {
		return err
	}
	if n.Active == nil {
		active := true
		n.Active = &active
	}
	return s.nurses.Create(ctx, n)
}

func (s *Service) GetNurse(ctx context.Context, id uuid.UUID) (*Nurse, error) {
	return s.nurses.GetByID(ctx, id)
}

func (s *Service) UpdateNurse(ctx context.Context, n *Nurse) error {
	if err := validate.Required("name", n.Name); err != nil {
		return err
	}
	if n.Active == nil {
		return validate.Errorf("active is required")
	}
	return s.nurses.Update(ctx, n)
}

func (s *Service) DeleteNurse(ctx context.Context, id uuid.UUID) error {
	return s.nurses.Delete(ctx, id)
}

func (s *Service) SearchNurses(ctx context.Context, params map[string]string, limit, offset int) ([]*Nurse, int, error) {
	return s.nurses.Search(ctx, params, limit, offset)
}
