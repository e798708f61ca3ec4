// Package sandbox generates reproducible demo data for a clinic: patients,
// staff, today's appointments, IGD admissions, lab orders and a Rikkes batch.
// Records are written through the domain services so they pass the same
// validation as API traffic.
package sandbox

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/klinik/klinik/internal/domain/diagnostics"
	"github.com/klinik/klinik/internal/domain/emergency"
	"github.com/klinik/klinik/internal/domain/identity"
	"github.com/klinik/klinik/internal/domain/rikkes"
	"github.com/klinik/klinik/internal/domain/scheduling"
	"github.com/klinik/klinik/pkg/caldate"
)

// SeedConfig controls the volume of generated demo data.
type SeedConfig struct {
	Patients     int
	Doctors      int
	Nurses       int
	Appointments int
	IGDCases     int
	LabTests     int
	Participants int
	Seed         int64
}

// DefaultSeedConfig returns the volume used by `seed demo` without flags.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Patients:     30,
		Doctors:      4,
		Nurses:       6,
		Appointments: 15,
		IGDCases:     4,
		LabTests:     10,
		Participants: 8,
	}
}

// SeedResult counts what a run created.
type SeedResult struct {
	Patients     int
	Doctors      int
	Nurses       int
	Appointments int
	IGDCases     int
	LabTests     int
	Participants int
	Duration     time.Duration
}

func (r *SeedResult) Total() int {
	return r.Patients + r.Doctors + r.Nurses + r.Appointments + r.IGDCases + r.LabTests + r.Participants
}

var (
	maleNames   = []string{"Budi", "Agus", "Joko", "Rizky", "Andi", "Dimas", "Hendra", "Fajar", "Yusuf", "Bayu"}
	femaleNames = []string{"Siti", "Dewi", "Ayu", "Rina", "Putri", "Lestari", "Wulan", "Indah", "Fitri", "Nur"}
	familyNames = []string{"Santoso", "Wijaya", "Saputra", "Hidayat", "Pratama", "Nugroho", "Kurniawan", "Setiawan", "Lubis", "Siregar"}
	streets     = []string{"Jl. Merdeka", "Jl. Sudirman", "Jl. Diponegoro", "Jl. Gatot Subroto", "Jl. Ahmad Yani", "Jl. Pahlawan"}
	cities      = []string{"Jakarta", "Bandung", "Surabaya", "Semarang", "Yogyakarta", "Malang"}

	poliComplaints = []string{"Demam 3 hari", "Batuk pilek", "Sakit kepala", "Nyeri ulu hati", "Kontrol tekanan darah", "Gatal-gatal"}
	dentComplaints = []string{"Sakit gigi", "Gusi berdarah", "Tambal gigi", "Pembersihan karang gigi"}
	igdComplaints  = []string{"Sesak napas", "Nyeri dada", "Luka robek di tangan", "Kejang", "Diare dan muntah", "Demam tinggi"}

	labPanels = map[string][]string{
		"Hematologi":   {"Darah Lengkap", "Hemoglobin", "Laju Endap Darah"},
		"Kimia Klinik": {"Gula Darah Puasa", "Kolesterol Total", "Fungsi Ginjal"},
		"Mikrobiologi": {"Kultur Urin", "BTA Sputum"},
		"Urinalisis":   {"Urin Lengkap"},
		"Imunologi":    {"Widal", "HBsAg"},
	}

	ranks = []string{"Prada", "Pratu", "Kopda", "Serda", "Sertu", "Letda"}
	units = []string{"Yonif 201", "Kodim 0501", "Denma", "Yonkav 7"}
)

// DataGenerator produces deterministic clinic records.
type DataGenerator struct {
	rng     *rand.Rand
	now     time.Time
	prefix  string
	counter int
}

// NewDataGenerator returns a generator seeded for reproducibility. If seed is
// 0 a time-based seed is chosen. now anchors every generated date.
func NewDataGenerator(seed int64, now time.Time) *DataGenerator {
	if seed == 0 {
		seed = now.UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	return &DataGenerator{
		rng:    rng,
		now:    now,
		prefix: fmt.Sprintf("%04X", rng.Intn(0x10000)),
	}
}

// code builds a human code unique within one run, e.g. P-1A2B-0007.
func (g *DataGenerator) code(kind string) string {
	g.counter++
	return fmt.Sprintf("%s-%s-%04d", kind, g.prefix, g.counter)
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *DataGenerator) person() (name, gender string) {
	if g.rng.Intn(2) == 0 {
		return g.pick(maleNames) + " " + g.pick(familyNames), identity.Genders[0]
	}
	return g.pick(femaleNames) + " " + g.pick(familyNames), identity.Genders[1]
}

func (g *DataGenerator) birthDate(minAge, maxAge int) caldate.Date {
	age := minAge + g.rng.Intn(maxAge-minAge+1)
	return caldate.Date{
		Year:  g.now.Year() - age,
		Month: time.Month(1 + g.rng.Intn(12)),
		Day:   1 + g.rng.Intn(28),
	}
}

func (g *DataGenerator) phone() *string {
	s := fmt.Sprintf("08%02d%08d", 11+g.rng.Intn(89), g.rng.Intn(100000000))
	return &s
}

func (g *DataGenerator) Patient() *identity.Patient {
	name, gender := g.person()
	address := fmt.Sprintf("%s No. %d, %s", g.pick(streets), 1+g.rng.Intn(200), g.pick(cities))
	contact, _ := g.person()
	return &identity.Patient{
		PatientCode:      g.code("P"),
		Name:             name,
		DateOfBirth:      g.birthDate(1, 80),
		Gender:           gender,
		Phone:            g.phone(),
		Address:          &address,
		EmergencyContact: &contact,
	}
}

// Doctor alternates general practitioners and dentists so both poli have
// someone to assign.
func (g *DataGenerator) Doctor(i int) *identity.Doctor {
	name, _ := g.person()
	spec := identity.GeneralPractitioner
	if i%2 == 1 {
		spec = identity.Dentist
	}
	active := true
	return &identity.Doctor{Name: "dr. " + name, Specialization: spec, Active: &active}
}

func (g *DataGenerator) Nurse() *identity.Nurse {
	name, _ := g.person()
	active := true
	return &identity.Nurse{Name: "Ns. " + name, Active: &active}
}

// Appointment books patientID for today at slot i. Slots start at 08:00 and
// are 15 minutes apart.
func (g *DataGenerator) Appointment(i int, patientID uuid.UUID, doctor *identity.Doctor) *scheduling.Appointment {
	dept, queuePrefix := scheduling.DeptGeneral, "U"
	complaint := g.pick(poliComplaints)
	if doctor.Specialization == identity.Dentist {
		dept, queuePrefix = scheduling.DeptDental, "G"
		complaint = g.pick(dentComplaints)
	}
	minutes := 8*60 + 15*i
	status := "scheduled"
	switch {
	case i < 3:
		status = "completed"
	case i == 3:
		status = "current"
	case i < 7:
		status = "waiting"
	}
	queue := fmt.Sprintf("%s%03d", queuePrefix, i+1)
	doctorID := doctor.ID
	return &scheduling.Appointment{
		AppointmentCode: g.code("A"),
		PatientID:       patientID,
		DoctorID:        &doctorID,
		Department:      dept,
		AppointmentDate: caldate.Of(g.now),
		AppointmentTime: fmt.Sprintf("%02d:%02d", (minutes/60)%24, minutes%60),
		Complaint:       &complaint,
		Status:          status,
		QueueNumber:     &queue,
	}
}

// IGDCase admits patientID within the last twelve hours.
func (g *DataGenerator) IGDCase(patientID uuid.UUID, doctorID *uuid.UUID) *emergency.Case {
	triage := g.pick(emergency.Triages)
	status := "active"
	if triage == "red" {
		status = "critical"
	}
	return &emergency.Case{
		CaseCode:      g.code("IGD"),
		PatientID:     patientID,
		Complaint:     g.pick(igdComplaints),
		Triage:        triage,
		DoctorID:      doctorID,
		Status:        status,
		AdmissionTime: g.now.Add(-time.Duration(g.rng.Intn(12*60)) * time.Minute),
	}
}

// LabTest orders a test for patientID. Roughly a third come back completed.
func (g *DataGenerator) LabTest(patientID uuid.UUID, doctorID *uuid.UUID) *diagnostics.LabTest {
	testType := g.pick(diagnostics.TestTypes)
	requested := g.now.Add(-time.Duration(30+g.rng.Intn(6*60)) * time.Minute)
	t := &diagnostics.LabTest{
		TestCode:      g.code("LAB"),
		PatientID:     patientID,
		DoctorID:      doctorID,
		TestType:      testType,
		TestName:      g.pick(labPanels[testType]),
		Status:        "pending",
		Priority:      g.pick(diagnostics.Priorities),
		RequestedDate: requested,
	}
	switch g.rng.Intn(3) {
	case 0:
		done := requested.Add(time.Duration(20+g.rng.Intn(60)) * time.Minute)
		if done.After(g.now) {
			done = g.now
		}
		t.Status = "completed"
		t.SampleCollectedAt = &requested
		t.CompletedAt = &done
	case 1:
		t.Status = "in_progress"
		t.SampleCollectedAt = &requested
	}
	return t
}

// Participant registers someone for the Rikkes batch examined today.
func (g *DataGenerator) Participant(batch string) *rikkes.Participant {
	name, gender := g.person()
	rank, unit := g.pick(ranks), g.pick(units)
	return &rikkes.Participant{
		ParticipantCode: g.code("RK"),
		Name:            name,
		Rank:            &rank,
		Unit:            &unit,
		DateOfBirth:     g.birthDate(18, 40),
		Gender:          gender,
		Phone:           g.phone(),
		ExaminationDate: caldate.Of(g.now),
		Batch:           &batch,
		Status:          "scheduled",
	}
}

// Sink receives generated records. ServiceSink writes them through the
// domain services.
type Sink interface {
	CreatePatient(ctx context.Context, p *identity.Patient) error
	CreateDoctor(ctx context.Context, d *identity.Doctor) error
	CreateNurse(ctx context.Context, n *identity.Nurse) error
	CreateAppointment(ctx context.Context, a *scheduling.Appointment) error
	CreateCase(ctx context.Context, c *emergency.Case) error
	CreateLabTest(ctx context.Context, t *diagnostics.LabTest) error
	CreateParticipant(ctx context.Context, p *rikkes.Participant) error
}

type ServiceSink struct {
	Identity    *identity.Service
	Scheduling  *scheduling.Service
	Emergency   *emergency.Service
	Diagnostics *diagnostics.Service
	Rikkes      *rikkes.Service
}

func (s ServiceSink) CreatePatient(ctx context.Context, p *identity.Patient) error {
	return s.Identity.CreatePatient(ctx, p)
}

func (s ServiceSink) CreateDoctor(ctx context.Context, d *identity.Doctor) error {
	return s.Identity.CreateDoctor(ctx, d)
}

func (s ServiceSink) CreateNurse(ctx context.Context, n *identity.Nurse) error {
	return s.Identity.CreateNurse(ctx, n)
}

func (s ServiceSink) CreateAppointment(ctx context.Context, a *scheduling.Appointment) error {
	return s.Scheduling.CreateAppointment(ctx, a)
}

func (s ServiceSink) CreateCase(ctx context.Context, c *emergency.Case) error {
	return s.Emergency.CreateCase(ctx, c)
}

func (s ServiceSink) CreateLabTest(ctx context.Context, t *diagnostics.LabTest) error {
	return s.Diagnostics.CreateLabTest(ctx, t)
}

func (s ServiceSink) CreateParticipant(ctx context.Context, p *rikkes.Participant) error {
	return s.Rikkes.CreateParticipant(ctx, p)
}

// Seeder writes one run of generated data into a Sink.
type Seeder struct {
	generator *DataGenerator
	config    SeedConfig
	sink      Sink
	logger    zerolog.Logger
}

func NewSeeder(config SeedConfig, sink Sink, now time.Time, logger zerolog.Logger) *Seeder {
	return &Seeder{
		generator: NewDataGenerator(config.Seed, now),
		config:    config,
		sink:      sink,
		logger:    logger,
	}
}

// Run creates staff and the Rikkes batch first, then patients, then the
// records that reference them. Appointments, IGD cases and lab tests need at
// least one patient; appointments also need a doctor.
func (s *Seeder) Run(ctx context.Context) (*SeedResult, error) {
	start := time.Now()
	g := s.generator
	result := &SeedResult{}

	doctors := make([]*identity.Doctor, 0, s.config.Doctors)
	for i := 0; i < s.config.Doctors; i++ {
		d := g.Doctor(i)
		if err := s.sink.CreateDoctor(ctx, d); err != nil {
			return result, fmt.Errorf("create doctor: %w", err)
		}
		doctors = append(doctors, d)
	}
	result.Doctors = len(doctors)

	for i := 0; i < s.config.Nurses; i++ {
		if err := s.sink.CreateNurse(ctx, g.Nurse()); err != nil {
			return result, fmt.Errorf("create nurse: %w", err)
		}
		result.Nurses++
	}

	batch := fmt.Sprintf("Batch %s", caldate.Of(g.now).String())
	for i := 0; i < s.config.Participants; i++ {
		p := g.Participant(batch)
		if err := s.sink.CreateParticipant(ctx, p); err != nil {
			return result, fmt.Errorf("create rikkes participant %s: %w", p.ParticipantCode, err)
		}
		result.Participants++
	}

	patients := make([]uuid.UUID, 0, s.config.Patients)
	for i := 0; i < s.config.Patients; i++ {
		p := g.Patient()
		if err := s.sink.CreatePatient(ctx, p); err != nil {
			return result, fmt.Errorf("create patient %s: %w", p.PatientCode, err)
		}
		patients = append(patients, p.ID)
	}
	result.Patients = len(patients)
	s.logger.Debug().Int("patients", result.Patients).Int("doctors", result.Doctors).Msg("seeded people")

	if len(patients) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	doctorFor := func(i int) *uuid.UUID {
		if len(doctors) == 0 {
			return nil
		}
		id := doctors[i%len(doctors)].ID
		return &id
	}

	if len(doctors) > 0 {
		for i := 0; i < s.config.Appointments; i++ {
			a := g.Appointment(i, patients[i%len(patients)], doctors[i%len(doctors)])
			if err := s.sink.CreateAppointment(ctx, a); err != nil {
				return result, fmt.Errorf("create appointment %s: %w", a.AppointmentCode, err)
			}
			result.Appointments++
		}
	}

	for i := 0; i < s.config.IGDCases; i++ {
		c := g.IGDCase(patients[len(patients)-1-i%len(patients)], doctorFor(i))
		if err := s.sink.CreateCase(ctx, c); err != nil {
			return result, fmt.Errorf("create igd case %s: %w", c.CaseCode, err)
		}
		result.IGDCases++
	}

	for i := 0; i < s.config.LabTests; i++ {
		t := g.LabTest(patients[i%len(patients)], doctorFor(i))
		if err := s.sink.CreateLabTest(ctx, t); err != nil {
			return result, fmt.Errorf("create lab test %s: %w", t.TestCode, err)
		}
		result.LabTests++
	}

	result.Duration = time.Since(start)
	s.logger.Info().Int("records", result.Total()).Dur("duration", result.Duration).Msg("demo data seeded")
	return result, nil
}
