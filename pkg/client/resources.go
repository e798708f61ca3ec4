package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/domain/dashboard"
	"github.com/klinik/klinik/internal/domain/diagnostics"
	"github.com/klinik/klinik/internal/domain/emergency"
	"github.com/klinik/klinik/internal/domain/examination"
	"github.com/klinik/klinik/internal/domain/identity"
	"github.com/klinik/klinik/internal/domain/rikkes"
	"github.com/klinik/klinik/internal/domain/scheduling"
)

type (
	Patient           = identity.Patient
	Doctor            = identity.Doctor
	Nurse             = identity.Nurse
	Appointment       = scheduling.Appointment
	IGDCase           = emergency.Case
	Bed               = emergency.Bed
	LabTest           = diagnostics.LabTest
	Examination       = examination.Examination
	VitalSigns        = examination.VitalSigns
	RikkesParticipant = rikkes.Participant
	RikkesExamination = rikkes.Examination
	DashboardStats    = dashboard.Stats
	Activity          = dashboard.Activity
)

func (c *Client) Patients() *Store[Patient] {
	return NewStore(c, "/patients", func(p *Patient) uuid.UUID { return p.ID })
}

func (c *Client) Doctors() *Store[Doctor] {
	return NewStore(c, "/doctors", func(d *Doctor) uuid.UUID { return d.ID })
}

func (c *Client) Nurses() *Store[Nurse] {
	return NewStore(c, "/nurses", func(n *Nurse) uuid.UUID { return n.ID })
}

func (c *Client) Appointments() *Store[Appointment] {
	return NewStore(c, "/appointments", func(a *Appointment) uuid.UUID { return a.ID })
}

func (c *Client) IGDCases() *Store[IGDCase] {
	return NewStore(c, "/igd-cases", func(ic *IGDCase) uuid.UUID { return ic.ID })
}

func (c *Client) Beds() *Store[Bed] {
	return NewStore(c, "/beds", func(b *Bed) uuid.UUID { return b.ID })
}

func (c *Client) LabTests() *Store[LabTest] {
	return NewStore(c, "/lab-tests", func(t *LabTest) uuid.UUID { return t.ID })
}

func (c *Client) Examinations() *Store[Examination] {
	return NewStore(c, "/examinations", func(e *Examination) uuid.UUID { return e.ID })
}

func (c *Client) RikkesParticipants() *Store[RikkesParticipant] {
	return NewStore(c, "/rikkes/participants", func(p *RikkesParticipant) uuid.UUID { return p.ID })
}

func (c *Client) RikkesExaminations() *Store[RikkesExamination] {
	return NewStore(c, "/rikkes/examinations", func(e *RikkesExamination) uuid.UUID { return e.ID })
}

// DashboardStats fetches the counters for date (YYYY-MM-DD); an empty date
// means today on the server.
func (c *Client) DashboardStats(ctx context.Context, date string) (*DashboardStats, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	var out DashboardStats
	if err := c.do(ctx, http.MethodGet, "/dashboard/stats", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Activities(ctx context.Context, limit int) ([]Activity, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out struct {
		Data []Activity `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard/activities", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}
