package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/klinik/klinik/internal/display"
	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

const (
	DefaultActivityLimit = 10
	MaxActivityLimit     = 50
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Stats reports the counters for date (YYYY-MM-DD), or for today when date
// is empty.
func (s *Service) Stats(ctx context.Context, date string) (*Stats, error) {
	day := caldate.Of(s.now())
	if date != "" {
		d, err := caldate.Parse(date)
		if err != nil {
			return nil, validate.Errorf("date: %v", err)
		}
		day = d
	}
	return s.repo.Stats(ctx, day, day.In(s.now().Location()))
}

func (s *Service) Activities(ctx context.Context, limit int) ([]*Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	if limit > MaxActivityLimit {
		limit = MaxActivityLimit
	}
	events, err := s.repo.RecentEvents(ctx, limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]*Activity, 0, len(events))
	for _, e := range events {
		a := describe(e)
		if a == nil {
			continue
		}
		a.ID = e.ID
		a.Time = e.At
		a.TimeAgo = display.TimeAgo(e.At, now)
		out = append(out, a)
	}
	return out, nil
}

func describe(e *Event) *Activity {
	switch e.Kind {
	case KindIGD:
		return &Activity{
			Type:    "IGD",
			Message: fmt.Sprintf("%s masuk IGD dengan keluhan %s", e.Subject, e.Detail),
			Status:  display.TriageTone(e.Status),
		}
	case KindLab:
		return &Activity{
			Type:    "Lab",
			Message: fmt.Sprintf("Hasil pemeriksaan %s untuk %s siap", e.Detail, e.Subject),
			Status:  display.LabTone(e.Status, e.Label),
		}
	case KindAppointment:
		msg := fmt.Sprintf("%s terdaftar di %s", e.Subject, e.Label)
		if e.Detail != "" {
			msg += " dengan keluhan " + e.Detail
		}
		return &Activity{Type: e.Label, Message: msg, Status: display.AppointmentTone(e.Status)}
	case KindRikkes:
		msg := fmt.Sprintf("%s terdaftar untuk pemeriksaan Rikkes", e.Subject)
		if e.Label != "" {
			msg += " batch " + e.Label
		}
		return &Activity{Type: "Rikkes", Message: msg, Status: display.RikkesTone(e.Status)}
	}
	return nil
}
