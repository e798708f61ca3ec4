package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/display"
	"github.com/klinik/klinik/internal/platform/validate"
	"github.com/klinik/klinik/pkg/caldate"
)

// -- Mock Repository --

type mockRepo struct {
	stats     Stats
	events    []*Event
	err       error
	lastDay   caldate.Date
	lastSince time.Time
	lastLimit int
}

func (m *mockRepo) Stats(_ context.Context, day caldate.Date, since time.Time) (*Stats, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastDay, m.lastSince = day, since
	s := m.stats
	s.Date = day
	return &s, nil
}

func (m *mockRepo) RecentEvents(_ context.Context, limit int) ([]*Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastLimit = limit
	if len(m.events) > limit {
		return m.events[:limit], nil
	}
	return m.events, nil
}

// -- Tests --

var testNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

func newTestService(repo *mockRepo) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return testNow }
	return s
}

func TestStats_DefaultsToToday(t *testing.T) {
	repo := &mockRepo{stats: Stats{TodayPatients: 12, ActiveIGD: 3, ActivePoli: 4, CompletedLab: 7}}
	svc := newTestService(repo)

	got, err := svc.Stats(context.Background(), "")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if repo.lastDay.String() != "2024-03-10" {
		t.Errorf("expected today's date, got %s", repo.lastDay)
	}
	if !repo.lastSince.Equal(time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("expected completed_lab to count from midnight, got %v", repo.lastSince)
	}
	if got.TodayPatients != 12 || got.ActiveIGD != 3 || got.ActivePoli != 4 || got.CompletedLab != 7 {
		t.Errorf("unexpected stats: %+v", got)
	}
}

func TestStats_ExplicitDate(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	if _, err := svc.Stats(context.Background(), "2024-02-29"); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if repo.lastDay.String() != "2024-02-29" {
		t.Errorf("expected 2024-02-29, got %s", repo.lastDay)
	}
}

func TestStats_InvalidDate(t *testing.T) {
	svc := newTestService(&mockRepo{})
	if _, err := svc.Stats(context.Background(), "10/03/2024"); !validate.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestActivities(t *testing.T) {
	repo := &mockRepo{events: []*Event{
		{Kind: KindIGD, ID: uuid.New(), At: testNow.Add(-5 * time.Minute), Subject: "Budi", Detail: "nyeri dada", Status: "red"},
		{Kind: KindLab, ID: uuid.New(), At: testNow.Add(-12 * time.Minute), Subject: "Siti", Label: "normal", Detail: "Darah Lengkap", Status: "completed"},
		{Kind: KindAppointment, ID: uuid.New(), At: testNow.Add(-18 * time.Minute), Subject: "Andi", Label: "Poli Gigi", Status: "current"},
		{Kind: KindRikkes, ID: uuid.New(), At: testNow.Add(-25 * time.Minute), Subject: "Serda Joko", Label: "2024-I", Status: "scheduled"},
	}}
	svc := newTestService(repo)

	items, err := svc.Activities(context.Background(), 0)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if repo.lastLimit != DefaultActivityLimit {
		t.Errorf("expected default limit %d, got %d", DefaultActivityLimit, repo.lastLimit)
	}
	if len(items) != 4 {
		t.Fatalf("expected 4 activities, got %d", len(items))
	}

	want := []struct {
		typ     string
		message string
		tone    display.Tone
		ago     string
	}{
		{"IGD", "Budi masuk IGD dengan keluhan nyeri dada", display.ToneEmergency, "5 menit lalu"},
		{"Lab", "Hasil pemeriksaan Darah Lengkap untuk Siti siap", display.ToneSuccess, "12 menit lalu"},
		{"Poli Gigi", "Andi terdaftar di Poli Gigi", display.TonePrimary, "18 menit lalu"},
		{"Rikkes", "Serda Joko terdaftar untuk pemeriksaan Rikkes batch 2024-I", display.ToneWarning, "25 menit lalu"},
	}
	for i, w := range want {
		a := items[i]
		if a.Type != w.typ || a.Message != w.message || a.Status != w.tone || a.TimeAgo != w.ago {
			t.Errorf("activity %d: got %+v, want %+v", i, a, w)
		}
	}
}

func TestActivities_LimitCapped(t *testing.T) {
	repo := &mockRepo{}
	svc := newTestService(repo)
	if _, err := svc.Activities(context.Background(), 500); err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if repo.lastLimit != MaxActivityLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxActivityLimit, repo.lastLimit)
	}
}

func TestActivities_SkipsUnknownKinds(t *testing.T) {
	repo := &mockRepo{events: []*Event{{Kind: "billing", At: testNow}}}
	items, err := newTestService(repo).Activities(context.Background(), 5)
	if err != nil {
		t.Fatalf("Activities: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected unknown kinds to be dropped, got %d", len(items))
	}
}

func TestActivities_RepoError(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection refused")}
	if _, err := newTestService(repo).Activities(context.Background(), 5); err == nil {
		t.Error("expected error from repository")
	}
}
