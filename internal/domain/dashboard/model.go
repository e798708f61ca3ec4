package dashboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/klinik/klinik/internal/display"
	"github.com/klinik/klinik/pkg/caldate"
)

// Stats are the four headline counters for one clinic day.
type Stats struct {
	Date          caldate.Date `json:"date"`
	TodayPatients int          `json:"today_patients"`
	ActiveIGD     int          `json:"active_igd"`
	ActivePoli    int          `json:"active_poli"`
	CompletedLab  int          `json:"completed_lab"`
}

// Source kinds for activity rows.
const (
	KindIGD         = "igd"
	KindLab         = "lab"
	KindAppointment = "appointment"
	KindRikkes      = "rikkes"
)

// Event is a raw row behind an activity entry. Label is the department for
// appointments and the batch for Rikkes participants.
type Event struct {
	Kind    string
	ID      uuid.UUID
	At      time.Time
	Subject string
	Label   string
	Detail  string
	Status  string
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	ID      uuid.UUID    `json:"id"`
	Type    string       `json:"type"`
	Message string       `json:"message"`
	Time    time.Time    `json:"time"`
	TimeAgo string       `json:"time_ago"`
	Status  display.Tone `json:"status"`
}
