// Package display derives the presentation values the dashboard shows next
// to stored records: ages, status tones and Indonesian labels.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/klinik/klinik/pkg/caldate"
)

// Tone is the colour family a status is rendered with.
type Tone string

const (
	ToneEmergency Tone = "emergency"
	ToneWarning   Tone = "warning"
	ToneSuccess   Tone = "success"
	TonePrimary   Tone = "primary"
	ToneMuted     Tone = "muted"
)

// AgeInYears subtracts birth year from the current year. Month and day are
// ignored, so someone born 2000-12-31 is 24 throughout 2024.
func AgeInYears(dob caldate.Date, now time.Time) int {
	if dob.IsZero() {
		return 0
	}
	return now.Year() - dob.Year
}

// NormalizeTriage maps the Indonesian triage colours onto red/yellow/green.
// Unknown values are returned lowercased and are rejected by validation.
func NormalizeTriage(v string) string {
	switch s := strings.ToLower(strings.TrimSpace(v)); s {
	case "merah":
		return "red"
	case "kuning":
		return "yellow"
	case "hijau":
		return "green"
	default:
		return s
	}
}

// TriageLabel is the inverse of NormalizeTriage.
func TriageLabel(triage string) string {
	switch triage {
	case "red":
		return "Merah"
	case "yellow":
		return "Kuning"
	case "green":
		return "Hijau"
	}
	return triage
}

func TriageTone(triage string) Tone {
	switch NormalizeTriage(triage) {
	case "red":
		return ToneEmergency
	case "yellow":
		return ToneWarning
	case "green":
		return ToneSuccess
	}
	return ToneMuted
}

func BedTone(status string) Tone {
	switch status {
	case "occupied":
		return ToneEmergency
	case "available":
		return ToneSuccess
	case "cleaning":
		return ToneWarning
	}
	return ToneMuted
}

func AppointmentTone(status string) Tone {
	switch status {
	case "current":
		return TonePrimary
	case "waiting":
		return ToneWarning
	case "completed":
		return ToneSuccess
	}
	return ToneMuted
}

// LabTone gives stat and urgent requests the emergency tone until they are
// completed.
func LabTone(status, priority string) Tone {
	switch {
	case status == "completed":
		return ToneSuccess
	case status == "cancelled":
		return ToneMuted
	case priority == "urgent" || priority == "stat":
		return ToneEmergency
	case status == "in_progress":
		return TonePrimary
	}
	return ToneWarning
}

func LabStatusLabel(status string) string {
	switch status {
	case "completed":
		return "Selesai"
	case "in_progress":
		return "Proses"
	case "pending":
		return "Menunggu"
	case "cancelled":
		return "Dibatalkan"
	}
	return status
}

func RikkesTone(status string) Tone {
	switch status {
	case "completed":
		return ToneSuccess
	case "in_progress":
		return TonePrimary
	case "scheduled":
		return ToneWarning
	case "failed":
		return ToneEmergency
	}
	return ToneMuted
}

// RikkesResultLabel renders overall_result the way participant cards show it.
func RikkesResultLabel(result string) string {
	switch result {
	case "Fit":
		return "LULUS"
	case "Unfit":
		return "TIDAK LULUS"
	case "Pending":
		return "PROSES"
	}
	return "DIJADWALKAN"
}

func IGDStatusTone(status string) Tone {
	switch status {
	case "critical":
		return ToneEmergency
	case "active":
		return ToneWarning
	case "stable":
		return ToneSuccess
	}
	return ToneMuted
}

// TimeAgo renders how long before now t happened, in the short Indonesian
// form used on activity feeds.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "baru saja"
	case d < time.Hour:
		return fmt.Sprintf("%d menit lalu", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d jam lalu", int(d/time.Hour))
	default:
		return fmt.Sprintf("%d hari lalu", int(d/(24*time.Hour)))
	}
}
