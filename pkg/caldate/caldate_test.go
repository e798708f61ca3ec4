package caldate

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

func TestParse(t *testing.T) {
	d, err := Parse("2000-01-31")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Date{Year: 2000, Month: time.January, Day: 31}) {
		t.Errorf("unexpected date: %+v", d)
	}
	if d.String() != "2000-01-31" {
		t.Errorf("expected 2000-01-31, got %s", d.String())
	}

	for _, bad := range []string{"", "31-01-2000", "2000-13-01", "tomorrow"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestJSON(t *testing.T) {
	type row struct {
		DOB  Date  `json:"date_of_birth"`
		Exam *Date `json:"examination_date"`
	}

	b, err := json.Marshal(row{DOB: MustParse("1990-05-17")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"date_of_birth":"1990-05-17","examination_date":null}` {
		t.Errorf("unexpected JSON: %s", b)
	}

	var r row
	if err := json.Unmarshal([]byte(`{"date_of_birth":"1990-05-17T10:00:00Z","examination_date":"2024-03-01"}`), &r); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.DOB.String() != "1990-05-17" {
		t.Errorf("expected timestamp truncated to date, got %s", r.DOB)
	}
	if r.Exam == nil || r.Exam.String() != "2024-03-01" {
		t.Errorf("unexpected examination date: %v", r.Exam)
	}

	if err := json.Unmarshal([]byte(`{"date_of_birth":"17/05/1990"}`), &r); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestZeroIsNull(t *testing.T) {
	var d Date
	if !d.IsZero() {
		t.Fatal("expected zero date")
	}
	v, err := d.DateValue()
	if err != nil || v.Valid {
		t.Errorf("expected invalid pgtype.Date, got %+v (%v)", v, err)
	}
	if err := json.Unmarshal([]byte(`""`), &d); err != nil || !d.IsZero() {
		t.Errorf("expected empty string to decode as zero, got %+v (%v)", d, err)
	}
}

func TestPgRoundTrip(t *testing.T) {
	in := MustParse("2024-02-29")
	v, err := in.DateValue()
	if err != nil {
		t.Fatalf("DateValue: %v", err)
	}

	var out Date
	if err := out.ScanDate(v); err != nil {
		t.Fatalf("ScanDate: %v", err)
	}
	if out != in {
		t.Errorf("expected %s, got %s", in, out)
	}

	if err := out.ScanDate(pgtype.Date{}); err != nil || !out.IsZero() {
		t.Errorf("expected NULL to scan as zero, got %+v", out)
	}
}

func TestAddDaysAndBefore(t *testing.T) {
	d := MustParse("2024-12-31")
	next := d.AddDays(1)
	if next.String() != "2025-01-01" {
		t.Errorf("expected 2025-01-01, got %s", next)
	}
	if !d.Before(next) || next.Before(d) {
		t.Error("unexpected ordering")
	}
}
