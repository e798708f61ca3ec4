package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/klinik/klinik/internal/config"
	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/sandbox"
	"github.com/klinik/klinik/pkg/client"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:            "test",
		DBSchema:       "public",
		CORSOrigins:    []string{"http://localhost:3000"},
		RequestTimeout: 5 * time.Second,
		BodyLimit:      "1M",
		MetricsEnabled: true,
	}
}

func TestNewServer_Routes(t *testing.T) {
	e := newServer(testConfig(), zerolog.Nop(), nil)

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	want := []string{
		"GET /health/db",
		"GET /metrics",
		"GET /api/v1/patients",
		"POST /api/v1/patients",
		"PATCH /api/v1/patients/:id",
		"GET /api/v1/doctors",
		"GET /api/v1/nurses",
		"GET /api/v1/appointments",
		"DELETE /api/v1/appointments/:id",
		"GET /api/v1/igd-cases",
		"PATCH /api/v1/beds/:id",
		"GET /api/v1/lab-tests",
		"POST /api/v1/examinations",
		"GET /api/v1/rikkes/participants",
		"GET /api/v1/rikkes/participants/:id/examinations",
		"DELETE /api/v1/rikkes/examinations/:id",
		"GET /api/v1/dashboard/stats",
		"GET /api/v1/dashboard/activities",
		"GET /api/v1/openapi.json",
		"GET /api/v1/docs",
	}
	for _, w := range want {
		if !registered[w] {
			t.Errorf("route %q not registered", w)
		}
	}
}

func TestNewServer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MetricsEnabled = false
	e := newServer(cfg, zerolog.Nop(), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 with metrics disabled, got %d", rec.Code)
	}
}

func TestNewServer_InvalidIDBeforeDatabase(t *testing.T) {
	e := newServer(testConfig(), zerolog.Nop(), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients/not-a-uuid", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "invalid id" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id on the response")
	}
}

func TestNewEcho_PanicInAPIRouteKeepsServing(t *testing.T) {
	e, api := newEcho(testConfig(), zerolog.Nop())
	api.GET("/beds/broken", func(c echo.Context) error {
		panic("nil bed")
	})
	api.GET("/beds/ok", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "available"})
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/beds/broken", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	if body["message"] != "internal server error" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/beds/ok", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected the server to keep serving, got %d", rec.Code)
	}
}

func TestNewLogger_Level(t *testing.T) {
	cfg := &config.Config{Env: "production", LogLevel: "debug"}
	if got := newLogger(cfg).GetLevel(); got != zerolog.DebugLevel {
		t.Errorf("expected debug level, got %s", got)
	}
	cfg.LogLevel = "loud"
	if got := newLogger(cfg).GetLevel(); got != zerolog.InfoLevel {
		t.Errorf("expected fallback to info, got %s", got)
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := rootCmd()
	for _, name := range []string{"serve", "migrate", "seed", "stats"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not found", name)
		}
	}
	if cmd, _, err := root.Find([]string{"seed", "beds"}); err != nil || cmd.Flags().Lookup("count") == nil {
		t.Error("expected seed beds --count")
	}
	if cmd, _, err := root.Find([]string{"seed", "demo"}); err != nil || cmd.Flags().Lookup("seed") == nil {
		t.Error("expected seed demo --seed")
	}
}

func TestPrintSeedResult(t *testing.T) {
	var buf bytes.Buffer
	printSeedResult(&buf, &sandbox.SeedResult{Patients: 30, Doctors: 4, Appointments: 15, Duration: 1500 * time.Microsecond})
	out := buf.String()
	if !strings.Contains(out, "Patients:      30") {
		t.Errorf("expected patient count, got:\n%s", out)
	}
	if !strings.Contains(out, "Created 49 record(s) in 2ms.") {
		t.Errorf("expected summary line, got:\n%s", out)
	}
}

func TestPrintStatuses(t *testing.T) {
	at := time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	printStatuses(&buf, []db.MigrationStatus{
		{Version: 1, Name: "001_clinic.sql", Applied: true, AppliedAt: &at},
		{Version: 2, Name: "002_more.sql"},
	})
	out := buf.String()
	if !strings.Contains(out, "applied    2024-03-10 09:00:00") {
		t.Errorf("expected applied row, got:\n%s", out)
	}
	if !strings.Contains(out, "002_more.sql") || !strings.Contains(out, "pending") {
		t.Errorf("expected pending row, got:\n%s", out)
	}
}

func TestPrintDashboard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/v1/dashboard/stats":
			w.Write([]byte(`{"date":"2024-03-10","today_patients":12,"active_igd":3,"active_poli":4,"completed_lab":7}`))
		case "/api/v1/dashboard/activities":
			w.Write([]byte(`{"data":[{"type":"IGD","message":"Budi masuk IGD dengan keluhan nyeri dada","time_ago":"5 menit lalu","status":"emergency"}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := printDashboard(context.Background(), &buf, client.New(srv.URL), "2024-03-10", 5); err != nil {
		t.Fatalf("printDashboard: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Pasien hari ini  12", "IGD aktif        3", "[emergency] IGD", "5 menit lalu"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestNewServer_OpenAPIDocument(t *testing.T) {
	e := newServer(testConfig(), zerolog.Nop(), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Path] = true
	}
	for path := range doc.Paths {
		route := strings.Replace(path, "{id}", ":id", 1)
		if !registered[route] {
			t.Errorf("documented path %s has no route", path)
		}
	}
	if len(doc.Paths) != 2*len(apiResources()) {
		t.Errorf("expected %d documented paths, got %d", 2*len(apiResources()), len(doc.Paths))
	}
}
