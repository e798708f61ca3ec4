package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_GetStats(t *testing.T) {
	h := NewHandler(newTestService(&mockRepo{stats: Stats{TodayPatients: 2, ActivePoli: 1}}))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?date=2024-03-09", nil), rec)

	if err := h.GetStats(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var got map[string]any
	json.Unmarshal(rec.Body.Bytes(), &got)
	if got["date"] != "2024-03-09" || got["today_patients"] != float64(2) || got["active_poli"] != float64(1) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHandler_GetStats_BadDate(t *testing.T) {
	h := NewHandler(newTestService(&mockRepo{}))
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/?date=yesterday", nil), httptest.NewRecorder())

	err := h.GetStats(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetStats_Failure(t *testing.T) {
	h := NewHandler(newTestService(&mockRepo{err: errors.New("boom")}))
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	err := h.GetStats(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %v", err)
	}
}

func TestHandler_ListActivities_InvalidLimit(t *testing.T) {
	h := NewHandler(newTestService(&mockRepo{}))
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/?limit=ten", nil), httptest.NewRecorder())

	err := h.ListActivities(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ListActivities_Empty(t *testing.T) {
	h := NewHandler(newTestService(&mockRepo{}))
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	if err := h.ListActivities(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body := rec.Body.String(); body != "{\"data\":[]}\n" {
		t.Errorf("expected empty data array, got %s", body)
	}
}
