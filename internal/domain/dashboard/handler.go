package dashboard

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/klinik/klinik/internal/platform/httperr"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard/stats", h.GetStats)
	api.GET("/dashboard/activities", h.ListActivities)
}

func (h *Handler) GetStats(c echo.Context) error {
	stats, err := h.svc.Stats(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ListActivities(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}
	items, err := h.svc.Activities(c.Request().Context(), limit)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}
