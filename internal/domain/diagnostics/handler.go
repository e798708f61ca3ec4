package diagnostics

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/klinik/klinik/internal/platform/httperr"
	"github.com/klinik/klinik/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/lab-tests", h.ListLabTests)
	api.POST("/lab-tests", h.CreateLabTest)
	api.GET("/lab-tests/:id", h.GetLabTest)
	api.PATCH("/lab-tests/:id", h.UpdateLabTest)
	api.DELETE("/lab-tests/:id", h.DeleteLabTest)
}

func (h *Handler) CreateLabTest(c echo.Context) error {
	var t LabTest
	if err := c.Bind(&t); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreateLabTest(c.Request().Context(), &t); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *Handler) GetLabTest(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.svc.GetLabTest(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) ListLabTests(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := pagination.Filters(c, "status", "priority", "test_type", "patient_id", "completed_from")
	items, total, err := h.svc.SearchLabTests(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateLabTest(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	t, err := h.svc.GetLabTest(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(t); err != nil {
		return httperr.Bind(err)
	}
	t.ID = id
	if err := h.svc.UpdateLabTest(ctx, t); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, t)
}

func (h *Handler) DeleteLabTest(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteLabTest(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
