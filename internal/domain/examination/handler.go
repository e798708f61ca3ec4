package examination

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
	api.GET("/examinations", h.ListExaminations)
	api.POST("/examinations", h.CreateExamination)
	api.GET("/examinations/:id", h.GetExamination)
	api.PATCH("/examinations/:id", h.UpdateExamination)
	api.DELETE("/examinations/:id", h.DeleteExamination)
}

func (h *Handler) CreateExamination(c echo.Context) error {
	var e Examination
	if err := c.Bind(&e); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreateExamination(c.Request().Context(), &e); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *Handler) GetExamination(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	e, err := h.svc.GetExamination(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) ListExaminations(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := pagination.Filters(c, "appointment_id", "patient_id", "doctor_id", "nurse_id", "examination_type", "status")
	items, total, err := h.svc.SearchExaminations(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateExamination(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	e, err := h.svc.GetExamination(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(e); err != nil {
		return httperr.Bind(err)
	}
	e.ID = id
	if err := h.svc.UpdateExamination(ctx, e); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (h *Handler) DeleteExamination(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteExamination(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
