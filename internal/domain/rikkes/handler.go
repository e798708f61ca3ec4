package rikkes

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
	g := api.Group("/rikkes")

	g.GET("/participants", h.ListParticipants)
	g.POST("/participants", h.CreateParticipant)
	g.GET("/participants/:id", h.GetParticipant)
	g.PATCH("/participants/:id", h.UpdateParticipant)
	g.DELETE("/participants/:id", h.DeleteParticipant)
	g.GET("/participants/:id/examinations", h.ListParticipantExaminations)

	g.GET("/examinations", h.ListExaminations)
	g.POST("/examinations", h.CreateExamination)
	g.GET("/examinations/:id", h.GetExamination)
	g.PATCH("/examinations/:id", h.UpdateExamination)
	g.DELETE("/examinations/:id", h.DeleteExamination)
}

// -- Participant Handlers --

func (h *Handler) CreateParticipant(c echo.Context) error {
	var p Participant
	if err := c.Bind(&p); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreateParticipant(c.Request().Context(), &p); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetParticipant(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.GetParticipant(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListParticipants(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := pagination.Filters(c, "status", "overall_result", "batch", "examination_date", "q")
	items, total, err := h.svc.SearchParticipants(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateParticipant(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	p, err := h.svc.GetParticipant(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(p); err != nil {
		return httperr.Bind(err)
	}
	p.ID = id
	if err := h.svc.UpdateParticipant(ctx, p); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteParticipant(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteParticipant(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ListParticipantExaminations(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if _, err := h.svc.GetParticipant(ctx, id); err != nil {
		return httperr.From(err)
	}
	pg := pagination.FromContext(c)
	params := pagination.Filters(c, "status", "examination_type")
	params["participant_id"] = id.String()
	items, total, err := h.svc.SearchExaminations(ctx, params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// -- Examination Handlers --

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
	params := pagination.Filters(c, "participant_id", "status", "examination_type")
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
