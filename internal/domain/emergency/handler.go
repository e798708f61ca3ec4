package emergency

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
	api.GET("/igd-cases", h.ListCases)
	api.POST("/igd-cases", h.CreateCase)
	api.GET("/igd-cases/:id", h.GetCase)
	api.PATCH("/igd-cases/:id", h.UpdateCase)
	api.DELETE("/igd-cases/:id", h.DeleteCase)

	api.GET("/beds", h.ListBeds)
	api.POST("/beds", h.CreateBed)
	api.GET("/beds/:id", h.GetBed)
	api.PATCH("/beds/:id", h.UpdateBed)
	api.DELETE("/beds/:id", h.DeleteBed)
}

// -- IGD Case Handlers --

func (h *Handler) CreateCase(c echo.Context) error {
	var ic Case
	if err := c.Bind(&ic); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreateCase(c.Request().Context(), &ic); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, ic)
}

func (h *Handler) GetCase(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ic, err := h.svc.GetCase(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, ic)
}

func (h *Handler) ListCases(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := pagination.Filters(c, "status", "triage", "patient_id")
	items, total, err := h.svc.SearchCases(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateCase(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	ic, err := h.svc.GetCase(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(ic); err != nil {
		return httperr.Bind(err)
	}
	ic.ID = id
	if err := h.svc.UpdateCase(ctx, ic); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, ic)
}

func (h *Handler) DeleteCase(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteCase(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Bed Handlers --

func (h *Handler) CreateBed(c echo.Context) error {
	var b Bed
	if err := c.Bind(&b); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreateBed(c.Request().Context(), &b); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *Handler) GetBed(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	b, err := h.svc.GetBed(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) ListBeds(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.SearchBeds(c.Request().Context(), pagination.Filters(c, "status"), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateBed(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	b, err := h.svc.GetBed(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(b); err != nil {
		return httperr.Bind(err)
	}
	b.ID = id
	if err := h.svc.UpdateBed(ctx, b); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *Handler) DeleteBed(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteBed(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
