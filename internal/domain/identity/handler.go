package identity

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
	api.GET("/patients", h.ListPatients)
	api.POST("/patients", h.CreatePatient)
	api.GET("/patients/:id", h.GetPatient)
	api.PATCH("/patients/:id", h.UpdatePatient)
	api.DELETE("/patients/:id", h.DeletePatient)

	api.GET("/doctors", h.ListDoctors)
	api.POST("/doctors", h.CreateDoctor)
	api.GET("/doctors/:id", h.GetDoctor)
	api.PATCH("/doctors/:id", h.UpdateDoctor)
	api.DELETE("/doctors/:id", h.DeleteDoctor)

	api.GET("/nurses", h.ListNurses)
	api.POST("/nurses", h.CreateNurse)
	api.GET("/nurses/:id", h.GetNurse)
	api.PATCH("/nurses/:id", h.UpdateNurse)
	api.DELETE("/nurses/:id", h.DeleteNurse)
}

// -- Patient Handlers --

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreatePatient(c.Request().Context(), &p); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.svc.GetPatient(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, p)
}

// ListPatients doubles as the registration search: ?q= matches name,
// patient code or phone.
func (h *Handler) ListPatients(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := pagination.Filters(c, "gender")
	if c.QueryParams().Has("q") {
		params["q"] = c.QueryParam("q")
	}
	items, total, err := h.svc.SearchPatients(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// UpdatePatient applies a partial body: fields missing from the JSON keep
// their stored values.
func (h *Handler) UpdatePatient(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	p, err := h.svc.GetPatient(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(p); err != nil {
		return httperr.Bind(err)
	}
	p.ID = id
	if err := h.svc.UpdatePatient(ctx, p); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeletePatient(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Doctor Handlers --

func (h *Handler) CreateDoctor(c echo.Context) error {
	var d Doctor
	if err := c.Bind(&d); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreateDoctor(c.Request().Context(), &d); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	d, err := h.svc.GetDoctor(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	pg := pagination.FromContext(c)
	params := pagination.Filters(c, "specialization", "active", "department")
	items, total, err := h.svc.SearchDoctors(c.Request().Context(), params, pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateDoctor(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	d, err := h.svc.GetDoctor(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(d); err != nil {
		return httperr.Bind(err)
	}
	d.ID = id
	if err := h.svc.UpdateDoctor(ctx, d); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDoctor(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDoctor(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Nurse Handlers --

func (h *Handler) CreateNurse(c echo.Context) error {
	var n Nurse
	if err := c.Bind(&n); err != nil {
		return httperr.Bind(err)
	}
	if err := h.svc.CreateNurse(c.Request().Context(), &n); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *Handler) GetNurse(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	n, err := h.svc.GetNurse(c.Request().Context(), id)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) ListNurses(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.SearchNurses(c.Request().Context(), pagination.Filters(c, "active"), pg.Limit, pg.Offset)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateNurse(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	n, err := h.svc.GetNurse(ctx, id)
	if err != nil {
		return httperr.From(err)
	}
	if err := c.Bind(n); err != nil {
		return httperr.Bind(err)
	}
	n.ID = id
	if err := h.svc.UpdateNurse(ctx, n); err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) DeleteNurse(c echo.Context) error {
	id, err := httperr.ID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteNurse(c.Request().Context(), id); err != nil {
		return httperr.From(err)
	}
	return c.NoContent(http.StatusNoContent)
}
