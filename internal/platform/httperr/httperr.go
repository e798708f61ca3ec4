// Package httperr maps service and repository errors onto HTTP responses with
// a {"message": "..."} body.
package httperr

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"

	"github.com/klinik/klinik/internal/platform/db"
	"github.com/klinik/klinik/internal/platform/validate"
)

// Postgres SQLSTATE codes surfaced to clients.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

// From picks the status for err. Unknown errors become an opaque 500 and keep
// err as the internal cause for the request log.
func From(err error) *echo.HTTPError {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}
	if errors.Is(err, db.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if validate.IsValidation(err) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return echo.NewHTTPError(http.StatusConflict, "duplicate value violates "+pgErr.ConstraintName).SetInternal(err)
		case foreignKeyViolation:
			return echo.NewHTTPError(http.StatusBadRequest, "referenced record does not exist ("+pgErr.ConstraintName+")").SetInternal(err)
		case checkViolation:
			return echo.NewHTTPError(http.StatusBadRequest, "value rejected by "+pgErr.ConstraintName).SetInternal(err)
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

// Bind reports a malformed request body.
func Bind(err error) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+bindMessage(err))
}

func bindMessage(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			return msg
		}
	}
	return err.Error()
}

// ID parses the path parameter name as a UUID.
func ID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
