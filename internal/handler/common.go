// Package handler exposes the services over HTTP. Requests and responses
// are JSON except for the endpoints that take file uploads, which read
// multipart forms.
package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/middleware"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/policy"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/service"
	"github.com/NilaRamamoorthy/VetriConsultancyServices/internal/storage"
)

const (
	requestTimeout = 5 * time.Second
	uploadTimeout  = 30 * time.Second

	plansPath = "/v1/subscription/plans"
)

func withTimeout(c echo.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), d)
}

// actor reads the caller placed in the context by JWTAuth.
func actor(c echo.Context) (policy.Actor, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return policy.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	role, ok := middleware.Role(c)
	if !ok {
		return policy.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	return policy.Actor{UserID: id, Role: role}, nil
}

func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}

// bind decodes the body into req and runs the registered validator.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.Validate(req)
}

// seeOther points the client at a record that already exists.
func seeOther(c echo.Context, location string, body any) error {
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusSeeOther, body)
}

func existingLocation(ex *service.ExistingError) string {
	switch ex.Kind {
	case "application":
		return fmt.Sprintf("/v1/applications/%d", ex.ID)
	case "enrollment":
		return fmt.Sprintf("/v1/my-courses/%d", ex.ID)
	}
	return ""
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and reported as 500 without detail.
func respondError(c echo.Context, err error) error {
	var (
		he *echo.HTTPError
		ve *service.ValidationError
		ex *service.ExistingError
	)
	switch {
	case errors.As(err, &he):
		return err
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": ve.Fields})
	case errors.As(err, &ex):
		if loc := existingLocation(ex); loc != "" {
			return seeOther(c, loc, echo.Map{"error": ex.Error(), "redirect": loc})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": ex.Error()})
	case errors.Is(err, service.ErrProRequired):
		return c.JSON(http.StatusForbidden, echo.Map{"error": err.Error(), "redirect": plansPath})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidRefresh):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrAlreadyPro),
		errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.JSON(http.StatusGatewayTimeout, echo.Map{"error": "request timed out"})
	}
	c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

// formUpload opens the multipart file field. It returns a nil upload when
// the field is absent; close must be called once the upload is consumed.
func formUpload(c echo.Context, field string) (*storage.Upload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, echo.NewHTTPError(http.StatusBadRequest, "invalid upload "+field)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return uploadOf(fh, f), func() { _ = f.Close() }, nil
}

func uploadOf(fh *multipart.FileHeader, r io.Reader) *storage.Upload {
	return &storage.Upload{Filename: fh.Filename, Size: fh.Size, Content: r}
}

// formUploads opens several file fields and returns one closer for all.
func formUploads(c echo.Context, fields ...string) (map[string]*storage.Upload, func(), error) {
	out := make(map[string]*storage.Upload, len(fields))
	var closers []func()
	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}
	for _, f := range fields {
		u, closeFn, err := formUpload(c, f)
		closers = append(closers, closeFn)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		out[f] = u
	}
	return out, closeAll, nil
}

// optFloat parses an optional form number. Blank means nil.
func optFloat(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &service.ValidationError{Fields: map[string]string{field: "must be a number"}}
	}
	return &v, nil
}

func optInt(field, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &service.ValidationError{Fields: map[string]string{field: "must be a whole number"}}
	}
	return &v, nil
}

func optBool(field, raw string) (*bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, &service.ValidationError{Fields: map[string]string{field: "must be true or false"}}
	}
	return &v, nil
}

// meetingLayouts are accepted for meeting_datetime: RFC 3339 and the
// browser datetime-local format, read as UTC.
var meetingLayouts = []string{time.RFC3339, "2006-01-02T15:04"}

func parseMeetingTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range meetingLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, &service.ValidationError{Fields: map[string]string{"meeting_datetime": "use RFC 3339, e.g. 2025-04-02T10:30:00Z"}}
}
