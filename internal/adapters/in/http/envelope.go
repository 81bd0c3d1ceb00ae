package http

import (
	"errors"
	"log/slog"
	"net/http"

	"livestock/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// envelope is the body of every API response.
//
//	{"ok": true, "data": {...}}
//	{"ok": false, "kind": "PredicateFailed", "details": {...}}
type envelope struct {
	OK      bool          `json:"ok"`
	Data    any           `json:"data,omitempty"`
	Kind    errs.Kind     `json:"kind,omitempty"`
	Details *errorDetails `json:"details,omitempty"`
}

type errorDetails struct {
	Message    string            `json:"message"`
	Rejections []rejectionDetail `json:"rejections,omitempty"`
}

type rejectionDetail struct {
	ID     string    `json:"id"`
	Kind   errs.Kind `json:"kind"`
	Reason string    `json:"reason"`
}

var statusByKind = map[errs.Kind]int{
	errs.KindNotFound:          http.StatusNotFound,
	errs.KindInvalidState:      http.StatusConflict,
	errs.KindInvalidTransition: http.StatusConflict,
	errs.KindPredicateFailed:   http.StatusConflict,
	errs.KindUniqueConflict:    http.StatusConflict,
	errs.KindCapacityExceeded:  http.StatusConflict,
	errs.KindValidationFailed:  http.StatusBadRequest,
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{OK: true, Data: data})
}

// fail writes err classified by its kind. Internal errors are logged and
// their text is not exposed.
func (s *Server) fail(c echo.Context, err error) error {
	return s.failAs(c, errs.KindOf(err), err)
}

// invalid reports malformed input regardless of the error's own kind.
func (s *Server) invalid(c echo.Context, err error) error {
	return s.failAs(c, errs.KindValidationFailed, err)
}

func (s *Server) failAs(c echo.Context, kind errs.Kind, err error) error {
	status, known := statusByKind[kind]
	if !known {
		kind = errs.KindInternal
		status = http.StatusInternalServerError
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"path", c.Path(),
			"error", err,
		)
		return c.JSON(status, envelope{Kind: kind, Details: &errorDetails{Message: "internal error"}})
	}

	details := &errorDetails{Message: err.Error()}
	var rejections *errs.RejectionsError
	if errors.As(err, &rejections) {
		for _, r := range rejections.Rejections {
			details.Rejections = append(details.Rejections, rejectionDetail{
				ID:     r.ID,
				Kind:   errs.KindOf(r.Err),
				Reason: r.Err.Error(),
			})
		}
	}
	return c.JSON(status, envelope{Kind: kind, Details: details})
}

// HTTPErrorHandler renders errors raised outside the handlers (unknown
// routes, bad methods, panics recovered by middleware) in the same envelope.
func HTTPErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		kind := errs.KindInternal
		message := "internal error"
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, isString := he.Message.(string); isString {
				message = m
			}
		}
		switch {
		case status == http.StatusNotFound:
			kind = errs.KindNotFound
		case status >= 400 && status < 500:
			kind = errs.KindValidationFailed
		default:
			logger.ErrorContext(c.Request().Context(), "unhandled error", "path", c.Path(), "error", err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, envelope{Kind: kind, Details: &errorDetails{Message: message}})
	}
}
