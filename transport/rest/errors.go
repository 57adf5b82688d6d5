package rest

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/AntonStoeckl/library-rentals-go/core"
)

const (
	kindValidationFailed = "ValidationFailed"

	logMsgRequestFailed = "request failed"
	logAttrError        = "error"
	logAttrKind         = "kind"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StatusForKind maps a domain error kind to its HTTP status.
func StatusForKind(kind core.ErrorKind) int {
	switch kind {
	case core.KindNotFound:
		return http.StatusNotFound
	case core.KindMismatch,
		core.KindAlreadyReturned,
		core.KindAlreadyRented,
		core.KindMemberRentalLimitReached,
		core.KindProlongLimitReached:
		return http.StatusConflict
	case core.KindQueued:
		return http.StatusAccepted
	case core.KindThrottled:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return kindValidationFailed
	case http.StatusNotFound:
		return string(core.KindNotFound)
	case http.StatusTooManyRequests:
		return string(core.KindThrottled)
	default:
		return http.StatusText(status)
	}
}

func errorResponseFor(err error) (int, ErrorResponse) {
	var typed *core.Error
	if errors.As(err, &typed) {
		return StatusForKind(typed.Kind), ErrorResponse{Kind: string(typed.Kind), Message: typed.Error()}
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		return http.StatusBadRequest, ErrorResponse{Kind: kindValidationFailed, Message: invalid.Error()}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if text, ok := httpErr.Message.(string); ok {
			message = text
		}

		return httpErr.Code, ErrorResponse{Kind: kindForStatus(httpErr.Code), Message: message}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Kind:    string(core.KindStorageFailure),
		Message: err.Error(),
	}
}

func (c *controller) handleError(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	status, body := errorResponseFor(err)
	if status >= http.StatusInternalServerError {
		c.logger.ErrorContext(ctx.Request().Context(), logMsgRequestFailed, logAttrKind, body.Kind, logAttrError, err.Error())
	}

	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(status)
	} else {
		err = ctx.JSON(status, body)
	}

	if err != nil {
		c.logger.ErrorContext(ctx.Request().Context(), logMsgRequestFailed, logAttrError, err.Error())
	}
}
