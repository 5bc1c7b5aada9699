package middleware

import (
	"errors"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/iancoleman/strcase"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ErrorCodeValidation is the code for ozzo validation failures.
const ErrorCodeValidation = "validation_error"

// ErrorResponse is the JSON body of every error answer.
type ErrorResponse struct {
	StatusCode int               `json:"-"`
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Details    map[string]string `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string { return e.Message }

// ErrorHandler renders errors as ErrorResponse. echo.HTTPError keeps its
// status; validation.Errors become a 400 with per-field details; anything
// else is a 500 whose cause is logged but not returned.
func ErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp := toErrorResponse(err)
		if resp.StatusCode >= 500 {
			rid, _ := c.Get("request_id").(string)
			logger.Error().Err(err).Str("request_id", rid).Msg("unhandled error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(resp.StatusCode)
		} else {
			err = c.JSON(resp.StatusCode, resp)
		}
		if err != nil {
			logger.Error().Err(err).Msg("failed to write error response")
		}
	}
}

func toErrorResponse(err error) *ErrorResponse {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return &ErrorResponse{
			StatusCode: he.Code,
			Code:       strcase.ToSnake(http.StatusText(he.Code)),
			Message:    fmt.Sprintf("%v", he.Message),
		}
	}

	var ve validation.Errors
	if errors.As(err, &ve) {
		details := make(map[string]string, len(ve))
		for field, fe := range ve {
			details[field] = fe.Error()
		}
		return &ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       ErrorCodeValidation,
			Message:    "validation error",
			Details:    details,
		}
	}

	return &ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Code:       strcase.ToSnake(http.StatusText(http.StatusInternalServerError)),
		Message:    "internal server error",
	}
}
