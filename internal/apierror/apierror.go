package apierror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/eatsexchange/eats-exchange-server/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidID  = errors.New("invalid id")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden access")
	ErrValidation = errors.New("validation failed")
)

// StatusCode maps internal errors to HTTP status codes without leaking their text.
func StatusCode(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrValidation), errors.As(err, &verrs):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for err.
func Message(err error) string {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return validationMessage(verrs)
	case errors.Is(err, ErrInvalidID):
		return "invalid id"
	case errors.Is(err, ErrValidation):
		return err.Error()
	case errors.Is(err, ErrForbidden):
		return "Forbidden Access"
	case errors.Is(err, ErrNotFound):
		return "not found"
	default:
		return "Internal server error"
	}
}

// Respond aborts the request with the mapped status and {"message": ...} body.
// Server-side faults are logged with the request id; client faults are not.
func Respond(c *gin.Context, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		logger.Errorf("%s %s failed (request_id=%s): %v", c.Request.Method, c.Request.URL.Path, c.GetString("request_id"), err)
	}
	c.AbortWithStatusJSON(status, gin.H{"message": Message(err)})
}

// BindError wraps a request-body binding failure so it maps to 400: decoding
// errors become ErrValidation, validator errors keep their field detail.
func BindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return err
	}
	return fmt.Errorf("%w: malformed request body", ErrValidation)
}

func validationMessage(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), tagMessage(fe)))
	}
	return "Invalid " + strings.Join(parts, "; ")
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "url":
		return "invalid url"
	case "gt", "gte", "min":
		return "too small"
	case "oneof":
		return "must be one of " + fe.Param()
	case "objectid":
		return "invalid id"
	default:
		return "validation failed"
	}
}
