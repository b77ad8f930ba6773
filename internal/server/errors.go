// Package server provides the HTTP REST API for the job board.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/schemas"
	"github.com/jonathan/jobboard/internal/sqlutil"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		schemaErr     *schemas.ValidationError
		fieldsErr     validator.ValidationErrors
		unknownErr    *sqlutil.UnknownFieldError
		notFoundErr   *db.NotFoundError
		tooLargeErr   *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &schemaErr),
		errors.As(err, &fieldsErr),
		errors.As(err, &unknownErr),
		errors.Is(err, sqlutil.ErrMissingData):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error   string               `json:"error"`
	Details []schemas.FieldError `json:"details,omitempty"`
}

// errorDetails lists per-field problems carried by err, if any.
func errorDetails(err error) []schemas.FieldError {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return schemaErr.Errors
	}

	var fieldsErr validator.ValidationErrors
	if errors.As(err, &fieldsErr) {
		details := make([]schemas.FieldError, 0, len(fieldsErr))
		for _, fe := range fieldsErr {
			details = append(details, schemas.FieldError{
				Field:   jsonFieldName(fe.Field()),
				Message: fmt.Sprintf("failed %q check", fe.Tag()),
			})
		}
		return details
	}

	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return []schemas.FieldError{{Field: validationErr.Field, Message: validationErr.Message}}
	}

	return nil
}

// jsonFieldName lowercases the first letter of a Go field name.
func jsonFieldName(name string) string {
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
