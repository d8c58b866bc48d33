package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/railflow/railflow-portal/internal/app/api/core/respond"
	"github.com/railflow/railflow-portal/internal/app/api/v0/model"
	"github.com/railflow/railflow-portal/internal/domain"
)

// statusCode maps domain errors to HTTP status codes.
func statusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrMissingRequiredField), errors.Is(err, domain.ErrInvalidData):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as model.Error. If message is empty, the error text is used.
func respondError(w http.ResponseWriter, err error, message string) {
	code := statusCode(err)
	if message == "" {
		message = err.Error()
	}

	body := model.Error{Code: code, Message: message}
	if message != err.Error() {
		body.Details = err.Error()
	}
	respond.JSON(w, code, body)
}

func respondBadRequest(w http.ResponseWriter, err error) {
	respond.JSON(w, http.StatusBadRequest, model.Error{
		Code: http.StatusBadRequest, Message: "invalid request", Details: err.Error(),
	})
}
