package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tradejournal/Trading-Journal-Backend/internal/apperrors"
	"github.com/tradejournal/Trading-Journal-Backend/internal/api/response"
	"github.com/tradejournal/Trading-Journal-Backend/internal/validation"
)

// parseJSON decodes a request body into the given type, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var payload T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid request body: %w", err)
	}
	return payload, nil
}

// respondServiceError maps the error taxonomy to HTTP statuses: Validation
// and caller policy failures are 400, NotFound 404, lock contention 503, and
// anything else 500.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *validation.Error

	switch {
	case errors.As(err, &validationErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
	case errors.Is(err, apperrors.ErrInvalidTicker),
		errors.Is(err, apperrors.ErrInvalidShares),
		errors.Is(err, apperrors.ErrInvalidPrice),
		errors.Is(err, apperrors.ErrInvalidStopLoss),
		errors.Is(err, apperrors.ErrInvalidAmount),
		errors.Is(err, apperrors.ErrInvalidDate),
		errors.Is(err, apperrors.ErrInvalidDateRange),
		errors.Is(err, apperrors.ErrInsufficientShares),
		errors.Is(err, apperrors.ErrInsufficientCash):
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrPositionNotFound),
		errors.Is(err, apperrors.ErrSnapshotNotFound):
		response.RespondError(w, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, apperrors.ErrRepositoryBusy):
		response.RespondError(w, http.StatusServiceUnavailable, apperrors.ErrRepositoryBusy.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, "internal error", err.Error())
	}
}
