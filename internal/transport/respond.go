package transport

import (
	"errors"
	"net/http"

	"shoppy-store/internal/domain"
	"shoppy-store/internal/middleware"
	"shoppy-store/internal/service"

	"go.uber.org/zap"
)

// respondFailure maps a service error to a status and writes the placeholder
// envelope for the resource the client expected.
func respondFailure(w http.ResponseWriter, logger *zap.Logger, op string, err error, placeholder interface{}) {
	status := http.StatusInternalServerError
	message := "failed to " + op

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
		message = "not found"
	case errors.Is(err, service.ErrMissingCartID),
		errors.Is(err, service.ErrMissingVariantID),
		errors.Is(err, service.ErrMissingLineItemID):
		status = http.StatusBadRequest
		message = err.Error()
	}

	if status >= http.StatusInternalServerError {
		logger.Error("Relay call failed", zap.String("op", op), zap.Error(err))
	} else {
		logger.Debug("Relay call rejected", zap.String("op", op), zap.Error(err))
	}

	middleware.RespondWithPlaceholder(w, status, placeholder, message)
}

// respondDecodeFailure reports a bad request body
func respondDecodeFailure(w http.ResponseWriter, logger *zap.Logger, err error) {
	logger.Debug("Request validation failed", zap.Error(err))

	if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
		middleware.RespondWithValidationErrors(w, validationErrors)
		return
	}
	middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
}

// emptyCart is the zero placeholder for cart-returning endpoints
func emptyCart() *domain.Cart {
	return &domain.Cart{LineItems: []domain.LineItem{}}
}
