package handlers

import (
	"errors"
	"net/http"

	"pos-backend/internal/models"
)

// writeServiceError maps service errors onto HTTP statuses. Validation
// sentinels are client errors; a PartialCommitError must tell the caller
// the outcome is unknown rather than pretending a clean failure.
func writeServiceError(w http.ResponseWriter, err error) {
	var partial *models.PartialCommitError
	if errors.As(err, &partial) {
		http.Error(w, "Commit outcome unknown: writes may have partially applied. Verify before retrying.", http.StatusInternalServerError)
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, models.ErrInsufficientStock):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrCreditRequiresCustomer),
		errors.Is(err, models.ErrOverpaymentRejected),
		errors.Is(err, models.ErrInvalidPaymentAmount),
		errors.Is(err, models.ErrNoReturnedProducts):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
