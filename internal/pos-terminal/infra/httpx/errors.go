package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/order"
	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/app"
	"github.com/jcmexdev/pos-checkout/internal/receiptlog"
)

// errorStatus maps err to a status and an error code. Order matters:
// a cash shortfall also wraps ErrInvalidState.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, app.ErrInvalidTerminal):
		return http.StatusBadRequest, "invalid_terminal"
	case errors.Is(err, domain.ErrInsufficientTender):
		return http.StatusUnprocessableEntity, "insufficient_tender"
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusUnprocessableEntity, "empty_cart"
	case errors.Is(err, domain.ErrDiscountOutOfRange):
		return http.StatusUnprocessableEntity, "discount_out_of_range"
	case errors.Is(err, domain.ErrInvalidTender):
		return http.StatusUnprocessableEntity, "invalid_tender"
	case errors.Is(err, domain.ErrInvalidMethod):
		return http.StatusUnprocessableEntity, "invalid_method"
	case errors.Is(err, domain.ErrInvalidProduct):
		return http.StatusUnprocessableEntity, "invalid_product"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found"
	case errors.Is(err, domain.ErrHoldNotFound):
		return http.StatusNotFound, "hold_not_found"
	case errors.Is(err, receiptlog.ErrNotFound):
		return http.StatusNotFound, "receipt_not_found"
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, "invalid_state"
	}
	return http.StatusBadGateway, "upstream_error"
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	writeStateError(w, r, err, nil)
}

// writeStateError is writeDomainError with the terminal's state after the
// failed operation, when there is one.
func writeStateError(w http.ResponseWriter, r *http.Request, err error, view *order.View) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	resp := ErrorResponse{Error: code, Message: err.Error()}
	if view != nil {
		state := mapView(*view)
		resp.Terminal = &state
	}
	writeJSON(w, status, resp)
}
