package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/pos-checkout/internal/catalog"
	"github.com/jcmexdev/pos-checkout/internal/checkout/domain"
	"github.com/jcmexdev/pos-checkout/internal/checkout/money"
	"github.com/jcmexdev/pos-checkout/internal/checkout/order"
	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/app"
)

// ProductStore is the product grid with its maintenance operations.
type ProductStore interface {
	List(ctx context.Context, f catalog.Filter) ([]catalog.Item, error)
	Upsert(ctx context.Context, it catalog.Item) error
	Deactivate(ctx context.Context, id string) error
}

type ReceiptReader interface {
	Receipt(ctx context.Context, id string) (domain.Receipt, error)
	Recent(ctx context.Context, terminalID string, limit int) ([]domain.Receipt, error)
}

// CustomerCache drops a cached directory answer, so a customer registered
// after a cached miss is found before the entry expires.
type CustomerCache interface {
	Forget(ctx context.Context, phone string) error
}

// Deps are the optional collaborators of the non-terminal routes. A nil
// field makes its routes answer 503.
type Deps struct {
	Products  ProductStore
	Receipts  ReceiptReader
	Customers CustomerCache
}

// Handler exposes each register's checkout session over HTTP. Every
// terminal route answers with the terminal's state after the operation,
// failed operations included.
type Handler struct {
	registry *app.Registry
	deps     Deps
}

func NewHandler(reg *app.Registry, deps Deps) *Handler {
	return &Handler{registry: reg, deps: deps}
}

func (h *Handler) GetTerminal(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(context.Context, *order.Session) error { return nil })
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decode(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "product_id is required")
		return
	}
	h.apply(w, r, func(ctx context.Context, s *order.Session) error {
		return s.AddItem(ctx, req.ProductID)
	})
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	var req SetQuantityRequest
	if !decode(w, r, &req) {
		return
	}
	productID := chi.URLParam(r, "productID")
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.SetQuantity(productID, req.Quantity)
	})
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.RemoveItem(productID)
	})
}

func (h *Handler) SetDiscount(w http.ResponseWriter, r *http.Request) {
	var req DiscountRequest
	if !decode(w, r, &req) {
		return
	}
	pct, err := money.Parse(req.Percent)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
		return
	}
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.SetDiscountPercent(pct)
	})
}

func (h *Handler) SetCustomer(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if !decode(w, r, &req) {
		return
	}
	h.apply(w, r, func(ctx context.Context, s *order.Session) error {
		return s.SetCustomerPhone(ctx, req.Phone)
	})
}

func (h *Handler) ClearCustomer(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.ClearCustomer()
	})
}

func (h *Handler) StartPayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		_, err := s.StartPayment()
		return err
	})
}

func (h *Handler) SelectMethod(w http.ResponseWriter, r *http.Request) {
	var req MethodRequest
	if !decode(w, r, &req) {
		return
	}
	m, err := domain.ParsePaymentMethod(req.Method)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.SelectMethod(m)
	})
}

func (h *Handler) SetTender(w http.ResponseWriter, r *http.Request) {
	var req TenderRequest
	if !decode(w, r, &req) {
		return
	}
	amount, err := money.Parse(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
		return
	}
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.SetCashTendered(amount)
	})
}

// CompletePayment closes the payment and finalizes the sale; the response
// carries the receipt. Delivery runs on a context detached from the client
// connection so a dropped request cannot cut a receipt off halfway.
func (h *Handler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(ctx context.Context, s *order.Session) error {
		rec, err := s.Checkout(context.WithoutCancel(ctx))
		if err != nil {
			return err
		}
		slog.InfoContext(ctx, "receipt issued", "receipt_id", rec.ID, "total", money.Format(rec.Total))
		return nil
	})
}

func (h *Handler) CancelPayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.CancelPayment()
	})
}

func (h *Handler) HoldBill(w http.ResponseWriter, r *http.Request) {
	var (
		holdID string
		view   *order.View
	)
	err := h.registry.Do(chi.URLParam(r, "terminalID"), func(s *order.Session) error {
		id, err := s.HoldBill(r.Context())
		v := s.Snapshot()
		holdID, view = id, &v
		return err
	})
	if err != nil {
		writeStateError(w, r, err, view)
		return
	}
	writeJSON(w, http.StatusCreated, HoldResponse{HoldID: holdID, Terminal: mapView(*view)})
}

func (h *Handler) ResumeHeld(w http.ResponseWriter, r *http.Request) {
	holdID := chi.URLParam(r, "holdID")
	h.apply(w, r, func(ctx context.Context, s *order.Session) error {
		return s.ResumeHeld(ctx, holdID)
	})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.ClearCart()
	})
}

func (h *Handler) StartNewSale(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, func(_ context.Context, s *order.Session) error {
		return s.StartNewSale()
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if h.deps.Products == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "")
		return
	}
	items, err := h.deps.Products.List(r.Context(), catalog.Filter{
		Category: r.URL.Query().Get("category"),
		Query:    r.URL.Query().Get("q"),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapProducts(items))
}

// PutProduct adds a product to the grid or updates it.
func (h *Handler) PutProduct(w http.ResponseWriter, r *http.Request) {
	if h.deps.Products == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "")
		return
	}
	var req ProductRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	price, err := money.Parse(req.UnitPrice)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_amount", err.Error())
		return
	}
	it := catalog.Item{
		Product:  domain.Product{ID: chi.URLParam(r, "productID"), Name: req.Name, UnitPrice: price},
		Category: req.Category,
	}
	if err := h.deps.Products.Upsert(r.Context(), it); err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "product saved", "product_id", it.ID, "unit_price", money.Format(price))
	writeJSON(w, http.StatusOK, mapProducts([]catalog.Item{it})[0])
}

// DeleteProduct takes a product off the grid. Carts holding it keep it.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if h.deps.Products == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog_unavailable", "")
		return
	}
	id := chi.URLParam(r, "productID")
	if err := h.deps.Products.Deactivate(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "product deactivated", "product_id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ForgetCustomer(w http.ResponseWriter, r *http.Request) {
	if h.deps.Customers == nil {
		writeError(w, http.StatusServiceUnavailable, "customer_cache_unavailable", "")
		return
	}
	if err := h.deps.Customers.Forget(r.Context(), chi.URLParam(r, "phone")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	if h.deps.Receipts == nil {
		writeError(w, http.StatusServiceUnavailable, "journal_unavailable", "")
		return
	}
	rec, err := h.deps.Receipts.Receipt(r.Context(), chi.URLParam(r, "receiptID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mapReceipt(rec))
}

// ListReceipts returns the terminal's journaled receipts, newest first.
func (h *Handler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	if h.deps.Receipts == nil {
		writeError(w, http.StatusServiceUnavailable, "journal_unavailable", "")
		return
	}
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	recs, err := h.deps.Receipts.Recent(r.Context(), chi.URLParam(r, "terminalID"), limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	out := make([]ReceiptResponse, len(recs))
	for i, rec := range recs {
		out[i] = mapReceipt(rec)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"terminals": len(h.registry.Terminals()),
	})
}

// apply runs fn under the terminal's lock and answers with the resulting
// state. On failure the state is attached to the error body.
func (h *Handler) apply(w http.ResponseWriter, r *http.Request, fn func(context.Context, *order.Session) error) {
	var view *order.View
	err := h.registry.Do(chi.URLParam(r, "terminalID"), func(s *order.Session) error {
		err := fn(r.Context(), s)
		v := s.Snapshot()
		view = &v
		return err
	})
	if err != nil {
		writeStateError(w, r, err, view)
		return
	}
	writeJSON(w, http.StatusOK, mapView(*view))
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := err.Error()
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			msg = "malformed JSON"
		}
		writeError(w, http.StatusBadRequest, "invalid_json", msg)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
