package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/pos-checkout/internal/pos-terminal/infra/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachTracingMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handler.Health)
	r.Get("/products", handler.ListProducts)
	r.Put("/products/{productID}", handler.PutProduct)
	r.Delete("/products/{productID}", handler.DeleteProduct)
	r.Delete("/customers/{phone}/cache", handler.ForgetCustomer)
	r.Get("/receipts/{receiptID}", handler.GetReceipt)

	r.Route("/terminals/{terminalID}", func(r chi.Router) {
		r.Use(middlewares.AttachTerminalID)

		r.Get("/", handler.GetTerminal)
		r.Get("/receipts", handler.ListReceipts)

		r.Post("/items", handler.AddItem)
		r.Put("/items/{productID}", handler.SetQuantity)
		r.Delete("/items/{productID}", handler.RemoveItem)
		r.Put("/discount", handler.SetDiscount)
		r.Put("/customer", handler.SetCustomer)
		r.Delete("/customer", handler.ClearCustomer)

		r.Post("/payment", handler.StartPayment)
		r.Put("/payment/method", handler.SelectMethod)
		r.Put("/payment/tender", handler.SetTender)
		r.Post("/payment/complete", handler.CompletePayment)
		r.Delete("/payment", handler.CancelPayment)

		r.Post("/hold", handler.HoldBill)
		r.Post("/holds/{holdID}/resume", handler.ResumeHeld)
		r.Post("/clear", handler.ClearCart)
		r.Post("/new-sale", handler.StartNewSale)
	})

	return otelhttp.NewHandler(r, "pos-terminal",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
