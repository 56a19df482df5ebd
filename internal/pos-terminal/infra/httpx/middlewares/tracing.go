package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/metadata"

	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors"
	"github.com/jcmexdev/pos-checkout/internal/pkg/interceptors/constants"
)

// AttachTracingMetadata makes chi's request id visible to the logger and to
// outgoing gRPC calls.
func AttachTracingMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		if requestID == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(constants.HeaderXRequestId, requestID)

		ctx := interceptors.WithRequestID(r.Context(), requestID)
		ctx = metadata.AppendToOutgoingContext(ctx, constants.HeaderXRequestId, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AttachTerminalID does the same for the {terminalID} route parameter and
// tags the active span with it. Mount it inside the terminal route.
func AttachTerminalID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		terminalID := chi.URLParam(r, "terminalID")
		if terminalID == "" {
			next.ServeHTTP(w, r)
			return
		}
		trace.SpanFromContext(r.Context()).SetAttributes(attribute.String("pos.terminal_id", terminalID))

		ctx := interceptors.WithTerminalID(r.Context(), terminalID)
		ctx = metadata.AppendToOutgoingContext(ctx, constants.HeaderXTerminalId, terminalID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
