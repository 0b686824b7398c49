// Package handlers implements HTTP request handlers for the AINode API.
package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsforecast/ainode/internal/family"
	"github.com/tsforecast/ainode/internal/resolver"
)

const tracerName = "github.com/tsforecast/ainode/internal/server/handlers"

// Handlers contains all HTTP handler dependencies.
type Handlers struct {
	registry  *family.Registry
	resolver  *resolver.Resolver
	logger    *slog.Logger
	tracer    trace.Tracer
	requestID func(context.Context) string
}

// New creates a new Handlers instance.
func New(reg *family.Registry, res *resolver.Resolver) *Handlers {
	return &Handlers{
		registry:  reg,
		resolver:  res,
		logger:    slog.Default(),
		tracer:    otel.Tracer(tracerName),
		requestID: func(context.Context) string { return "" },
	}
}

// SetLogger overrides the default logger.
func (h *Handlers) SetLogger(l *slog.Logger) {
	if l != nil {
		h.logger = l
	}
}

// SetRequestID sets the function used to read the request ID for log lines.
func (h *Handlers) SetRequestID(fn func(context.Context) string) {
	if fn != nil {
		h.requestID = fn
	}
}

// writeJSON encodes v with the given status code.
func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// writeError logs the internal error and returns a sanitized JSON error to the client.
func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string, err error) {
	if err != nil {
		h.logger.Error(msg, "error", err, "status", status)
	}
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
