package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tsforecast/ainode/internal/status"
	"github.com/tsforecast/ainode/pkg/types"
)

var errTrailingData = errors.New("unexpected data after JSON object")

type familySummary struct {
	ID          string         `json:"id"`
	TaskType    types.TaskType `json:"taskType"`
	Description string         `json:"description,omitempty"`
	Required    []string       `json:"required"`
	Options     int            `json:"options"`
}

type resolveResponse struct {
	types.StatusOutcome
	Config *types.ResolvedConfig `json:"config,omitempty"`
}

// ListFamilies returns a summary of every registered model family in registration order.
func (h *Handlers) ListFamilies(w http.ResponseWriter, r *http.Request) {
	ids := h.registry.ListFamilies()
	out := make([]familySummary, 0, len(ids))
	for _, id := range ids {
		f, err := h.registry.Get(id)
		if err != nil {
			h.writeError(w, http.StatusInternalServerError, "failed to list families", err)
			return
		}
		required := make([]string, 0)
		for _, k := range f.RequiredKeys() {
			required = append(required, string(k))
		}
		out = append(out, familySummary{
			ID:          f.ID,
			TaskType:    f.TaskType,
			Description: f.Description,
			Required:    required,
			Options:     len(f.Specs),
		})
	}
	h.writeJSON(w, http.StatusOK, out)
}

// GetFamily returns the full hyperparameter schema of one model family.
func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "familyID")
	f, err := h.registry.Get(id)
	if err != nil {
		h.writeJSON(w, http.StatusNotFound, status.FromError(err))
		return
	}
	h.writeJSON(w, http.StatusOK, f)
}

// ResolveOptions validates the raw option map in the request body against a
// model family and returns the resolved configuration or a status outcome.
func (h *Handlers) ResolveOptions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "familyID")
	ctx, span := h.tracer.Start(r.Context(), "ResolveOptions",
		trace.WithAttributes(attribute.String("ainode.family", id)))
	defer span.End()

	raw, err := decodeOptions(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			span.SetStatus(codes.Error, "request body too large")
			h.writeError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
			return
		}
		span.SetStatus(codes.Error, "invalid JSON")
		h.writeError(w, http.StatusBadRequest, "invalid JSON", nil)
		return
	}

	cfg, outcome := h.resolver.ResolveOutcome(id, raw)
	span.SetAttributes(attribute.Int("ainode.status_code", int(outcome.Code)))
	if !outcome.Code.IsSuccess() {
		span.SetStatus(codes.Error, outcome.Message)
		h.logger.Info("option resolution rejected",
			"request_id", h.requestID(ctx),
			"family", id,
			"code", int(outcome.Code),
			"message", outcome.Message,
		)
		h.writeJSON(w, httpStatusFor(outcome), resolveResponse{StatusOutcome: outcome})
		return
	}
	h.writeJSON(w, http.StatusOK, resolveResponse{StatusOutcome: outcome, Config: cfg})
}

// decodeOptions reads exactly one JSON object from body. An empty body or a
// literal null is an empty option map; trailing data is an error.
func decodeOptions(body io.Reader) (types.RawOptions, error) {
	raw := types.RawOptions{}
	dec := json.NewDecoder(body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return types.RawOptions{}, nil
		}
		return nil, err
	}
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errTrailingData
		}
		return nil, err
	}
	if raw == nil {
		raw = types.RawOptions{}
	}
	return raw, nil
}

func httpStatusFor(o types.StatusOutcome) int {
	switch o.Code {
	case types.SuccessStatus:
		return http.StatusOK
	case types.InvalidInferenceConfig:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
