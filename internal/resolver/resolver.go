// Package resolver turns untyped caller options into a validated, typed
// model configuration.
package resolver

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/tsforecast/ainode/internal/metrics"
	"github.com/tsforecast/ainode/internal/optionkey"
	"github.com/tsforecast/ainode/internal/schema"
	"github.com/tsforecast/ainode/internal/status"
	"github.com/tsforecast/ainode/pkg/types"
)

// FamilyLookup finds a model family by id. A miss must be reported as a
// *status.Error of kind UnknownFamily.
type FamilyLookup interface {
	Resolve(id string) (*types.ModelFamily, error)
}

// Resolver validates raw options against family schemas. It holds no
// per-request state and is safe for concurrent use.
type Resolver struct {
	families FamilyLookup
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to record rejected requests.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a Resolver backed by the given family registry.
func New(families FamilyLookup, opts ...Option) *Resolver {
	r := &Resolver{families: families, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve validates raw against the schema of familyID. It returns either a
// complete ResolvedConfig or a *status.Error, never both.
func (r *Resolver) Resolve(familyID string, raw types.RawOptions) (cfg *types.ResolvedConfig, err error) {
	metrics.ResolutionsTotal.Add(1)
	defer func() {
		if p := recover(); p != nil {
			cfg, err = nil, status.NewInternal("resolving %q: %v", familyID, p)
		}
		if err != nil {
			r.reject(familyID, err)
		}
	}()

	f, err := r.families.Resolve(familyID)
	if err != nil {
		var se *status.Error
		if !errors.As(err, &se) {
			return nil, status.NewInternal("looking up family %q: %v", familyID, err)
		}
		return nil, err
	}
	if f == nil {
		return nil, status.NewInternal("family registry returned no schema for %q", familyID)
	}
	return resolve(f, raw)
}

// ResolveOutcome is Resolve for the status reporting layer: the outcome is
// SUCCESS_STATUS exactly when the config is non-nil.
func (r *Resolver) ResolveOutcome(familyID string, raw types.RawOptions) (*types.ResolvedConfig, types.StatusOutcome) {
	cfg, err := r.Resolve(familyID, raw)
	if err != nil {
		return nil, status.FromError(err)
	}
	return cfg, status.Success()
}

func resolve(f *types.ModelFamily, raw types.RawOptions) (*types.ResolvedConfig, error) {
	keys := make([]types.OptionKey, 0, len(f.Specs))
	values := make(map[types.OptionKey]any, len(f.Specs))

	for _, spec := range f.Specs {
		v, present := raw[string(spec.Key)]
		switch {
		case present:
			coerced, ok := schema.Coerce(spec.Type, v)
			if !ok {
				return nil, status.NewTypeMismatch(spec.Key, spec.Type, v)
			}
			v = coerced
		case spec.Required:
			return nil, status.NewMissingOption(spec.Key)
		default:
			v = spec.Default
		}
		if err := schema.Check(spec.Key, spec.Constraint, v); err != nil {
			return nil, status.NewConstraintViolation(spec.Key, err.Error())
		}
		keys = append(keys, spec.Key)
		values[spec.Key] = v
	}

	if err := checkUndeclared(f, raw); err != nil {
		return nil, err
	}
	return types.NewResolvedConfig(f.ID, f.TaskType, keys, values), nil
}

// checkUndeclared rejects keys the family does not declare. Envelope keys are
// accepted when they agree with the family they address.
func checkUndeclared(f *types.ModelFamily, raw types.RawOptions) error {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		key := types.OptionKey(name)
		if _, declared := f.Spec(key); declared {
			continue
		}
		if !optionkey.IsEnvelope(key) {
			return status.NewUnknownOption(name, f.ID)
		}
		if err := checkEnvelope(f, key, raw[name]); err != nil {
			return err
		}
	}
	return nil
}

func checkEnvelope(f *types.ModelFamily, key types.OptionKey, v any) error {
	want := f.ID
	if key == types.OptTaskType {
		want = string(f.TaskType)
	}
	s, ok := v.(string)
	if !ok {
		return status.NewTypeMismatch(key, types.ValueString, v)
	}
	if !strings.EqualFold(s, want) {
		return status.NewConstraintViolation(key, fmt.Sprintf("%s must be %s", key, want))
	}
	return nil
}

func (r *Resolver) reject(familyID string, err error) {
	kind := status.KindOf(err)
	metrics.ResolutionFailures.Add(1)
	metrics.FailuresByKind.Add(string(kind), 1)

	attrs := []any{"family", familyID, "kind", kind, "code", int(status.FromError(err).Code), "error", err}
	var se *status.Error
	if errors.As(err, &se) && se.Key != "" {
		attrs = append(attrs, "key", se.Key)
	}
	if kind == status.InternalError {
		r.logger.Error("option resolution failed", attrs...)
		return
	}
	r.logger.Debug("options rejected", attrs...)
}
