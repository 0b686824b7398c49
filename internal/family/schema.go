package family

import (
	"errors"
	"fmt"

	"github.com/tsforecast/ainode/internal/optionkey"
	"github.com/tsforecast/ainode/internal/schema"
	"github.com/tsforecast/ainode/pkg/types"
)

// ErrInvalidFamily wraps every schema defect found by ValidateFamily.
var ErrInvalidFamily = errors.New("invalid model family")

// ValidateFamily checks that a family schema is well-formed. Defects are
// deployment errors, so callers treat them as fatal at startup.
func ValidateFamily(f *types.ModelFamily) error {
	if err := validateFamily(f); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFamily, err)
	}
	return nil
}

func validateFamily(f *types.ModelFamily) error {
	if f.ID == "" {
		return fmt.Errorf("family id is required")
	}
	if !f.TaskType.Valid() {
		return fmt.Errorf("family %q: unsupported task type %q", f.ID, f.TaskType)
	}
	if len(f.Specs) == 0 {
		return fmt.Errorf("family %q: at least one spec is required", f.ID)
	}

	seen := make(map[types.OptionKey]bool)
	for _, spec := range f.Specs {
		if err := validateSpec(spec); err != nil {
			return fmt.Errorf("family %q: %w", f.ID, err)
		}
		if seen[spec.Key] {
			return fmt.Errorf("family %q: duplicate spec %q", f.ID, spec.Key)
		}
		seen[spec.Key] = true
	}
	return nil
}

func validateSpec(spec types.HyperparameterSpec) error {
	if spec.Key == "" {
		return fmt.Errorf("spec key is required")
	}
	if _, err := optionkey.Lookup(string(spec.Key)); err != nil {
		return err
	}
	if optionkey.IsEnvelope(spec.Key) {
		return fmt.Errorf("spec %q: envelope keys cannot be declared as specs", spec.Key)
	}
	if !spec.Type.Valid() {
		return fmt.Errorf("spec %q: unsupported value type %q", spec.Key, spec.Type)
	}
	if err := schema.ValidateConstraint(spec.Type, spec.Constraint); err != nil {
		return fmt.Errorf("spec %q: %w", spec.Key, err)
	}

	if spec.Required {
		if spec.Default != nil {
			return fmt.Errorf("spec %q: required specs cannot declare a default", spec.Key)
		}
		return nil
	}
	if spec.Default == nil {
		return fmt.Errorf("spec %q: optional specs must declare a default", spec.Key)
	}
	v, ok := schema.Coerce(spec.Type, spec.Default)
	if !ok {
		return fmt.Errorf("spec %q: default %v is not a valid %s", spec.Key, spec.Default, spec.Type)
	}
	if err := schema.Check(spec.Key, spec.Constraint, v); err != nil {
		return fmt.Errorf("spec %q: default violates constraint: %w", spec.Key, err)
	}
	return nil
}

// canonicalizeDefaults rewrites validated defaults into their canonical Go
// types so resolved configs never carry decoder-specific shapes.
func canonicalizeDefaults(f *types.ModelFamily) {
	for i, spec := range f.Specs {
		if spec.Default == nil {
			continue
		}
		if v, ok := schema.Coerce(spec.Type, spec.Default); ok {
			f.Specs[i].Default = v
		}
	}
}
