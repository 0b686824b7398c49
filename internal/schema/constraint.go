package schema

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tsforecast/ainode/pkg/types"
)

// Check evaluates c against a coerced value and returns an error whose
// message names the key and the violated bound, e.g. "predict_length must be > 0".
// A nil constraint always passes.
func Check(key types.OptionKey, c *types.Constraint, v any) error {
	if c == nil {
		return nil
	}
	switch val := v.(type) {
	case int:
		return checkBounds(string(key), c, float64(val))
	case float64:
		return checkBounds(string(key), c, val)
	case string:
		if len(c.Choices) > 0 && !slices.Contains(c.Choices, val) {
			return fmt.Errorf("%s must be one of [%s]", key, strings.Join(c.Choices, ", "))
		}
	case []int:
		if c.Length > 0 && len(val) != c.Length {
			return fmt.Errorf("%s must have exactly %d elements", key, c.Length)
		}
		for _, n := range val {
			if err := checkBounds(string(key)+" elements", c, float64(n)); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkBounds(subject string, c *types.Constraint, f float64) error {
	if c.Min != nil {
		if c.ExclusiveMin && f <= *c.Min {
			return fmt.Errorf("%s must be > %s", subject, formatNum(*c.Min))
		}
		if !c.ExclusiveMin && f < *c.Min {
			return fmt.Errorf("%s must be >= %s", subject, formatNum(*c.Min))
		}
	}
	if c.Max != nil {
		if c.ExclusiveMax && f >= *c.Max {
			return fmt.Errorf("%s must be < %s", subject, formatNum(*c.Max))
		}
		if !c.ExclusiveMax && f > *c.Max {
			return fmt.Errorf("%s must be <= %s", subject, formatNum(*c.Max))
		}
	}
	return nil
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// ValidateConstraint checks that a constraint is well-formed for its value type.
func ValidateConstraint(t types.ValueType, c *types.Constraint) error {
	if t == types.ValueEnumChoice && (c == nil || len(c.Choices) == 0) {
		return errors.New("enum_choice requires constraint.choices")
	}
	if c == nil {
		return nil
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return fmt.Errorf("constraint min %s exceeds max %s", formatNum(*c.Min), formatNum(*c.Max))
	}
	numeric := t == types.ValueInt || t == types.ValueFloat || t == types.ValueListOfInt
	if !numeric && (c.Min != nil || c.Max != nil) {
		return fmt.Errorf("min/max do not apply to %s values", t)
	}
	if len(c.Choices) > 0 && t != types.ValueEnumChoice && t != types.ValueString {
		return fmt.Errorf("choices do not apply to %s values", t)
	}
	if c.Length < 0 {
		return errors.New("constraint length must be >= 0")
	}
	if c.Length > 0 && t != types.ValueListOfInt {
		return fmt.Errorf("length does not apply to %s values", t)
	}
	return nil
}

// Describe renders a constraint for human consumption, e.g. "> 0, <= 2880".
func Describe(c *types.Constraint) string {
	if c == nil {
		return ""
	}
	var parts []string
	if c.Min != nil {
		op := ">="
		if c.ExclusiveMin {
			op = ">"
		}
		parts = append(parts, op+" "+formatNum(*c.Min))
	}
	if c.Max != nil {
		op := "<="
		if c.ExclusiveMax {
			op = "<"
		}
		parts = append(parts, op+" "+formatNum(*c.Max))
	}
	if len(c.Choices) > 0 {
		parts = append(parts, "one of ["+strings.Join(c.Choices, ", ")+"]")
	}
	if c.Length > 0 {
		parts = append(parts, "length "+strconv.Itoa(c.Length))
	}
	return strings.Join(parts, ", ")
}
