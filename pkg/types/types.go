package types

import "encoding/json"

// RawOptions is the untyped option mapping supplied by a caller, as decoded
// from a wire request. It lives only for the duration of one request.
type RawOptions map[string]any

// StatusOutcome is the {code, message} pair reported back to callers.
type StatusOutcome struct {
	Code    TSStatusCode `json:"code" yaml:"code"`
	Message string       `json:"message" yaml:"message"`
}

// ResolvedConfig is a validated, fully defaulted, typed configuration for one
// model family. It is immutable: getters return copies of list values.
type ResolvedConfig struct {
	family   string
	taskType TaskType
	keys     []OptionKey
	values   map[OptionKey]any
}

// NewResolvedConfig assembles a ResolvedConfig. keys fixes the iteration
// order; values must hold exactly those keys with canonical Go types
// (int, float64, bool, string, []int).
func NewResolvedConfig(family string, taskType TaskType, keys []OptionKey, values map[OptionKey]any) *ResolvedConfig {
	rc := &ResolvedConfig{
		family:   family,
		taskType: taskType,
		keys:     append([]OptionKey(nil), keys...),
		values:   make(map[OptionKey]any, len(values)),
	}
	for k, v := range values {
		rc.values[k] = cloneValue(v)
	}
	return rc
}

// Family returns the model family id the config was resolved for.
func (c *ResolvedConfig) Family() string { return c.family }

// TaskType returns the task type declared by the model family.
func (c *ResolvedConfig) TaskType() TaskType { return c.taskType }

// Keys returns the option keys in the family's declared order.
func (c *ResolvedConfig) Keys() []OptionKey {
	return append([]OptionKey(nil), c.keys...)
}

// Len returns the number of resolved options.
func (c *ResolvedConfig) Len() int { return len(c.keys) }

// Has reports whether key is part of the config.
func (c *ResolvedConfig) Has(key OptionKey) bool {
	_, ok := c.values[key]
	return ok
}

// Value returns the canonical value for key.
func (c *ResolvedConfig) Value(key OptionKey) (any, bool) {
	v, ok := c.values[key]
	return cloneValue(v), ok
}

func (c *ResolvedConfig) Int(key OptionKey) (int, bool) {
	v, ok := c.values[key].(int)
	return v, ok
}

func (c *ResolvedConfig) Float(key OptionKey) (float64, bool) {
	v, ok := c.values[key].(float64)
	return v, ok
}

func (c *ResolvedConfig) Bool(key OptionKey) (bool, bool) {
	v, ok := c.values[key].(bool)
	return v, ok
}

// String returns string and enum_choice values.
func (c *ResolvedConfig) String(key OptionKey) (string, bool) {
	v, ok := c.values[key].(string)
	return v, ok
}

func (c *ResolvedConfig) Ints(key OptionKey) ([]int, bool) {
	v, ok := c.values[key].([]int)
	if !ok {
		return nil, false
	}
	return append([]int{}, v...), true
}

// Map returns a flat copy of the config keyed by option name, including the
// task_type and model_type envelope entries.
func (c *ResolvedConfig) Map() map[string]any {
	out := make(map[string]any, len(c.values)+2)
	out[string(OptTaskType)] = string(c.taskType)
	out[string(OptModelType)] = c.family
	for k, v := range c.values {
		out[string(k)] = cloneValue(v)
	}
	return out
}

// MarshalJSON encodes the flat Map form.
func (c *ResolvedConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Map())
}
