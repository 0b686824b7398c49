package types

// Constraint restricts the admissible values of a hyperparameter.
// Min and Max apply to numeric values and element-wise to list_of_int values.
type Constraint struct {
	Min          *float64 `yaml:"min,omitempty" json:"min,omitempty"`
	Max          *float64 `yaml:"max,omitempty" json:"max,omitempty"`
	ExclusiveMin bool     `yaml:"exclusiveMin,omitempty" json:"exclusiveMin,omitempty"`
	ExclusiveMax bool     `yaml:"exclusiveMax,omitempty" json:"exclusiveMax,omitempty"`
	Choices      []string `yaml:"choices,omitempty" json:"choices,omitempty"`
	Length       int      `yaml:"length,omitempty" json:"length,omitempty"` // exact list length when > 0
}

// HyperparameterSpec describes one admissible option of a model family.
type HyperparameterSpec struct {
	Key         OptionKey   `yaml:"key" json:"key"`
	Type        ValueType   `yaml:"type" json:"type"`
	Required    bool        `yaml:"required,omitempty" json:"required,omitempty"`
	Default     any         `yaml:"default,omitempty" json:"default,omitempty"`
	Constraint  *Constraint `yaml:"constraint,omitempty" json:"constraint,omitempty"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
}

// ModelFamily is the schema of one forecasting algorithm. Families are
// registered once at startup and read-only thereafter.
type ModelFamily struct {
	ID          string               `yaml:"id" json:"id"`
	TaskType    TaskType             `yaml:"taskType" json:"taskType"`
	Description string               `yaml:"description,omitempty" json:"description,omitempty"`
	Specs       []HyperparameterSpec `yaml:"specs" json:"specs"`
}

// Spec returns the hyperparameter declared for key, if any.
func (f *ModelFamily) Spec(key OptionKey) (HyperparameterSpec, bool) {
	for _, s := range f.Specs {
		if s.Key == key {
			return s, true
		}
	}
	return HyperparameterSpec{}, false
}

// RequiredKeys returns the keys a caller must supply, in declared order.
func (f *ModelFamily) RequiredKeys() []OptionKey {
	var keys []OptionKey
	for _, s := range f.Specs {
		if s.Required {
			keys = append(keys, s.Key)
		}
	}
	return keys
}

// Clone returns a deep copy of the family.
func (f *ModelFamily) Clone() *ModelFamily {
	out := *f
	out.Specs = make([]HyperparameterSpec, len(f.Specs))
	for i, s := range f.Specs {
		out.Specs[i] = s
		out.Specs[i].Default = cloneValue(s.Default)
		if s.Constraint != nil {
			c := *s.Constraint
			if c.Min != nil {
				v := *c.Min
				c.Min = &v
			}
			if c.Max != nil {
				v := *c.Max
				c.Max = &v
			}
			c.Choices = append([]string(nil), c.Choices...)
			out.Specs[i].Constraint = &c
		}
	}
	return &out
}

// Float returns a pointer to v, for building constraints inline.
func Float(v float64) *float64 { return &v }

func cloneValue(v any) any {
	switch t := v.(type) {
	case []int:
		return append([]int{}, t...)
	case []any:
		return append([]any{}, t...)
	default:
		return v
	}
}
