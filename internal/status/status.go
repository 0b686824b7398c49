// Package status maps configuration failures onto the stable TSStatusCode taxonomy.
package status

import (
	"errors"
	"fmt"

	"github.com/tsforecast/ainode/pkg/types"
)

// Kind classifies why a configuration request failed.
type Kind string

// Kind values enumerate the failure conditions reported by the resolver.
const (
	UnknownFamily         Kind = "UNKNOWN_FAMILY"
	MissingRequiredOption Kind = "MISSING_REQUIRED_OPTION"
	TypeMismatch          Kind = "TYPE_MISMATCH"
	ConstraintViolation   Kind = "CONSTRAINT_VIOLATION"
	UnknownOption         Kind = "UNKNOWN_OPTION"
	InternalError         Kind = "INTERNAL_ERROR"
)

// Kinds returns every failure kind.
func Kinds() []Kind {
	return []Kind{UnknownFamily, MissingRequiredOption, TypeMismatch, ConstraintViolation, UnknownOption, InternalError}
}

// CodeFor returns the wire code reported for a failure kind. Validation
// failures share INVALID_INFERENCE_CONFIG; registry defects are internal.
func CodeFor(k Kind) types.TSStatusCode {
	switch k {
	case UnknownFamily, MissingRequiredOption, TypeMismatch, ConstraintViolation, UnknownOption:
		return types.InvalidInferenceConfig
	default:
		return types.AINodeInternalError
	}
}

// Error is a per-request configuration failure carrying exactly one status code.
type Error struct {
	Kind    Kind
	Code    types.TSStatusCode
	Key     string // offending option key or family id; empty when not applicable
	Message string
}

func (e *Error) Error() string { return e.Message }

// Outcome returns the wire form of the error.
func (e *Error) Outcome() types.StatusOutcome {
	return types.StatusOutcome{Code: e.Code, Message: e.Message}
}

func newError(k Kind, key, msg string) *Error {
	return &Error{Kind: k, Code: CodeFor(k), Key: key, Message: msg}
}

func NewUnknownFamily(id string) *Error {
	return newError(UnknownFamily, id, fmt.Sprintf("model family %q is not registered", id))
}

func NewMissingOption(key types.OptionKey) *Error {
	return newError(MissingRequiredOption, string(key), fmt.Sprintf("%s is required", key))
}

func NewTypeMismatch(key types.OptionKey, want types.ValueType, got any) *Error {
	return newError(TypeMismatch, string(key), fmt.Sprintf("%s must be %s, got %s", key, want, describe(got)))
}

// NewConstraintViolation wraps a constraint message such as "predict_length must be > 0".
func NewConstraintViolation(key types.OptionKey, msg string) *Error {
	return newError(ConstraintViolation, string(key), msg)
}

func NewUnknownOption(key, family string) *Error {
	return newError(UnknownOption, key, fmt.Sprintf("unknown option %q for model family %q", key, family))
}

func NewInternal(format string, args ...any) *Error {
	return newError(InternalError, "", fmt.Sprintf(format, args...))
}

// FromError collapses any error into the taxonomy. A nil error is success.
func FromError(err error) types.StatusOutcome {
	if err == nil {
		return Success()
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Outcome()
	}
	return types.StatusOutcome{Code: types.AINodeInternalError, Message: err.Error()}
}

// KindOf returns the failure kind of err, or InternalError when err is not a *Error.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return InternalError
}

// Success is the outcome reported for a successful request.
func Success() types.StatusOutcome {
	return types.StatusOutcome{Code: types.SuccessStatus}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "bool"
	case []any:
		return "list"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
