// Package types defines the public domain types for the AINode model configuration engine.
package types

import "fmt"

// TaskType is the class of inference task a model family serves.
type TaskType string

// TaskType values enumerate the supported inference tasks.
const (
	TaskForecast TaskType = "forecast"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	switch t {
	case TaskForecast:
		return true
	}
	return false
}

// ModelType identifies a built-in model family.
type ModelType string

// Learned forecasting models.
const (
	ModelDLinear           ModelType = "dlinear"
	ModelDLinearIndividual ModelType = "dlinear_individual"
	ModelNBeats            ModelType = "nbeats"
)

// Statistical models.
const (
	ModelNaiveForecaster      ModelType = "naive_forecaster"
	ModelSTLForecaster        ModelType = "stl_forecaster"
	ModelExponentialSmoothing ModelType = "exponential_smoothing"
	ModelARIMA                ModelType = "arima"
	ModelGaussianHMM          ModelType = "gaussian_hmm"
	ModelGMMHMM               ModelType = "gmm_hmm"
	ModelSTRAY                ModelType = "stray"
)

// Foundation models.
const (
	ModelTimerXL ModelType = "timer_xl"
	ModelSundial ModelType = "sundial"
)

// ValueType is the declared type of a hyperparameter value.
type ValueType string

// ValueType values enumerate the admissible hyperparameter value shapes.
const (
	ValueInt        ValueType = "int"
	ValueFloat      ValueType = "float"
	ValueBool       ValueType = "bool"
	ValueString     ValueType = "string"
	ValueListOfInt  ValueType = "list_of_int"
	ValueEnumChoice ValueType = "enum_choice"
)

// Valid reports whether v is one of the declared value types.
func (v ValueType) Valid() bool {
	switch v {
	case ValueInt, ValueFloat, ValueBool, ValueString, ValueListOfInt, ValueEnumChoice:
		return true
	}
	return false
}

// TSStatusCode is the stable integer status reported to callers over the wire.
// Assigned values never change.
type TSStatusCode int

// Generic success and advisory codes.
const (
	SuccessStatus        TSStatusCode = 200
	RedirectionRecommend TSStatusCode = 400
)

// Node-internal and configuration codes.
const (
	AINodeInternalError    TSStatusCode = 1510
	InvalidURIError        TSStatusCode = 1511
	InvalidInferenceConfig TSStatusCode = 1512
)

// Inference execution codes.
const (
	InferenceInternalError TSStatusCode = 1520
)

var statusCodeNames = map[TSStatusCode]string{
	SuccessStatus:          "SUCCESS_STATUS",
	RedirectionRecommend:   "REDIRECTION_RECOMMEND",
	AINodeInternalError:    "AINODE_INTERNAL_ERROR",
	InvalidURIError:        "INVALID_URI_ERROR",
	InvalidInferenceConfig: "INVALID_INFERENCE_CONFIG",
	InferenceInternalError: "INFERENCE_INTERNAL_ERROR",
}

// String returns the symbolic name of the code.
func (c TSStatusCode) String() string {
	if name, ok := statusCodeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("TSStatusCode(%d)", int(c))
}

// IsSuccess reports whether c is the success code.
func (c TSStatusCode) IsSuccess() bool { return c == SuccessStatus }

// StatusCodes returns every assigned status code in ascending order.
func StatusCodes() []TSStatusCode {
	return []TSStatusCode{
		SuccessStatus,
		RedirectionRecommend,
		AINodeInternalError,
		InvalidURIError,
		InvalidInferenceConfig,
		InferenceInternalError,
	}
}
