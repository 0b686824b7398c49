package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsforecast/ainode/pkg/types"
)

func TestStableCodes(t *testing.T) {
	assert.Equal(t, 200, int(types.SuccessStatus))
	assert.Equal(t, 400, int(types.RedirectionRecommend))
	assert.Equal(t, 1510, int(types.AINodeInternalError))
	assert.Equal(t, 1511, int(types.InvalidURIError))
	assert.Equal(t, 1512, int(types.InvalidInferenceConfig))
	assert.Equal(t, 1520, int(types.InferenceInternalError))
	assert.Equal(t, "INVALID_INFERENCE_CONFIG", types.InvalidInferenceConfig.String())
	assert.Equal(t, "TSStatusCode(9)", types.TSStatusCode(9).String())
}

func TestCodeFor(t *testing.T) {
	for _, k := range Kinds() {
		want := types.InvalidInferenceConfig
		if k == InternalError {
			want = types.AINodeInternalError
		}
		assert.Equal(t, want, CodeFor(k), "kind %s", k)
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		kind Kind
		key  string
		msg  string
	}{
		{NewUnknownFamily("nonexistent_model"), UnknownFamily, "nonexistent_model", `model family "nonexistent_model" is not registered`},
		{NewMissingOption(types.OptPredictLength), MissingRequiredOption, "predict_length", "predict_length is required"},
		{NewTypeMismatch(types.OptInputVars, types.ValueListOfInt, "1,2"), TypeMismatch, "input_vars", "input_vars must be list_of_int, got string"},
		{NewConstraintViolation(types.OptPredictLength, "predict_length must be > 0"), ConstraintViolation, "predict_length", "predict_length must be > 0"},
		{NewUnknownOption("foo", "dlinear"), UnknownOption, "foo", `unknown option "foo" for model family "dlinear"`},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.kind, tt.err.Kind)
			assert.Equal(t, tt.key, tt.err.Key)
			assert.Equal(t, tt.msg, tt.err.Error())
			assert.Equal(t, types.InvalidInferenceConfig, tt.err.Outcome().Code)
		})
	}
}

func TestFromError(t *testing.T) {
	assert.Equal(t, Success(), FromError(nil))

	wrapped := fmt.Errorf("resolving: %w", NewMissingOption(types.OptPredictLength))
	out := FromError(wrapped)
	assert.Equal(t, types.InvalidInferenceConfig, out.Code)
	assert.Equal(t, "predict_length is required", out.Message)
	assert.Equal(t, MissingRequiredOption, KindOf(wrapped))

	out = FromError(errors.New("boom"))
	assert.Equal(t, types.AINodeInternalError, out.Code)
	assert.Equal(t, InternalError, KindOf(errors.New("boom")))
}
