package resolver

import (
	"bytes"
	"encoding/json"
	"errors"
	"expvar"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/tsforecast/ainode/internal/family"
	"github.com/tsforecast/ainode/internal/metrics"
	"github.com/tsforecast/ainode/internal/status"
	"github.com/tsforecast/ainode/internal/testutil"
	"github.com/tsforecast/ainode/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestResolver(t *testing.T) (*Resolver, *family.Registry) {
	t.Helper()
	reg := testutil.BuiltinRegistry(t)
	return New(reg), reg
}

var requireStatus = testutil.RequireStatus

func TestResolveDLinear(t *testing.T) {
	r, _ := newTestResolver(t)

	cfg, err := r.Resolve("dlinear", types.RawOptions{"predict_length": 96})
	require.NoError(t, err)
	assert.Equal(t, "dlinear", cfg.Family())
	assert.Equal(t, types.TaskForecast, cfg.TaskType())
	assert.Equal(t, []types.OptionKey{types.OptPredictLength, types.OptInputVars}, cfg.Keys())

	n, ok := cfg.Int(types.OptPredictLength)
	require.True(t, ok)
	assert.Equal(t, 96, n)

	vars, ok := cfg.Ints(types.OptInputVars)
	require.True(t, ok)
	assert.Equal(t, []int{}, vars)

	assert.Equal(t, map[string]any{
		"task_type":      "forecast",
		"model_type":     "dlinear",
		"predict_length": 96,
		"input_vars":     []int{},
	}, cfg.Map())
}

func TestResolveDLinearNegativePredictLength(t *testing.T) {
	r, _ := newTestResolver(t)

	cfg, out := r.ResolveOutcome("dlinear", types.RawOptions{"predict_length": -5})
	assert.Nil(t, cfg)
	assert.Equal(t, types.StatusOutcome{
		Code:    types.InvalidInferenceConfig,
		Message: "predict_length must be > 0",
	}, out)
}

func TestResolveDLinearEmpty(t *testing.T) {
	r, _ := newTestResolver(t)

	cfg, err := r.Resolve("dlinear", types.RawOptions{})
	assert.Nil(t, cfg)
	se := requireStatus(t, err, status.MissingRequiredOption, "predict_length")
	assert.Equal(t, types.InvalidInferenceConfig, se.Code)
	assert.Contains(t, se.Message, "predict_length")
}

func TestResolveRequiredOnlyYieldsDefaults(t *testing.T) {
	r, reg := newTestResolver(t)

	for _, id := range reg.ListFamilies() {
		t.Run(id, func(t *testing.T) {
			f, err := reg.Get(id)
			require.NoError(t, err)

			cfg, err := r.Resolve(id, types.RawOptions{"predict_length": 24})
			require.NoError(t, err)
			assert.Equal(t, f.TaskType, cfg.TaskType())
			assert.Equal(t, len(f.Specs), cfg.Len())

			for _, spec := range f.Specs {
				got, ok := cfg.Value(spec.Key)
				require.True(t, ok, "missing %s", spec.Key)
				if spec.Required {
					continue
				}
				assert.Equal(t, spec.Default, got, "default of %s", spec.Key)
			}
		})
	}
}

func TestResolveMissingEveryRequiredKey(t *testing.T) {
	r, reg := newTestResolver(t)

	for _, id := range reg.ListFamilies() {
		f, err := reg.Get(id)
		require.NoError(t, err)
		for _, key := range f.RequiredKeys() {
			raw := types.RawOptions{"predict_length": 24}
			delete(raw, string(key))
			_, err := r.Resolve(id, raw)
			requireStatus(t, err, status.MissingRequiredOption, string(key))
		}
	}
}

func TestResolveUnknownOption(t *testing.T) {
	r, _ := newTestResolver(t)

	for _, v := range []any{1, "x", nil, []any{1}, true} {
		_, err := r.Resolve("dlinear", types.RawOptions{"predict_length": 96, "learning_rate": v})
		se := requireStatus(t, err, status.UnknownOption, "learning_rate")
		assert.Equal(t, types.InvalidInferenceConfig, se.Code)
	}

	// Keys unknown to every family are rejected the same way.
	_, err := r.Resolve("dlinear", types.RawOptions{"predict_length": 96, "zzz": 1, "aaa": 2})
	requireStatus(t, err, status.UnknownOption, "aaa")
}

func TestResolveTypeMismatch(t *testing.T) {
	r, _ := newTestResolver(t)

	tests := []struct {
		family string
		raw    types.RawOptions
		key    string
	}{
		{"dlinear", types.RawOptions{"predict_length": 96, "input_vars": "0,1"}, "input_vars"},
		{"dlinear", types.RawOptions{"predict_length": 1.5}, "predict_length"},
		{"dlinear", types.RawOptions{"predict_length": []any{96}}, "predict_length"},
		{"dlinear", types.RawOptions{"predict_length": nil}, "predict_length"},
		{"arima", types.RawOptions{"predict_length": 96, "with_intercept": "maybe"}, "with_intercept"},
		{"gaussian_hmm", types.RawOptions{"predict_length": 96, "covariance_type": 3}, "covariance_type"},
		{"stray", types.RawOptions{"predict_length": 96, "alpha": "low"}, "alpha"},
	}
	for _, tt := range tests {
		_, err := r.Resolve(tt.family, tt.raw)
		se := requireStatus(t, err, status.TypeMismatch, tt.key)
		assert.Equal(t, types.InvalidInferenceConfig, se.Code)
	}
}

func TestResolveConstraintViolation(t *testing.T) {
	r, _ := newTestResolver(t)

	tests := []struct {
		family string
		raw    types.RawOptions
		key    string
		msg    string
	}{
		{"dlinear", types.RawOptions{"predict_length": -1}, "predict_length", "predict_length must be > 0"},
		{"dlinear", types.RawOptions{"predict_length": 2881}, "predict_length", "predict_length must be <= 2880"},
		{"dlinear", types.RawOptions{"predict_length": 96, "input_vars": []any{0, -1}}, "input_vars", "input_vars elements must be >= 0"},
		{"arima", types.RawOptions{"predict_length": 96, "order": []any{1, 1}}, "order", "order must have exactly 3 elements"},
		{"gaussian_hmm", types.RawOptions{"predict_length": 96, "covariance_type": "banded"}, "covariance_type",
			"covariance_type must be one of [spherical, diag, full, tied]"},
		{"stray", types.RawOptions{"predict_length": 96, "alpha": 1.0}, "alpha", "alpha must be < 1"},
		{"dlinear", types.RawOptions{"predict_length": 96, "model_type": "nbeats"}, "model_type", "model_type must be dlinear"},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			_, err := r.Resolve(tt.family, tt.raw)
			se := requireStatus(t, err, status.ConstraintViolation, tt.key)
			assert.Equal(t, tt.msg, se.Message)
			assert.Equal(t, types.InvalidInferenceConfig, se.Code)
		})
	}
}

func TestResolveCoercesWireValues(t *testing.T) {
	r, _ := newTestResolver(t)

	cfg, err := r.Resolve("arima", types.RawOptions{
		"predict_length": "48",
		"order":          []any{float64(2), float64(1), float64(2)},
		"with_intercept": "false",
		"method":         "nm",
	})
	require.NoError(t, err)

	n, _ := cfg.Int(types.OptPredictLength)
	assert.Equal(t, 48, n)
	order, _ := cfg.Ints(types.OptOrder)
	assert.Equal(t, []int{2, 1, 2}, order)
	b, _ := cfg.Bool(types.OptWithIntercept)
	assert.False(t, b)
	m, _ := cfg.String(types.OptMethod)
	assert.Equal(t, "nm", m)
	maxIter, _ := cfg.Int(types.OptMaxIter)
	assert.Equal(t, 50, maxIter)
}

func TestResolveEnvelopeKeys(t *testing.T) {
	r, _ := newTestResolver(t)

	cfg, err := r.Resolve("nbeats", types.RawOptions{
		"predict_length": 96,
		"task_type":      "FORECAST",
		"model_type":     "nbeats",
	})
	require.NoError(t, err)
	assert.Equal(t, types.TaskForecast, cfg.TaskType())
	assert.False(t, cfg.Has(types.OptTaskType))

	_, err = r.Resolve("nbeats", types.RawOptions{"predict_length": 96, "task_type": "classify"})
	requireStatus(t, err, status.ConstraintViolation, "task_type")

	_, err = r.Resolve("nbeats", types.RawOptions{"predict_length": 96, "task_type": 1})
	requireStatus(t, err, status.TypeMismatch, "task_type")
}

func TestResolveIdempotent(t *testing.T) {
	r, _ := newTestResolver(t)
	raw := types.RawOptions{"predict_length": 96, "input_vars": []any{0, 2}, "kernel_size": 13}

	a, err := r.Resolve("dlinear_individual", raw)
	require.NoError(t, err)
	b, err := r.Resolve("dlinear_individual", raw)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NotSame(t, a, b)
}

func TestResolvedConfigIsImmutable(t *testing.T) {
	r, _ := newTestResolver(t)
	raw := types.RawOptions{"predict_length": 96, "input_vars": []any{0, 2}}

	cfg, err := r.Resolve("dlinear", raw)
	require.NoError(t, err)

	vars, _ := cfg.Ints(types.OptInputVars)
	vars[0] = 99
	raw["input_vars"].([]any)[0] = 42

	again, _ := cfg.Ints(types.OptInputVars)
	assert.Equal(t, []int{0, 2}, again)
}

func TestResolveUnknownFamily(t *testing.T) {
	r, _ := newTestResolver(t)

	cfg, out := r.ResolveOutcome("nonexistent_model", types.RawOptions{"predict_length": 96})
	assert.Nil(t, cfg)
	assert.Equal(t, status.CodeFor(status.UnknownFamily), out.Code)
	assert.Contains(t, out.Message, "nonexistent_model")

	_, err := r.Resolve("nonexistent_model", nil)
	requireStatus(t, err, status.UnknownFamily, "nonexistent_model")
}

func TestResolveNilOptions(t *testing.T) {
	r, _ := newTestResolver(t)
	_, err := r.Resolve("dlinear", nil)
	requireStatus(t, err, status.MissingRequiredOption, "predict_length")
}

func TestResolveInternalErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	panicking := testutil.NewMockLookup()
	panicking.SetPanic("registry corrupted")
	_, out := New(panicking, WithLogger(logger)).ResolveOutcome("dlinear", nil)
	assert.Equal(t, types.AINodeInternalError, out.Code)
	assert.Contains(t, out.Message, "registry corrupted")
	assert.Contains(t, buf.String(), "option resolution failed")
	assert.Equal(t, int64(1), panicking.Calls())

	empty := testutil.NewMockLookup()
	empty.SetReturnNil(true)
	_, err := New(empty).Resolve("dlinear", nil)
	requireStatus(t, err, status.InternalError, "")

	failing := testutil.NewMockLookup()
	failing.SetError(errors.New("disk on fire"))
	_, out = New(failing).ResolveOutcome("dlinear", nil)
	assert.Equal(t, types.AINodeInternalError, out.Code)
	assert.Contains(t, out.Message, "disk on fire")
}

func TestResolveAgainstLookup(t *testing.T) {
	lookup := testutil.NewMockLookup(&types.ModelFamily{
		ID:       "toy",
		TaskType: types.TaskForecast,
		Specs: []types.HyperparameterSpec{
			{Key: types.OptPredictLength, Type: types.ValueInt, Required: true},
			{Key: types.OptStrategy, Type: types.ValueString, Default: "last"},
		},
	})
	r := New(lookup)

	cfg, err := r.Resolve("toy", types.RawOptions{"predict_length": 3})
	require.NoError(t, err)
	assert.Equal(t, []types.OptionKey{types.OptPredictLength, types.OptStrategy}, cfg.Keys())

	_, err = r.Resolve("other", nil)
	requireStatus(t, err, status.UnknownFamily, "other")
	assert.Equal(t, int64(2), lookup.Calls())
}

func TestResolveLogsRejections(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reg, err := family.NewBuiltinRegistry(family.BuiltinOptions{})
	require.NoError(t, err)

	_, err = New(reg, WithLogger(logger)).Resolve("dlinear", types.RawOptions{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"kind":"MISSING_REQUIRED_OPTION"`)
	assert.Contains(t, buf.String(), `"key":"predict_length"`)
	assert.Contains(t, buf.String(), `"code":1512`)
}

func TestResolveConcurrent(t *testing.T) {
	r, reg := newTestResolver(t)
	raw := types.RawOptions{"predict_length": 96, "input_vars": []any{1, 2}}

	want := make(map[string]*types.ResolvedConfig)
	for _, id := range reg.ListFamilies() {
		cfg, err := r.Resolve(id, raw)
		require.NoError(t, err)
		want[id] = cfg
	}

	var g errgroup.Group
	results := make([]*types.ResolvedConfig, 64*len(want))
	ids := reg.ListFamilies()
	for i := range results {
		i := i
		g.Go(func() error {
			cfg, err := r.Resolve(ids[i%len(ids)], raw)
			results[i] = cfg
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, cfg := range results {
		assert.Equal(t, want[ids[i%len(ids)]], cfg)
	}
}

func TestResolveUpdatesMetrics(t *testing.T) {
	r, _ := newTestResolver(t)
	total := metrics.ResolutionsTotal.Value()
	failures := metrics.ResolutionFailures.Value()

	_, err := r.Resolve("dlinear", types.RawOptions{"predict_length": 96})
	require.NoError(t, err)
	_, err = r.Resolve("dlinear", types.RawOptions{"predict_length": "soon"})
	require.Error(t, err)

	assert.Equal(t, total+2, metrics.ResolutionsTotal.Value())
	assert.Equal(t, failures+1, metrics.ResolutionFailures.Value())
	byKind, ok := metrics.FailuresByKind.Get(string(status.TypeMismatch)).(*expvar.Int)
	require.True(t, ok)
	assert.Positive(t, byKind.Value())
}

func TestResolveRejectsOutOfRangeIntegers(t *testing.T) {
	r, _ := newTestResolver(t)

	_, err := r.Resolve("dlinear", types.RawOptions{"predict_length": json.Number("9223372036854775808")})
	requireStatus(t, err, status.TypeMismatch, "predict_length")

	_, err = r.Resolve("stl_forecaster", types.RawOptions{"predict_length": 96, "seasonal_jump": float64(1 << 63)})
	requireStatus(t, err, status.TypeMismatch, "seasonal_jump")

	_, err = r.Resolve("dlinear", types.RawOptions{"predict_length": 96, "input_vars": []any{json.Number("9223372036854775808")}})
	requireStatus(t, err, status.TypeMismatch, "input_vars")
}
