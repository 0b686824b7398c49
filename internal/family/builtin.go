package family

import (
	"fmt"

	"github.com/tsforecast/ainode/pkg/types"
)

// DefaultMaxPredictLength is the largest forecast horizon accepted by default.
const DefaultMaxPredictLength = 2880

// BuiltinOptions tunes the built-in schemas to the node configuration.
type BuiltinOptions struct {
	MaxPredictLength int // <= 0 means DefaultMaxPredictLength
}

// NewBuiltinRegistry returns a registry holding every built-in model family.
func NewBuiltinRegistry(opts BuiltinOptions) (*Registry, error) {
	r := NewRegistry()
	for _, f := range BuiltinFamilies(opts) {
		if err := r.Register(f); err != nil {
			return nil, fmt.Errorf("registering built-in family: %w", err)
		}
	}
	return r, nil
}

// BuiltinFamilies returns fresh copies of the built-in family schemas.
func BuiltinFamilies(opts BuiltinOptions) []*types.ModelFamily {
	maxLen := opts.MaxPredictLength
	if maxLen <= 0 {
		maxLen = DefaultMaxPredictLength
	}
	common := func(extra ...types.HyperparameterSpec) []types.HyperparameterSpec {
		specs := []types.HyperparameterSpec{
			required(types.OptPredictLength, types.ValueInt, &types.Constraint{
				Min: types.Float(0), ExclusiveMin: true, Max: types.Float(float64(maxLen)),
			}, "number of future points to forecast"),
			optional(types.OptInputVars, types.ValueListOfInt, []int{}, nonNegative(), "indices of input series to use; empty means all"),
		}
		return append(specs, extra...)
	}

	return []*types.ModelFamily{
		{
			ID: string(types.ModelDLinear), TaskType: types.TaskForecast,
			Description: "decomposition linear forecaster with a shared linear layer",
			Specs:       common(),
		},
		{
			ID: string(types.ModelDLinearIndividual), TaskType: types.TaskForecast,
			Description: "decomposition linear forecaster with one linear layer per variable",
			Specs: common(append([]types.HyperparameterSpec{
				optional(types.OptInputLength, types.ValueInt, 96, positive(), "length of the input window"),
				optional(types.OptKernelSize, types.ValueInt, 25, positive(), "moving average kernel of the decomposition"),
			}, training()...)...),
		},
		{
			ID: string(types.ModelNBeats), TaskType: types.TaskForecast,
			Description: "neural basis expansion forecaster",
			Specs: common(append([]types.HyperparameterSpec{
				optional(types.OptInputLength, types.ValueInt, 96, positive(), "length of the input window"),
				optional(types.OptBlockType, types.ValueEnumChoice, "generic", oneOf("generic", "trend", "seasonality"), ""),
				optional(types.OptDModel, types.ValueInt, 128, positive(), "hidden width of each block"),
				optional(types.OptInnerLayers, types.ValueInt, 4, positive(), "layers per block"),
				optional(types.OptOuterLayers, types.ValueInt, 4, positive(), "stacked blocks"),
			}, training()...)...),
		},
		{
			ID: string(types.ModelNaiveForecaster), TaskType: types.TaskForecast,
			Specs: common(
				optional(types.OptStrategy, types.ValueEnumChoice, "last", oneOf("last", "mean", "drift"), ""),
				optional(types.OptSP, types.ValueInt, 1, atLeast(1), "seasonal periodicity"),
			),
		},
		{
			ID: string(types.ModelSTLForecaster), TaskType: types.TaskForecast,
			Specs: common(
				optional(types.OptSP, types.ValueInt, 2, atLeast(2), "seasonal periodicity"),
				optional(types.OptSeasonal, types.ValueInt, 7, atLeast(3), "seasonal smoother length"),
				optional(types.OptSeasonalDeg, types.ValueInt, 1, between(0, 1), ""),
				optional(types.OptTrendDeg, types.ValueInt, 1, between(0, 1), ""),
				optional(types.OptLowPassDeg, types.ValueInt, 1, between(0, 1), ""),
				optional(types.OptSeasonalJump, types.ValueInt, 1, atLeast(1), ""),
				optional(types.OptTrendJump, types.ValueInt, 1, atLeast(1), ""),
				optional(types.OptLowPassJump, types.ValueInt, 1, atLeast(1), ""),
			),
		},
		{
			ID: string(types.ModelExponentialSmoothing), TaskType: types.TaskForecast,
			Specs: common(
				optional(types.OptDampedTrend, types.ValueBool, false, nil, ""),
				optional(types.OptInitializationMethod, types.ValueEnumChoice, "estimated",
					oneOf("estimated", "heuristic", "legacy-heuristic", "known"), ""),
				optional(types.OptOptimized, types.ValueBool, true, nil, ""),
				optional(types.OptRemoveBias, types.ValueBool, false, nil, ""),
				optional(types.OptUseBrute, types.ValueBool, false, nil, ""),
			),
		},
		{
			ID: string(types.ModelARIMA), TaskType: types.TaskForecast,
			Specs: common(
				optional(types.OptOrder, types.ValueListOfInt, []int{1, 0, 0},
					&types.Constraint{Min: types.Float(0), Length: 3}, "(p, d, q)"),
				optional(types.OptSeasonalOrder, types.ValueListOfInt, []int{0, 0, 0, 0},
					&types.Constraint{Min: types.Float(0), Length: 4}, "(P, D, Q, s)"),
				optional(types.OptMethod, types.ValueEnumChoice, "lbfgs",
					oneOf("lbfgs", "newton", "nm", "bfgs", "powell", "cg", "ncg", "basinhopping"), "optimizer"),
				optional(types.OptMaxIter, types.ValueInt, 50, positive(), ""),
				optional(types.OptSuppressWarnings, types.ValueBool, true, nil, ""),
				optional(types.OptOutOfSampleSize, types.ValueInt, 0, nonNegative(), ""),
				optional(types.OptScoring, types.ValueEnumChoice, "mse", oneOf("mse", "mae"), ""),
				optional(types.OptWithIntercept, types.ValueBool, true, nil, ""),
				optional(types.OptTimeVaryingRegression, types.ValueBool, false, nil, ""),
				optional(types.OptEnforceStationarity, types.ValueBool, true, nil, ""),
				optional(types.OptEnforceInvertibility, types.ValueBool, true, nil, ""),
				optional(types.OptSimpleDifferencing, types.ValueBool, false, nil, ""),
				optional(types.OptMeasurementError, types.ValueBool, false, nil, ""),
				optional(types.OptMLERegression, types.ValueBool, true, nil, ""),
				optional(types.OptHamiltonRepresentation, types.ValueBool, false, nil, ""),
				optional(types.OptConcentrateScale, types.ValueBool, false, nil, ""),
			),
		},
		{
			ID: string(types.ModelGaussianHMM), TaskType: types.TaskForecast,
			Specs: common(append(hmm("stmc"),
				optional(types.OptCovarsPrior, types.ValueFloat, 0.01, nil, ""),
				optional(types.OptCovarsWeight, types.ValueFloat, 1.0, nil, ""),
			)...),
		},
		{
			ID: string(types.ModelGMMHMM), TaskType: types.TaskForecast,
			Specs: common(append(hmm("stmcw"),
				optional(types.OptNMix, types.ValueInt, 1, positive(), "mixture components per state"),
				optional(types.OptWeightsPrior, types.ValueFloat, 1.0, nonNegative(), ""),
			)...),
		},
		{
			ID: string(types.ModelSTRAY), TaskType: types.TaskForecast,
			Specs: common(
				optional(types.OptAlpha, types.ValueFloat, 0.01, openUnit(), "significance level"),
				optional(types.OptK, types.ValueInt, 10, positive(), "neighbours considered"),
				optional(types.OptKNNAlgorithm, types.ValueEnumChoice, "brute",
					oneOf("brute", "kd_tree", "ball_tree", "auto"), ""),
				optional(types.OptP, types.ValueFloat, 0.5, openUnit(), "proportion used to estimate the threshold"),
				optional(types.OptSizeThreshold, types.ValueInt, 50, positive(), ""),
				optional(types.OptOutlierTail, types.ValueEnumChoice, "max", oneOf("min", "max"), ""),
			),
		},
		{
			ID: string(types.ModelTimerXL), TaskType: types.TaskForecast,
			Description: "generative pre-trained transformer for time series",
			Specs: common(append(transformer(),
				optional(types.OptAttentionDropout, types.ValueFloat, 0.0, between(0, 1), ""),
				optional(types.OptCkptPath, types.ValueString, "", nil, "checkpoint to load instead of the built-in weights"),
			)...),
		},
		{
			ID: string(types.ModelSundial), TaskType: types.TaskForecast,
			Description: "flow-matching transformer for probabilistic forecasting",
			Specs: common(append(transformer(),
				optional(types.OptDropoutRate, types.ValueFloat, 0.1, between(0, 1), ""),
				optional(types.OptFlowLossDepth, types.ValueInt, 3, positive(), ""),
				optional(types.OptNumSamplingSteps, types.ValueInt, 50, positive(), ""),
				optional(types.OptDiffusionBatchMul, types.ValueInt, 4, positive(), ""),
			)...),
		},
	}
}

func training() []types.HyperparameterSpec {
	return []types.HyperparameterSpec{
		optional(types.OptLearningRate, types.ValueFloat, 0.0001, positive(), ""),
		optional(types.OptEpochs, types.ValueInt, 10, positive(), ""),
		optional(types.OptBatchSize, types.ValueInt, 32, positive(), ""),
		optional(types.OptUseGPU, types.ValueBool, false, nil, ""),
		optional(types.OptNumWorkers, types.ValueInt, 0, nonNegative(), "data loader workers"),
		optional(types.OptAutoTuning, types.ValueBool, false, nil, "search hyperparameters before training"),
	}
}

// hmm returns the options shared by the hidden Markov model variants.
func hmm(params string) []types.HyperparameterSpec {
	return []types.HyperparameterSpec{
		optional(types.OptNComponents, types.ValueInt, 1, positive(), "number of hidden states"),
		optional(types.OptCovarianceType, types.ValueEnumChoice, "diag", oneOf("spherical", "diag", "full", "tied"), ""),
		optional(types.OptMinCovar, types.ValueFloat, 0.001, positive(), ""),
		optional(types.OptStartprobPrior, types.ValueFloat, 1.0, nonNegative(), ""),
		optional(types.OptTransmatPrior, types.ValueFloat, 1.0, nonNegative(), ""),
		optional(types.OptMeansPrior, types.ValueFloat, 0.0, nil, ""),
		optional(types.OptMeansWeight, types.ValueFloat, 0.0, nonNegative(), ""),
		optional(types.OptAlgorithm, types.ValueEnumChoice, "viterbi", oneOf("viterbi", "map"), "decoder"),
		optional(types.OptNIter, types.ValueInt, 10, positive(), ""),
		optional(types.OptTol, types.ValueFloat, 0.01, positive(), "convergence threshold"),
		optional(types.OptParams, types.ValueString, params, nil, "parameters updated during training"),
		optional(types.OptInitParams, types.ValueString, params, nil, "parameters initialized before training"),
		optional(types.OptImplementation, types.ValueEnumChoice, "log", oneOf("log", "scaling"), ""),
	}
}

// transformer returns the structure options shared by the foundation models.
func transformer() []types.HyperparameterSpec {
	return []types.HyperparameterSpec{
		optional(types.OptInputTokenLen, types.ValueInt, 96, positive(), "points per input token"),
		optional(types.OptHiddenSize, types.ValueInt, 1024, positive(), ""),
		optional(types.OptIntermediateSize, types.ValueInt, 2048, positive(), ""),
		optional(types.OptOutputTokenLens, types.ValueListOfInt, []int{96}, positive(), ""),
		optional(types.OptNumHiddenLayers, types.ValueInt, 8, positive(), ""),
		optional(types.OptNumAttentionHeads, types.ValueInt, 8, positive(), ""),
		optional(types.OptHiddenAct, types.ValueEnumChoice, "silu", oneOf("silu", "gelu", "relu"), ""),
		optional(types.OptUseCache, types.ValueBool, true, nil, ""),
		optional(types.OptRopeTheta, types.ValueFloat, 10000.0, positive(), ""),
		optional(types.OptInitializerRange, types.ValueFloat, 0.02, positive(), ""),
		optional(types.OptMaxPositionEmbeddings, types.ValueInt, 10000, positive(), ""),
	}
}

func required(key types.OptionKey, t types.ValueType, c *types.Constraint, desc string) types.HyperparameterSpec {
	return types.HyperparameterSpec{Key: key, Type: t, Required: true, Constraint: c, Description: desc}
}

func optional(key types.OptionKey, t types.ValueType, def any, c *types.Constraint, desc string) types.HyperparameterSpec {
	return types.HyperparameterSpec{Key: key, Type: t, Default: def, Constraint: c, Description: desc}
}

func positive() *types.Constraint {
	return &types.Constraint{Min: types.Float(0), ExclusiveMin: true}
}

func nonNegative() *types.Constraint { return atLeast(0) }

func atLeast(n float64) *types.Constraint { return &types.Constraint{Min: types.Float(n)} }

func between(lo, hi float64) *types.Constraint {
	return &types.Constraint{Min: types.Float(lo), Max: types.Float(hi)}
}

func openUnit() *types.Constraint {
	return &types.Constraint{Min: types.Float(0), Max: types.Float(1), ExclusiveMin: true, ExclusiveMax: true}
}

func oneOf(choices ...string) *types.Constraint { return &types.Constraint{Choices: choices} }
