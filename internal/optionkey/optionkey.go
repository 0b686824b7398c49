// Package optionkey is the closed registry of recognized option key names.
package optionkey

import (
	"errors"
	"fmt"

	"github.com/tsforecast/ainode/pkg/types"
)

// ErrNotFound is returned when a name is not a registered option key.
var ErrNotFound = errors.New("option key not registered")

var declared = []types.OptionKey{
	types.OptTaskType, types.OptModelType, types.OptAutoTuning, types.OptInputVars,

	types.OptInputLength, types.OptPredictLength, types.OptPredictIndexList, types.OptInputTypeList,

	types.OptLearningRate, types.OptEpochs, types.OptBatchSize, types.OptUseGPU, types.OptNumWorkers,

	types.OptKernelSize, types.OptBlockType, types.OptDModel, types.OptInnerLayers, types.OptOuterLayers,

	types.OptStrategy, types.OptSP, types.OptSeasonal, types.OptSeasonalDeg, types.OptTrendDeg,
	types.OptLowPassDeg, types.OptSeasonalJump, types.OptTrendJump, types.OptLowPassJump,

	types.OptDampedTrend, types.OptInitializationMethod, types.OptOptimized, types.OptRemoveBias,
	types.OptUseBrute,

	types.OptOrder, types.OptSeasonalOrder, types.OptMethod, types.OptMaxIter, types.OptSuppressWarnings,
	types.OptOutOfSampleSize, types.OptScoring, types.OptWithIntercept, types.OptTimeVaryingRegression,
	types.OptEnforceStationarity, types.OptEnforceInvertibility, types.OptSimpleDifferencing,
	types.OptMeasurementError, types.OptMLERegression, types.OptHamiltonRepresentation,
	types.OptConcentrateScale,

	types.OptNComponents, types.OptCovarianceType, types.OptMinCovar, types.OptStartprobPrior,
	types.OptTransmatPrior, types.OptMeansPrior, types.OptMeansWeight, types.OptCovarsPrior,
	types.OptCovarsWeight, types.OptAlgorithm, types.OptNIter, types.OptTol, types.OptParams,
	types.OptInitParams, types.OptImplementation, types.OptNMix, types.OptWeightsPrior,

	types.OptAlpha, types.OptK, types.OptKNNAlgorithm, types.OptP, types.OptSizeThreshold,
	types.OptOutlierTail,

	types.OptInputTokenLen, types.OptHiddenSize, types.OptIntermediateSize, types.OptOutputTokenLens,
	types.OptNumHiddenLayers, types.OptNumAttentionHeads, types.OptHiddenAct, types.OptUseCache,
	types.OptRopeTheta, types.OptAttentionDropout, types.OptInitializerRange,
	types.OptMaxPositionEmbeddings, types.OptCkptPath,

	types.OptDropoutRate, types.OptFlowLossDepth, types.OptNumSamplingSteps, types.OptDiffusionBatchMul,
}

// Envelope keys identify the request rather than configure the model.
var envelope = map[types.OptionKey]bool{
	types.OptTaskType:  true,
	types.OptModelType: true,
}

var index = buildIndex()

func buildIndex() map[string]types.OptionKey {
	m := make(map[string]types.OptionKey, len(declared))
	for _, k := range declared {
		if _, dup := m[string(k)]; dup {
			panic(fmt.Sprintf("optionkey: %q declared twice", k))
		}
		m[string(k)] = k
	}
	return m
}

// Lookup returns the registered key with the given name.
func Lookup(name string) (types.OptionKey, error) {
	k, ok := index[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return k, nil
}

// IsEnvelope reports whether key is task_type or model_type.
func IsEnvelope(key types.OptionKey) bool { return envelope[key] }

// All returns every registered key in declaration order.
func All() []types.OptionKey {
	return append([]types.OptionKey(nil), declared...)
}
