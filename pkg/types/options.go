package types

// OptionKey names a recognized configuration field. New keys are added here,
// never invented at call sites.
type OptionKey string

// Common options.
const (
	OptTaskType   OptionKey = "task_type"
	OptModelType  OptionKey = "model_type"
	OptAutoTuning OptionKey = "auto_tuning"
	OptInputVars  OptionKey = "input_vars"
)

// Forecast options.
const (
	OptInputLength      OptionKey = "input_length"
	OptPredictLength    OptionKey = "predict_length"
	OptPredictIndexList OptionKey = "predict_index_list"
	OptInputTypeList    OptionKey = "input_type_list"
)

// Training hyperparameters.
const (
	OptLearningRate OptionKey = "learning_rate"
	OptEpochs       OptionKey = "epochs"
	OptBatchSize    OptionKey = "batch_size"
	OptUseGPU       OptionKey = "use_gpu"
	OptNumWorkers   OptionKey = "num_workers"
)

// Structure hyperparameters.
const (
	OptKernelSize  OptionKey = "kernel_size"
	OptBlockType   OptionKey = "block_type"
	OptDModel      OptionKey = "d_model"
	OptInnerLayers OptionKey = "inner_layer"
	OptOuterLayers OptionKey = "outer_layer"
)

// Naive and STL forecaster attributes.
const (
	OptStrategy     OptionKey = "strategy"
	OptSP           OptionKey = "sp"
	OptSeasonal     OptionKey = "seasonal"
	OptSeasonalDeg  OptionKey = "seasonal_deg"
	OptTrendDeg     OptionKey = "trend_deg"
	OptLowPassDeg   OptionKey = "low_pass_deg"
	OptSeasonalJump OptionKey = "seasonal_jump"
	OptTrendJump    OptionKey = "trend_jump"
	OptLowPassJump  OptionKey = "low_pass_jump"
)

// Exponential smoothing attributes.
const (
	OptDampedTrend          OptionKey = "damped_trend"
	OptInitializationMethod OptionKey = "initialization_method"
	OptOptimized            OptionKey = "optimized"
	OptRemoveBias           OptionKey = "remove_bias"
	OptUseBrute             OptionKey = "use_brute"
)

// ARIMA attributes.
const (
	OptOrder                  OptionKey = "order"
	OptSeasonalOrder          OptionKey = "seasonal_order"
	OptMethod                 OptionKey = "method"
	OptMaxIter                OptionKey = "maxiter"
	OptSuppressWarnings       OptionKey = "suppress_warnings"
	OptOutOfSampleSize        OptionKey = "out_of_sample_size"
	OptScoring                OptionKey = "scoring"
	OptWithIntercept          OptionKey = "with_intercept"
	OptTimeVaryingRegression  OptionKey = "time_varying_regression"
	OptEnforceStationarity    OptionKey = "enforce_stationarity"
	OptEnforceInvertibility   OptionKey = "enforce_invertibility"
	OptSimpleDifferencing     OptionKey = "simple_differencing"
	OptMeasurementError       OptionKey = "measurement_error"
	OptMLERegression          OptionKey = "mle_regression"
	OptHamiltonRepresentation OptionKey = "hamilton_representation"
	OptConcentrateScale       OptionKey = "concentrate_scale"
)

// Hidden Markov model attributes, shared by the Gaussian and GMM variants.
const (
	OptNComponents    OptionKey = "n_components"
	OptCovarianceType OptionKey = "covariance_type"
	OptMinCovar       OptionKey = "min_covar"
	OptStartprobPrior OptionKey = "startprob_prior"
	OptTransmatPrior  OptionKey = "transmat_prior"
	OptMeansPrior     OptionKey = "means_prior"
	OptMeansWeight    OptionKey = "means_weight"
	OptCovarsPrior    OptionKey = "covars_prior"
	OptCovarsWeight   OptionKey = "covars_weight"
	OptAlgorithm      OptionKey = "algorithm"
	OptNIter          OptionKey = "n_iter"
	OptTol            OptionKey = "tol"
	OptParams         OptionKey = "params"
	OptInitParams     OptionKey = "init_params"
	OptImplementation OptionKey = "implementation"
	OptNMix           OptionKey = "n_mix"
	OptWeightsPrior   OptionKey = "weights_prior"
)

// STRAY anomaly detector attributes.
const (
	OptAlpha         OptionKey = "alpha"
	OptK             OptionKey = "k"
	OptKNNAlgorithm  OptionKey = "knn_algorithm"
	OptP             OptionKey = "p"
	OptSizeThreshold OptionKey = "size_threshold"
	OptOutlierTail   OptionKey = "outlier_tail"
)

// Timer-XL attributes.
const (
	OptInputTokenLen         OptionKey = "input_token_len"
	OptHiddenSize            OptionKey = "hidden_size"
	OptIntermediateSize      OptionKey = "intermediate_size"
	OptOutputTokenLens       OptionKey = "output_token_lens"
	OptNumHiddenLayers       OptionKey = "num_hidden_layers"
	OptNumAttentionHeads     OptionKey = "num_attention_heads"
	OptHiddenAct             OptionKey = "hidden_act"
	OptUseCache              OptionKey = "use_cache"
	OptRopeTheta             OptionKey = "rope_theta"
	OptAttentionDropout      OptionKey = "attention_dropout"
	OptInitializerRange      OptionKey = "initializer_range"
	OptMaxPositionEmbeddings OptionKey = "max_position_embeddings"
	OptCkptPath              OptionKey = "ckpt_path"
)

// Sundial attributes.
const (
	OptDropoutRate       OptionKey = "dropout_rate"
	OptFlowLossDepth     OptionKey = "flow_loss_depth"
	OptNumSamplingSteps  OptionKey = "num_sampling_steps"
	OptDiffusionBatchMul OptionKey = "diffusion_batch_mul"
)

// Model input tensor names handed to learned forecasters.
const (
	InputDataX      = "data_x"
	InputTimeStampX = "time_stamp_x"
	InputTimeStampY = "time_stamp_y"
	InputDecInp     = "dec_inp"
)
