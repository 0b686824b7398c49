// Package config handles loading and validation of the ainode.yaml node configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tsforecast/ainode/pkg/types"
)

// FileName is the conventional name of the node configuration file.
const FileName = "ainode.yaml"

// Default returns the node configuration used when no file overrides it.
func Default() types.NodeConfig {
	return types.NodeConfig{
		Cluster: types.ClusterConfig{
			Name:             "defaultCluster",
			TargetConfigNode: types.Endpoint{Host: "127.0.0.1", Port: 10710},
			RPCAddress:       "127.0.0.1",
			RPCPort:          10810,
			IngressAddress:   "127.0.0.1",
			IngressPort:      6667,
			IngressUsername:  "root",
			IngressPassword:  "root",
			IngressTimeZone:  "UTC+8",
		},
		RPC: types.RPCConfig{
			CompressionEnabled: false,
			ReconnectTimeout:   20,
			ReconnectTimes:     3,
		},
		Inference: types.InferenceConfig{
			BatchIntervalMs:  15,
			MaxPredictLength: 2880,
		},
		Paths: types.PathsConfig{
			Models:        "data/ainode/models",
			BuiltinModels: "data/ainode/models/weights",
			System:        "data/ainode/system",
			Log:           "logs",
		},
		Log: types.LogConfig{
			Level:          "info",
			Format:         "json",
			FileNamePrefix: "log_ainode_",
		},
		ModelFiles: types.ModelFilesConfig{
			WeightsFile:       "model.safetensors",
			ConfigFile:        "config.json",
			DefaultModelFile:  "model.pt",
			DefaultConfigFile: "config.yaml",
			ChunkSize:         8192,
		},
		Server: types.ServerConfig{
			Addr:         "127.0.0.1:10820",
			MaxBodyBytes: 1 << 20,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (*types.NodeConfig, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

func validate(cfg *types.NodeConfig) error {
	if cfg.Cluster.Name == "" {
		return fmt.Errorf("cluster.name is required")
	}
	if cfg.Cluster.TargetConfigNode.Host == "" || !validPort(cfg.Cluster.TargetConfigNode.Port) {
		return fmt.Errorf("cluster.targetConfigNode must have a host and a port in 1-65535")
	}
	if !validPort(cfg.Cluster.RPCPort) {
		return fmt.Errorf("cluster.rpcPort %d out of range", cfg.Cluster.RPCPort)
	}
	if !validPort(cfg.Cluster.IngressPort) {
		return fmt.Errorf("cluster.ingressPort %d out of range", cfg.Cluster.IngressPort)
	}
	if cfg.RPC.ReconnectTimeout < 0 || cfg.RPC.ReconnectTimes < 0 {
		return fmt.Errorf("rpc reconnect settings must be >= 0")
	}
	if cfg.Inference.BatchIntervalMs <= 0 {
		return fmt.Errorf("inference.batchIntervalMs must be > 0")
	}
	if cfg.Inference.MaxPredictLength <= 0 {
		return fmt.Errorf("inference.maxPredictLength must be > 0")
	}
	if !logLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("log.format must be json or text")
	}
	if cfg.ModelFiles.ChunkSize <= 0 {
		return fmt.Errorf("modelFiles.chunkSize must be > 0")
	}
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.maxBodyBytes must be >= 0")
	}
	return nil
}

func validPort(p int) bool { return p > 0 && p <= 65535 }
