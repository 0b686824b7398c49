// Package commands implements the CLI subcommands for the ainode binary.
package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsforecast/ainode/internal/config"
	"github.com/tsforecast/ainode/internal/family"
	"github.com/tsforecast/ainode/internal/logging"
	"github.com/tsforecast/ainode/internal/resolver"
	"github.com/tsforecast/ainode/pkg/types"
)

// addConfigFlag registers the shared --config flag on cmd.
func addConfigFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "config", "c", "", "path to "+config.FileName+" (defaults when empty)")
}

// newRegistry builds the built-in families and loads every configured family dir on top.
func newRegistry(cfg *types.NodeConfig) (*family.Registry, error) {
	reg, err := family.NewBuiltinRegistry(family.BuiltinOptions{
		MaxPredictLength: cfg.Inference.MaxPredictLength,
	})
	if err != nil {
		return nil, fmt.Errorf("building built-in families: %w", err)
	}
	for _, dir := range cfg.Paths.FamilyDirs {
		if err := reg.LoadDir(dir); err != nil {
			return nil, fmt.Errorf("loading families from %s: %w", dir, err)
		}
	}
	return reg, nil
}

// setup loads the config and wires the logger, registry and resolver from it.
func setup(path string, logOut io.Writer) (*types.NodeConfig, *slog.Logger, *family.Registry, *resolver.Resolver, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log, logOut)
	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return cfg, logger, reg, resolver.New(reg, resolver.WithLogger(logger)), nil
}

// readOptionsFile reads a raw option map from a JSON or YAML file.
func readOptionsFile(path string) (types.RawOptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading options: %w", err)
	}

	raw := types.RawOptions{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported options file %s: want .json, .yaml or .yml", path)
	}
	if raw == nil {
		raw = types.RawOptions{}
	}
	return raw, nil
}

// parseSet turns key=value pairs into raw options. Values stay strings, the
// way SQL WITH clauses deliver them; the resolver coerces them to the declared
// type. A bracketed value such as [0,2] is read as a list.
func parseSet(pairs []string) (types.RawOptions, error) {
	raw := types.RawOptions{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q: want key=value", p)
		}
		raw[k] = parseSetValue(strings.TrimSpace(v))
	}
	return raw, nil
}

func parseSetValue(v string) any {
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		inner := strings.TrimSpace(v[1 : len(v)-1])
		if inner == "" {
			return []any{}
		}
		parts := strings.Split(inner, ",")
		out := make([]any, len(parts))
		for i, part := range parts {
			out[i] = json.Number(strings.TrimSpace(part))
		}
		return out
	}
	return v
}
