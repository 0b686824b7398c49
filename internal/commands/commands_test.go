package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ainode.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestFamiliesCmd(t *testing.T) {
	out, _, err := execute(t, NewFamiliesCmd())
	require.NoError(t, err)
	assert.Contains(t, out, "Model families (12):")
	assert.Contains(t, out, "dlinear")
	assert.Contains(t, out, "required=predict_length")
	assert.Contains(t, out, "sundial")
}

func TestFamiliesCmd_ConfigFamilyDirs(t *testing.T) {
	dir, err := filepath.Abs(filepath.Join("..", "family", "testdata", "families"))
	require.NoError(t, err)
	cfg := writeConfig(t, "paths:\n  familyDirs:\n    - "+dir+"\n")

	out, _, err := execute(t, NewFamiliesCmd(), "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Model families (14):")
	assert.Contains(t, out, "holt_winters")
}

func TestFamiliesCmd_InvalidConfig(t *testing.T) {
	cfg := writeConfig(t, "log:\n  level: loud\n")
	_, _, err := execute(t, NewFamiliesCmd(), "--config", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestDescribeCmd(t *testing.T) {
	out, _, err := execute(t, NewDescribeCmd(), "dlinear")
	require.NoError(t, err)
	assert.Contains(t, out, "Family: dlinear")
	assert.Contains(t, out, "predict_length")
	assert.Contains(t, out, "required")
	assert.Contains(t, out, "input_vars")
	assert.Contains(t, out, "default=[]")
}

func TestDescribeCmd_UnknownFamily(t *testing.T) {
	_, _, err := execute(t, NewDescribeCmd(), "prophet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `model family "prophet" is not registered`)
}

func TestResolveCmd_Set(t *testing.T) {
	out, _, err := execute(t, NewResolveCmd(), "dlinear", "--set", "predict_length=96", "--set", "input_vars=[1,3]")
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, float64(96), cfg["predict_length"])
	assert.Equal(t, []any{float64(1), float64(3)}, cfg["input_vars"])
	assert.Equal(t, "dlinear", cfg["model_type"])
}

func TestResolveCmd_FileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "opts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("predict_length: 24\n"), 0o644))

	out, _, err := execute(t, NewResolveCmd(), "dlinear", "--file", path, "--set", "predict_length=48")
	require.NoError(t, err)

	var cfg map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, float64(48), cfg["predict_length"])
}

func TestResolveCmd_Failure(t *testing.T) {
	out, errOut, err := execute(t, NewResolveCmd(), "dlinear", "--set", "predict_length=-5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 1512")
	assert.Contains(t, errOut, "INVALID_INFERENCE_CONFIG: predict_length must be > 0")
	assert.Empty(t, out)
}

func TestCheckSchemasCmd(t *testing.T) {
	out, _, err := execute(t, NewCheckSchemasCmd(), filepath.Join("..", "family", "testdata", "families"))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ holt_winters.yaml")
	assert.Contains(t, out, "✓ naive_drift.yml")
	assert.NotContains(t, out, "README")
}

func TestCheckSchemasCmd_Broken(t *testing.T) {
	out, _, err := execute(t, NewCheckSchemasCmd(), filepath.Join("..", "family", "testdata", "broken"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 family file(s) failed validation")
	assert.Contains(t, out, "✗ unknown_key.yaml")
	assert.Contains(t, out, "warp_factor")
}

func TestCheckSchemasCmd_BuiltinClash(t *testing.T) {
	dir := t.TempDir()
	body := "id: dlinear\ntaskType: forecast\nspecs:\n  - key: predict_length\n    type: int\n    required: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dlinear.yaml"), []byte(body), 0o644))

	out, _, err := execute(t, NewCheckSchemasCmd(), dir)
	require.Error(t, err)
	assert.Contains(t, out, "already registered")
}

func TestCheckSchemasCmd_MissingDir(t *testing.T) {
	_, _, err := execute(t, NewCheckSchemasCmd(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
