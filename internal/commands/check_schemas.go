package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsforecast/ainode/internal/family"
)

// NewCheckSchemasCmd creates the check-schemas command.
func NewCheckSchemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-schemas <dir>",
		Short: "Validate declarative model family files in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed, err := checkSchemas(cmd, args[0])
			if err != nil {
				return err
			}
			if failed > 0 {
				cmd.SilenceUsage = true
				return fmt.Errorf("%d family file(s) failed validation", failed)
			}
			return nil
		},
	}
}

// checkSchemas loads each family file on top of the built-ins, so id clashes
// with built-in families are reported too. It returns the number of failures.
func checkSchemas(cmd *cobra.Command, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading family dir %s: %w", dir, err)
	}
	reg, err := family.NewBuiltinRegistry(family.BuiltinOptions{})
	if err != nil {
		return 0, err
	}

	out := cmd.OutOrStdout()
	var checked, failed int
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || (!strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml")) {
			continue
		}
		checked++
		if err := reg.LoadFile(filepath.Join(dir, name)); err != nil {
			failed++
			_, _ = fmt.Fprintf(out, "  %s %s: %v\n", color.RedString("✗"), name, err)
			continue
		}
		_, _ = fmt.Fprintf(out, "  %s %s\n", color.GreenString("✓"), name)
	}

	if checked == 0 {
		_, _ = color.New(color.FgYellow).Fprintf(out, "No family files found in %s\n", dir)
	}
	return failed, nil
}
