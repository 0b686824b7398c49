package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsforecast/ainode/pkg/types"
)

// NewResolveCmd creates the resolve command.
func NewResolveCmd() *cobra.Command {
	var (
		cfgPath string
		file    string
		sets    []string
	)
	cmd := &cobra.Command{
		Use:   "resolve <family>",
		Short: "Validate options against a model family and print the resolved config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, _, res, err := setup(cfgPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			raw := types.RawOptions{}
			if file != "" {
				if raw, err = readOptionsFile(file); err != nil {
					return err
				}
			}
			overrides, err := parseSet(sets)
			if err != nil {
				return err
			}
			for k, v := range overrides {
				raw[k] = v
			}

			cfg, outcome := res.ResolveOutcome(args[0], raw)
			if !outcome.Code.IsSuccess() {
				cmd.SilenceUsage = true
				_, _ = color.New(color.FgRed).Fprintf(cmd.ErrOrStderr(), "✗ %s: %s\n", outcome.Code, outcome.Message)
				return fmt.Errorf("resolving %s: status %d", args[0], outcome.Code)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
	addConfigFlag(cmd, &cfgPath)
	cmd.Flags().StringVarP(&file, "file", "f", "", "options file (.json, .yaml or .yml)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "option override as key=value (repeatable)")
	return cmd
}
