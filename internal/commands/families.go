package commands

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tsforecast/ainode/internal/schema"
	"github.com/tsforecast/ainode/pkg/types"
)

// NewFamiliesCmd creates the families command.
func NewFamiliesCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "families",
		Short: "List the registered model families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, reg, _, err := setup(cfgPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			bold := color.New(color.Bold)
			_, _ = bold.Fprintf(out, "Model families (%d):\n", reg.Len())
			for _, id := range reg.ListFamilies() {
				f, err := reg.Get(id)
				if err != nil {
					return err
				}
				required := make([]string, 0)
				for _, k := range f.RequiredKeys() {
					required = append(required, string(k))
				}
				fmt.Fprintf(out, "  %-24s %-10s options=%-3d required=%s\n",
					f.ID, color.CyanString(string(f.TaskType)), len(f.Specs), strings.Join(required, ","))
			}
			return nil
		},
	}
	addConfigFlag(cmd, &cfgPath)
	return cmd
}

// NewDescribeCmd creates the describe command.
func NewDescribeCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "describe <family>",
		Short: "Show the hyperparameter schema of a model family",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, reg, _, err := setup(cfgPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			f, err := reg.Get(args[0])
			if err != nil {
				return err
			}
			printFamily(cmd, f)
			return nil
		},
	}
	addConfigFlag(cmd, &cfgPath)
	return cmd
}

func printFamily(cmd *cobra.Command, f *types.ModelFamily) {
	out := cmd.OutOrStdout()
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(out, "Family: %s\n", f.ID)
	fmt.Fprintf(out, "  Task type: %s\n", f.TaskType)
	if f.Description != "" {
		fmt.Fprintf(out, "  %s\n", f.Description)
	}
	fmt.Fprintln(out)
	_, _ = bold.Fprintln(out, "  Options:")
	for _, spec := range f.Specs {
		presence := color.RedString("required")
		if !spec.Required {
			presence = fmt.Sprintf("default=%v", spec.Default)
		}
		line := fmt.Sprintf("    %-28s %-12s %s", spec.Key, spec.Type, presence)
		if c := schema.Describe(spec.Constraint); c != "" {
			line += "  [" + c + "]"
		}
		fmt.Fprintln(out, line)
	}
}
