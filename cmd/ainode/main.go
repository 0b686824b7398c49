package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsforecast/ainode/internal/commands"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "ainode",
		Short: "Model family registry and option resolver for the AINode forecasting service",
		Long: `ainode knows which forecasting model families the node can serve and what
hyperparameters each accepts. It validates raw inference and training options
against a family's schema, fills in defaults, and reports every failure with a
stable TSStatusCode so database clients can tell why a request was rejected.`,
		Version: version,
	}

	root.AddCommand(
		commands.NewFamiliesCmd(),
		commands.NewDescribeCmd(),
		commands.NewResolveCmd(),
		commands.NewCheckSchemasCmd(),
		commands.NewServeCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
