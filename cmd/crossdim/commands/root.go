package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// Global flags
var (
	sceneConfigPath string
	noLoad          bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "crossdim",
		Short: "Check, fetch and demo crossdim engine libraries",
		Long: `crossdim builds 2D and 3D engine capability sets over libraries that are
loaded at runtime.

Engine configuration is read from CROSSDIM_* environment variables:
  CROSSDIM_SKIP_PHYSICS    do not load physics libraries (default false)
  CROSSDIM_PHYSICS2D_URL   2D physics bundle
  CROSSDIM_PHYSICS3D_URL   3D physics bundle
  CROSSDIM_RENDER3D_URL    3D render bundle
  CROSSDIM_LOG_LEVEL       debug, info, warn or error`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&sceneConfigPath, "scene", "s", "", "scene config YAML file")
	rootCmd.PersistentFlags().BoolVar(&noLoad, "no-load", false, "install the built-in 2D library instead of fetching it")

	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newFetchCommand())
	rootCmd.AddCommand(newDemoCommand())

	return rootCmd
}
