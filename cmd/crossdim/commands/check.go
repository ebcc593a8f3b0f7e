package commands

import (
	"fmt"
	"sort"

	"github.com/phanxgames/crossdim"
	"github.com/phanxgames/crossdim/physics2d"
	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	var threeD bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Build an engine and report which libraries are installed",
		Example: `  # Load the 2D physics bundle and report
  crossdim check

  # Try the 3D libraries as well
  crossdim check --3d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := crossdim.ConfigFromEnv()
			if err != nil {
				return err
			}
			env := crossdim.NewEnvironment()
			if noLoad {
				physics2d.InstallInto(env)
			}
			f := crossdim.NewFactory(env)

			e2 := f.TwoDimensionEngine(cmd.Context(), cfg)
			fmt.Fprintf(cmd.OutOrStdout(), "2d ready: %v\n", e2.Ready())
			if threeD {
				e3 := f.ThreeDimensionEngine(cmd.Context(), cfg)
				fmt.Fprintf(cmd.OutOrStdout(), "3d ready: %v\n", e3.Ready())
			}

			libs := env.Libraries()
			sort.Slice(libs, func(i, j int) bool { return libs[i] < libs[j] })
			for _, lib := range libs {
				v, _ := env.Lookup(lib)
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %T\n", lib, v)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&threeD, "3d", false, "also load the 3D libraries")

	return cmd
}
