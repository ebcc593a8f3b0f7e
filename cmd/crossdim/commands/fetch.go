package commands

import (
	"fmt"

	"github.com/phanxgames/crossdim"
	"github.com/spf13/cobra"
)

func newFetchCommand() *cobra.Command {
	var (
		library string
		image   bool
	)

	cmd := &cobra.Command{
		Use:   "fetch URL...",
		Short: "Fetch script bundles or images",
		Long: `Fetch resources through the HTTP loader. Script bundles are installed
into a scratch environment and their digest printed; images are decoded and
their bounds printed. file:// URLs read from the local filesystem.`,
		Example: `  # Fetch and install the 2D physics bundle
  crossdim fetch --library physics2d https://unpkg.com/matter-js/build/matter.min.js

  # Decode two images concurrently
  crossdim fetch --image file:///tmp/a.png file:///tmp/b.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env := crossdim.NewEnvironment()
			out := cmd.OutOrStdout()

			if image {
				imgs, err := crossdim.NewFactory(env).LoadImages(ctx, args...)
				if err != nil {
					return err
				}
				for i, img := range imgs {
					fmt.Fprintf(out, "%s %v\n", args[i], img.Bounds())
				}
				return nil
			}

			l := crossdim.NewHTTPLoader(env)
			for _, url := range args {
				res := l.Load(ctx, crossdim.Resource{URL: url, Library: crossdim.Library(library)})
				if !res.Success {
					return res.Err
				}
				fmt.Fprintf(out, "%s %d bytes xxhash=%016x\n", url, len(res.Bundle.Payload), res.Bundle.Digest)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&library, "library", "l", string(crossdim.LibraryPhysics2D), "library slot to install scripts into")
	cmd.Flags().BoolVar(&image, "image", false, "decode the resources as images")

	return cmd
}
