// Command retouch applies non-destructive adjustments (a color filter
// plus an exposure tweak) to an image, always recomputing from the
// original source, and can save labeled variants into a comparison
// contact sheet.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "retouch",
	Short: "Non-destructive image adjustments with a comparison gallery",
	Long: `retouch applies a color filter and an exposure adjustment to an image.
Every output is recomputed from the original source, so chaining or
re-running adjustments never compounds quality loss.

  retouch filters                              # list available filters
  retouch render -i photo.jpg -f Sepia -b 0.2 -o out.png
  retouch proof -i photo.jpg -v Sepia:+20 -v Mono:-10 -o sheet.png`,
	SilenceUsage: true,
}

func main() {
	// glog registers its flags (-v, -logtostderr, ...) on the standard
	// flag set; expose them on the cobra side too.
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
