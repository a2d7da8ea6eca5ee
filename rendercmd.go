package main

import (
	"fmt"
	"image"

	"github.com/spf13/cobra"

	"github.com/janpfeifer/retouch/capture"
	"github.com/janpfeifer/retouch/edit"
	"github.com/janpfeifer/retouch/filters"
	"github.com/janpfeifer/retouch/imgio"
	"github.com/janpfeifer/retouch/share"
)

var (
	renderInput      string
	renderCapture    bool
	renderFilter     string
	renderBrightness float64
	renderOutput     string
	renderClipboard  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render one adjusted preview of an image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if renderOutput == "" && !renderClipboard {
			return fmt.Errorf("nothing to do: pass --output and/or --clipboard")
		}
		source, err := loadSource(renderInput, renderCapture)
		if err != nil {
			return err
		}

		session := edit.NewSession(nil, nil)
		if err := session.Load(source); err != nil {
			return err
		}
		if renderFilter != "" {
			f, ok := filters.ByLabel(renderFilter)
			if !ok {
				return fmt.Errorf("unknown filter %q, see `retouch filters`", renderFilter)
			}
			if err := session.SelectFilter(f.ID(), f.Label()); err != nil {
				return err
			}
		}
		if err := session.SetBrightness(renderBrightness); err != nil {
			return err
		}

		preview := session.Preview()
		if renderClipboard {
			if err := share.CopyImage(preview); err != nil {
				return err
			}
			fmt.Println("copied preview to clipboard")
		}
		if renderOutput != "" {
			if err := imgio.SaveFile(imgio.Std{}, renderOutput, preview); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", renderOutput)
		}
		return nil
	},
}

// loadSource reads the source image from a file or captures the screen.
func loadSource(path string, fromScreen bool) (image.Image, error) {
	if fromScreen {
		return capture.Primary()
	}
	if path == "" {
		return nil, fmt.Errorf("either --input or --capture is required")
	}
	return imgio.LoadFile(imgio.Std{}, path)
}

func init() {
	renderCmd.Flags().StringVarP(&renderInput, "input", "i", "", "source image file")
	renderCmd.Flags().BoolVar(&renderCapture, "capture", false, "capture the screen as the source image")
	renderCmd.Flags().StringVarP(&renderFilter, "filter", "f", "", "filter label (see `retouch filters`)")
	renderCmd.Flags().Float64VarP(&renderBrightness, "brightness", "b", 0, "exposure adjustment in [-1, 1]")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output image file (.png or .jpg)")
	renderCmd.Flags().BoolVar(&renderClipboard, "clipboard", false, "copy the preview to the system clipboard")
	rootCmd.AddCommand(renderCmd)
}
