package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/janpfeifer/retouch/contactsheet"
	"github.com/janpfeifer/retouch/edit"
	"github.com/janpfeifer/retouch/filters"
	"github.com/janpfeifer/retouch/gallery"
	"github.com/janpfeifer/retouch/imgio"
	"github.com/janpfeifer/retouch/share"
)

var (
	proofInput      string
	proofCapture    bool
	proofVariants   []string
	proofOutput     string
	proofColumns    int
	proofDriveCreds string
	proofDrivePath  string
)

var proofCmd = &cobra.Command{
	Use:   "proof",
	Short: "Render several variants and compose them into a contact sheet",
	Long: `proof runs one edit session over the source image: for each variant it
selects the filter, sets the exposure, and saves the preview into the
comparison gallery. The gallery is then rendered as a labeled contact
sheet.

Variants are written as "Filter:percent", e.g. Sepia:+20, Mono:-10, or
Original:0 for no filter. Percent is the exposure in [-100, 100].`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(proofVariants) == 0 {
			return fmt.Errorf("at least one --variant is required")
		}
		source, err := loadSource(proofInput, proofCapture)
		if err != nil {
			return err
		}

		session := edit.NewSession(nil, nil)
		if err := session.Load(source); err != nil {
			return err
		}
		for _, spec := range proofVariants {
			variant, err := parseVariant(spec)
			if err != nil {
				return err
			}
			if err := session.SelectFilter(variant.id, variant.label); err != nil {
				return err
			}
			if err := session.SetBrightness(variant.brightness); err != nil {
				return err
			}
			snap, err := session.Commit()
			if err != nil {
				return err
			}
			glog.V(1).Infof("committed %q", snap.Label())
		}

		snaps := session.Gallery().Snapshots()
		sheet, err := contactsheet.Render(snaps, contactsheet.Options{Columns: proofColumns})
		if err != nil {
			return err
		}
		if err := imgio.SaveFile(imgio.Std{}, proofOutput, sheet); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d variants)\n", proofOutput, len(snaps))

		if proofDriveCreds != "" {
			return uploadToDrive(cmd.Context(), snaps)
		}
		return nil
	},
}

// variant is one requested gallery entry: a filter plus an exposure.
type variant struct {
	id         filters.ID
	label      string
	brightness float64
}

// parseVariant parses "Filter:percent" (e.g. "Sepia:+20"). The percent
// part may be omitted, defaulting to 0. "Original" and "none" select no
// filter.
func parseVariant(spec string) (variant, error) {
	name, percent := spec, "0"
	if i := strings.LastIndex(spec, ":"); i >= 0 {
		name, percent = spec[:i], spec[i+1:]
	}
	v := variant{id: filters.None, label: filters.OriginalLabel}
	if !strings.EqualFold(name, filters.OriginalLabel) && !strings.EqualFold(name, "none") {
		f, ok := filters.ByLabel(name)
		if !ok {
			return variant{}, fmt.Errorf("unknown filter %q in variant %q", name, spec)
		}
		v.id, v.label = f.ID(), f.Label()
	}
	p, err := strconv.ParseFloat(strings.TrimPrefix(percent, "+"), 64)
	if err != nil {
		return variant{}, fmt.Errorf("bad exposure percent in variant %q: %v", spec, err)
	}
	if p < -100 || p > 100 {
		return variant{}, fmt.Errorf("exposure percent %v out of range [-100, 100] in variant %q", p, spec)
	}
	v.brightness = p / 100
	return v, nil
}

// uploadToDrive pushes every committed snapshot to Google Drive and
// prints the shareable links. The authorization token is cached next to
// the credentials file.
func uploadToDrive(ctx context.Context, snaps []gallery.Snapshot) error {
	creds, err := os.ReadFile(proofDriveCreds)
	if err != nil {
		return fmt.Errorf("cannot read drive credentials: %w", err)
	}
	tokenPath := proofDriveCreds + ".token"
	token := ""
	if data, err := os.ReadFile(tokenPath); err == nil {
		token = string(data)
	}
	drive, err := share.NewDrive(ctx, creds, strings.Split(proofDrivePath, "/"), token,
		func(token string) {
			if err := os.WriteFile(tokenPath, []byte(token), 0600); err != nil {
				glog.Errorf("failed to save drive token: %v", err)
			}
		},
		func() string {
			fmt.Print("Enter Google Drive authorization code: ")
			var code string
			_, _ = fmt.Scanln(&code)
			return code
		})
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		url, err := drive.UploadSnapshot(ctx, snap)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", snap.Label(), url)
	}
	return nil
}

func init() {
	proofCmd.Flags().StringVarP(&proofInput, "input", "i", "", "source image file")
	proofCmd.Flags().BoolVar(&proofCapture, "capture", false, "capture the screen as the source image")
	proofCmd.Flags().StringArrayVarP(&proofVariants, "variant", "v", nil, "variant to render, as Filter:percent (repeatable)")
	proofCmd.Flags().StringVarP(&proofOutput, "output", "o", "contactsheet.png", "output file for the contact sheet")
	proofCmd.Flags().IntVar(&proofColumns, "columns", 0, "contact sheet columns (default 3)")
	proofCmd.Flags().StringVar(&proofDriveCreds, "drive-credentials", "", "OAuth credentials JSON file; when set, snapshots are uploaded to Google Drive")
	proofCmd.Flags().StringVar(&proofDrivePath, "drive-folder", "retouch", "Drive folder to upload snapshots into")
	rootCmd.AddCommand(proofCmd)
}
