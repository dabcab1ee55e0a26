package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fasty/internal/convert"
	"github.com/pdiddy/fasty/internal/scan"
	"github.com/pdiddy/fasty/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert images to another format",
	Long: `Convert writes a copy of each input image in the target format to the
destination folder. Inputs are the given files, or every supported image
in --source when --all is set. Existing outputs are kept and the new file
gets a _1, _2, ... suffix unless --overwrite is given.

A failing image is reported and the batch continues. The command exits
non-zero when any image failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := convertOptionsFromFlags(cmd, args)
		if err != nil {
			return err
		}
		return runConvert(opts, cmd.OutOrStdout())
	},
}

func init() {
	convertCmd.Flags().String("to", "", "target format: JPEG, PNG, BMP, WEBP, TIFF (or an extension)")
	convertCmd.Flags().Int("quality", 0, "JPEG/WEBP quality 1-100 (default from config, 85)")
	convertCmd.Flags().String("dest", "", "destination folder (default from config)")
	convertCmd.Flags().String("source", "", "source folder used with --all (default from config)")
	convertCmd.Flags().Bool("all", false, "convert every supported image in the source folder")
	convertCmd.Flags().Bool("preserve-metadata", true, "carry EXIF and ICC profiles over where the target supports them")
	convertCmd.Flags().Bool("overwrite", false, "replace existing output files")

	rootCmd.AddCommand(convertCmd)
}

// convertOptions is the resolved input of one convert invocation.
type convertOptions struct {
	Files     []string
	SourceDir string
	All       bool
	Request   types.Request
}

func convertOptionsFromFlags(cmd *cobra.Command, args []string) (convertOptions, error) {
	flags := cmd.Flags()
	opts := convertOptions{
		Files:     args,
		SourceDir: cfg.Session.SourceDir,
		Request: types.Request{
			Quality:          cfg.Conversion.Quality,
			PreserveMetadata: cfg.Conversion.PreserveMetadata,
			Overwrite:        cfg.Conversion.Overwrite,
			DestDir:          cfg.Session.DestDir,
		},
	}

	to, _ := flags.GetString("to")
	if to == "" {
		to = cfg.Conversion.Format
	}
	if to == "" {
		return opts, fmt.Errorf("--to is required")
	}
	f, err := types.ParseFormat(to)
	if err != nil {
		return opts, err
	}
	opts.Request.Format = f

	if flags.Changed("quality") {
		opts.Request.Quality, _ = flags.GetInt("quality")
	}
	if flags.Changed("preserve-metadata") {
		opts.Request.PreserveMetadata, _ = flags.GetBool("preserve-metadata")
	}
	if flags.Changed("overwrite") {
		opts.Request.Overwrite, _ = flags.GetBool("overwrite")
	}
	if v, _ := flags.GetString("dest"); v != "" {
		opts.Request.DestDir = v
	}
	if v, _ := flags.GetString("source"); v != "" {
		opts.SourceDir = v
	}
	opts.All, _ = flags.GetBool("all")
	return opts, nil
}

// inputs returns the files to convert: the explicit list, followed by the
// detected images of SourceDir when All is set.
func (o convertOptions) inputs() ([]string, error) {
	paths := append([]string(nil), o.Files...)
	if o.All {
		found, err := scan.DetectImages(o.SourceDir)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files: pass files or --all")
	}
	return paths, nil
}

func runConvert(opts convertOptions, w io.Writer) error {
	if err := opts.Request.Validate(); err != nil {
		return err
	}
	if !opts.Request.Format.Lossy() {
		opts.Request.Quality = 0
	}
	paths, err := opts.inputs()
	if err != nil {
		return err
	}

	con := newConsole(w)
	c := convert.New(convert.WithPrinter(con))
	result, err := c.ConvertBatch(paths, opts.Request, w)
	if err != nil {
		return err
	}
	if result.Summary.HasFailures() {
		return fmt.Errorf("%d of %d conversions failed", result.Summary.Failed, result.Summary.Total())
	}
	return nil
}
