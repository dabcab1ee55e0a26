package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fasty/internal/codec"
	"github.com/pdiddy/fasty/internal/console"
	"github.com/pdiddy/fasty/internal/scan"
)

var listCmd = &cobra.Command{
	Use:   "list [dir]",
	Short: "List the convertible images in a folder",
	Long: `List shows the supported images directly inside dir (default: the
configured source folder) with their size and EXIF capture date.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Session.SourceDir
		if len(args) == 1 {
			dir = args[0]
		}
		return runList(dir, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(dir string, w io.Writer) error {
	abs, err := scan.CheckDir(dir)
	if err != nil {
		return err
	}
	paths, err := scan.DetectImages(abs)
	if err != nil {
		return err
	}

	con := newConsole(w)
	if len(paths) == 0 {
		con.Warn("No images found in %s", abs)
		return nil
	}

	var total int64
	rows := make([][]string, 0, len(paths))
	for i, e := range scan.Describe(paths) {
		taken := "-"
		if t, ok := codec.CaptureTime(e.Path); ok {
			taken = t.Format("2006-01-02 15:04")
		}
		total += e.Size
		rows = append(rows, []string{fmt.Sprint(i + 1), e.Name, e.Ext, console.Size(e.Size), taken})
	}
	con.Table([]string{"#", "Name", "Ext", "Size", "Taken"}, rows)
	con.Println()
	con.Info("%d images, %s in %s", len(paths), console.Size(total), abs)
	return nil
}
