package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/fasty/internal/codec"
	"github.com/pdiddy/fasty/pkg/types"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Show the supported formats and extensions",
	Long: `Formats prints the format table: every format, the extensions it is
detected by (the first one is used for output files), whether a quality
setting applies and whether fasty can write it. TIFF files are written
with lossless Deflate compression.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("format")
		return writeFormats(cmd.OutOrStdout(), output)
	},
}

func init() {
	formatsCmd.Flags().String("format", "text", "output format: text, yaml or json")

	rootCmd.AddCommand(formatsCmd)
}

const tiffNote = "TIFF is written with lossless Deflate compression."

// formatInfo is one row of the format table.
type formatInfo struct {
	Name       string   `json:"name" yaml:"name"`
	Extensions []string `json:"extensions" yaml:"extensions"`
	Lossy      bool     `json:"lossy" yaml:"lossy"`
	Writable   bool     `json:"writable" yaml:"writable"`
}

func formatTable() []formatInfo {
	reg := codec.NewRegistry()
	var out []formatInfo
	for _, f := range types.Formats() {
		out = append(out, formatInfo{
			Name:       string(f),
			Extensions: f.Extensions(),
			Lossy:      f.Lossy(),
			Writable:   reg.CanEncode(f),
		})
	}
	return out
}

func writeFormats(w io.Writer, output string) error {
	table := formatTable()
	switch strings.ToLower(output) {
	case "yaml":
		data, err := yaml.Marshal(table)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(table, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "text", "":
		rows := make([][]string, 0, len(table))
		for _, fi := range table {
			rows = append(rows, []string{fi.Name, strings.Join(fi.Extensions, ", "), yesNo(fi.Lossy), yesNo(fi.Writable)})
		}
		con := newConsole(w)
		con.Table([]string{"Format", "Extensions", "Quality", "Write"}, rows)
		con.Println()
		con.Println(tiffNote)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, yaml or json)", output)
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
