// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the fasty CLI. Without a subcommand
// it starts the interactive menu; convert, list and formats expose the
// same operations to scripts.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/pdiddy/fasty/internal/console"
	"github.com/pdiddy/fasty/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg holds the settings resolved from defaults, fasty.yaml and FASTY_*
// variables. It is populated before any command runs.
var cfg = types.DefaultConfig()

// configErr records a config file that exists but could not be read.
var configErr error

// rootCmd is the base command for the fasty CLI.
var rootCmd = &cobra.Command{
	Use:   "fasty",
	Short: "Fast batch image conversion",
	Long: `fasty converts batches of images between JPEG, PNG, BMP, WEBP and TIFF.
RAW and HEIF files are recognised and decoded where possible.

Run without arguments for the interactive menu. The convert, list and
formats subcommands run the same operations non-interactively.

Defaults are read from fasty.yaml (./ or ~/.config/fasty/) and FASTY_*
environment variables, e.g. FASTY_CONVERSION_QUALITY=70.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		setupLogging(verbose)
		if configErr != nil {
			return configErr
		}
		loaded, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded
		if noColor, _ := cmd.Flags().GetBool("no-color"); noColor {
			cfg.Console.Color = false
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./fasty.yaml or ~/.config/fasty/fasty.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("fasty")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "fasty"))
		}
	}

	bindEnv(viper.GetViper())

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	switch {
	case err == nil:
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	case errors.As(err, &notFound):
	default:
		configErr = fmt.Errorf("reading config: %w", err)
	}
}

func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("FASTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, types.DefaultConfig())
}

// setDefaults registers every config key so environment variables are
// honoured even when no config file sets them.
func setDefaults(v *viper.Viper, d types.Config) {
	v.SetDefault("session.source_dir", d.Session.SourceDir)
	v.SetDefault("session.dest_dir", d.Session.DestDir)
	v.SetDefault("conversion.format", d.Conversion.Format)
	v.SetDefault("conversion.quality", d.Conversion.Quality)
	v.SetDefault("conversion.preserve_metadata", d.Conversion.PreserveMetadata)
	v.SetDefault("conversion.overwrite", d.Conversion.Overwrite)
	v.SetDefault("console.color", d.Console.Color)
}

func loadConfig(v *viper.Viper) (types.Config, error) {
	var c types.Config
	if err := v.Unmarshal(&c); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if c.Conversion.Format != "" {
		f, err := types.ParseFormat(c.Conversion.Format)
		if err != nil {
			return types.Config{}, fmt.Errorf("conversion.format: %w", err)
		}
		c.Conversion.Format = string(f)
	}
	slog.Debug("config loaded", "source", c.Session.SourceDir, "dest", c.Session.DestDir,
		"format", c.Conversion.Format, "quality", c.Conversion.Quality)
	return c, nil
}

func setupLogging(verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// newConsole returns a console on w, colored when configured and w is a
// terminal.
func newConsole(w io.Writer) *console.Console {
	return console.New(w, cfg.Console.Color && isTerminal(w))
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
