// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SessionConfig holds the folders an interactive session starts with.
type SessionConfig struct {
	// SourceDir is the folder scanned for images (default: working directory).
	SourceDir string `json:"source_dir" yaml:"source_dir" mapstructure:"source_dir"`

	// DestDir is the folder converted files are written to (default: working directory).
	DestDir string `json:"dest_dir" yaml:"dest_dir" mapstructure:"dest_dir"`
}

// ConversionConfig holds the defaults offered when a batch is configured.
type ConversionConfig struct {
	// Format is the preselected target format (e.g. "WEBP"). Empty means no preselection.
	Format string `json:"format" yaml:"format" mapstructure:"format"`

	// Quality is the default quality for JPEG and WEBP (default 85).
	Quality int `json:"quality" yaml:"quality" mapstructure:"quality"`

	// PreserveMetadata is the default answer to the metadata prompt (default true).
	PreserveMetadata bool `json:"preserve_metadata" yaml:"preserve_metadata" mapstructure:"preserve_metadata"`

	// Overwrite is the default answer to the overwrite prompt (default false).
	Overwrite bool `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`
}

// ConsoleConfig controls transcript rendering.
type ConsoleConfig struct {
	// Color enables ANSI colors in the transcript (default true).
	Color bool `json:"color" yaml:"color" mapstructure:"color"`
}

// Config groups all settings read from fasty.yaml and FASTY_* variables.
type Config struct {
	Session    SessionConfig    `json:"session" yaml:"session" mapstructure:"session"`
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	Console    ConsoleConfig    `json:"console" yaml:"console" mapstructure:"console"`
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{
			SourceDir: ".",
			DestDir:   ".",
		},
		Conversion: ConversionConfig{
			Quality:          DefaultQuality,
			PreserveMetadata: true,
		},
		Console: ConsoleConfig{
			Color: true,
		},
	}
}
