package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/fasty/internal/menu"
	"github.com/pdiddy/fasty/internal/scan"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Menu starts the interactive session: choose the source and destination
folders, pick images, configure the target format and run the batch.
This is also what fasty does when called without a subcommand.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	con := newConsole(out)

	src, err := scan.CheckDir(cfg.Session.SourceDir)
	if err != nil {
		return fmt.Errorf("source folder: %w", err)
	}
	// The destination may not exist yet; it is created on the first batch.
	dest := cfg.Session.DestDir
	if abs, err := scan.CheckDir(dest); err == nil {
		dest = abs
	}

	var p menu.Prompter
	interactive := isTerminal(os.Stdin)
	if interactive {
		p = menu.TerminalPrompter{}
	} else {
		p = menu.NewLinePrompter(cmd.InOrStdin(), out)
	}

	session := menu.NewSession(src, dest, cfg.Conversion)
	return menu.New(p, con, menu.WithClearScreen(interactive)).Run(session)
}
