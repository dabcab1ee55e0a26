// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package menu implements the interactive terminal session: choosing
// folders, picking images, configuring and running a batch conversion.
package menu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/fasty/internal/console"
	"github.com/pdiddy/fasty/internal/convert"
)

// entry is one line of the main menu.
type entry struct {
	label  string
	action func(m *Menu, s *Session) error
}

var mainMenu = []entry{
	{"Select source folder", (*Menu).selectSource},
	{"Select destination folder", (*Menu).selectDest},
	{"View and select images", (*Menu).viewImages},
	{"Convert images", (*Menu).convertImages},
	{"Conversion defaults", (*Menu).configureDefaults},
	{"Statistics", (*Menu).statistics},
	{"Help", (*Menu).help},
	{"Exit", nil},
}

// Menu drives the interactive session. It holds the terminal
// collaborators only; session state lives in Session.
type Menu struct {
	prompt    Prompter
	out       *console.Console
	converter *convert.Converter
	clear     bool
}

// Option configures a Menu.
type Option func(*Menu)

// WithConverter replaces the converter used for batches.
func WithConverter(c *convert.Converter) Option {
	return func(m *Menu) { m.converter = c }
}

// WithClearScreen clears the terminal before the main menu is drawn.
func WithClearScreen(on bool) Option {
	return func(m *Menu) { m.clear = on }
}

// New returns a Menu prompting through p and printing to out.
func New(p Prompter, out *console.Console, opts ...Option) *Menu {
	m := &Menu{prompt: p, out: out}
	for _, o := range opts {
		o(m)
	}
	if m.converter == nil {
		m.converter = convert.New(
			convert.WithPrinter(out),
			convert.WithProgress(out.Progress),
		)
	}
	return m
}

// Run shows the main menu until the user exits. Errors raised by an
// action are printed and the menu is shown again.
func (m *Menu) Run(s *Session) error {
	labels := make([]string, len(mainMenu))
	for i, e := range mainMenu {
		labels[i] = fmt.Sprintf("%d. %s", i+1, e.label)
	}
	exit := len(mainMenu) - 1

	for {
		m.showMain(s)
		idx, err := m.prompt.Select("Option", labels, exit)
		if errors.Is(err, ErrUserCancelled) {
			if m.confirmExit("Operation cancelled. Exit?") {
				return nil
			}
			continue
		}
		if err != nil {
			return err
		}

		if idx == exit {
			if m.confirmExit("Exit?") {
				m.out.Success("Goodbye!")
				return nil
			}
			continue
		}

		if err := m.runAction(mainMenu[idx], s); err != nil {
			if errors.Is(err, ErrUserCancelled) {
				m.out.Warn("Operation cancelled")
			} else {
				slog.Debug("menu action failed", "action", mainMenu[idx].label, "error", err)
				m.out.Failure("Error: %v", err)
			}
		}
		if err := m.prompt.Pause(); errors.Is(err, ErrUserCancelled) {
			if m.confirmExit("Exit?") {
				return nil
			}
		}
	}
}

// runAction invokes e, turning a panic in the action into an error so
// the session survives it.
func (m *Menu) runAction(e entry, s *Session) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected error in %q: %v", e.label, r)
		}
	}()
	return e.action(m, s)
}

func (m *Menu) confirmExit(label string) bool {
	ok, err := m.prompt.Confirm(label, true)
	if err != nil {
		return true
	}
	return ok
}

func (m *Menu) showMain(s *Session) {
	if m.clear {
		m.out.Printf("\033[H\033[2J")
	}
	m.out.Banner()
	m.out.Panel("Current", fmt.Sprintf("Source:      %s\nDestination: %s\nSelected:    %d",
		s.SourceDir, s.DestDir, len(s.Selected)))
	m.out.Println()
}
