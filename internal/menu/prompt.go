// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// ErrUserCancelled indicates the user aborted a prompt (Ctrl-C, Ctrl-D or
// end of input).
var ErrUserCancelled = errors.New("cancelled by user")

// Prompter asks the user questions. Implementations return
// ErrUserCancelled when the user aborts.
type Prompter interface {
	// Select returns the index of the chosen item. def is the initially
	// highlighted (or default) item.
	Select(label string, items []string, def int) (int, error)

	// Input returns a line of text, def when the user just presses Enter.
	// validate, when non-nil, must accept the answer before it is returned.
	Input(label, def string, validate func(string) error) (string, error)

	// Confirm asks a yes/no question.
	Confirm(label string, def bool) (bool, error)

	// MultiSelect returns the checked state of every item after the user
	// toggled them. checked holds the initial state.
	MultiSelect(label string, items []string, checked []bool) ([]bool, error)

	// Pause waits for the user to acknowledge output.
	Pause() error
}

// TerminalPrompter implements Prompter with promptui widgets. It needs an
// interactive terminal on stdin.
type TerminalPrompter struct {
	// PageSize is the number of list items shown at once (default 10).
	PageSize int
}

func (t TerminalPrompter) size() int {
	if t.PageSize <= 0 {
		return 10
	}
	return t.PageSize
}

func promptErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrUserCancelled
	}
	return err
}

// Select implements Prompter.
func (t TerminalPrompter) Select(label string, items []string, def int) (int, error) {
	s := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: def,
		Size:      t.size(),
		HideHelp:  true,
	}
	idx, _, err := s.Run()
	if err != nil {
		return 0, promptErr(err)
	}
	return idx, nil
}

// Input implements Prompter.
func (t TerminalPrompter) Input(label, def string, validate func(string) error) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
	}
	if validate != nil {
		p.Validate = promptui.ValidateFunc(validate)
	}
	v, err := p.Run()
	if err != nil {
		return "", promptErr(err)
	}
	return strings.TrimSpace(v), nil
}

// Confirm implements Prompter.
func (t TerminalPrompter) Confirm(label string, def bool) (bool, error) {
	p := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if def {
		p.Default = "y"
	}
	v, err := p.Run()
	if errors.Is(err, promptui.ErrAbort) {
		return false, nil
	}
	if err != nil {
		return false, promptErr(err)
	}
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return parseYesNo(v)
}

// MultiSelect implements Prompter as a toggle list: choosing an item flips
// its mark, choosing "Done" returns.
func (t TerminalPrompter) MultiSelect(label string, items []string, checked []bool) ([]bool, error) {
	state := make([]bool, len(items))
	copy(state, checked)

	cursor := 0
	for {
		rows := make([]string, 0, len(items)+1)
		rows = append(rows, "» Done")
		for i, it := range items {
			mark := "[ ]"
			if state[i] {
				mark = "[x]"
			}
			rows = append(rows, mark+" "+it)
		}
		idx, err := t.Select(label, rows, cursor)
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			return state, nil
		}
		state[idx-1] = !state[idx-1]
		cursor = idx
	}
}

// Pause implements Prompter.
func (t TerminalPrompter) Pause() error {
	p := promptui.Prompt{Label: "Press Enter to continue"}
	_, err := p.Run()
	if err != nil {
		return promptErr(err)
	}
	return nil
}

func parseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "s", "si", "sí":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, fmt.Errorf("answer y or n, got %q", s)
}

// ValidateQuality accepts an integer in [1,100].
func ValidateQuality(s string) error {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number")
	}
	if q < 1 || q > 100 {
		return errors.New("quality must be between 1 and 100")
	}
	return nil
}
