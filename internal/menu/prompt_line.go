// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LinePrompter implements Prompter over plain line input. It is used when
// stdin is not a terminal, and reads one answer per line.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter reading answers from r and writing
// questions to w.
func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(r), out: w}
}

func (l *LinePrompter) readLine() (string, error) {
	s, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && s != "" {
			return strings.TrimSpace(s), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrUserCancelled
		}
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(s), nil
}

// Select implements Prompter. Items are numbered from 1.
func (l *LinePrompter) Select(label string, items []string, def int) (int, error) {
	for i, it := range items {
		fmt.Fprintf(l.out, "  %d) %s\n", i+1, it)
	}
	for {
		fmt.Fprintf(l.out, "%s [%d]: ", label, def+1)
		s, err := l.readLine()
		if err != nil {
			return 0, err
		}
		if s == "" {
			return def, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= 1 && n <= len(items) {
			return n - 1, nil
		}
		fmt.Fprintf(l.out, "Enter a number between 1 and %d\n", len(items))
	}
}

// Input implements Prompter.
func (l *LinePrompter) Input(label, def string, validate func(string) error) (string, error) {
	for {
		if def != "" {
			fmt.Fprintf(l.out, "%s [%s]: ", label, def)
		} else {
			fmt.Fprintf(l.out, "%s: ", label)
		}
		s, err := l.readLine()
		if err != nil {
			return "", err
		}
		if s == "" {
			s = def
		}
		if validate != nil {
			if err := validate(s); err != nil {
				fmt.Fprintf(l.out, "Error: %v\n", err)
				continue
			}
		}
		return s, nil
	}
}

// Confirm implements Prompter.
func (l *LinePrompter) Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(l.out, "%s [%s]: ", label, hint)
		s, err := l.readLine()
		if err != nil {
			return false, err
		}
		if s == "" {
			return def, nil
		}
		v, err := parseYesNo(s)
		if err == nil {
			return v, nil
		}
		fmt.Fprintln(l.out, "Please answer y or n")
	}
}

// MultiSelect implements Prompter. The answer is a list of item numbers
// and ranges ("1,3-5"), "a" for all or "n" for none. An empty answer keeps
// the initial state.
func (l *LinePrompter) MultiSelect(label string, items []string, checked []bool) ([]bool, error) {
	for i, it := range items {
		mark := "[ ]"
		if i < len(checked) && checked[i] {
			mark = "[x]"
		}
		fmt.Fprintf(l.out, "  %d) %s %s\n", i+1, mark, it)
	}
	for {
		fmt.Fprintf(l.out, "%s (e.g. 1,3-5, a=all, n=none): ", label)
		s, err := l.readLine()
		if err != nil {
			return nil, err
		}
		if s == "" {
			state := make([]bool, len(items))
			copy(state, checked)
			return state, nil
		}
		state, err := parseSelection(s, len(items))
		if err == nil {
			return state, nil
		}
		fmt.Fprintf(l.out, "Error: %v\n", err)
	}
}

// Pause implements Prompter.
func (l *LinePrompter) Pause() error {
	fmt.Fprint(l.out, "\nPress Enter to continue...")
	_, err := l.readLine()
	return err
}

// parseSelection turns "1,3-5" into a checked slice of length n.
func parseSelection(s string, n int) ([]bool, error) {
	state := make([]bool, n)
	switch strings.ToLower(s) {
	case "a", "all":
		for i := range state {
			state[i] = true
		}
		return state, nil
	case "n", "none":
		return state, nil
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi := part, part
		if i := strings.Index(part, "-"); i > 0 {
			lo, hi = part[:i], part[i+1:]
		}
		a, errA := strconv.Atoi(strings.TrimSpace(lo))
		b, errB := strconv.Atoi(strings.TrimSpace(hi))
		if errA != nil || errB != nil || a < 1 || b > n || a > b {
			return nil, fmt.Errorf("invalid selection %q", part)
		}
		for i := a; i <= b; i++ {
			state[i-1] = true
		}
	}
	return state, nil
}
