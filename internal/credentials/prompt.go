package credentials

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// Prompter asks the user for input.
type Prompter interface {
	Confirm(title string, def bool) (bool, error)
	Input(title string, secret bool, validate func(string) error) (string, error)
}

// IsTerminal reports whether the file refers to a terminal device.
var IsTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// StdinIsTerminal reports whether prompts can be shown.
func StdinIsTerminal() bool {
	return IsTerminal(os.Stdin)
}

var runInputPrompt = func(title string, secret bool, validate func(string) error, input *string) error {
	field := huh.NewInput().
		Title(title).
		Validate(validate).
		Value(input)
	if secret {
		field.EchoMode(huh.EchoModePassword)
	}
	return field.Run()
}

var runConfirmPrompt = func(title string, confirmed *bool) error {
	return huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(confirmed).
		Run()
}

// HuhPrompter implements Prompter using the huh TUI library. Invalid input
// is rejected inline and the field stays open until it validates.
type HuhPrompter struct{}

// Confirm asks a yes/no question.
func (HuhPrompter) Confirm(title string, def bool) (bool, error) {
	confirmed := def
	if err := runConfirmPrompt(title, &confirmed); err != nil {
		return false, fmt.Errorf("prompt confirm: %w", err)
	}
	return confirmed, nil
}

// Input asks for a single value.
func (HuhPrompter) Input(title string, secret bool, validate func(string) error) (string, error) {
	if validate == nil {
		validate = func(string) error { return nil }
	}
	var input string
	if err := runInputPrompt(title, secret, validate, &input); err != nil {
		return "", fmt.Errorf("prompt input: %w", err)
	}
	return strings.TrimSpace(input), nil
}
