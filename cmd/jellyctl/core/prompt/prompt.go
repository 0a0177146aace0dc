package prompt

import (
	"errors"
	"os"

	"github.com/AlecAivazis/survey/v2"
	isatty "github.com/mattn/go-isatty"
)

var ErrAborted = errors.New("aborted")

// Interactive tells whether stdin is a terminal.
func Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// Confirm asks a yes/no question, unless force is set. Without a terminal
// the action needs --yes.
func Confirm(message string, force bool) error {
	if force {
		return nil
	}

	if !Interactive() {
		return errors.New("no terminal to confirm the action, use --yes")
	}

	answer := false

	if err := survey.AskOne(&survey.Confirm{Message: message, Default: false}, &answer); err != nil {
		return err
	}

	if !answer {
		return ErrAborted
	}

	return nil
}
