package handlers

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user declines a confirmation prompt.
var ErrAborted = errors.New("aborted")

// errNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal.
var errNotInteractive = errors.New("confirmation required: stdin is not a terminal, pass --yes to proceed")

// confirmAction asks the user to confirm a destructive action.
var confirmAction = func(ctx context.Context, title, description string) (bool, error) {
	if !isTerminal(os.Stdin) {
		return false, errNotInteractive
	}
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	return ok, nil
}
