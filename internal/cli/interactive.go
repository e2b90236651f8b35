package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/moodify-app/moodify/internal/service/conversation"
)

const (
	cmdReset = "/reset"
	cmdQuit  = "/quit"
	cmdExit  = "/exit"
)

// RunChat drives the controller from prompter input until the user quits,
// input ends or ctx is canceled.
func RunChat(ctx context.Context, ctrl *conversation.Controller, prompter Prompter) error {
	ctrl.Start(ctx)

	for {
		if ctx.Err() != nil {
			return nil
		}

		choice, err := prompter.Next(ctrl.Options())
		if errors.Is(err, ErrQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if choice.Option >= 0 {
			err = ctrl.SelectOption(ctx, choice.Option)
		} else {
			switch strings.ToLower(strings.TrimSpace(choice.Text)) {
			case cmdQuit, cmdExit:
				return nil
			case cmdReset:
				ctrl.Reset(ctx)
				continue
			}
			ctrl.SetInput(choice.Text)
			err = ctrl.Send(ctx)
		}

		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
