package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/travelbook/internal/client/services"
	"github.com/dmitrijs2005/travelbook/internal/logging"
)

type App struct {
	svc         *services.Container
	log         logging.Logger
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewApp wires the REPL to svc. Prompts are printed only when interactive.
func NewApp(svc *services.Container, log logging.Logger, in io.Reader, out io.Writer, interactive bool) *App {
	return &App{
		svc:         svc,
		log:         log,
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// Run records the launch, greets first-time users and runs the REPL until
// the user exits.
func (a *App) Run(ctx context.Context) {
	first, err := a.svc.AppState.Launch(ctx)
	if err != nil {
		a.log.Warn(ctx, "could not record launch", "error", err)
	}
	if first {
		fmt.Fprintln(a.out, "Welcome to travelbook! Start with 'addtrip <name>', or type 'help' for commands.")
	} else if a.interactive {
		fmt.Fprintln(a.out, "travelbook (type 'help' for commands)")
	}

	runREPL(ctx, a, a.in, a.out, a.interactive)
}

func (a *App) ask(prompt string) (string, error) {
	return GetSimpleText(a.in, prompt, a.out, a.interactive)
}

func (a *App) askMultiline(prompt string) (string, error) {
	return GetMultiline(a.in, prompt, a.out, a.interactive)
}

// snapshot takes the current value of a live query and stops it.
func snapshot[T any](ctx context.Context, open func(ctx context.Context) <-chan []T) []T {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	select {
	case rows, ok := <-open(ctx):
		if !ok {
			return nil
		}
		return rows
	case <-ctx.Done():
		return nil
	}
}
