package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface is the command surface the REPL dispatches to. App satisfies it;
// tests can provide a lightweight stub.
type execIface interface {
	Trips(ctx context.Context) error
	AddTrip(ctx context.Context, args []string) error
	RenameTrip(ctx context.Context, args []string) error
	DeleteTrip(ctx context.Context, args []string) error
	Entries(ctx context.Context, args []string) error
	AddEntry(ctx context.Context, args []string) error
	EditEntry(ctx context.Context, args []string) error
	DeleteEntry(ctx context.Context, args []string) error
	Images(ctx context.Context, args []string) error
	AddImage(ctx context.Context, args []string) error
	DeleteImage(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
	Remote(ctx context.Context) error
	RemoteGet(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  trips | addtrip <name> | renametrip <id> <name> | deltrip <id>
  entries <trip id> | addentry <trip id> | editentry <id> | delentry <id>
  images <entry id> | addimage <entry id> <uri> | delimage <id>
  publish <entry id> | remote | remoteget <remote id>
  help | exit`

// runREPL reads one command per line from in and dispatches it to a. Errors
// returned by handlers are printed and the loop goes on. It exits on EOF or
// "exit"/"quit". The prompt is written only when prompt is true.
func runREPL(ctx context.Context, a execIface, in *bufio.Reader, out io.Writer, prompt bool) {
	for {
		if ctx.Err() != nil {
			return
		}
		if prompt {
			fmt.Fprint(out, "travelbook> ")
		}

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			if prompt {
				fmt.Fprintln(out)
			}
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			fmt.Fprintln(out, helpText)
		case "trips":
			cmdErr = a.Trips(ctx)
		case "addtrip":
			cmdErr = a.AddTrip(ctx, args)
		case "renametrip":
			cmdErr = a.RenameTrip(ctx, args)
		case "deltrip":
			cmdErr = a.DeleteTrip(ctx, args)
		case "entries":
			cmdErr = a.Entries(ctx, args)
		case "addentry":
			cmdErr = a.AddEntry(ctx, args)
		case "editentry":
			cmdErr = a.EditEntry(ctx, args)
		case "delentry":
			cmdErr = a.DeleteEntry(ctx, args)
		case "images":
			cmdErr = a.Images(ctx, args)
		case "addimage":
			cmdErr = a.AddImage(ctx, args)
		case "delimage":
			cmdErr = a.DeleteImage(ctx, args)
		case "publish":
			cmdErr = a.Publish(ctx, args)
		case "remote":
			cmdErr = a.Remote(ctx)
		case "remoteget":
			cmdErr = a.RemoteGet(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		default:
			fmt.Fprintln(out, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			var u usageError
			if errors.As(cmdErr, &u) {
				fmt.Fprintln(out, "Usage:", string(u))
			} else {
				fmt.Fprintln(out, "Error:", cmdErr)
			}
		}
	}
}

// usageError reports a malformed command line.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }
