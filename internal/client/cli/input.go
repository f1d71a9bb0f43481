package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// isTerminal is a test seam for term.IsTerminal.
var isTerminal = term.IsTerminal

// IsInteractive reports whether f is a terminal, in which case prompts
// are worth printing.
func IsInteractive(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}

// GetSimpleText optionally prints a prompt to w and reads a single line from
// reader. The line is trimmed. If EOF occurs after some input was read, the
// partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer, show bool) (string, error) {
	if show {
		if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
			return "", err
		}
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetMultiline reads lines until an empty one and joins them with '\n'.
func GetMultiline(reader *bufio.Reader, prompt string, w io.Writer, show bool) (string, error) {
	if show {
		if _, err := fmt.Fprint(w, prompt+"\n(press Enter on an empty line to finish)\n"); err != nil {
			return "", err
		}
	}

	var lines []string
	for {
		line, err := reader.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if err != nil && len(lines) == 0 {
				return "", err
			}
			break
		}
		lines = append(lines, line)
		if err != nil {
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}

// parseID reads args[i] as a positive integer id.
func parseID(args []string, i int, usage string) (int64, error) {
	if len(args) <= i {
		return 0, usageError(usage)
	}
	id, err := strconv.ParseInt(args[i], 10, 64)
	if err != nil || id <= 0 {
		return 0, usageError(usage)
	}
	return id, nil
}
