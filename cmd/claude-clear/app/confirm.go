package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Confirmer answers a yes/no question put to the user. The cleaning
// pipeline calls it synchronously before touching a small file; tests
// supply a fixed answer instead of terminal I/O.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// TerminalConfirmer prompts on Out and reads a single line from In.
// Anything other than "y" or "yes" (case-insensitive) is a decline.
type TerminalConfirmer struct {
	In  io.Reader
	Out io.Writer
}

func (c *TerminalConfirmer) Confirm(prompt string) (bool, error) {
	fmt.Fprint(c.Out, prompt)

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// StaticConfirmer always answers with a fixed value.
type StaticConfirmer bool

func (c StaticConfirmer) Confirm(string) (bool, error) {
	return bool(c), nil
}
