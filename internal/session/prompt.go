package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter collects a reply to a daemon prompt.
type Prompter interface {
	// Prompt reads one line of input. When masked is true the input is not
	// echoed, if the input is a terminal.
	Prompt(masked bool) (string, error)
}

// TerminalPrompter reads replies from a file, normally os.Stdin.
type TerminalPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminalPrompter creates a prompter reading from in. Masked input
// echoes a newline to out once the secret is read.
func NewTerminalPrompter(in *os.File, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Prompt implements Prompter. End of input yields an empty reply.
func (p *TerminalPrompter) Prompt(masked bool) (string, error) {
	if masked && term.IsTerminal(int(p.in.Fd())) {
		secret, err := term.ReadPassword(int(p.in.Fd()))
		// The terminal swallowed the user's Enter
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read masked input: %w", err)
		}
		return string(secret), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
