// Package session relays one command between the user's terminal and the
// Zowe daemon: it sends the command line, renders the daemon's output as it
// arrives, answers prompts, and reports the daemon's exit code.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"

	"github.com/zowe/zowex/internal/protocol"
)

// Session is a single command exchange over a daemon connection.
// It is not safe for concurrent use.
type Session struct {
	conn     net.Conn
	reader   *bufio.Reader
	out      io.Writer
	prompter Prompter
	logger   *slog.Logger

	// headers is the most recent complete header block.
	headers protocol.HeaderSet
}

// New creates a session over conn. Daemon output is written to out and
// prompts are answered with prompter.
func New(conn net.Conn, out io.Writer, prompter Prompter, logger *slog.Logger) *Session {
	return &Session{
		conn:     conn,
		reader:   bufio.NewReader(conn),
		out:      out,
		prompter: prompter,
		logger:   logger,
		headers:  protocol.HeaderSet{},
	}
}

// Send writes the initial payload in a single write.
func (s *Session) Send(payload []byte) error {
	if len(payload) == 0 {
		payload = []byte(" ")
	}
	if _, err := s.conn.Write(payload); err != nil {
		return fmt.Errorf("failed to send command to daemon: %w", err)
	}
	s.logger.Debug("sent command", "bytes", len(payload))
	return nil
}

// Run reads daemon output until end of stream and returns the exit code the
// daemon reported, or 0. The connection is shut down and closed before Run
// returns.
func (s *Session) Run() (int, error) {
	defer s.shutdown()

	for {
		line, err := s.reader.ReadString('\n')
		if line != "" {
			if herr := s.handleLine(line); herr != nil {
				return 0, herr
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read from daemon: %w", err)
		}
	}

	exit := s.headers.Exit()
	s.logger.Debug("daemon closed the connection", "exit", exit)
	return exit, nil
}

// Headers returns a copy of the current header block.
func (s *Session) Headers() protocol.HeaderSet {
	return s.headers.Clone()
}

func (s *Session) handleLine(line string) error {
	pieces := protocol.SplitLine(line)
	leading, segment := "", pieces[0]
	if len(pieces) > 1 {
		leading, segment = pieces[0], pieces[1]
	}

	fresh := protocol.ParseHeaders(segment)
	if !fresh.IsEmpty() {
		s.logger.Debug("received headers",
			"exit", fresh.Exit(), "prompt", fresh.Prompt(), "progress", fresh.Progress())
		s.headers = fresh
	}

	switch {
	case s.headers.IsEmpty():
		return s.print(line)
	case fresh.IsEmpty():
		if s.headers.Progress() != 0 {
			return s.print(stripNewline(line))
		}
		return s.print(line)
	case leading != "":
		if err := s.print(leading); err != nil {
			return err
		}
		return s.answerPrompt()
	}
	return nil
}

func (s *Session) answerPrompt() error {
	prompt := s.headers.Prompt()
	if prompt == protocol.PromptNone {
		return nil
	}

	input, err := s.prompter.Prompt(prompt == protocol.PromptMasked)
	if err != nil {
		return err
	}
	s.headers[protocol.HeaderPrompt] = protocol.PromptNone

	if _, err := io.WriteString(s.conn, protocol.FormatReply(input)); err != nil {
		return fmt.Errorf("failed to send reply to daemon: %w", err)
	}
	s.logger.Debug("answered prompt", "masked", prompt == protocol.PromptMasked)
	return nil
}

func (s *Session) print(text string) error {
	if _, err := io.WriteString(s.out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// shutdown half-closes both directions, then releases the connection.
func (s *Session) shutdown() {
	if cr, ok := s.conn.(interface{ CloseRead() error }); ok {
		_ = cr.CloseRead()
	}
	if cw, ok := s.conn.(interface{ CloseWrite() error }); ok {
		_ = cw.CloseWrite()
	}
	if err := s.conn.Close(); err != nil {
		s.logger.Debug("failed to close connection", "error", err)
	}
}

// stripNewline removes one trailing line ending, "\n" or "\r\n".
func stripNewline(line string) string {
	if trimmed, ok := strings.CutSuffix(line, "\n"); ok {
		return strings.TrimSuffix(trimmed, "\r")
	}
	return line
}
