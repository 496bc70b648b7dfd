// Package prompt isolates every human interaction behind a single blocking
// call: show a message, read one line back.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidInput indicates a line that a parser does not recognize. Ask re-prompts on it.
	ErrInvalidInput = errors.New("unrecognized input")
	// ErrInputClosed indicates the input stream ended before a line was read.
	ErrInputClosed = errors.New("input closed")
)

// Prompter asks for a single line of text.
type Prompter interface {
	// Line writes message and returns the response with surrounding whitespace trimmed.
	Line(message string) (string, error)
}

// Terminal reads responses from in and writes prompts to out.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a Prompter over the given streams, normally stdin and stdout.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Line prints message and reads up to the next newline. A final line without
// a newline is still returned; EOF with nothing read is ErrInputClosed.
func (t *Terminal) Line(message string) (string, error) {
	if _, err := io.WriteString(t.out, message); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}

	line, err := t.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			fmt.Fprintln(t.out)
			return "", ErrInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

// Script answers prompts from a fixed list, recording every message it was shown.
type Script struct {
	answers []string
	// Messages holds each prompt in the order it was asked.
	Messages []string
}

// NewScript creates a Prompter that replies with answers in order.
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Line returns the next scripted answer, trimmed, or ErrInputClosed when none remain.
func (s *Script) Line(message string) (string, error) {
	s.Messages = append(s.Messages, message)
	if len(s.answers) == 0 {
		return "", ErrInputClosed
	}
	next := s.answers[0]
	s.answers = s.answers[1:]
	return strings.TrimSpace(next), nil
}

// Remaining reports how many scripted answers are unused.
func (s *Script) Remaining() int {
	return len(s.answers)
}

// Ask prompts until parse accepts the response. An empty response yields def
// when def is non-nil. Parse errors wrapping ErrInvalidInput cause a re-prompt
// prefixed with the error text; any other error is returned.
func Ask[T any](p Prompter, message string, parse func(string) (T, error), def *T) (T, error) {
	msg := message
	for {
		line, err := p.Line(msg)
		if err != nil {
			var zero T
			return zero, err
		}
		if line == "" && def != nil {
			return *def, nil
		}

		v, err := parse(line)
		if err == nil {
			return v, nil
		}
		if !errors.Is(err, ErrInvalidInput) {
			var zero T
			return zero, err
		}
		msg = err.Error() + "\n" + message
	}
}
