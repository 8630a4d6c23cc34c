package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Line asks questions on plain line-oriented streams. It is used when stdin
// is not a terminal. End of input cancels the prompt.
type Line struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLine returns a Line prompter reading from in and writing to out.
func NewLine(in io.Reader, out io.Writer) *Line {
	return &Line{in: bufio.NewReader(in), out: out}
}

// readLine returns the trimmed line and false on end of input.
func (l *Line) readLine() (string, bool, error) {
	s, err := l.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if s == "" {
				return "", false, nil
			}
			return strings.TrimSpace(s), true, nil
		}
		return "", false, err
	}
	return strings.TrimSpace(s), true, nil
}

// Confirm implements Prompter.
func (l *Line) Confirm(message string, def bool) (Answer[bool], error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	for {
		fmt.Fprintf(l.out, "? %s (%s) ", message, hint)
		s, ok, err := l.readLine()
		if err != nil {
			return Answer[bool]{}, err
		}
		if !ok {
			return Cancelled[bool](), nil
		}
		switch strings.ToLower(s) {
		case "":
			return Answered(def), nil
		case "y", "yes":
			return Answered(true), nil
		case "n", "no":
			return Answered(false), nil
		}
		fmt.Fprintln(l.out, "  Please answer y or n.")
	}
}

// Select implements Prompter. The user types the option number or value.
func (l *Line) Select(message string, options []Option, def string) (Answer[string], error) {
	if len(options) == 0 {
		return Answer[string]{}, errors.New("select prompt has no options")
	}
	defIdx := IndexOf(options, def)
	if defIdx < 0 {
		defIdx = 0
	}

	fmt.Fprintf(l.out, "? %s\n", message)
	for i, o := range options {
		marker := " "
		if i == defIdx {
			marker = ">"
		}
		line := fmt.Sprintf("  %s %d) %s", marker, i+1, o.Display())
		if o.Hint != "" {
			line += " (" + o.Hint + ")"
		}
		fmt.Fprintln(l.out, line)
	}

	for {
		fmt.Fprintf(l.out, "  Choice [%d]: ", defIdx+1)
		s, ok, err := l.readLine()
		if err != nil {
			return Answer[string]{}, err
		}
		if !ok {
			return Cancelled[string](), nil
		}
		if s == "" {
			return Answered(options[defIdx].Value), nil
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(options) {
			return Answered(options[n-1].Value), nil
		}
		if i := IndexOf(options, s); i >= 0 {
			return Answered(options[i].Value), nil
		}
		fmt.Fprintf(l.out, "  Enter a number between 1 and %d.\n", len(options))
	}
}

// Text implements Prompter. Invalid input is reported and asked again.
func (l *Line) Text(message, def string, validate Validator) (Answer[string], error) {
	for {
		if def != "" {
			fmt.Fprintf(l.out, "? %s [%s]: ", message, def)
		} else {
			fmt.Fprintf(l.out, "? %s: ", message)
		}
		s, ok, err := l.readLine()
		if err != nil {
			return Answer[string]{}, err
		}
		if !ok {
			return Cancelled[string](), nil
		}
		if s == "" {
			s = def
		}
		if validate != nil {
			if err := validate(s); err != nil {
				fmt.Fprintf(l.out, "  %v\n", err)
				continue
			}
		}
		return Answered(s), nil
	}
}
