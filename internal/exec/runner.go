// Package exec provides a stub-friendly interface for running external commands.
package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Result holds the captured output of a finished command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Output returns stdout if it is non-empty, otherwise stderr.
func (r Result) Output() string {
	if out := strings.TrimSpace(r.Stdout); out != "" {
		return out
	}
	return strings.TrimSpace(r.Stderr)
}

// ProcessError is returned when a command could not be started or exited
// non-zero. ExitCode is -1 when the process never ran.
type ProcessError struct {
	Name     string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ProcessError) Error() string {
	cmdline := strings.TrimSpace(e.Name + " " + strings.Join(e.Args, " "))
	detail := strings.TrimSpace(e.Stderr)
	if detail == "" {
		detail = strings.TrimSpace(e.Stdout)
	}
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %v", cmdline, e.Err)
	}
	if detail != "" {
		return fmt.Sprintf("%s: exit status %d: %s", cmdline, e.ExitCode, detail)
	}
	return fmt.Sprintf("%s: exit status %d", cmdline, e.ExitCode)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Runner is the process-invocation collaborator.
// Run blocks until the child exits. A non-zero exit is reported as a
// *ProcessError alongside the captured Result.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// OSRunner runs commands with os/exec.
type OSRunner struct {
	// Env is appended to the inherited environment.
	Env []string
}

// NewOSRunner creates an OSRunner with extra environment entries.
func NewOSRunner(env ...string) *OSRunner {
	return &OSRunner{Env: env}
}

// Run executes name with args in dir and captures stdout/stderr.
func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	perr := &ProcessError{
		Name:     name,
		Args:     args,
		ExitCode: -1,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		perr.ExitCode = result.ExitCode
	} else {
		result.ExitCode = -1
	}
	return result, perr
}
