// Package git wraps the Git operations used by zero-setup-biome.
// This file checks for git and inspects the working tree.
package git

import (
	"context"
	"errors"
	"strings"

	"github.com/AsierDev/zero-setup-biome/internal/exec"
)

var (
	ErrGitNotFound = errors.New("git not found in PATH")
	ErrNotARepo    = errors.New("not a git repository")
)

// Repo runs git commands in one directory through a Runner.
type Repo struct {
	runner exec.Runner
	dir    string
}

// New returns a Repo for dir.
func New(runner exec.Runner, dir string) *Repo {
	return &Repo{runner: runner, dir: dir}
}

// Dir returns the working directory.
func (r *Repo) Dir() string {
	return r.dir
}

// git runs one git command and maps a missing binary to ErrGitNotFound.
func (r *Repo) git(ctx context.Context, args ...string) (exec.Result, error) {
	res, err := r.runner.Run(ctx, r.dir, "git", args...)
	var perr *exec.ProcessError
	if errors.As(err, &perr) && perr.ExitCode < 0 {
		return res, ErrGitNotFound
	}
	return res, err
}

// Available reports whether git can be run.
// Shells out to: git --version
func (r *Repo) Available(ctx context.Context) bool {
	_, err := r.git(ctx, "--version")
	return err == nil
}

// IsRepo reports whether dir is inside a git work tree.
// Shells out to: git rev-parse --is-inside-work-tree
func (r *Repo) IsRepo(ctx context.Context) bool {
	res, err := r.git(ctx, "rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(res.Stdout) == "true"
}

// HasChanges returns true if the working tree has uncommitted changes.
// Shells out to: git status --porcelain
func (r *Repo) HasChanges(ctx context.Context) (bool, error) {
	res, err := r.git(ctx, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(res.Stdout) != "", nil
}
