// commit.go creates the safety and initial commits.
package git

import (
	"context"
	"fmt"
)

// Commit messages written by the tool.
const (
	SafetyCommitMessage  = "chore: backup before Biome migration"
	InitialCommitMessage = "Initial commit from zero-setup-biome"
)

// CommitAll stages every change with addArgs and commits with hooks
// disabled.
func (r *Repo) CommitAll(ctx context.Context, message string, addArgs ...string) error {
	if len(addArgs) == 0 {
		addArgs = []string{"."}
	}
	if _, err := r.git(ctx, append([]string{"add"}, addArgs...)...); err != nil {
		return fmt.Errorf("git add: %w", err)
	}
	if _, err := r.git(ctx, "commit", "-m", message, "--no-verify"); err != nil {
		return fmt.Errorf("git commit: %w", err)
	}
	return nil
}

// SafetyCommit commits all pending changes before a migration.
// Returns false without error when dir is not a repo, is clean, or confirm
// declines. A nil confirm always commits.
func (r *Repo) SafetyCommit(ctx context.Context, confirm func() bool) (bool, error) {
	if !r.IsRepo(ctx) {
		return false, nil
	}
	has, err := r.HasChanges(ctx)
	if err != nil || !has {
		return false, err
	}
	if confirm != nil && !confirm() {
		return false, nil
	}
	if err := r.CommitAll(ctx, SafetyCommitMessage, "."); err != nil {
		return false, err
	}
	return true, nil
}

// Init creates a repository in dir and commits everything in it.
// Shells out to: git init; git add -A; git commit
func (r *Repo) Init(ctx context.Context) error {
	if !r.Available(ctx) {
		return ErrGitNotFound
	}
	if _, err := r.git(ctx, "init"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return r.CommitAll(ctx, InitialCommitMessage, "-A")
}
