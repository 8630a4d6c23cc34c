package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AsierDev/zero-setup-biome/internal/migrate"
)

var migrateFlags struct {
	skipInstall bool
	skipCleanup bool
	skipGit     bool
	dryRun      bool
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Replace ESLint and Prettier with Biome in the current project",
	Long: `Migrate installs Biome, converts the project's ESLint and Prettier
configuration, removes the legacy packages and config files, and points the
package.json scripts at Biome. A safety commit is offered first when the
project is a git repository with uncommitted changes.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateFlags.skipInstall, "skip-install", false, "Do not install Biome")
	migrateCmd.Flags().BoolVar(&migrateFlags.skipCleanup, "skip-cleanup", false, "Keep ESLint and Prettier packages and config files")
	migrateCmd.Flags().BoolVar(&migrateFlags.skipGit, "skip-git", false, "Do not offer a safety commit")
	migrateCmd.Flags().BoolVar(&migrateFlags.dryRun, "dry-run", false, "Show what would change without touching anything")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	d := setup(dir)
	d.reporter.Intro("zero-setup-biome migrate")

	m := &migrate.Migrator{
		Runner:    d.runner,
		Prompter:  d.prompter,
		Reporter:  d.reporter,
		Logger:    d.logger,
		Config:    d.cfg.Migrate,
		UserAgent: d.env.UserAgent,
	}
	if _, err := m.Run(cmd.Context(), migrate.Options{
		Dir:         dir,
		SkipInstall: migrateFlags.skipInstall,
		SkipCleanup: migrateFlags.skipCleanup,
		SkipGit:     migrateFlags.skipGit,
		DryRun:      migrateFlags.dryRun,
	}); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
