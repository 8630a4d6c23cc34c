// Package cli defines Cobra command definitions for the zero-setup-biome CLI.
// This file contains the root command, which creates a new project.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AsierDev/zero-setup-biome/internal/detect"
	"github.com/AsierDev/zero-setup-biome/internal/scaffold"
	"github.com/AsierDev/zero-setup-biome/templates"
)

var (
	debug     bool
	assumeYes bool
	version   = "dev" // set via ldflags at build time
)

var createFlags struct {
	template    string
	skipInstall bool
	skipGit     bool
	pm          string
}

var rootCmd = &cobra.Command{
	Use:   "zero-setup-biome [project-name]",
	Short: "Create React projects preconfigured with Biome",
	Long: `zero-setup-biome scaffolds a React + TypeScript project that uses Biome
for linting and formatting. Run "zero-setup-biome migrate" inside an existing
project to replace ESLint and Prettier with Biome.`,
	Args:          cobra.MaximumNArgs(1),
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runCreate,
}

// Execute runs the root command. Called from main.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Accept the default answer to every question")

	rootCmd.Flags().StringVarP(&createFlags.template, "template", "t", "", "Template to use ("+strings.Join(templates.Names(), ", ")+")")
	rootCmd.Flags().BoolVar(&createFlags.skipInstall, "skip-install", false, "Skip dependency installation")
	rootCmd.Flags().BoolVar(&createFlags.skipGit, "skip-git", false, "Skip git initialization")
	rootCmd.Flags().StringVar(&createFlags.pm, "pm", "", "Package manager to use (npm, pnpm, yarn, bun)")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(initCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	var pm detect.PackageManager
	if createFlags.pm != "" {
		if pm, err = detect.ParsePackageManager(createFlags.pm); err != nil {
			return err
		}
	}

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	d := setup(cwd)
	d.reporter.Intro("zero-setup-biome")

	creator := &scaffold.Creator{
		Runner:    d.runner,
		Prompter:  d.prompter,
		Reporter:  d.reporter,
		Logger:    d.logger,
		Audit:     d.audit,
		UserAgent: d.env.UserAgent,
	}
	_, err = creator.Create(cmd.Context(), scaffold.Options{
		Dir:            cwd,
		Name:           name,
		Template:       createFlags.template,
		SkipInstall:    createFlags.skipInstall,
		SkipGit:        createFlags.skipGit,
		PackageManager: pm,
	})
	return err
}
