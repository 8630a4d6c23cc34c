// Package migrate moves a project from ESLint and Prettier to Biome.
//
// A migration is a fixed sequence of steps. Each step returns a tagged
// Outcome and Run folds over them: warnings are collected, a Stop ends the
// run cleanly and an Abort ends it with an error.
package migrate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/AsierDev/zero-setup-biome/internal/biome"
	"github.com/AsierDev/zero-setup-biome/internal/config"
	"github.com/AsierDev/zero-setup-biome/internal/detect"
	"github.com/AsierDev/zero-setup-biome/internal/exec"
	"github.com/AsierDev/zero-setup-biome/internal/manifest"
	"github.com/AsierDev/zero-setup-biome/internal/prompt"
)

var (
	ErrInstallFailed   = errors.New("failed to install Biome")
	ErrBiomeNotFound   = errors.New("biome is not available in this project")
	ErrBiomeInitFailed = errors.New("biome init failed")
	ErrVersionTooOld   = biome.ErrVersionTooOld
)

// NothingToMigrate is the stop reason for a project without ESLint or Prettier.
const NothingToMigrate = "No ESLint or Prettier configuration detected. Nothing to migrate."

// Reporter receives user-facing progress. *ui.Reporter implements it.
type Reporter interface {
	Start(msg string)
	Stop(msg string)
	StopWarn(msg string)
	Fail(msg string)
	Warn(msg string)
	Info(msg string)
	Note(title string, lines []string)
	Outro(msg string)
	Cancel(msg string)
}

// Options are the per-run flags.
type Options struct {
	Dir         string
	SkipInstall bool
	SkipCleanup bool
	SkipGit     bool
	DryRun      bool
}

// Result records what a run did. It is returned even when the run stops or
// aborts part way.
type Result struct {
	Project string
	Info    detect.ProjectInfo

	DryRun  bool
	Plan    []string // planned actions, dry run only
	Stopped string   // reason for a clean early end, "" when the run finished

	SafetyCommit     bool
	BiomeInstalled   bool
	BiomeVersion     string
	ConfigCreated    bool
	ESLintMigrated   bool
	PrettierMigrated bool
	FormatterSource  string // where legacy formatter settings were read from
	Customized       bool   // biome.json was rewritten with the translated settings

	DependenciesRemoved []string
	FilesRemoved        []string
	ScriptsUpdated      bool
	Reformatted         bool

	Warnings []string
	Issues   []string // post-migration validation findings
	Duration time.Duration
}

// Migrator runs migrations. Every collaborator is injected so that a run can
// be driven entirely from tests.
type Migrator struct {
	Runner    exec.Runner
	Prompter  prompt.Prompter
	Reporter  Reporter
	Logger    *slog.Logger
	Config    config.MigrateConfig
	UserAgent string
}

type step struct {
	name string
	run  func(ctx context.Context) Outcome
}

// Run performs one migration of opts.Dir.
func (m *Migrator) Run(ctx context.Context, opts Options) (*Result, error) {
	r := &run{
		Migrator: m,
		opts:     opts,
		logger:   m.Logger,
		res:      &Result{DryRun: opts.DryRun},
		started:  time.Now(),
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	defaults := config.DefaultConfig().Migrate
	r.pkg, r.minVersion = m.Config.BiomePackage, m.Config.MinimumBiomeVersion
	if r.pkg == "" {
		r.pkg = defaults.BiomePackage
	}
	if r.minVersion == "" {
		r.minVersion = defaults.MinimumBiomeVersion
	}

	for _, s := range r.steps() {
		out := s.run(ctx)
		r.logger.Debug("migration step", "step", s.name, "outcome", out.Kind.String(), "message", out.Message)

		switch out.Kind {
		case ContinueWithWarning:
			r.res.Warnings = append(r.res.Warnings, out.Message)
		case Stop:
			r.res.Stopped = out.Message
			r.res.Duration = time.Since(r.started)
			return r.res, nil
		case Abort:
			r.res.Duration = time.Since(r.started)
			r.finished(out.Err)
			return r.res, out.Err
		}
	}

	r.res.Duration = time.Since(r.started)
	r.finished(nil)
	return r.res, nil
}

// run is the state of one migration.
type run struct {
	*Migrator
	opts       Options
	logger     *slog.Logger
	res        *Result
	started    time.Time
	pkg        string
	minVersion string

	info         detect.ProjectInfo
	legacy       biome.LegacyFormatterConfig
	hasLegacy    bool
	resolution   *biome.TrailingCommas
	relaxedRules bool
}

func (r *run) steps() []step {
	return []step{
		{"detect", r.detectProject},
		{"dry-run", r.dryRun},
		{"confirm", r.confirm},
		{"safety-commit", r.safetyCommit},
		{"install", r.install},
		{"version", r.checkVersion},
		{"init", r.initConfig},
		{"migrate-eslint", r.migrateESLint},
		{"migrate-prettier", r.migratePrettier},
		{"read-formatter", r.readFormatter},
		{"trailing-commas", r.resolveTrailingCommas},
		{"relaxed-rules", r.chooseRelaxedRules},
		{"apply-config", r.applyConfig},
		{"validate", r.validate},
		{"cleanup", r.cleanupLegacy},
		{"scripts", r.updateScripts},
		{"reformat", r.reformat},
		{"summary", r.summary},
	}
}

// npx runs the Biome CLI through npx in the project.
func (r *run) npx(ctx context.Context, args ...string) (exec.Result, error) {
	return r.Runner.Run(ctx, r.opts.Dir, "npx", append([]string{r.pkg}, args...)...)
}

func (r *run) projectName() string {
	if m, err := manifest.Read(r.opts.Dir); err == nil && m.Name() != "" {
		return m.Name()
	}
	abs, err := filepath.Abs(r.opts.Dir)
	if err != nil {
		return filepath.Base(r.opts.Dir)
	}
	return filepath.Base(abs)
}

// finished logs how a run that got past detection ended. Nothing is written
// to the project; the audit log belongs to the create flow.
func (r *run) finished(err error) {
	attrs := []any{"project", r.res.Project, "warnings", len(r.res.Warnings), "duration", r.res.Duration}
	if err != nil {
		r.logger.Debug("migration aborted", append(attrs, "err", err)...)
		return
	}
	r.logger.Debug("migration completed", append(attrs,
		"dependencies_removed", len(r.res.DependenciesRemoved),
		"files_removed", len(r.res.FilesRemoved))...)
}
