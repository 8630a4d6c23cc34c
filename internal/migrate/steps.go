package migrate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/AsierDev/zero-setup-biome/internal/biome"
	"github.com/AsierDev/zero-setup-biome/internal/cleanup"
	"github.com/AsierDev/zero-setup-biome/internal/config"
	"github.com/AsierDev/zero-setup-biome/internal/detect"
	"github.com/AsierDev/zero-setup-biome/internal/git"
	"github.com/AsierDev/zero-setup-biome/internal/prompt"
	"github.com/AsierDev/zero-setup-biome/internal/report"
)

// Questions asked during a migration.
const (
	QuestionReady          = "Ready to migrate to Biome?"
	QuestionSafetyCommit   = "You have uncommitted changes. Create safety commit before migrating?"
	QuestionTrailingCommas = "Biome doesn't support 'es5' trailing commas. Which style do you want?"
	QuestionRelaxedRules   = "Use relaxed lint rules? (disable noExplicitAny, noConsole, strict a11y)"
	QuestionRemovePackages = "Remove %d ESLint/Prettier packages?" // formatted with the package count
	QuestionScripts        = "Update package.json scripts to use Biome?"
	QuestionReformat       = "Biome may format code differently than Prettier. Apply Biome formatting now?"
)

// Stop reasons other than NothingToMigrate.
const (
	StoppedDryRun    = "dry run"
	StoppedCancelled = "cancelled"
)

func (r *run) detectProject(ctx context.Context) Outcome {
	r.info = detect.Detect(r.opts.Dir, r.UserAgent)
	r.res.Info = r.info
	r.res.Project = r.projectName()

	if r.info.NothingToMigrate() {
		r.Reporter.Warn(NothingToMigrate)
		return stop(NothingToMigrate)
	}
	r.Reporter.Note("Detected setup", detectedLines(r.info))
	return proceed()
}

func (r *run) dryRun(ctx context.Context) Outcome {
	if !r.opts.DryRun {
		return proceed()
	}
	r.res.Plan = r.plan()
	r.Reporter.Note("Dry run: planned actions", r.res.Plan)
	r.Reporter.Outro("Dry run complete. No changes were made.")
	return stop(StoppedDryRun)
}

// plan describes what a real run would do. It only reads the project.
func (r *run) plan() []string {
	var plan []string
	if !r.opts.SkipGit {
		plan = append(plan, "Offer a safety commit if the working tree has changes")
	}
	if !r.opts.SkipInstall && !r.info.HasBiome {
		plan = append(plan, fmt.Sprintf("Install %s with %s", r.pkg, r.info.PackageManager))
	}
	plan = append(plan, "Check Biome version (minimum "+r.minVersion+")")
	if !r.info.HasBiome {
		plan = append(plan, "Create "+biome.ConfigFile)
	}
	if r.info.HasESLint {
		plan = append(plan, "Migrate ESLint config ("+eslintSource(r.info)+")")
	}
	if r.info.HasPrettier {
		plan = append(plan, "Migrate Prettier config ("+prettierSource(r.info)+")")
	}
	plan = append(plan, "Merge ignore patterns and formatter settings into "+biome.ConfigFile)
	if !r.opts.SkipCleanup {
		if deps, err := cleanup.DepsToRemove(r.opts.Dir, r.pkg); err == nil && len(deps) > 0 {
			plan = append(plan, "Remove packages: "+strings.Join(deps, ", "))
		}
		if files, _ := cleanup.RemoveLegacyFiles(r.opts.Dir, true); len(files) > 0 {
			plan = append(plan, "Delete files: "+strings.Join(files, ", "))
		}
	}
	plan = append(plan, "Update package.json scripts: "+strings.Join(cleanup.ScriptNames, ", "))
	plan = append(plan, "Offer to reformat the project with Biome")
	return plan
}

func (r *run) confirm(ctx context.Context) Outcome {
	ans, err := r.Prompter.Confirm(QuestionReady, true)
	if err != nil {
		return abort(fmt.Errorf("confirming migration: %w", err))
	}
	if !prompt.Confirmed(ans) {
		return r.cancel()
	}
	return proceed()
}

// cancel ends the run cleanly after the user cancelled a prompt. Steps that
// already ran are not undone.
func (r *run) cancel() Outcome {
	r.Reporter.Cancel("Migration cancelled")
	return stop(StoppedCancelled)
}

func (r *run) safetyCommit(ctx context.Context) Outcome {
	if r.opts.SkipGit {
		return proceed()
	}

	var (
		promptErr error
		cancelled bool
	)
	committed, err := git.New(r.Runner, r.opts.Dir).SafetyCommit(ctx, func() bool {
		ans, err := r.Prompter.Confirm(QuestionSafetyCommit, true)
		if err != nil {
			promptErr = err
			return false
		}
		cancelled = ans.IsCancelled()
		return prompt.Confirmed(ans)
	})
	if promptErr != nil {
		return abort(fmt.Errorf("confirming safety commit: %w", promptErr))
	}
	if cancelled {
		return r.cancel()
	}
	if err != nil {
		r.Reporter.Warn("Could not create safety commit")
		return warn("safety commit failed: %v", err)
	}
	if committed {
		r.res.SafetyCommit = true
		r.Reporter.Info("Created safety commit")
	}
	return proceed()
}

func (r *run) install(ctx context.Context) Outcome {
	if r.opts.SkipInstall || r.info.HasBiome {
		return proceed()
	}
	args := r.info.PackageManager.AddDevArgs(r.pkg)
	r.Reporter.Start("Installing " + r.pkg)
	if _, err := r.Runner.Run(ctx, r.opts.Dir, args[0], args[1:]...); err != nil {
		r.Reporter.Fail("Failed to install Biome")
		return abort(fmt.Errorf("%w: %w", ErrInstallFailed, err))
	}
	r.res.BiomeInstalled = true
	r.Reporter.Stop("Biome installed")
	return proceed()
}

func (r *run) checkVersion(ctx context.Context) Outcome {
	r.Reporter.Start("Checking Biome version")
	out, err := r.npx(ctx, "--version")
	if err != nil {
		r.Reporter.Fail("Biome is not available")
		return abort(fmt.Errorf("%w: %w", ErrBiomeNotFound, err))
	}
	v, err := biome.CheckVersion(out.Output(), r.minVersion)
	if err != nil {
		r.Reporter.Fail("Unsupported Biome version")
		return abort(err)
	}
	r.res.BiomeVersion = v.String()
	r.Reporter.Stop("Biome " + v.String())
	return proceed()
}

func (r *run) initConfig(ctx context.Context) Outcome {
	if r.info.HasBiome {
		return proceed()
	}
	r.Reporter.Start("Creating " + biome.ConfigFile)
	if _, err := r.npx(ctx, "init"); err != nil {
		r.Reporter.Fail("Failed to create " + biome.ConfigFile)
		return abort(fmt.Errorf("%w: %w", ErrBiomeInitFailed, err))
	}
	r.res.ConfigCreated = true
	r.Reporter.Stop("Created " + biome.ConfigFile)
	return proceed()
}

func (r *run) migrateESLint(ctx context.Context) Outcome {
	if !r.info.HasESLint {
		return proceed()
	}
	r.Reporter.Start("Migrating ESLint config")
	if _, err := r.npx(ctx, "migrate", "eslint", "--include-inspired", "--write"); err != nil {
		r.Reporter.StopWarn("ESLint migration had issues")
		return warn("ESLint migration failed, review lint rules manually: %v", err)
	}
	r.res.ESLintMigrated = true
	r.Reporter.Stop("ESLint config migrated")
	return proceed()
}

func (r *run) migratePrettier(ctx context.Context) Outcome {
	if !r.info.HasPrettier {
		return proceed()
	}
	r.Reporter.Start("Migrating Prettier config")
	if _, err := r.npx(ctx, "migrate", "prettier", "--write"); err != nil {
		r.Reporter.StopWarn("Prettier migration had issues")
		return warn("Prettier migration failed, formatter settings are applied from the legacy config: %v", err)
	}
	r.res.PrettierMigrated = true
	r.Reporter.Stop("Prettier config migrated")
	return proceed()
}

func (r *run) readFormatter(ctx context.Context) Outcome {
	cfg, source, ok := biome.ReadLegacyFormatterConfig(r.opts.Dir)
	if !ok {
		r.logger.Debug("no readable Prettier config", "configured", r.info.PrettierConfig)
		return proceed()
	}
	r.legacy, r.hasLegacy = cfg, true
	r.res.FormatterSource = source
	return proceed()
}

func (r *run) resolveTrailingCommas(ctx context.Context) Outcome {
	if !r.hasLegacy || !r.legacy.NeedsTrailingCommaResolution() {
		return proceed()
	}
	options := []prompt.Option{
		{Value: string(biome.TrailingNone), Label: "No trailing commas", Hint: "Closest to es5 for function arguments"},
		{Value: string(biome.TrailingAll), Label: "All trailing commas", Hint: "Better git diffs"},
	}
	ans, err := r.Prompter.Select(QuestionTrailingCommas, options, string(biome.TrailingNone))
	if err != nil {
		return abort(fmt.Errorf("choosing trailing commas: %w", err))
	}
	if ans.IsCancelled() {
		return r.cancel()
	}
	choice := biome.TrailingCommas(ans.Or(string(biome.TrailingNone)))
	r.resolution = &choice
	return proceed()
}

func (r *run) chooseRelaxedRules(ctx context.Context) Outcome {
	switch r.Config.RelaxedRules {
	case config.RelaxedAlways:
		r.relaxedRules = true
	case config.RelaxedNever:
		r.relaxedRules = false
	default:
		ans, err := r.Prompter.Confirm(QuestionRelaxedRules, true)
		if err != nil {
			return abort(fmt.Errorf("choosing lint rules: %w", err))
		}
		if ans.IsCancelled() {
			return r.cancel()
		}
		r.relaxedRules = prompt.Confirmed(ans)
	}
	return proceed()
}

func (r *run) applyConfig(ctx context.Context) Outcome {
	doc, err := biome.ReadDocument(r.opts.Dir)
	if errors.Is(err, os.ErrNotExist) {
		r.Reporter.Warn(biome.ConfigFile + " not found, skipping customization")
		return warn("%s not found, skipping customization", biome.ConfigFile)
	}
	if err != nil {
		r.Reporter.Warn("Could not parse " + biome.ConfigFile + ", skipping customization")
		return warn("skipping customization: %v", err)
	}

	c := biome.Customization{
		Excludes:     biome.Aggregate(r.opts.Dir, r.Config.ExtraGeneratedFolders),
		Legacy:       r.legacy,
		Resolved:     r.resolution != nil,
		RelaxedRules: r.relaxedRules,
	}
	if r.hasLegacy {
		settings, err := biome.Translate(r.legacy, r.resolution)
		if err != nil {
			return abort(err)
		}
		c.Formatter = &settings
	}

	r.Reporter.Start("Customizing " + biome.ConfigFile)
	if err := doc.Apply(c); err != nil {
		r.Reporter.Fail("Failed to customize " + biome.ConfigFile)
		return abort(fmt.Errorf("customizing %s: %w", biome.ConfigFile, err))
	}
	if err := doc.Write(); err != nil {
		r.Reporter.Fail("Failed to write " + biome.ConfigFile)
		return abort(fmt.Errorf("writing %s: %w", biome.ConfigFile, err))
	}
	r.res.Customized = true
	r.Reporter.Stop(fmt.Sprintf("Customized %s (%d excludes)", biome.ConfigFile, len(c.Excludes)))
	return proceed()
}

func (r *run) validate(ctx context.Context) Outcome {
	r.Reporter.Start("Validating migration")
	r.res.Issues = Validate(r.opts.Dir, r.pkg)

	// Diagnostics are expected right after a migration.
	if _, err := r.npx(ctx, "check", ".", "--max-diagnostics=0"); err != nil {
		r.logger.Debug("biome check reported problems", "err", err)
	}

	if n := len(r.res.Issues); n > 0 {
		r.Reporter.StopWarn(fmt.Sprintf("Validation found %d issues", n))
	} else {
		r.Reporter.Stop("Migration validated")
	}
	return proceed()
}

func (r *run) cleanupLegacy(ctx context.Context) Outcome {
	if r.opts.SkipCleanup {
		return proceed()
	}

	var problems []string

	deps, err := cleanup.DepsToRemove(r.opts.Dir, r.pkg)
	if err != nil {
		r.logger.Debug("reading dependencies for cleanup", "err", err)
	}
	if len(deps) > 0 {
		ans, err := r.Prompter.Confirm(fmt.Sprintf(QuestionRemovePackages, len(deps)), true)
		if err != nil {
			return abort(fmt.Errorf("confirming cleanup: %w", err))
		}
		if ans.IsCancelled() {
			return r.cancel()
		}
		if prompt.Confirmed(ans) {
			r.Reporter.Start(fmt.Sprintf("Removing %d packages", len(deps)))
			if err := cleanup.Uninstall(ctx, r.Runner, r.opts.Dir, r.info.PackageManager, deps); err != nil {
				r.Reporter.StopWarn("Could not remove legacy packages")
				problems = append(problems, err.Error())
			} else {
				r.res.DependenciesRemoved = deps
				r.Reporter.Stop(fmt.Sprintf("Removed %d packages", len(deps)))
			}
		}
	}

	var keep []string
	if r.info.HasESLint && !r.res.ESLintMigrated {
		keep = cleanup.ESLintFiles()
	}
	files, err := cleanup.RemoveLegacyFiles(r.opts.Dir, false, keep...)
	r.res.FilesRemoved = files
	if err != nil {
		r.Reporter.Warn("Could not delete every legacy config file")
		problems = append(problems, err.Error())
	} else if len(files) > 0 {
		r.Reporter.Info("Deleted " + strings.Join(files, ", "))
	}
	if len(keep) > 0 && r.info.ESLintConfig != "" {
		r.Reporter.Info("Kept " + r.info.ESLintConfig + " for manual review")
	}

	if len(problems) > 0 {
		return warn("cleanup incomplete: %s", strings.Join(problems, "; "))
	}
	return proceed()
}

func (r *run) updateScripts(ctx context.Context) Outcome {
	ans, err := r.Prompter.Confirm(QuestionScripts, true)
	if err != nil {
		return abort(fmt.Errorf("confirming script update: %w", err))
	}
	if ans.IsCancelled() {
		return r.cancel()
	}
	if !prompt.Confirmed(ans) {
		r.Reporter.Note("Add these scripts to package.json", report.ScriptsToAdd(cleanup.ScriptNames, cleanup.BiomeScripts))
		return proceed()
	}

	updated, err := cleanup.UpdateScripts(r.opts.Dir)
	if err != nil {
		r.Reporter.Warn("Could not update package.json scripts")
		return warn("updating scripts: %v", err)
	}
	r.res.ScriptsUpdated = updated
	if updated {
		r.Reporter.Info("Updated package.json scripts")
	} else {
		r.Reporter.Info("package.json scripts already use Biome")
	}
	return proceed()
}

func (r *run) reformat(ctx context.Context) Outcome {
	ans, err := r.Prompter.Confirm(QuestionReformat, true)
	if err != nil {
		return abort(fmt.Errorf("confirming reformat: %w", err))
	}
	if ans.IsCancelled() {
		return r.cancel()
	}
	if !prompt.Confirmed(ans) {
		return proceed()
	}

	r.Reporter.Start("Applying Biome formatting")
	_, err = r.npx(ctx, "check", "--write", ".")
	r.res.Reformatted = true
	if err != nil {
		r.Reporter.StopWarn("Formatting applied, some issues need manual fixes")
		return warn("biome check --write left issues to fix by hand")
	}
	r.Reporter.Stop("Formatting applied")
	return proceed()
}

func (r *run) summary(ctx context.Context) Outcome {
	r.res.Duration = time.Since(r.started)
	sum := Summary(r.res)
	r.logger.Debug("migration report", "report", report.FormatReport(sum))

	r.Reporter.Note("Migration summary", report.Lines(sum))
	if len(r.res.Issues) > 0 {
		r.Reporter.Note("Review", r.res.Issues)
	}
	r.Reporter.Outro(fmt.Sprintf("Migration complete! Run `%s` to check your code.", r.info.PackageManager.RunCommand("lint")))
	return proceed()
}

// Summary converts a result into the report model.
func Summary(res *Result) *report.Summary {
	return &report.Summary{
		Project:             res.Project,
		PackageManager:      string(res.Info.PackageManager),
		BiomeVersion:        res.BiomeVersion,
		SafetyCommit:        res.SafetyCommit,
		ESLintMigrated:      res.ESLintMigrated,
		PrettierMigrated:    res.PrettierMigrated,
		FormatterSource:     res.FormatterSource,
		DependenciesRemoved: res.DependenciesRemoved,
		FilesRemoved:        res.FilesRemoved,
		ScriptsUpdated:      res.ScriptsUpdated,
		Reformatted:         res.Reformatted,
		Warnings:            res.Warnings,
		Issues:              res.Issues,
		Duration:            res.Duration,
	}
}

func detectedLines(info detect.ProjectInfo) []string {
	lines := []string{"Package manager: " + string(info.PackageManager)}
	if info.HasESLint {
		lines = append(lines, "ESLint: "+eslintSource(info))
	}
	if info.HasPrettier {
		lines = append(lines, "Prettier: "+prettierSource(info))
	}
	if info.HasBiome {
		lines = append(lines, "Biome: already configured")
	}
	return lines
}

func eslintSource(info detect.ProjectInfo) string {
	if info.ESLintConfig != "" {
		return info.ESLintConfig
	}
	return "package.json#eslintConfig"
}

func prettierSource(info detect.ProjectInfo) string {
	if info.PrettierConfig != "" {
		return info.PrettierConfig
	}
	return biome.ManifestPrettierSource
}
