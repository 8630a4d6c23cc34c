package migrate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/AsierDev/zero-setup-biome/internal/biome"
	"github.com/AsierDev/zero-setup-biome/internal/config"
	"github.com/AsierDev/zero-setup-biome/internal/exec"
	"github.com/AsierDev/zero-setup-biome/internal/jsondoc"
	"github.com/AsierDev/zero-setup-biome/internal/manifest"
	"github.com/AsierDev/zero-setup-biome/internal/prompt"
	"github.com/AsierDev/zero-setup-biome/internal/testutil"
	"github.com/AsierDev/zero-setup-biome/internal/ui"
)

const (
	cmdInstall  = "npm install -D @biomejs/biome"
	cmdVersion  = "npx @biomejs/biome --version"
	cmdInit     = "npx @biomejs/biome init"
	cmdESLint   = "npx @biomejs/biome migrate eslint --include-inspired --write"
	cmdPrettier = "npx @biomejs/biome migrate prettier --write"
	cmdCheck    = "npx @biomejs/biome check . --max-diagnostics=0"
	cmdReformat = "npx @biomejs/biome check --write ."
)

// newRunner returns a runner where Biome 1.9.4 is available and `biome init`
// writes a minimal biome.json.
func newRunner() *exec.FakeRunner {
	return exec.NewFakeRunner().
		On(cmdVersion, exec.Result{Stdout: "Version: 1.9.4\n"}).
		Effect(cmdInit, func(dir string) {
			_ = os.WriteFile(filepath.Join(dir, biome.ConfigFile),
				[]byte(`{"$schema": "https://biomejs.dev/schemas/1.9.4/schema.json"}`), 0644)
		})
}

func newMigrator(runner exec.Runner, p prompt.Prompter, out *bytes.Buffer) *Migrator {
	return &Migrator{
		Runner:   runner,
		Prompter: p,
		Reporter: ui.NewReporter(out, false),
		Config:   config.DefaultConfig().Migrate,
	}
}

func lookupString(t *testing.T, dir string, keys ...string) string {
	t.Helper()
	doc, err := biome.ReadDocument(dir)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	v := doc.JSON().Get(jsondoc.Path(keys...))
	if !v.Exists() {
		t.Fatalf("%s missing from biome.json", strings.Join(keys, "."))
	}
	return v.String()
}

func TestRun_NothingToMigrate(t *testing.T) {
	dir := testutil.TempProject(t, testutil.CleanProject())
	before := testutil.Snapshot(t, dir)

	runner := exec.NewFakeRunner()
	p := &prompt.Scripted{}
	var out bytes.Buffer
	res, err := newMigrator(runner, p, &out).Run(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Stopped != NothingToMigrate {
		t.Errorf("Stopped = %q, want %q", res.Stopped, NothingToMigrate)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("ran commands %v, want none", runner.Commands())
	}
	if len(p.Asked) != 0 {
		t.Errorf("asked %v, want no questions", p.Asked)
	}
	if after := testutil.Snapshot(t, dir); !reflect.DeepEqual(before, after) {
		t.Errorf("project changed: before %v, after %v", testutil.SortedKeys(before), testutil.SortedKeys(after))
	}
	if !strings.Contains(out.String(), "Nothing to migrate") {
		t.Errorf("output does not explain the stop:\n%s", out.String())
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	before := testutil.Snapshot(t, dir)

	runner := newRunner()
	p := &prompt.Scripted{}
	var out bytes.Buffer
	res, err := newMigrator(runner, p, &out).Run(context.Background(), Options{Dir: dir, DryRun: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Stopped != StoppedDryRun {
		t.Errorf("Stopped = %q, want %q", res.Stopped, StoppedDryRun)
	}
	if len(runner.Calls) != 0 {
		t.Errorf("dry run ran commands %v", runner.Commands())
	}
	if after := testutil.Snapshot(t, dir); !reflect.DeepEqual(before, after) {
		t.Error("dry run changed the project")
	}

	plan := strings.Join(res.Plan, "\n")
	for _, want := range []string{
		"Install @biomejs/biome with npm",
		"Migrate ESLint config (.eslintrc.json)",
		"Migrate Prettier config (.prettierrc.json)",
		"Remove packages: ",
		".eslintignore",
	} {
		if !strings.Contains(plan, want) {
			t.Errorf("plan missing %q:\n%s", want, plan)
		}
	}
}

func TestRun_DryRunRespectsSkipFlags(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	res, err := newMigrator(newRunner(), &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{
		Dir:         dir,
		DryRun:      true,
		SkipInstall: true,
		SkipCleanup: true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	plan := strings.Join(res.Plan, "\n")
	for _, unwanted := range []string{"Install", "Remove packages", "Delete files"} {
		if strings.Contains(plan, unwanted) {
			t.Errorf("plan contains %q despite skip flags:\n%s", unwanted, plan)
		}
	}
}

func TestRun_CancelAtConfirmGate(t *testing.T) {
	tests := []struct {
		name   string
		answer prompt.Answer[bool]
	}{
		{"cancelled", prompt.Cancelled[bool]()},
		{"declined", prompt.Answered(false)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.TempProject(t, testutil.LegacyProject())
			before := testutil.Snapshot(t, dir)

			runner := newRunner()
			p := &prompt.Scripted{Confirms: []prompt.Answer[bool]{tt.answer}}
			res, err := newMigrator(runner, p, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir})
			if err != nil {
				t.Fatalf("Run returned error for a user abort: %v", err)
			}
			if res.Stopped != StoppedCancelled {
				t.Errorf("Stopped = %q, want %q", res.Stopped, StoppedCancelled)
			}
			if len(runner.Calls) != 0 {
				t.Errorf("ran %v after the user declined", runner.Commands())
			}
			if after := testutil.Snapshot(t, dir); !reflect.DeepEqual(before, after) {
				t.Error("project changed after the user declined")
			}
		})
	}
}

func TestRun_LegacyProject(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner()
	p := &prompt.Scripted{}

	res, err := newMigrator(runner, p, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if res.Stopped != "" {
		t.Errorf("Stopped = %q, want a finished run", res.Stopped)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	for _, cmd := range []string{cmdInstall, cmdVersion, cmdInit, cmdESLint, cmdPrettier, cmdCheck, cmdReformat} {
		if !runner.Ran(cmd) {
			t.Errorf("did not run %q; ran %v", cmd, runner.Commands())
		}
	}
	if !res.BiomeInstalled || !res.ConfigCreated || !res.ESLintMigrated || !res.PrettierMigrated {
		t.Errorf("result flags = %+v, want install, init and both migrations", res)
	}
	if res.BiomeVersion != "1.9.4" {
		t.Errorf("BiomeVersion = %q, want 1.9.4", res.BiomeVersion)
	}
	if res.FormatterSource != ".prettierrc.json" {
		t.Errorf("FormatterSource = %q, want .prettierrc.json", res.FormatterSource)
	}

	// Formatter settings translated from .prettierrc.json.
	if got := lookupString(t, dir, "javascript", "formatter", "quoteStyle"); got != "single" {
		t.Errorf("quoteStyle = %q, want single", got)
	}
	if got := lookupString(t, dir, "javascript", "formatter", "semicolons"); got != "asNeeded" {
		t.Errorf("semicolons = %q, want asNeeded", got)
	}
	if got := lookupString(t, dir, "javascript", "formatter", "trailingCommas"); got != "all" {
		t.Errorf("trailingCommas = %q, want all", got)
	}
	if got := lookupString(t, dir, "linter", "rules", "suspicious", "noExplicitAny"); got != "off" {
		t.Errorf("noExplicitAny = %q, want off", got)
	}

	doc, err := biome.ReadDocument(dir)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	includes := doc.Includes()
	if len(includes) == 0 || includes[0] != "**" {
		t.Errorf("Includes() = %v, want a leading **", includes)
	}
	for _, want := range []string{"!storybook-static", "!**/node_modules/**"} {
		found := false
		for _, inc := range includes {
			found = found || inc == want
		}
		if !found {
			t.Errorf("Includes() = %v, missing %q", includes, want)
		}
	}

	// Cleanup removed only legacy packages and files.
	removed := strings.Join(res.DependenciesRemoved, " ")
	for _, want := range []string{"eslint", "prettier", "@typescript-eslint/parser"} {
		if !strings.Contains(removed, want) {
			t.Errorf("DependenciesRemoved = %v, missing %s", res.DependenciesRemoved, want)
		}
	}
	for _, kept := range res.DependenciesRemoved {
		if kept == "typescript" || kept == "react" {
			t.Errorf("DependenciesRemoved includes %s", kept)
		}
	}
	for _, name := range []string{".eslintrc.json", ".prettierrc.json", ".eslintignore", ".prettierignore"} {
		if _, err := os.Stat(filepath.Join(dir, name)); !os.IsNotExist(err) {
			t.Errorf("%s still exists after cleanup", name)
		}
	}

	pkg, err := manifest.Read(dir)
	if err != nil {
		t.Fatalf("manifest.Read failed: %v", err)
	}
	if lint, _ := pkg.Script("lint"); lint != "biome check ." {
		t.Errorf("lint script = %q, want biome check .", lint)
	}
	if build, _ := pkg.Script("build"); build != "tsc && vite build" {
		t.Errorf("build script = %q, want it untouched", build)
	}
	if !res.ScriptsUpdated || !res.Reformatted {
		t.Errorf("ScriptsUpdated = %v, Reformatted = %v; want both true", res.ScriptsUpdated, res.Reformatted)
	}

	if _, err := os.Stat(filepath.Join(dir, config.Dir)); !os.IsNotExist(err) {
		t.Errorf("%s created inside the migrated project", config.Dir)
	}
}

func TestRun_InstallFailureAborts(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner().On(cmdInstall, exec.Result{ExitCode: 1, Stderr: "ERR! network"})

	_, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir})
	if !errors.Is(err, ErrInstallFailed) {
		t.Fatalf("Run error = %v, want ErrInstallFailed", err)
	}
	if runner.Ran(cmdVersion) || runner.Ran(cmdInit) {
		t.Errorf("ran %v after the install failed", runner.Commands())
	}
	if _, err := os.Stat(filepath.Join(dir, ".eslintrc.json")); err != nil {
		t.Error("legacy config removed after an aborted run")
	}
	if _, err := os.Stat(filepath.Join(dir, config.Dir)); !os.IsNotExist(err) {
		t.Errorf("%s created by an aborted run", config.Dir)
	}
}

func TestRun_VersionChecks(t *testing.T) {
	tests := []struct {
		name    string
		runner  *exec.FakeRunner
		wantErr error
	}{
		{
			name:    "below minimum",
			runner:  exec.NewFakeRunner().On(cmdVersion, exec.Result{Stdout: "Version: 1.5.3"}),
			wantErr: ErrVersionTooOld,
		},
		{
			name:    "not installed",
			runner:  exec.NewFakeRunner().Fail(cmdVersion, os.ErrNotExist),
			wantErr: ErrBiomeNotFound,
		},
		{
			name:    "unparseable output",
			runner:  exec.NewFakeRunner().On(cmdVersion, exec.Result{Stdout: "biome nightly"}),
			wantErr: biome.ErrNoVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.TempProject(t, testutil.BiomeProject())
			before := testutil.Snapshot(t, dir)

			_, err := newMigrator(tt.runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir, SkipGit: true})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Run error = %v, want %v", err, tt.wantErr)
			}
			if tt.runner.Ran(cmdPrettier) {
				t.Error("migrated Prettier after the version check failed")
			}
			if after := testutil.Snapshot(t, dir); !reflect.DeepEqual(before, after) {
				t.Error("project changed after the version check failed")
			}
		})
	}
}

func TestRun_InitFailureAborts(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := exec.NewFakeRunner().
		On(cmdVersion, exec.Result{Stdout: "1.9.4"}).
		On(cmdInit, exec.Result{ExitCode: 1})

	_, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir})
	if !errors.Is(err, ErrBiomeInitFailed) {
		t.Fatalf("Run error = %v, want ErrBiomeInitFailed", err)
	}
	if runner.Ran(cmdESLint) {
		t.Error("migrated ESLint after init failed")
	}
}

func TestRun_LegacyMigrationFailuresAreWarnings(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner().
		On(cmdESLint, exec.Result{ExitCode: 1, Stderr: "unsupported plugin"}).
		On(cmdPrettier, exec.Result{ExitCode: 1, Stderr: "cannot load config"})

	res, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ESLintMigrated || res.PrettierMigrated {
		t.Errorf("ESLintMigrated = %v, PrettierMigrated = %v; want both false", res.ESLintMigrated, res.PrettierMigrated)
	}
	if len(res.Warnings) != 2 {
		t.Fatalf("Warnings = %v, want 2", res.Warnings)
	}
	if !strings.Contains(res.Warnings[0], "ESLint") || !strings.Contains(res.Warnings[1], "Prettier") {
		t.Errorf("Warnings = %v, want ESLint then Prettier", res.Warnings)
	}
	// The run carries on and still applies the legacy formatter settings.
	if !res.Customized || !res.ScriptsUpdated {
		t.Errorf("Customized = %v, ScriptsUpdated = %v; want the run to finish", res.Customized, res.ScriptsUpdated)
	}
	if got := lookupString(t, dir, "javascript", "formatter", "quoteStyle"); got != "single" {
		t.Errorf("quoteStyle = %q, want single", got)
	}
}

func TestRun_TrailingCommaResolution(t *testing.T) {
	tests := []struct {
		name   string
		answer prompt.Answer[string]
		want   string // "" when the run stops at the question
	}{
		{"all chosen", prompt.Answered("all"), "all"},
		{"none chosen", prompt.Answered("none"), "none"},
		{"cancelled", prompt.Cancelled[string](), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.TempProject(t, testutil.BiomeProject())
			p := &prompt.Scripted{Selects: []prompt.Answer[string]{tt.answer}}

			res, err := newMigrator(newRunner(), p, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir, SkipGit: true})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			asked := false
			for _, q := range p.Asked {
				asked = asked || q == QuestionTrailingCommas
			}
			if !asked {
				t.Errorf("es5 config did not trigger the trailing comma question; asked %v", p.Asked)
			}
			if tt.want == "" {
				if res.Stopped != StoppedCancelled {
					t.Errorf("Stopped = %q, want %q", res.Stopped, StoppedCancelled)
				}
				doc, _ := biome.ReadDocument(dir)
				if doc.JSON().Has("javascript.formatter.trailingCommas") {
					t.Error("trailingCommas written after the question was cancelled")
				}
				return
			}
			if got := lookupString(t, dir, "javascript", "formatter", "trailingCommas"); got != tt.want {
				t.Errorf("trailingCommas = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRun_KeepsExistingBiomeConfig(t *testing.T) {
	dir := testutil.TempProject(t, testutil.BiomeProject())
	runner := newRunner()

	res, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir, SkipGit: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if runner.Ran(cmdInstall) || runner.Ran(cmdInit) {
		t.Errorf("installed or initialised Biome that was already configured: %v", runner.Commands())
	}
	if res.BiomeInstalled || res.ConfigCreated {
		t.Errorf("BiomeInstalled = %v, ConfigCreated = %v; want false", res.BiomeInstalled, res.ConfigCreated)
	}

	doc, err := biome.ReadDocument(dir)
	if err != nil {
		t.Fatalf("ReadDocument failed: %v", err)
	}
	if schema, _ := doc.JSON().String(jsondoc.Path("$schema")); schema != "https://biomejs.dev/schemas/1.9.0/schema.json" {
		t.Errorf("$schema = %q, want the original value", schema)
	}
	includes := doc.Includes()
	if len(includes) < 2 || includes[0] != "**" || includes[1] != "src/**" {
		t.Errorf("Includes() = %v, want ** then the existing src/**", includes)
	}
	if v := doc.JSON().Get("formatter.lineWidth"); v.Int() != 100 {
		t.Errorf("formatter.lineWidth = %v, want 100", v.Raw)
	}
}

func TestRun_SkipFlags(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner()

	res, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{
		Dir:         dir,
		SkipInstall: true,
		SkipCleanup: true,
		SkipGit:     true,
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	for _, cmd := range runner.Commands() {
		if strings.HasPrefix(cmd, "npm ") || strings.HasPrefix(cmd, "git ") {
			t.Errorf("ran %q despite skip flags", cmd)
		}
	}
	if len(res.DependenciesRemoved) != 0 || len(res.FilesRemoved) != 0 {
		t.Errorf("cleanup ran: deps %v, files %v", res.DependenciesRemoved, res.FilesRemoved)
	}
	if _, err := os.Stat(filepath.Join(dir, ".eslintrc.json")); err != nil {
		t.Error(".eslintrc.json removed with --skip-cleanup")
	}
}

func TestRun_SafetyCommit(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner().
		On("git rev-parse --is-inside-work-tree", exec.Result{Stdout: "true\n"}).
		On("git status --porcelain", exec.Result{Stdout: " M src/index.ts\n"})
	p := &prompt.Scripted{}

	res, err := newMigrator(runner, p, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.SafetyCommit {
		t.Error("SafetyCommit = false, want true for a dirty repo")
	}
	if !runner.Ran("git commit -m chore: backup before Biome migration --no-verify") {
		t.Errorf("no safety commit in %v", runner.Commands())
	}
	if len(p.Asked) < 2 || p.Asked[1] != QuestionSafetyCommit {
		t.Errorf("Asked = %v, want the safety commit question second", p.Asked)
	}
	if cmds := runner.Commands(); !strings.HasPrefix(cmds[0], "git ") || cmds[4] != cmdInstall {
		t.Errorf("commit did not precede the install: %v", cmds)
	}
}

func TestRun_DeclinedGates(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner()
	// ready, relaxed rules, remove packages, scripts, reformat
	p := &prompt.Scripted{Confirms: []prompt.Answer[bool]{
		prompt.Answered(true),
		prompt.Answered(false),
		prompt.Answered(false),
		prompt.Answered(false),
		prompt.Answered(false),
	}}
	var out bytes.Buffer

	res, err := newMigrator(runner, p, &out).Run(context.Background(), Options{Dir: dir, SkipGit: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stopped != "" {
		t.Errorf("Stopped = %q, want a finished run", res.Stopped)
	}
	if len(res.DependenciesRemoved) != 0 {
		t.Errorf("DependenciesRemoved = %v after declining", res.DependenciesRemoved)
	}
	if res.ScriptsUpdated || res.Reformatted {
		t.Errorf("ScriptsUpdated = %v, Reformatted = %v; want false", res.ScriptsUpdated, res.Reformatted)
	}
	if runner.Ran(cmdReformat) {
		t.Error("reformatted after declining")
	}
	for _, c := range runner.Commands() {
		if strings.HasPrefix(c, "npm uninstall") {
			t.Errorf("uninstalled after declining: %s", c)
		}
	}
	if !strings.Contains(out.String(), `"lint:fix": "biome check --write ."`) {
		t.Errorf("declining the script update did not print the scripts to add:\n%s", out.String())
	}
	doc, _ := biome.ReadDocument(dir)
	if doc.JSON().Has("linter.rules.suspicious") {
		t.Error("relaxed rules applied after declining")
	}
}

func TestRun_CancelledGates(t *testing.T) {
	legacyFiles := []string{".eslintrc.json", ".eslintignore", ".prettierrc.json", ".prettierignore"}
	removePackages := fmt.Sprintf(QuestionRemovePackages, 7)

	tests := []struct {
		name     string
		answered int // confirms answered yes before the cancel
		question string
		check    func(t *testing.T, dir string, runner *exec.FakeRunner, res *Result)
	}{
		{
			name:     "relaxed rules",
			answered: 1,
			question: QuestionRelaxedRules,
			check: func(t *testing.T, dir string, runner *exec.FakeRunner, res *Result) {
				if res.Customized {
					t.Error("customized biome.json after the cancel")
				}
			},
		},
		{
			name:     "remove packages",
			answered: 2,
			question: removePackages,
			check: func(t *testing.T, dir string, runner *exec.FakeRunner, res *Result) {
				for _, c := range runner.Commands() {
					if strings.HasPrefix(c, "npm uninstall") {
						t.Errorf("uninstalled after the cancel: %s", c)
					}
				}
				if len(res.FilesRemoved) != 0 {
					t.Errorf("FilesRemoved = %v, want none", res.FilesRemoved)
				}
				for _, name := range legacyFiles {
					if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
						t.Errorf("%s deleted after the cancel: %v", name, err)
					}
				}
			},
		},
		{
			name:     "scripts",
			answered: 3,
			question: QuestionScripts,
			check: func(t *testing.T, dir string, runner *exec.FakeRunner, res *Result) {
				pkg, err := manifest.Read(dir)
				if err != nil {
					t.Fatalf("manifest.Read failed: %v", err)
				}
				if lint, _ := pkg.Script("lint"); lint != "eslint ." {
					t.Errorf("lint script = %q, want it untouched", lint)
				}
			},
		},
		{
			name:     "reformat",
			answered: 4,
			question: QuestionReformat,
			check: func(t *testing.T, dir string, runner *exec.FakeRunner, res *Result) {
				if runner.Ran(cmdReformat) || res.Reformatted {
					t.Error("reformatted after the cancel")
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.TempProject(t, testutil.LegacyProject())
			runner := newRunner()
			p := &prompt.Scripted{}
			for i := 0; i < tt.answered; i++ {
				p.Confirms = append(p.Confirms, prompt.Answered(true))
			}
			p.Confirms = append(p.Confirms, prompt.Cancelled[bool]())
			var out bytes.Buffer

			res, err := newMigrator(runner, p, &out).Run(context.Background(), Options{Dir: dir, SkipGit: true})
			if err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if res.Stopped != StoppedCancelled {
				t.Errorf("Stopped = %q, want %q", res.Stopped, StoppedCancelled)
			}
			if last := p.Asked[len(p.Asked)-1]; last != tt.question {
				t.Errorf("last question = %q, want %q; asked %v", last, tt.question, p.Asked)
			}
			if !strings.Contains(out.String(), "Migration cancelled") {
				t.Errorf("output does not report the cancel:\n%s", out.String())
			}
			if strings.Contains(out.String(), "Migration complete!") {
				t.Errorf("output reports a completed migration:\n%s", out.String())
			}
			tt.check(t, dir, runner, res)
		})
	}
}

func TestRun_CancelledSafetyCommit(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner().
		On("git rev-parse --is-inside-work-tree", exec.Result{Stdout: "true\n"}).
		On("git status --porcelain", exec.Result{Stdout: " M src/index.ts\n"})
	p := &prompt.Scripted{Confirms: []prompt.Answer[bool]{prompt.Answered(true), prompt.Cancelled[bool]()}}

	res, err := newMigrator(runner, p, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Stopped != StoppedCancelled {
		t.Errorf("Stopped = %q, want %q", res.Stopped, StoppedCancelled)
	}
	if runner.Ran(cmdInstall) {
		t.Errorf("installed after the safety commit was cancelled: %v", runner.Commands())
	}
}

func TestRun_FailedESLintMigrationKeepsConfig(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner().On(cmdESLint, exec.Result{ExitCode: 1, Stderr: "unsupported plugin"})
	var out bytes.Buffer

	res, err := newMigrator(runner, &prompt.Scripted{}, &out).Run(context.Background(), Options{Dir: dir, SkipGit: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.ESLintMigrated {
		t.Error("ESLintMigrated = true after a failed migration")
	}
	if want := []string{".prettierrc.json", ".prettierignore"}; !reflect.DeepEqual(res.FilesRemoved, want) {
		t.Errorf("FilesRemoved = %v, want %v", res.FilesRemoved, want)
	}
	for _, name := range []string{".eslintrc.json", ".eslintignore"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s deleted after a failed ESLint migration: %v", name, err)
		}
	}
	if !strings.Contains(out.String(), "Kept .eslintrc.json for manual review") {
		t.Errorf("output does not mention the kept config:\n%s", out.String())
	}
}

func TestRun_RelaxedRulesPolicy(t *testing.T) {
	tests := []struct {
		policy    string
		wantAsked bool
		wantRules bool
	}{
		{config.RelaxedAsk, true, true},
		{config.RelaxedAlways, false, true},
		{config.RelaxedNever, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.policy, func(t *testing.T) {
			dir := testutil.TempProject(t, testutil.BiomeProject())
			p := &prompt.Scripted{}
			m := newMigrator(newRunner(), p, &bytes.Buffer{})
			m.Config.RelaxedRules = tt.policy

			if _, err := m.Run(context.Background(), Options{Dir: dir, SkipGit: true}); err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			asked := false
			for _, q := range p.Asked {
				asked = asked || q == QuestionRelaxedRules
			}
			if asked != tt.wantAsked {
				t.Errorf("asked relaxed rules = %v, want %v", asked, tt.wantAsked)
			}
			doc, _ := biome.ReadDocument(dir)
			has := doc.JSON().Has("linter.rules.suspicious.noConsole")
			if has != tt.wantRules {
				t.Errorf("relaxed rules present = %v, want %v", has, tt.wantRules)
			}
		})
	}
}

func TestRun_ReformatFailureIsSoft(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner().On(cmdReformat, exec.Result{ExitCode: 1, Stdout: "Found 3 errors."})

	res, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir, SkipGit: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !res.Reformatted {
		t.Error("Reformatted = false, want true")
	}
	if len(res.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one soft warning", res.Warnings)
	}
}

func TestRun_CheckFailureIsIgnored(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	runner := newRunner().On(cmdCheck, exec.Result{ExitCode: 1, Stderr: "lint errors"})

	res, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir, SkipGit: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none for biome check diagnostics", res.Warnings)
	}
}

func TestRun_MissingBiomeConfigSkipsCustomization(t *testing.T) {
	dir := testutil.TempProject(t, testutil.LegacyProject())
	// init succeeds but writes nothing.
	runner := exec.NewFakeRunner().On(cmdVersion, exec.Result{Stdout: "1.9.4"})

	res, err := newMigrator(runner, &prompt.Scripted{}, &bytes.Buffer{}).Run(context.Background(), Options{Dir: dir, SkipGit: true})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if res.Customized {
		t.Error("Customized = true without a biome.json")
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "biome.json not found") {
		t.Errorf("Warnings = %v, want the missing biome.json warning", res.Warnings)
	}
	want := "biome.json not found"
	if len(res.Issues) == 0 || res.Issues[0] != want {
		t.Errorf("Issues = %v, want %q first", res.Issues, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  []string
	}{
		{
			name: "valid",
			files: map[string]string{
				"biome.json": "{}",
				"package.json": testutil.PackageJSON(map[string]interface{}{
					"devDependencies": map[string]string{"@biomejs/biome": "^1.9.0"},
					"scripts":         map[string]string{"lint": "biome check ."},
				}),
			},
			want: nil,
		},
		{
			name: "everything missing",
			files: map[string]string{
				"package.json": testutil.PackageJSON(map[string]interface{}{
					"scripts": map[string]string{"lint": "eslint ."},
				}),
			},
			want: []string{
				"biome.json not found",
				"@biomejs/biome not found in dependencies",
				`package.json "lint" script does not use Biome`,
			},
		},
		{
			name:  "no manifest",
			files: map[string]string{"biome.json": "{}"},
			want:  []string{"package.json could not be read"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.TempProject(t, tt.files)
			if got := Validate(dir, "@biomejs/biome"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Validate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		Continue:            "continue",
		ContinueWithWarning: "warning",
		Stop:                "stop",
		Abort:               "abort",
	} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(k), got, want)
		}
	}
}
