package scaffold

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/AsierDev/zero-setup-biome/internal/detect"
	"github.com/AsierDev/zero-setup-biome/internal/exec"
	"github.com/AsierDev/zero-setup-biome/internal/git"
	"github.com/AsierDev/zero-setup-biome/internal/log"
	"github.com/AsierDev/zero-setup-biome/internal/prompt"
	"github.com/AsierDev/zero-setup-biome/templates"
)

// Questions asked while creating a project.
const (
	QuestionName     = "What is your project named?"
	QuestionTemplate = "Select a template:"
)

// Reporter receives user-facing progress. *ui.Reporter implements it.
type Reporter interface {
	Start(msg string)
	Stop(msg string)
	StopWarn(msg string)
	Fail(msg string)
	Note(title string, lines []string)
	Outro(msg string)
	Cancel(msg string)
}

// Options are the create command's inputs. Empty fields are asked for or
// detected.
type Options struct {
	Dir            string // parent directory of the new project
	Name           string
	Template       string
	SkipInstall    bool
	SkipGit        bool
	PackageManager detect.PackageManager
}

// Project describes a created project.
type Project struct {
	Name           string
	PackageName    string
	Template       string
	Dir            string
	PackageManager detect.PackageManager
	Installed      bool
	GitInitialized bool
	Cancelled      bool
	NextSteps      []string
}

// Creator runs the create flow.
type Creator struct {
	Runner    exec.Runner
	Prompter  prompt.Prompter
	Reporter  Reporter
	Logger    *slog.Logger
	Audit     *log.AuditLogger
	UserAgent string
}

// Create asks for whatever opts leaves open, copies the template and
// optionally installs dependencies and initializes git. A user abort returns
// a Project with Cancelled set and a nil error.
func (c *Creator) Create(ctx context.Context, opts Options) (*Project, error) {
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	name, ok, err := c.projectName(opts.Name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c.cancel(), nil
	}

	tmpl, ok, err := c.templateName(opts.Template)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c.cancel(), nil
	}
	tree, found := templates.Lookup(tmpl)
	if !found {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrTemplateNotFound, tmpl, strings.Join(templates.Names(), ", "))
	}

	target := filepath.Join(opts.Dir, name)
	empty, err := IsEmptyDir(target)
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", name, err)
	}
	if !empty {
		ans, err := c.Prompter.Confirm(fmt.Sprintf("Directory %q is not empty. Continue anyway?", name), false)
		if err != nil {
			return nil, fmt.Errorf("confirming target directory: %w", err)
		}
		if !prompt.Confirmed(ans) {
			return c.cancel(), nil
		}
	}

	pm := opts.PackageManager
	if pm == "" {
		pm = detect.DetectPackageManager(target, c.UserAgent)
	}

	p := &Project{
		Name:           name,
		PackageName:    ToPackageName(name),
		Template:       tmpl,
		Dir:            target,
		PackageManager: pm,
	}

	if err := c.generate(ctx, p, tree, opts); err != nil {
		log.Record(c.Audit, c.Logger, log.NewAuditEvent(log.EventProjectCreationFailed, name, false, map[string]interface{}{
			"error":    err.Error(),
			"template": tmpl,
		}))
		return p, fmt.Errorf("failed to create project: %w", err)
	}

	log.Record(c.Audit, c.Logger, log.NewAuditEvent(log.EventProjectCreated, name, true, map[string]interface{}{
		"template":       tmpl,
		"packageManager": string(pm),
		"skipInstall":    opts.SkipInstall,
		"skipGit":        opts.SkipGit,
	}))

	p.NextSteps = []string{"cd " + name}
	if !p.Installed {
		p.NextSteps = append(p.NextSteps, strings.Join(pm.InstallArgs(), " "))
	}
	p.NextSteps = append(p.NextSteps, pm.RunCommand("dev"))

	c.Reporter.Note("Next steps", p.NextSteps)
	c.Reporter.Outro(fmt.Sprintf("Project created successfully! Run `%s` to check your code with Biome.", pm.RunCommand("lint")))
	return p, nil
}

func (c *Creator) generate(ctx context.Context, p *Project, tree fs.FS, opts Options) error {
	c.Reporter.Start("Copying template " + p.Template)
	stats, err := ValidateTemplate(tree)
	if err != nil {
		c.Reporter.Fail("Template rejected")
		return err
	}
	c.Logger.Debug("template validated", "template", p.Template, "files", stats.Files, "bytes", stats.Bytes)
	if err := CopyTemplate(tree, p.Dir, Vars{ProjectName: p.Name, PackageName: p.PackageName}); err != nil {
		c.Reporter.Fail("Failed to copy template")
		return err
	}
	c.Reporter.Stop(fmt.Sprintf("Created %s from %s", p.Name, p.Template))

	if !opts.SkipInstall {
		args := p.PackageManager.InstallArgs()
		c.Reporter.Start("Installing dependencies with " + string(p.PackageManager))
		if _, err := c.Runner.Run(ctx, p.Dir, args[0], args[1:]...); err != nil {
			c.Reporter.Fail("Failed to install dependencies")
			return fmt.Errorf("installation failed: %w", err)
		}
		p.Installed = true
		c.Reporter.Stop("Dependencies installed with " + string(p.PackageManager))
	}

	if !opts.SkipGit {
		c.Reporter.Start("Initializing git repository")
		// git is optional; the project is usable without a repository.
		if err := git.New(c.Runner, p.Dir).Init(ctx); err != nil {
			c.Logger.Debug("git init failed", "err", err)
			c.Reporter.StopWarn("Git not available or initialization failed, skipping")
		} else {
			p.GitInitialized = true
			c.Reporter.Stop("Git repository initialized")
		}
	}
	return nil
}

func (c *Creator) projectName(given string) (string, bool, error) {
	if given != "" {
		if err := ValidateName(given); err != nil {
			return "", false, err
		}
		return strings.TrimSpace(given), true, nil
	}
	ans, err := c.Prompter.Text(QuestionName, "", ValidateName)
	if err != nil {
		return "", false, fmt.Errorf("asking for project name: %w", err)
	}
	name, ok := ans.Get()
	return strings.TrimSpace(name), ok, nil
}

func (c *Creator) templateName(given string) (string, bool, error) {
	if given != "" {
		return given, true, nil
	}
	if len(templates.Available) == 1 {
		return templates.Available[0].Name, true, nil
	}
	options := make([]prompt.Option, len(templates.Available))
	for i, t := range templates.Available {
		options[i] = prompt.Option{Value: t.Name, Label: t.Name, Hint: t.Description}
	}
	ans, err := c.Prompter.Select(QuestionTemplate, options, templates.Default)
	if err != nil {
		return "", false, fmt.Errorf("choosing template: %w", err)
	}
	name, ok := ans.Get()
	return name, ok, nil
}

func (c *Creator) cancel() *Project {
	c.Reporter.Cancel("Operation cancelled")
	return &Project{Cancelled: true}
}
