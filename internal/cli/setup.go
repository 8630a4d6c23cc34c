package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/AsierDev/zero-setup-biome/internal/config"
	"github.com/AsierDev/zero-setup-biome/internal/exec"
	"github.com/AsierDev/zero-setup-biome/internal/log"
	"github.com/AsierDev/zero-setup-biome/internal/prompt"
	"github.com/AsierDev/zero-setup-biome/internal/tui"
	"github.com/AsierDev/zero-setup-biome/internal/ui"
)

// deps are the collaborators shared by every command.
type deps struct {
	env      config.Env
	cfg      *config.Config
	logger   *slog.Logger
	audit    *log.AuditLogger
	reporter *ui.Reporter
	prompter prompt.Prompter
	runner   exec.Runner
}

// setup wires the collaborators for a command running in dir. A malformed
// config file is reported and replaced by the defaults.
func setup(dir string) *deps {
	env := config.EnvFromOS()
	d := &deps{
		env:      env,
		logger:   log.NewDebugLogger(os.Stderr, debug || env.Debug),
		reporter: ui.NewStdoutReporter(),
		prompter: tui.ForTerminal(assumeYes),
		// Child tools print plain text; their output ends up in our errors.
		runner: exec.NewOSRunner("FORCE_COLOR=0", "NO_COLOR=1"),
	}

	cfg, err := config.LoadOrDefault(dir)
	if err != nil {
		d.reporter.Warn(fmt.Sprintf("Ignoring %s config: %v", config.Dir, err))
	}
	d.cfg = cfg
	d.audit = log.NewAuditLogger(dir, config.Dir, cfg.Audit.Enabled && env.AuditAllowed())

	d.logger.Debug("starting", "version", version, "dir", dir, "user_agent", env.UserAgent, "audit", d.audit.Enabled())
	return d
}
