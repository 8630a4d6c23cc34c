// init.go implements the "zero-setup-biome init" command, which writes the
// default tool settings so they can be edited.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AsierDev/zero-setup-biome/internal/config"
	"github.com/AsierDev/zero-setup-biome/internal/prompt"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write default settings to .zero-setup-biome/config.yaml",
	Long: `Init writes the default tool settings (minimum Biome version, Biome
package, relaxed-rules policy, extra generated folders and audit logging) to
.zero-setup-biome/config.yaml in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	d := setup(dir)

	path := filepath.Join(dir, config.Dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		ans, err := d.prompter.Confirm(path+" already exists. Overwrite it with the defaults?", false)
		if err != nil {
			return fmt.Errorf("confirming overwrite: %w", err)
		}
		if !prompt.Confirmed(ans) {
			d.reporter.Cancel("Aborted")
			return nil
		}
	}

	if err := config.WriteConfig(dir, config.DefaultConfig()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	d.reporter.Info("Wrote " + path)
	return nil
}
