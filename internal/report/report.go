// Package report renders the summary shown after a migration completes.
package report

import (
	"fmt"
	"strings"
	"time"
)

// Summary holds what a finished migration did.
type Summary struct {
	Project             string
	PackageManager      string
	BiomeVersion        string
	SafetyCommit        bool
	ESLintMigrated      bool
	PrettierMigrated    bool
	FormatterSource     string
	DependenciesRemoved []string
	FilesRemoved        []string
	ScriptsUpdated      bool
	Reformatted         bool
	Warnings            []string
	Issues              []string
	Duration            time.Duration
}

// Lines returns the summary as one line per completed action, in the order
// the migration performs them. Actions that did not happen are left out.
func Lines(s *Summary) []string {
	var lines []string

	if s.SafetyCommit {
		lines = append(lines, "Created safety commit")
	}
	if s.BiomeVersion != "" {
		lines = append(lines, "Biome "+s.BiomeVersion+" ready")
	}
	if s.ESLintMigrated {
		lines = append(lines, "Migrated ESLint config")
	}
	if s.PrettierMigrated {
		lines = append(lines, "Migrated Prettier config")
	}
	if s.FormatterSource != "" {
		lines = append(lines, "Applied formatter settings from "+s.FormatterSource)
	}
	if n := len(s.DependenciesRemoved); n > 0 {
		lines = append(lines, fmt.Sprintf("Removed %d %s", n, plural(n, "package", "packages")))
	}
	if n := len(s.FilesRemoved); n > 0 {
		lines = append(lines, fmt.Sprintf("Deleted %d config %s", n, plural(n, "file", "files")))
	}
	if s.ScriptsUpdated {
		lines = append(lines, "Updated package.json scripts")
	}
	if s.Reformatted {
		lines = append(lines, "Applied Biome formatting")
	}
	if len(lines) == 0 {
		lines = append(lines, "No changes made")
	}
	return lines
}

// FormatReport produces a plain, terminal-friendly summary block.
func FormatReport(s *Summary) string {
	var b strings.Builder

	b.WriteString("========================================\n")
	b.WriteString("  Biome Migration Report\n")
	b.WriteString("========================================\n")
	b.WriteString("\n")

	if s.Project != "" {
		fmt.Fprintf(&b, "Project:     %s\n", s.Project)
	}
	if s.PackageManager != "" {
		fmt.Fprintf(&b, "Package mgr: %s\n", s.PackageManager)
	}
	b.WriteString("\n")

	for _, l := range Lines(s) {
		fmt.Fprintf(&b, "  - %s\n", l)
	}
	b.WriteString("\n")

	if len(s.DependenciesRemoved) > 0 {
		b.WriteString("Removed packages:\n")
		for _, d := range s.DependenciesRemoved {
			fmt.Fprintf(&b, "  %s\n", d)
		}
		b.WriteString("\n")
	}

	if len(s.Warnings) > 0 {
		b.WriteString("Warnings:\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&b, "  ! %s\n", w)
		}
		b.WriteString("\n")
	}

	if len(s.Issues) > 0 {
		b.WriteString("Validation issues:\n")
		for _, i := range s.Issues {
			fmt.Fprintf(&b, "  ! %s\n", i)
		}
		b.WriteString("\n")
	}

	if s.Duration > 0 {
		fmt.Fprintf(&b, "Duration:    %s\n", formatDuration(s.Duration))
	}

	b.WriteString("========================================\n")

	return b.String()
}

// ScriptsToAdd lists the scripts a user should add by hand when the
// automatic update was declined.
func ScriptsToAdd(names []string, scripts map[string]string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, fmt.Sprintf("%q: %q", n, scripts[n]))
	}
	return out
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatDuration produces a human-readable duration string such as "5m 32s"
// or "1h 12m 5s". Sub-second durations are shown as "< 1s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return "< 1s"
	}

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
