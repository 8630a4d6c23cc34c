package biome

import (
	"fmt"
	"path/filepath"

	"github.com/AsierDev/zero-setup-biome/internal/jsondoc"
)

// ConfigFile is the Biome configuration document name.
const ConfigFile = "biome.json"

// TestGlobals are the Jest and Vitest globals declared for test files.
var TestGlobals = []string{
	"jest",
	"describe",
	"it",
	"test",
	"expect",
	"beforeEach",
	"afterEach",
	"beforeAll",
	"afterAll",
	"vi",
}

// RelaxedRule is one lint rule severity override.
type RelaxedRule struct {
	Group    string
	Rule     string
	Severity string
}

// RelaxedRules silence the rules that fire most often right after a
// migration.
var RelaxedRules = []RelaxedRule{
	{"suspicious", "noExplicitAny", "off"},
	{"suspicious", "noConsole", "off"},
	{"style", "noNonNullAssertion", "off"},
	{"a11y", "noRedundantRoles", "off"},
	{"a11y", "useSemanticElements", "off"},
	{"a11y", "useAriaPropsSupportedByRole", "off"},
	{"correctness", "useExhaustiveDependencies", "warn"},
}

// Document is a biome.json tree. Fields this package does not manage are
// preserved with their order.
type Document struct {
	path string
	doc  *jsondoc.Doc
}

// NewDocument returns an empty document that will be written to dir.
func NewDocument(dir string) *Document {
	return &Document{path: filepath.Join(dir, ConfigFile), doc: jsondoc.New()}
}

// ReadDocument parses dir/biome.json.
func ReadDocument(dir string) (*Document, error) {
	path := filepath.Join(dir, ConfigFile)
	doc, err := jsondoc.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ConfigFile, err)
	}
	return &Document{path: path, doc: doc}, nil
}

// JSON exposes the underlying document.
func (d *Document) JSON() *jsondoc.Doc {
	return d.doc
}

// Path returns the file the document is written to.
func (d *Document) Path() string {
	return d.path
}

// Write saves the document with two-space indentation.
func (d *Document) Write() error {
	if err := jsondoc.WriteFile(d.path, d.doc); err != nil {
		return fmt.Errorf("writing %s: %w", ConfigFile, err)
	}
	return nil
}

// Includes returns files.includes.
func (d *Document) Includes() []string {
	includes, _ := d.doc.Strings("files.includes")
	return includes
}

// MergeExcludes adds negated globs to files.includes with set semantics.
func (d *Document) MergeExcludes(excludes []string) error {
	if len(excludes) == 0 {
		return nil
	}
	return d.doc.Set("files.includes", MergeIncludes(d.Includes(), excludes))
}

// Globals returns javascript.globals.
func (d *Document) Globals() []string {
	globals, _ := d.doc.Strings("javascript.globals")
	return globals
}

// MergeGlobals adds names to javascript.globals with set semantics.
func (d *Document) MergeGlobals(names []string) error {
	set := newOrderedSet()
	set.add(d.Globals()...)
	set.add(names...)
	return d.doc.Set("javascript.globals", set.items)
}

// ApplyFormatter writes translated settings. A dimension the Prettier config
// set explicitly (or trailing commas, when resolved) overwrites the document;
// a defaulted dimension is only written when the document has no value, so an
// explicit Biome option is never reset to a default.
func (d *Document) ApplyFormatter(s FormatterSettings, legacy LegacyFormatterConfig, resolved bool) error {
	fields := []struct {
		path     string
		value    any
		explicit bool
	}{
		{"formatter.indentStyle", s.IndentStyle, legacy.UseTabs != nil},
		{"formatter.indentWidth", s.IndentWidth, legacy.TabWidth != nil},
		{"formatter.lineWidth", s.LineWidth, legacy.PrintWidth != nil},
		{"formatter.lineEnding", s.LineEnding, legacy.EndOfLine != nil},
		{"formatter.bracketSpacing", s.BracketSpacing, legacy.BracketSpacing != nil},
		{"javascript.formatter.quoteStyle", s.QuoteStyle, legacy.SingleQuote != nil},
		{"javascript.formatter.trailingCommas", string(s.TrailingCommas), resolved || legacy.TrailingComma != nil},
		{"javascript.formatter.semicolons", s.Semicolons, legacy.Semi != nil},
		{"javascript.formatter.arrowParentheses", s.ArrowParentheses, legacy.ArrowParens != nil},
	}
	for _, f := range fields {
		if !f.explicit && d.doc.Has(f.path) {
			continue
		}
		if err := d.doc.Set(f.path, f.value); err != nil {
			return err
		}
	}
	return nil
}

// ApplyRelaxedRules sets every RelaxedRules severity under linter.rules.
func (d *Document) ApplyRelaxedRules() error {
	for _, r := range RelaxedRules {
		if err := d.doc.Set(jsondoc.Path("linter", "rules", r.Group, r.Rule), r.Severity); err != nil {
			return err
		}
	}
	return nil
}

// DisableOrganizeImports turns off the organize-imports assist action.
func (d *Document) DisableOrganizeImports() error {
	return d.doc.Set("assist.actions.source.organizeImports", "off")
}

// Customization is everything the migration writes into biome.json.
type Customization struct {
	Excludes     []string
	Formatter    *FormatterSettings // nil when no Prettier config was read
	Legacy       LegacyFormatterConfig
	Resolved     bool // trailing commas came from an explicit resolution
	RelaxedRules bool
}

// Apply performs the whole customization. Applying the same Customization
// twice leaves the document unchanged the second time.
func (d *Document) Apply(c Customization) error {
	if err := d.MergeExcludes(c.Excludes); err != nil {
		return err
	}
	if c.Formatter != nil {
		if err := d.ApplyFormatter(*c.Formatter, c.Legacy, c.Resolved); err != nil {
			return err
		}
	}
	if c.RelaxedRules {
		if err := d.ApplyRelaxedRules(); err != nil {
			return err
		}
	}
	if err := d.MergeGlobals(TestGlobals); err != nil {
		return err
	}
	return d.DisableOrganizeImports()
}
