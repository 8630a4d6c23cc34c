// Package biome builds Biome configuration from an existing ESLint/Prettier
// setup: formatter translation, ignore aggregation and biome.json merging.
package biome

import "errors"

// ErrUnresolvedTrailingComma is returned by Translate when Prettier uses
// "es5" trailing commas and the caller did not supply a resolution.
var ErrUnresolvedTrailingComma = errors.New(`prettier "es5" trailing commas have no Biome equivalent; a resolution is required`)

// Prettier trailingComma values.
const (
	PrettierCommaNone = "none"
	PrettierCommaES5  = "es5"
	PrettierCommaAll  = "all"
)

// TrailingCommas is Biome's trailing comma style. Only "none" and "all" are
// representable.
type TrailingCommas string

const (
	TrailingNone TrailingCommas = "none"
	TrailingAll  TrailingCommas = "all"
)

// LegacyFormatterConfig is a Prettier configuration. A nil field means
// "not set, use the target default", never "disabled".
type LegacyFormatterConfig struct {
	Semi           *bool   `json:"semi,omitempty" yaml:"semi,omitempty" toml:"semi,omitempty"`
	SingleQuote    *bool   `json:"singleQuote,omitempty" yaml:"singleQuote,omitempty" toml:"singleQuote,omitempty"`
	TrailingComma  *string `json:"trailingComma,omitempty" yaml:"trailingComma,omitempty" toml:"trailingComma,omitempty"`
	PrintWidth     *int    `json:"printWidth,omitempty" yaml:"printWidth,omitempty" toml:"printWidth,omitempty"`
	TabWidth       *int    `json:"tabWidth,omitempty" yaml:"tabWidth,omitempty" toml:"tabWidth,omitempty"`
	UseTabs        *bool   `json:"useTabs,omitempty" yaml:"useTabs,omitempty" toml:"useTabs,omitempty"`
	BracketSpacing *bool   `json:"bracketSpacing,omitempty" yaml:"bracketSpacing,omitempty" toml:"bracketSpacing,omitempty"`
	ArrowParens    *string `json:"arrowParens,omitempty" yaml:"arrowParens,omitempty" toml:"arrowParens,omitempty"`
	EndOfLine      *string `json:"endOfLine,omitempty" yaml:"endOfLine,omitempty" toml:"endOfLine,omitempty"`
}

// NeedsTrailingCommaResolution reports whether Translate requires a
// resolution for this config.
func (c LegacyFormatterConfig) NeedsTrailingCommaResolution() bool {
	return c.TrailingComma != nil && *c.TrailingComma == PrettierCommaES5
}

// FormatterSettings is the fully specified Biome formatter configuration.
type FormatterSettings struct {
	QuoteStyle       string         // "single" | "double"
	TrailingCommas   TrailingCommas // "none" | "all"
	LineWidth        int
	IndentWidth      int
	IndentStyle      string // "space" | "tab"
	Semicolons       string // "always" | "asNeeded"
	BracketSpacing   bool
	ArrowParentheses string // "always" | "asNeeded"
	LineEnding       string // "lf" | "crlf" | "cr"
}

// Defaults used when Prettier leaves a dimension unset.
const (
	DefaultLineWidth   = 80
	DefaultIndentWidth = 2
)

// Translate maps a Prettier config to Biome formatter settings. Every
// dimension is mapped independently. resolution, when non-nil, decides
// trailing commas unconditionally. A config with "es5" trailing commas and
// no resolution returns ErrUnresolvedTrailingComma.
func Translate(legacy LegacyFormatterConfig, resolution *TrailingCommas) (FormatterSettings, error) {
	commas, err := translateTrailingCommas(legacy.TrailingComma, resolution)
	if err != nil {
		return FormatterSettings{}, err
	}

	s := FormatterSettings{
		QuoteStyle:       "double",
		TrailingCommas:   commas,
		LineWidth:        DefaultLineWidth,
		IndentWidth:      DefaultIndentWidth,
		IndentStyle:      "space",
		Semicolons:       "always",
		BracketSpacing:   true,
		ArrowParentheses: "always",
		LineEnding:       "lf",
	}

	if isTrue(legacy.SingleQuote) {
		s.QuoteStyle = "single"
	}
	if legacy.PrintWidth != nil && *legacy.PrintWidth > 0 {
		s.LineWidth = *legacy.PrintWidth
	}
	if legacy.TabWidth != nil && *legacy.TabWidth > 0 {
		s.IndentWidth = *legacy.TabWidth
	}
	if isTrue(legacy.UseTabs) {
		s.IndentStyle = "tab"
	}
	if isFalse(legacy.Semi) {
		s.Semicolons = "asNeeded"
	}
	if isFalse(legacy.BracketSpacing) {
		s.BracketSpacing = false
	}
	if legacy.ArrowParens != nil && *legacy.ArrowParens == "avoid" {
		s.ArrowParentheses = "asNeeded"
	}
	if legacy.EndOfLine != nil {
		switch *legacy.EndOfLine {
		case "crlf":
			s.LineEnding = "crlf"
		case "cr":
			s.LineEnding = "cr"
		}
	}

	return s, nil
}

func translateTrailingCommas(legacy *string, resolution *TrailingCommas) (TrailingCommas, error) {
	if resolution != nil {
		return *resolution, nil
	}
	if legacy == nil {
		return TrailingAll, nil
	}
	switch *legacy {
	case PrettierCommaNone:
		return TrailingNone, nil
	case PrettierCommaES5:
		return "", ErrUnresolvedTrailingComma
	default:
		return TrailingAll, nil
	}
}

func isTrue(b *bool) bool  { return b != nil && *b }
func isFalse(b *bool) bool { return b != nil && !*b }
