package biome

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/AsierDev/zero-setup-biome/internal/detect"
	"github.com/AsierDev/zero-setup-biome/internal/manifest"
)

// ManifestPrettierSource is the source name reported when the settings come
// from the "prettier" field of package.json.
const ManifestPrettierSource = "package.json#prettier"

// ReadLegacyFormatterConfig loads Prettier settings from dir. Dedicated
// config files are tried in detection order; JavaScript configs cannot be
// evaluated and are skipped, as are files that fail to parse. The manifest
// "prettier" object is the last source. ok is false when no readable config
// exists. source names the file the settings came from.
func ReadLegacyFormatterConfig(dir string) (cfg LegacyFormatterConfig, source string, ok bool) {
	for _, name := range detect.PrettierConfigFiles() {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		parsed, err := ParseLegacyFormatterConfig(name, data)
		if err != nil {
			continue
		}
		return parsed, name, true
	}

	m, err := manifest.Read(dir)
	if err != nil {
		return LegacyFormatterConfig{}, "", false
	}
	field := m.Field("prettier")
	if !field.IsObject() {
		return LegacyFormatterConfig{}, "", false
	}
	if err := json.Unmarshal([]byte(field.Raw), &cfg); err != nil {
		return LegacyFormatterConfig{}, "", false
	}
	return cfg, ManifestPrettierSource, true
}

// ParseLegacyFormatterConfig decodes a Prettier config file by name.
// ".prettierrc" may hold JSON or YAML.
func ParseLegacyFormatterConfig(name string, data []byte) (LegacyFormatterConfig, error) {
	var cfg LegacyFormatterConfig
	var err error

	switch ext := filepath.Ext(name); {
	case name == ".prettierrc":
		if err = json.Unmarshal(data, &cfg); err != nil {
			cfg = LegacyFormatterConfig{}
			err = yaml.Unmarshal(data, &cfg)
		}
	case ext == ".json":
		err = json.Unmarshal(data, &cfg)
	case ext == ".yaml" || ext == ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ext == ".toml":
		_, err = toml.Decode(string(data), &cfg)
	default:
		return cfg, fmt.Errorf("%s: %s configs cannot be read", name, strings.TrimPrefix(ext, "."))
	}
	if err != nil {
		return LegacyFormatterConfig{}, fmt.Errorf("parsing %s: %w", name, err)
	}
	return cfg, nil
}
