package main

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// genSettings is the merged configuration for a generation run: a
// .lexigen.toml file found beside the spec, overridden by any flag the
// user actually passed on the command line.
type genSettings struct {
	Out     string `toml:"out"`
	Package string `toml:"package"`
	Lang    string `toml:"lang"`
}

func defaultSettings() *genSettings {
	return &genSettings{Out: ".", Package: "generated", Lang: "go"}
}

// loadSettings looks for a .lexigen.toml file in specPath's directory and
// merges it over the defaults; a missing or unparsable file is not an
// error, since settings files are optional.
func loadSettings(specPath string) *genSettings {
	settings := defaultSettings()

	tomlPath := filepath.Join(filepath.Dir(specPath), ".lexigen.toml")
	data, err := os.ReadFile(tomlPath)
	if err != nil {
		return settings
	}

	var parsed genSettings
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return settings
	}

	if parsed.Out != "" {
		settings.Out = parsed.Out
	}
	if parsed.Package != "" {
		settings.Package = parsed.Package
	}
	if parsed.Lang != "" {
		settings.Lang = parsed.Lang
	}
	return settings
}

// applyFlags overrides settings with any non-empty flag value, giving the
// command line the final word over the settings file.
func (s *genSettings) applyFlags(out, pkg, lang string) {
	if out != "" {
		s.Out = out
	}
	if pkg != "" {
		s.Package = pkg
	}
	if lang != "" {
		s.Lang = lang
	}
}
