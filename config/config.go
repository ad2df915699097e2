// Package config loads Quetite's project-level settings: an optional
// `.quetite.yaml` file merged under whatever the CLI's own flags
// already set. Grounded on SPEC_FULL.md §10's ambient-stack decision
// to give `gopkg.in/yaml.v3` — a teacher dependency with no call site
// of its own — a concrete home here instead of dropping it.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config is Quetite's full set of project-level settings: whether
// terminal output is colored, whether pass diagnostics are verbose,
// and a list of extra `use` search directories. Only Verbose is acted
// on: the CLI does not read Color, and the module loader resolves a
// `use` path against the importing file's own directory only.
type Config struct {
	Color    bool     `yaml:"color"`
	Verbose  bool     `yaml:"verbose"`
	UsePaths []string `yaml:"use_paths"`
}

// Default returns the configuration used when no project file exists:
// colored output, quiet diagnostics, no extra search paths.
func Default() Config {
	return Config{Color: true, Verbose: false}
}

// Load reads the project file at path (the CLI passes `.quetite.yaml` in
// the entry file's own directory), returning Default() unchanged if the
// file doesn't exist.
// A file that exists but fails to parse is a reported error, not a
// silent fallback — a malformed project file the user wrote themselves
// is almost always a mistake worth surfacing.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
