// Package config loads the optional coolc.yaml project file: the
// assembler path, extra gcc flags, and the output directory. CLI flags
// always override whatever this file sets.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the parsed contents of coolc.yaml. Every field is optional;
// a zero value means "use the driver's built-in default".
type Config struct {
	Assembler string   `yaml:"assembler"`
	GccFlags  []string `yaml:"gcc_flags"`
	OutputDir string   `yaml:"output_dir"`
}

// Default returns the built-in defaults used when no coolc.yaml is
// present or a field is left unset.
func Default() *Config {
	return &Config{
		Assembler: "gcc",
		GccFlags:  []string{"-no-pie"},
		OutputDir: ".",
	}
}

// Load reads and parses path. A missing file is not an error: it returns
// Default() unchanged, since coolc.yaml is optional project
// configuration, not a required manifest.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	if cfg.Assembler == "" {
		cfg.Assembler = "gcc"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	return cfg, nil
}
