package canopy

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the session settings of a Context.
//
//	debug: true
//	tps: 60
//	stylesheets:
//	  - styles/base.yaml
//	  - styles/hud.yaml
type Config struct {
	// Debug enables per-pump stats logging and disposed-element checks.
	Debug bool `yaml:"debug"`

	// TPS overrides the tick rate used by Context.Update to derive elapsed
	// milliseconds. Zero means ebiten.TPS().
	TPS int `yaml:"tps"`

	// StyleSheets lists style sheet paths loaded by Context.LoadStyleSheets.
	StyleSheets []string `yaml:"stylesheets"`

	// LogOutput receives debug output. Nil means stderr.
	LogOutput io.Writer `yaml:"-"`
}

// DefaultConfig returns a configuration with debug off, the engine tick rate
// and no style sheets.
func DefaultConfig() Config {
	return Config{LogOutput: os.Stderr}
}

// LoadConfig parses a YAML configuration on top of DefaultConfig.
func LoadConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TPS < 0 {
		return Config{}, fmt.Errorf("parse config: tps must not be negative, got %d", cfg.TPS)
	}
	return cfg, nil
}
