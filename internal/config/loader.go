package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const styxFile = "styx.yaml"

// LoadStyx loads the Styx configuration. Files are decoded over the
// defaults so a partial file only overrides what it names.
// Search order: customPath -> ~/.styx/configs/styx.yaml -> ./configs/styx.yaml -> embedded default
func LoadStyx(customPath string) (StyxConfig, error) {
	cfg := DefaultStyxConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range searchPaths() {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultStyxConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil && candidate.Validate() == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultStyxYAML, &cfg); err != nil {
		return DefaultStyxConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func searchPaths() []string {
	var paths []string
	if p := userConfigPath(styxFile); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", styxFile))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".styx", "configs", filename)
}

// ApplyStyxPreset modifies the config based on a difficulty preset.
func ApplyStyxPreset(cfg *StyxConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust lives and adversary pace
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Adversary.StepLength = 4
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Adversary.StepLength = 6
		cfg.Adversary.MaxTurnDeg = 40
	}
}

// Marshal renders cfg as YAML.
func Marshal(cfg StyxConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
