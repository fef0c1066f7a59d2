package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDino loads the runner configuration and validates it.
// Search order: customPath -> ~/.dino/configs/dino.yaml -> ./configs/dino.yaml -> embedded default.
// Files are applied on top of the defaults, so a partial file only overrides
// the keys it names.
func LoadDino(customPath string) (DinoConfig, error) {
	cfg, err := loadDino(customPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func loadDino(customPath string) (DinoConfig, error) {
	cfg := DefaultDinoConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dino.yaml"); userCfgPath != "" {
		if parsed, ok := tryParse(userCfgPath); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := tryParse(filepath.Join("configs", "dino.yaml")); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultDinoYAML, &cfg); err != nil {
		return DefaultDinoConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryParse reads an optional config file. Missing or malformed files are skipped.
func tryParse(path string) (DinoConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DinoConfig{}, false
	}
	cfg := DefaultDinoConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DinoConfig{}, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dino", "configs", filename)
}

// ApplyDinoPreset modifies the config based on a difficulty preset.
func ApplyDinoPreset(cfg *DinoConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.Lives = 5
		cfg.Player.Invulnerability = 2.0
	case DifficultyHard:
		cfg.Player.Lives = 2
		cfg.Player.Invulnerability = 1.0
	}
}
