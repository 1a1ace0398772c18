package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// appDir is the directory name used under the XDG config and data homes.
const appDir = "puzzles"

// LoadSameGame loads tile-matching configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/puzzles/samegame.yaml -> ./configs/samegame.yaml -> embedded default
func LoadSameGame(customPath string) (SameGameConfig, error) {
	cfg, err := load("samegame", customPath, defaultSameGameYAML, DefaultSameGameConfig)
	if err != nil {
		return cfg, err
	}
	if cfg.DefaultDifficulty == "" {
		cfg.DefaultDifficulty = DifficultyEasy
	}
	return cfg, cfg.Validate()
}

// LoadSokoban loads box-pushing configuration.
// Search order: customPath -> $XDG_CONFIG_HOME/puzzles/sokoban.yaml -> ./configs/sokoban.yaml -> embedded default
func LoadSokoban(customPath string) (SokobanConfig, error) {
	cfg, err := load("sokoban", customPath, defaultSokobanYAML, DefaultSokobanConfig)
	if err != nil {
		return cfg, err
	}
	if cfg.LevelsDir != "" {
		cfg.LevelsDir = expandHome(cfg.LevelsDir)
	}
	return cfg, cfg.Validate()
}

func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T
	file := name + ".yaml"

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
	if userCfgPath := UserConfigPath(file); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", file)); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	var def T
	if err := yaml.Unmarshal(embedded, &def); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return def, nil
}

// UserConfigPath returns the path of an existing user config file, or
// empty if there is none.
func UserConfigPath(filename string) string {
	path, err := xdg.SearchConfigFile(filepath.Join(appDir, filename))
	if err != nil {
		return ""
	}
	return path
}

// DefaultDBPath returns the score database location under the XDG data
// home, creating its parent directory.
func DefaultDBPath() string {
	path, err := xdg.DataFile(filepath.Join(appDir, "scores.db"))
	if err != nil {
		return filepath.Join(".", "scores.db")
	}
	return path
}

func expandHome(p string) string {
	if p == "" || p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[1:])
}
