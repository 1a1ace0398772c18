// Package config provides YAML-based game configuration loading and
// difficulty presets for the puzzle games.
package config

import (
	"errors"
	"fmt"
)

// MaxColors is the size of the tile palette.
const MaxColors = 8

// SameGameConfig contains all configuration for the tile-matching game.
type SameGameConfig struct {
	DefaultDifficulty DifficultyPreset                 `yaml:"default_difficulty"`
	Difficulties      map[DifficultyPreset]BoardPreset `yaml:"difficulties"`
	HistoryLimit      int                              `yaml:"history_limit"` // 0 = unbounded
}

// BoardPreset defines the board generated for one difficulty.
type BoardPreset struct {
	Rows   int `yaml:"rows"`
	Cols   int `yaml:"cols"`
	Colors int `yaml:"colors"`
}

// SokobanConfig contains all configuration for the box-pushing game.
type SokobanConfig struct {
	DefaultLevel string `yaml:"default_level"` // Level ID
	LevelsDir    string `yaml:"levels_dir"`    // Extra level files; empty means built-in levels only
	HistoryLimit int    `yaml:"history_limit"` // 0 = unbounded
}

// Board returns the preset for d.
func (c SameGameConfig) Board(d DifficultyPreset) (BoardPreset, error) {
	b, ok := c.Difficulties[d]
	if !ok {
		return BoardPreset{}, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	return b, nil
}

// Validate checks every preset.
func (c SameGameConfig) Validate() error {
	if len(c.Difficulties) == 0 {
		return errors.New("config: samegame: no difficulties defined")
	}
	for name, b := range c.Difficulties {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("config: samegame %s: %w", name, err)
		}
	}
	if c.DefaultDifficulty != "" {
		if _, err := c.Board(c.DefaultDifficulty); err != nil {
			return err
		}
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: samegame: negative history_limit %d", c.HistoryLimit)
	}
	return nil
}

// Validate checks the board dimensions and color count.
func (b BoardPreset) Validate() error {
	if b.Rows <= 0 || b.Cols <= 0 {
		return fmt.Errorf("invalid board size %dx%d", b.Rows, b.Cols)
	}
	if b.Colors < 1 || b.Colors > MaxColors {
		return fmt.Errorf("colors must be between 1 and %d, got %d", MaxColors, b.Colors)
	}
	return nil
}

// Validate checks the history bound.
func (c SokobanConfig) Validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: sokoban: negative history_limit %d", c.HistoryLimit)
	}
	return nil
}
