package config

import (
	_ "embed"
)

//go:embed defaults/samegame.yaml
var defaultSameGameYAML []byte

//go:embed defaults/sokoban.yaml
var defaultSokobanYAML []byte

// DefaultSameGameConfig returns the default tile-matching configuration.
func DefaultSameGameConfig() SameGameConfig {
	return SameGameConfig{
		DefaultDifficulty: DifficultyEasy,
		Difficulties: map[DifficultyPreset]BoardPreset{
			DifficultyEasy:   {Rows: 8, Cols: 12, Colors: 3},
			DifficultyMedium: {Rows: 10, Cols: 15, Colors: 3},
			DifficultyHard:   {Rows: 12, Cols: 20, Colors: 4},
		},
	}
}

// DefaultSokobanConfig returns the default box-pushing configuration.
func DefaultSokobanConfig() SokobanConfig {
	return SokobanConfig{
		DefaultLevel: "easy",
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "samegame":
		return defaultSameGameYAML
	case "sokoban":
		return defaultSokobanYAML
	default:
		return nil
	}
}
