package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var sg SameGameConfig
	if err := yaml.Unmarshal(GetDefaultYAML("samegame"), &sg); err != nil {
		t.Fatalf("embedded samegame.yaml: %v", err)
	}
	want := DefaultSameGameConfig()
	for _, d := range Difficulties() {
		got, err := sg.Board(d)
		if err != nil {
			t.Fatalf("Board(%s): %v", d, err)
		}
		if got != want.Difficulties[d] {
			t.Errorf("%s: embedded %+v, hardcoded %+v", d, got, want.Difficulties[d])
		}
	}

	var sk SokobanConfig
	if err := yaml.Unmarshal(GetDefaultYAML("sokoban"), &sk); err != nil {
		t.Fatalf("embedded sokoban.yaml: %v", err)
	}
	if sk.DefaultLevel != DefaultSokobanConfig().DefaultLevel {
		t.Errorf("default level = %q", sk.DefaultLevel)
	}

	if GetDefaultYAML("pong") != nil {
		t.Error("unknown game should have no default YAML")
	}
}

func TestLoadSameGameCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "samegame.yaml")
	data := []byte(`
default_difficulty: tiny
difficulties:
  tiny:
    rows: 3
    cols: 4
    colors: 2
history_limit: 5
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSameGame(path)
	if err != nil {
		t.Fatalf("LoadSameGame: %v", err)
	}
	b, err := cfg.Board("tiny")
	if err != nil {
		t.Fatal(err)
	}
	if b.Rows != 3 || b.Cols != 4 || b.Colors != 2 {
		t.Errorf("unexpected preset %+v", b)
	}
	if cfg.HistoryLimit != 5 {
		t.Errorf("history limit = %d, want 5", cfg.HistoryLimit)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadSameGame(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(path, []byte("difficulties: [1, 2"), 0o644)
	if _, err := LoadSokoban(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestSameGameValidate(t *testing.T) {
	tests := []struct {
		name    string
		preset  BoardPreset
		wantErr bool
	}{
		{"valid", BoardPreset{Rows: 8, Cols: 12, Colors: 3}, false},
		{"zero rows", BoardPreset{Rows: 0, Cols: 12, Colors: 3}, true},
		{"no colors", BoardPreset{Rows: 8, Cols: 12, Colors: 0}, true},
		{"too many colors", BoardPreset{Rows: 8, Cols: 12, Colors: MaxColors + 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := SameGameConfig{Difficulties: map[DifficultyPreset]BoardPreset{DifficultyEasy: tt.preset}}
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	cfg := DefaultSameGameConfig()
	cfg.DefaultDifficulty = "impossible"
	if err := cfg.Validate(); !errors.Is(err, ErrUnknownDifficulty) {
		t.Errorf("expected ErrUnknownDifficulty, got %v", err)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want DifficultyPreset
		err  bool
	}{
		{"easy", DifficultyEasy, false},
		{"Medium", DifficultyMedium, false},
		{"normal", DifficultyMedium, false},
		{" HARD ", DifficultyHard, false},
		{"nightmare", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.err {
			if !errors.Is(err, ErrUnknownDifficulty) {
				t.Errorf("ParseDifficulty(%q) error = %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseDifficulty(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}

	if DifficultyHard.Title() != "Hard" {
		t.Errorf("Title() = %q", DifficultyHard.Title())
	}
}
