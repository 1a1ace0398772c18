// Package levels loads box-pushing level definitions: the built-in pack
// embedded in the binary and user level files from a directory.
// Levels are raw text rows; a Validator supplied by the game rejects maps it
// cannot play while files are loaded.
package levels

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownLevel is returned when no level has the requested ID.
	ErrUnknownLevel = errors.New("levels: unknown level")
	// ErrInvalidFile is returned for level files that cannot be used.
	ErrInvalidFile = errors.New("levels: invalid level file")
)

//go:embed builtin.yaml
var builtinYAML []byte

// Level is one puzzle map.
type Level struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Difficulty string   `yaml:"difficulty"`
	Rows       []string `yaml:"rows"`
	FilePath   string   `yaml:"-"`
}

// Title returns the level name, falling back to its ID.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// pack is the YAML layout of a multi-level file.
type pack struct {
	Levels []Level `yaml:"levels"`
}

// Builtin returns the levels shipped with the game, easiest first.
func Builtin() []Level {
	var p pack
	if err := yaml.Unmarshal(builtinYAML, &p); err != nil {
		panic(fmt.Sprintf("levels: embedded pack is invalid: %v", err))
	}
	return p.Levels
}

// Validator checks that a level's rows describe a playable map.
type Validator func(rows []string) error

// Loader handles loading levels from a directory.
type Loader struct {
	Root     string
	Validate Validator // nil accepts any non-empty map
}

// NewLoader creates a new level loader.
func NewLoader(root string, validate Validator) *Loader {
	return &Loader{Root: root, Validate: validate}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering. Files that fail
// to parse are skipped and reported in the joined error.
func (l *Loader) LoadAll() ([]Level, error) {
	var (
		levels []Level
		errs   []error
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isSupportedExtension(filepath.Ext(path)) {
			return nil
		}

		loaded, err := LoadFile(path, l.Validate)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		levels = append(levels, loaded...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, errors.Join(errs...)
}

// LoadFile loads every level in a single file. If any level fails validate
// the whole file is rejected.
func LoadFile(path string, validate Validator) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	var levels []Level
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		levels, err = parseYAML(data)
	case ".txt":
		levels, err = parseText(data)
	default:
		err = fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrInvalidFile, path, err)
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for i := range levels {
		if levels[i].ID == "" {
			levels[i].ID = stem
			if len(levels) > 1 {
				levels[i].ID = fmt.Sprintf("%s-%d", stem, i+1)
			}
		}
		levels[i].FilePath = path
		if validate == nil {
			continue
		}
		if err := validate(levels[i].Rows); err != nil {
			return nil, fmt.Errorf("%w %s: level %s: %w", ErrInvalidFile, path, levels[i].ID, err)
		}
	}
	return levels, nil
}

// parseYAML accepts either a pack ("levels:" list) or a single level.
func parseYAML(data []byte) ([]Level, error) {
	var p pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if len(p.Levels) == 0 {
		var single Level
		if err := yaml.Unmarshal(data, &single); err != nil {
			return nil, err
		}
		p.Levels = []Level{single}
	}
	for i, lvl := range p.Levels {
		if len(lvl.Rows) == 0 {
			return nil, fmt.Errorf("level %d has no rows", i+1)
		}
	}
	return p.Levels, nil
}

// parseText reads plain maps. Levels are separated by blank lines; lines
// starting with ';' are comments, and a comment directly before a map
// names it.
func parseText(data []byte) ([]Level, error) {
	var (
		levels  []Level
		current Level
	)
	flush := func() {
		if len(current.Rows) > 0 {
			levels = append(levels, current)
		}
		current = Level{}
	}

	for _, line := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, ";"):
			if len(current.Rows) == 0 {
				current.Name = strings.TrimSpace(strings.TrimPrefix(line, ";"))
			}
		case strings.TrimSpace(line) == "":
			flush()
		default:
			current.Rows = append(current.Rows, line)
		}
	}
	flush()

	if len(levels) == 0 {
		return nil, errors.New("no level rows")
	}
	return levels, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".txt":
		return true
	default:
		return false
	}
}

// All returns the built-in levels followed by the levels found in dir.
// An empty dir yields only the built-in pack. Directory levels whose ID
// clashes with an earlier level are dropped.
func All(dir string, validate Validator) ([]Level, error) {
	levels := Builtin()
	if dir == "" {
		return levels, nil
	}

	extra, err := NewLoader(dir, validate).LoadAll()
	seen := make(map[string]bool, len(levels))
	for _, l := range levels {
		seen[l.ID] = true
	}
	for _, l := range extra {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		levels = append(levels, l)
	}
	return levels, err
}

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, error) {
	for _, l := range levels {
		if l.ID == id {
			return l, nil
		}
	}
	return Level{}, fmt.Errorf("%w: %q", ErrUnknownLevel, id)
}

// IDs returns the IDs of levels in order.
func IDs(levels []Level) []string {
	ids := make([]string, len(levels))
	for i, l := range levels {
		ids[i] = l.ID
	}
	return ids
}

// Next returns the level after id, wrapping to the first.
func Next(levels []Level, id string) (Level, bool) {
	for i, l := range levels {
		if l.ID == id {
			return levels[(i+1)%len(levels)], true
		}
	}
	return Level{}, false
}
