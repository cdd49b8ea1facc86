package levels

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultDir is where maps are saved when no directory is configured.
const DefaultDir = "maps"

// DefaultNames lists the maps that ship embedded with the binary.
var DefaultNames = []string{"default", "city", "arena"}

// Library resolves named maps to files in a directory, falling back to the
// embedded defaults.
type Library struct {
	Dir string
}

// NewLibrary creates a library rooted at dir (DefaultDir when empty).
func NewLibrary(dir string) *Library {
	if dir == "" {
		dir = DefaultDir
	}
	return &Library{Dir: dir}
}

// Path returns the file path for a map name.
func (l *Library) Path(name string) string {
	return filepath.Join(l.dir(), withExt(filepath.Base(name)))
}

// Names lists the maps in the library directory by stem, sorted. When the
// directory is missing or empty, the embedded defaults are listed instead.
func (l *Library) Names() []string {
	entries, err := os.ReadDir(l.dir())
	if err != nil {
		return append([]string(nil), DefaultNames...)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
	}
	if len(names) == 0 {
		return append([]string(nil), DefaultNames...)
	}
	sort.Strings(names)
	return names
}

// Load reads a map by name: the library directory first, then the embedded
// defaults.
func (l *Library) Load(name string) (*MapFile, error) {
	if name == "" {
		return nil, fmt.Errorf("levels: empty map name")
	}
	data, err := os.ReadFile(l.Path(name))
	if err == nil {
		mf, err := Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("levels: load %s: %w", name, err)
		}
		return mf, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("levels: load %s: %w", name, err)
	}
	mf, ferr := LoadMapFromFS(LevelsFS, filepath.Base(name))
	if ferr != nil {
		if _, statErr := fs.Stat(LevelsFS, withExt(filepath.Base(name))); statErr != nil {
			return nil, fmt.Errorf("levels: load %s: %w", name, err)
		}
		return nil, fmt.Errorf("levels: load %s: %w", name, ferr)
	}
	return mf, nil
}

// Save writes a map by name into the library directory, creating it.
func (l *Library) Save(name string, mf *MapFile) error {
	if name == "" {
		return fmt.Errorf("levels: empty map name")
	}
	if err := os.MkdirAll(l.dir(), 0755); err != nil {
		return fmt.Errorf("levels: save %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := Encode(&buf, mf); err != nil {
		return fmt.Errorf("levels: save %s: %w", name, err)
	}
	if err := os.WriteFile(l.Path(name), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("levels: save %s: %w", name, err)
	}
	return nil
}

func (l *Library) dir() string {
	if l == nil || l.Dir == "" {
		return DefaultDir
	}
	return l.Dir
}
