package level

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// Format is a level file encoding.
type Format string

const (
	FormatYAML    Format = "yaml"
	FormatJSON    Format = "json"
	FormatMsgpack Format = "msgpack"
)

// ErrUnsupportedFormat is returned for file extensions with no codec.
var ErrUnsupportedFormat = errors.New("level: unsupported format")

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json", ".msgpack", ".mpk"}
}

// FormatFromPath picks the encoding from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".msgpack", ".mpk":
		return FormatMsgpack, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Parse decodes a level in the given format.
func Parse(data []byte, format Format) (*Level, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatJSON:
		err = json.Unmarshal(data, &f)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("level: %s decode: %w", format, err)
	}
	return FromFile(f), nil
}

// Marshal encodes a level in the given format.
func Marshal(l *Level, format Format) ([]byte, error) {
	f := ToFile(l)
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return nil, fmt.Errorf("level: yaml encode: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("level: yaml encode: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("level: json encode: %w", err)
		}
		return append(data, '\n'), nil
	case FormatMsgpack:
		data, err := msgpack.Marshal(&f)
		if err != nil {
			return nil, fmt.Errorf("level: msgpack encode: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// LoadFile reads a level, choosing the codec by extension. A level with
// no name takes the file name without extension.
func LoadFile(path string) (*Level, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: cannot read %s: %w", path, err)
	}
	l, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

// SaveFile writes a level, choosing the codec by extension.
func SaveFile(path string, l *Level) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Marshal(l, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("level: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("level: cannot write %s: %w", path, err)
	}
	return nil
}

// Entry is a level found on disk.
type Entry struct {
	Name  string
	Path  string
	Level *Level
}

// Loader finds levels in a directory tree.
type Loader struct {
	Root string
}

// NewLoader creates a loader rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively loads every level file under Root, skipping files
// that fail to parse. Results are sorted by name.
func (l *Loader) LoadAll() ([]Entry, error) {
	var entries []Entry

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, err := FormatFromPath(path); err != nil {
			return nil
		}

		lvl, err := LoadFile(path)
		if err != nil {
			return nil
		}
		entries = append(entries, Entry{Name: lvl.Name, Path: path, Level: lvl})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// LoadByName loads the level with the given name.
func (l *Loader) LoadByName(name string) (Entry, error) {
	entries, err := l.LoadAll()
	if err != nil {
		return Entry{}, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("level not found: %s", name)
}
