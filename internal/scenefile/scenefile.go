// Package scenefile reads and writes scene documents as JSON or YAML.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/segmentio/encoding/json"
	"gopkg.in/yaml.v3"

	"github.com/bethropolis/tidecanvas/internal/scene"
)

var ErrUnsupportedFormat = errors.New("unsupported scene file format")

// Format is the on-disk encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// File is the on-disk shape of a document.
type File struct {
	ID    string                `json:"id,omitempty" yaml:"id,omitempty"`
	Name  string                `json:"name,omitempty" yaml:"name,omitempty"`
	Roots []string              `json:"roots" yaml:"roots"`
	Nodes map[string]scene.Node `json:"nodes" yaml:"nodes"`
}

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, filepath.Ext(path))
}

// Decode reads a document in the given format.
func Decode(r io.Reader, format Format) (*File, error) {
	var f File
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&f); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, ErrUnsupportedFormat
	}
	f.normalize()
	return &f, nil
}

// Encode writes a document in the given format.
func Encode(w io.Writer, f *File, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return ErrUnsupportedFormat
	}
	return nil
}

// Load reads the scene at path. A missing file returns an error wrapping
// fs.ErrNotExist.
func Load(path string) (*File, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene '%s': %w", path, err)
	}
	f, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("scene '%s': %w", path, err)
	}
	return f, nil
}

// Save writes f to path through a temporary file in the same directory so
// a failed write never truncates the previous version.
func Save(path string, f *File) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f, format); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to write scene '%s': %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write scene '%s': %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write scene '%s': %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write scene '%s': %w", path, err)
	}
	return nil
}

// normalize fills ids from map keys and derives roots when absent.
func (f *File) normalize() {
	if f.Nodes == nil {
		f.Nodes = make(map[string]scene.Node)
	}
	for id, n := range f.Nodes {
		if n == nil {
			n = scene.Node{}
			f.Nodes[id] = n
		}
		if n.ID() == "" {
			n[scene.KeyID] = id
		}
	}
	if len(f.Roots) == 0 {
		f.Roots = nil
	}
}
