package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/radialtree/pkg/errors"
)

// Format selects the encoding of graph and layout files.
type Format string

// Supported encodings.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension: .yaml and .yml are
// YAML, everything else is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want json or yaml)", s)
}

// =============================================================================
// Graph Serialization API
// =============================================================================

// ReadGraph decodes a graph from r. Malformed documents yield INVALID_FORMAT.
func ReadGraph(r io.Reader, f Format) (Graph, error) {
	var g Graph
	if err := decode(r, f, &g); err != nil {
		return Graph{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	if len(g.Nodes) == 0 {
		return Graph{}, errors.New(errors.ErrCodeInvalidInput, "graph has no nodes")
	}
	return g, nil
}

// ReadGraphFile reads a graph file, choosing the format by extension.
func ReadGraphFile(path string) (Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return Graph{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f, FormatFromPath(path))
}

// UnmarshalGraph decodes JSON bytes into a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	return ReadGraph(bytes.NewReader(data), FormatJSON)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout encodes a layout; JSON output is indented.
func MarshalLayout(l Layout, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteLayout(l, &buf, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLayout encodes a layout to w.
func WriteLayout(l Layout, w io.Writer, f Format) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
}

// WriteLayoutFile writes a layout file, choosing the format by extension.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// UnmarshalLayout decodes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (Layout, error) {
	return ReadLayout(bytes.NewReader(data), FormatJSON)
}

// ReadLayout decodes a layout from r.
func ReadLayout(r io.Reader, f Format) (Layout, error) {
	var l Layout
	if err := decode(r, f, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode layout")
	}
	if len(l.Slots) == 0 {
		return Layout{}, errors.New(errors.ErrCodeInvalidFormat, "layout must contain slots")
	}
	return l, nil
}

// ReadLayoutFile reads a layout file, choosing the format by extension.
func ReadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLayout(f, FormatFromPath(path))
}

// =============================================================================
// Internal Implementation
// =============================================================================

func decode(r io.Reader, f Format, v any) error {
	if f == FormatYAML {
		return yaml.NewDecoder(r).Decode(v)
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec.Decode(v)
}
