package pipeline

import (
	"context"
	"strings"

	"github.com/matzehuels/radialtree/pkg/errors"
	"github.com/matzehuels/radialtree/pkg/graph"
)

// Output formats for an exported layout.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatYAML: true,
	FormatDOT:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, yaml, dot)", format)
	}
	return nil
}

// FormatFromPath picks the output format from a file extension, defaulting
// to JSON.
func FormatFromPath(path string) string {
	switch {
	case strings.HasSuffix(path, ".dot"), strings.HasSuffix(path, ".gv"):
		return FormatDOT
	case graph.FormatFromPath(path) == graph.FormatYAML:
		return FormatYAML
	default:
		return FormatJSON
	}
}

// validateDOT checks generated DOT before it leaves the pipeline.
var validateDOT = graph.ValidateDOT

// Export encodes l in the given format. DOT output is parsed with Graphviz
// first, so a caller never receives a graph that neato would reject.
func Export(ctx context.Context, l graph.Layout, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(l, graph.FormatJSON)
	case FormatYAML:
		return graph.MarshalLayout(l, graph.FormatYAML)
	case FormatDOT:
		dot := graph.ExportDOT(l)
		if err := validateDOT(ctx, dot); err != nil {
			return nil, err
		}
		return []byte(dot), nil
	}
	return nil, ValidateFormat(format)
}
