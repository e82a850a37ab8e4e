package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/radialtree/pkg/errors"
	"github.com/matzehuels/radialtree/pkg/graph"
	"github.com/matzehuels/radialtree/pkg/observability"
)

// DefaultConfigFile is the config file looked up in the working directory
// when none is given.
const DefaultConfigFile = "radialtree.toml"

// LoadOptionsFile reads Options from a TOML, YAML or JSON file, chosen by
// extension. Unknown keys are rejected so typos do not silently fall back
// to defaults.
func LoadOptionsFile(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "read config %s", path)
	}

	var o Options
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &o)
		if err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
		}
		if und := md.Undecoded(); len(und) > 0 {
			return Options{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, und[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&o); err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&o); err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s", path)
		}
	default:
		return Options{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported config extension %q (want .toml, .yaml or .json)", filepath.Ext(path))
	}
	return o, nil
}

// ReadGraphFile reads a graph file and reports the ingest to the pipeline
// hooks.
func ReadGraphFile(ctx context.Context, path string) (graph.Graph, error) {
	start := time.Now()
	g, err := graph.ReadGraphFile(path)
	observability.Pipeline().OnIngestComplete(ctx, path, len(g.Nodes), time.Since(start), err)
	return g, err
}
