package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/radialtree/pkg/core/radial"
)

// Record keys read from input nodes besides the configurable accessors.
const (
	KeyLabel = "label"
	KeyMeta  = "meta"
)

// =============================================================================
// Graph - Layout Input
// =============================================================================

// Graph is the input format: raw node records plus edges.
//
// Nodes are kept as records so the identifier, radius and angle fields can be
// chosen at layout time (see radial.Config.IDValue and friends). With the
// default field names a node looks like:
//
//	{"id": "a", "r": 1, "a": 0, "label": "Root", "meta": {"k": "v"}}
type Graph struct {
	Nodes []radial.Record `json:"nodes" yaml:"nodes" bson:"nodes"`
	Edges []Edge          `json:"edges" yaml:"edges" bson:"edges"`
}

// RadialEdges returns the edges in layout form.
func (g Graph) RadialEdges() []radial.Edge {
	out := make([]radial.Edge, len(g.Edges))
	for i, e := range g.Edges {
		out[i] = radial.Edge{From: e.From, To: e.To}
	}
	return out
}

// =============================================================================
// Edge - Pair or Object
// =============================================================================

// Edge connects two node identifiers. It decodes from either a two-element
// array ["from", "to"] or an object {"from": ..., "to": ...}, and always
// encodes as an object.
type Edge struct {
	From string `json:"from" yaml:"from" bson:"from"`
	To   string `json:"to" yaml:"to" bson:"to"`
}

type edgeObject struct {
	From any `json:"from" yaml:"from"`
	To   any `json:"to" yaml:"to"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair []any
	if err := decodeNumbers(data, &pair); err == nil {
		return e.fromPair(pair)
	}
	var obj edgeObject
	if err := decodeNumbers(data, &obj); err != nil {
		return fmt.Errorf("edge must be [from, to] or {from, to}: %w", err)
	}
	return e.fromEnds(obj.From, obj.To)
}

// decodeNumbers keeps numeric endpoints as json.Number so they format the
// same way as node ids read by the outer decoder.
func decodeNumbers(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *Edge) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.SequenceNode:
		var pair []any
		if err := n.Decode(&pair); err != nil {
			return err
		}
		return e.fromPair(pair)
	case yaml.MappingNode:
		var obj edgeObject
		if err := n.Decode(&obj); err != nil {
			return err
		}
		return e.fromEnds(obj.From, obj.To)
	}
	return fmt.Errorf("line %d: edge must be [from, to] or {from, to}", n.Line)
}

func (e *Edge) fromPair(pair []any) error {
	if len(pair) != 2 {
		return fmt.Errorf("edge pair must have exactly 2 elements, got %d", len(pair))
	}
	return e.fromEnds(pair[0], pair[1])
}

func (e *Edge) fromEnds(from, to any) error {
	f, err := endpoint(from)
	if err != nil {
		return fmt.Errorf("edge from: %w", err)
	}
	t, err := endpoint(to)
	if err != nil {
		return fmt.Errorf("edge to: %w", err)
	}
	e.From, e.To = f, t
	return nil
}

// endpoint accepts string and numeric identifiers, formatted exactly like
// record ids.
func endpoint(v any) (string, error) {
	if v == nil {
		return "", fmt.Errorf("missing endpoint")
	}
	id, ok := radial.FormatID(v)
	if !ok {
		return "", fmt.Errorf("unsupported endpoint type %T", v)
	}
	if id == "" {
		return "", fmt.Errorf("empty endpoint")
	}
	return id, nil
}

// =============================================================================
// Record Helpers
// =============================================================================

// label returns the record's display label, or "" when absent.
func label(r radial.Record) string {
	if s, ok := r[KeyLabel].(string); ok {
		return s
	}
	return ""
}

// meta returns the record's metadata object, or nil.
func meta(r radial.Record) map[string]any {
	if m, ok := r[KeyMeta].(map[string]any); ok && len(m) > 0 {
		return m
	}
	return nil
}
