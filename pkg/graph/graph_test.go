package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/radialtree/pkg/core/radial"
	"github.com/matzehuels/radialtree/pkg/errors"
)

const exampleJSON = `{
	"nodes": [
		{"id": "a", "r": 1, "a": 0, "label": "Root", "meta": {"team": "core"}},
		{"id": "b", "r": 1, "a": 90},
		{"id": "c", "r": 2, "a": 180}
	],
	"edges": [["a", "b"], {"from": "b", "to": "c"}, ["a", "ghost"]]
}`

func computeExample(t *testing.T) (Graph, Layout) {
	t.Helper()
	g, err := UnmarshalGraph([]byte(exampleJSON))
	if err != nil {
		t.Fatalf("UnmarshalGraph() error: %v", err)
	}
	cfg := radial.NewConfig(radial.WithRadii(10, 20), radial.WithSteps(5, 10))
	res, err := radial.ComputeRecords(g.Nodes, g.RadialEdges(), cfg)
	if err != nil {
		t.Fatalf("ComputeRecords() error: %v", err)
	}
	return g, FromResult(g, res)
}

func TestEdgeUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Edge
		wantErr bool
	}{
		{"pair", `["a", "b"]`, Edge{From: "a", To: "b"}, false},
		{"object", `{"from": "a", "to": "b"}`, Edge{From: "a", To: "b"}, false},
		{"numeric ids", `[1, 2]`, Edge{From: "1", To: "2"}, false},
		{"large numeric ids", `[1000000, 2000000]`, Edge{From: "1000000", To: "2000000"}, false},
		{"decimal ids keep text", `{"from": 1.0, "to": 2.50}`, Edge{From: "1.0", To: "2.50"}, false},
		{"short pair", `["a"]`, Edge{}, true},
		{"long pair", `["a", "b", "c"]`, Edge{}, true},
		{"missing to", `{"from": "a"}`, Edge{}, true},
		{"empty endpoint", `["", "b"]`, Edge{}, true},
		{"scalar", `"a"`, Edge{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e Edge
			err := json.Unmarshal([]byte(tt.input), &e)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && e != tt.want {
				t.Errorf("edge = %+v, want %+v", e, tt.want)
			}
		})
	}
}

func TestNumericIDsRoute(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		doc    string
	}{
		{"json", FormatJSON, `{
			"nodes": [{"id": 1000000, "r": 1, "a": 0}, {"id": 2000000, "r": 2, "a": 90}, {"id": 1.0, "r": 2, "a": 180}],
			"edges": [[1000000, 2000000], {"from": 2000000, "to": 1.0}]
		}`},
		{"yaml", FormatYAML, `
nodes:
  - {id: 1000000, r: 1, a: 0}
  - {id: 2000000, r: 2, a: 90}
  - {id: 1.0, r: 2, a: 180}
edges:
  - [1000000, 2000000]
  - {from: 2000000, to: 1.0}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.doc), tt.format)
			if err != nil {
				t.Fatalf("ReadGraph() error: %v", err)
			}
			cfg := radial.NewConfig(radial.WithRadii(10, 20), radial.WithSteps(5, 10))
			res, err := radial.ComputeRecords(g.Nodes, g.RadialEdges(), cfg)
			if err != nil {
				t.Fatalf("ComputeRecords() error: %v", err)
			}
			if len(res.Issues) != 0 {
				t.Errorf("issues = %v, want none", res.Issues)
			}
			l := FromResult(g, res)
			if len(l.Paths) != 2 {
				t.Fatalf("paths = %d, want 2", len(l.Paths))
			}
			if l.Paths[0].From != "1000000" || l.Paths[0].To != "2000000" {
				t.Errorf("path[0] = %s -> %s", l.Paths[0].From, l.Paths[0].To)
			}
		})
	}
}

func TestEdgeUnmarshalYAML(t *testing.T) {
	var edges []Edge
	doc := "- [a, b]\n- {from: b, to: c}\n- [1, 2]\n"
	if err := yaml.Unmarshal([]byte(doc), &edges); err != nil {
		t.Fatalf("yaml.Unmarshal() error: %v", err)
	}
	want := []Edge{{"a", "b"}, {"b", "c"}, {"1", "2"}}
	for i := range want {
		if edges[i] != want[i] {
			t.Errorf("edges[%d] = %+v, want %+v", i, edges[i], want[i])
		}
	}

	var bad []Edge
	if err := yaml.Unmarshal([]byte("- a\n"), &bad); err == nil {
		t.Error("scalar edge should fail")
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"nodes": [`, errors.ErrCodeInvalidFormat},
		{"bad edge", `{"nodes": [{"id": "a"}], "edges": [["a"]]}`, errors.ErrCodeInvalidFormat},
		{"no nodes", `{"nodes": [], "edges": []}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input), FormatJSON)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]Format{
		"tree.json": FormatJSON,
		"tree.yaml": FormatYAML,
		"tree.YML":  FormatYAML,
		"tree":      FormatJSON,
	}
	for path, want := range tests {
		if got := FormatFromPath(path); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", path, got, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormat(xml) error = %v", err)
	}
}

func TestFromResult(t *testing.T) {
	_, l := computeExample(t)

	if l.Width != 500 || l.Height != 500 {
		t.Errorf("size = %vx%v, want 500x500", l.Width, l.Height)
	}
	if len(l.Rings) != 2 || len(l.Slots) != 18 || l.Geometry.Capacity != 18 {
		t.Errorf("rings = %d slots = %d capacity = %d", len(l.Rings), len(l.Slots), l.Geometry.Capacity)
	}
	if l.Geometry.RadiusDomain != [2]float64{1, 2} {
		t.Errorf("radius domain = %v, want [1 2]", l.Geometry.RadiusDomain)
	}

	a, ok := l.Node("a")
	if !ok || !a.Placed() {
		t.Fatal("a should be placed")
	}
	if a.Label != "Root" || a.Meta["team"] != "core" {
		t.Errorf("a label/meta = %q %v", a.Label, a.Meta)
	}
	if *a.X != 260 || *a.Y != 250 {
		t.Errorf("a at (%v, %v), want (260, 250)", *a.X, *a.Y)
	}
	if !l.Slots[*a.Slot].Occupied {
		t.Error("a's slot should be occupied")
	}

	if len(l.Paths) != 2 {
		t.Fatalf("paths = %d, want 2", len(l.Paths))
	}
	ab := l.Paths[0]
	if ab.From != "a" || ab.To != "b" || ab.Wraps {
		t.Errorf("path[0] = %s->%s wraps=%v", ab.From, ab.To, ab.Wraps)
	}
	if first := ab.Waypoints[0]; first.X != *a.X || first.Y != *a.Y {
		t.Errorf("a->b starts at (%v, %v), want a", first.X, first.Y)
	}
	if !strings.HasPrefix(ab.D, "M260.00,250.00C") {
		t.Errorf("path data = %q", ab.D)
	}

	if len(l.Issues) != 1 || l.Issues[0].Kind != string(radial.IssueUnresolvedEdgeEndpoint) || l.Issues[0].To != "ghost" {
		t.Errorf("issues = %+v", l.Issues)
	}
	if !l.Partial() {
		t.Error("Partial() = false, want true")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	_, l := computeExample(t)
	dir := t.TempDir()

	for _, name := range []string{"layout.json", "layout.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := WriteLayoutFile(l, path); err != nil {
				t.Fatalf("WriteLayoutFile() error: %v", err)
			}
			got, err := ReadLayoutFile(path)
			if err != nil {
				t.Fatalf("ReadLayoutFile() error: %v", err)
			}
			if len(got.Slots) != len(l.Slots) || len(got.Paths) != len(l.Paths) {
				t.Errorf("round trip lost data: %d slots %d paths", len(got.Slots), len(got.Paths))
			}
			if n, ok := got.Node("c"); !ok || n.Slot == nil || *n.Slot != *mustNode(t, l, "c").Slot {
				t.Errorf("node c did not survive the round trip")
			}
		})
	}
}

func mustNode(t *testing.T, l Layout, id string) Node {
	t.Helper()
	n, ok := l.Node(id)
	if !ok {
		t.Fatalf("node %s missing", id)
	}
	return n
}

func TestUnmarshalLayoutRequiresSlots(t *testing.T) {
	if _, err := UnmarshalLayout([]byte(`{"width": 1}`)); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}
}

func TestReadGraphFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.yml")
	doc := "nodes:\n  - {id: a, r: 1, a: 0}\n  - {id: b, r: 2, a: 45}\nedges:\n  - [a, b]\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	g, err := ReadGraphFile(path)
	if err != nil {
		t.Fatalf("ReadGraphFile() error: %v", err)
	}
	nodes, err := radial.Ingest(g.Nodes, radial.FieldAccessors("id", "r", "a"))
	if err != nil {
		t.Fatalf("Ingest() error: %v", err)
	}
	if nodes[1].Radius != 2 || nodes[1].Angle != 45 {
		t.Errorf("nodes[1] = %+v", nodes[1])
	}
}

func TestExportDOT(t *testing.T) {
	_, l := computeExample(t)
	dot := ExportDOT(l)

	for _, want := range []string{`graph G {`, `"a" [label="Root", pos="195.00,187.50!"]`, `"a" -- "b";`, `"b" -- "c";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Error("unrouted edge should not be exported")
	}

	if err := ValidateDOT(context.Background(), dot); err != nil {
		t.Errorf("ValidateDOT() error: %v", err)
	}
}

func TestDOTQuote(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"a", `"a"`},
		{`say "hi"`, `"say \"hi\""`},
		{`C:\tmp\`, `"C:\\tmp\\"`},
		{"two\nlines", `"two\nlines"`},
		{"ünïcode", `"ünïcode"`},
	}
	for _, tt := range tests {
		if got := dotQuote(tt.in); got != tt.want {
			t.Errorf("dotQuote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestExportDOTEscapesIDs(t *testing.T) {
	doc := `{
		"nodes": [
			{"id": "say \"hi\"", "r": 1, "a": 0, "label": "back\\slash\\"},
			{"id": "tab\tand\nnewline", "r": 2, "a": 90}
		],
		"edges": [["say \"hi\"", "tab\tand\nnewline"]]
	}`
	g, err := UnmarshalGraph([]byte(doc))
	if err != nil {
		t.Fatalf("UnmarshalGraph() error: %v", err)
	}
	cfg := radial.NewConfig(radial.WithRadii(10, 20), radial.WithSteps(5, 10))
	res, err := radial.ComputeRecords(g.Nodes, g.RadialEdges(), cfg)
	if err != nil {
		t.Fatalf("ComputeRecords() error: %v", err)
	}
	dot := ExportDOT(FromResult(g, res))
	if !strings.Contains(dot, `"say \"hi\"" -- `) {
		t.Errorf("DOT edge not escaped:\n%s", dot)
	}
	if strings.Contains(dot, "\\u00") || strings.Contains(dot, "\\t") {
		t.Errorf("DOT contains Go escapes:\n%s", dot)
	}
	if err := ValidateDOT(context.Background(), dot); err != nil {
		t.Errorf("ValidateDOT() error: %v", err)
	}
}

func TestValidateDOTRejectsSyntax(t *testing.T) {
	err := ValidateDOT(context.Background(), "graph G { a -- ")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ValidateDOT() error = %v, want INVALID_FORMAT", err)
	}
}

func TestMarshalLayoutJSONShape(t *testing.T) {
	_, l := computeExample(t)
	data, err := MarshalLayout(l, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"width", "center", "geometry", "rings", "slots", "nodes", "paths", "issues"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("layout JSON missing %q", key)
		}
	}
	if _, ok := raw["id"]; ok {
		t.Error("empty id should be omitted")
	}
}
