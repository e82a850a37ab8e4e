package radial

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/radialtree/pkg/errors"
)

// Record is a raw input node as decoded from JSON or YAML.
type Record map[string]any

// Accessors extract the identifier, radius and angle of a record of type T.
type Accessors[T any] struct {
	ID     func(T) (string, error)
	Radius func(T) (float64, error)
	Angle  func(T) (float64, error)
}

// FieldAccessors reads the named fields of a Record. Numbers may be any Go
// numeric type, a json.Number or a numeric string; identifiers may be
// strings or numbers.
func FieldAccessors(idField, radiusField, angleField string) Accessors[Record] {
	return Accessors[Record]{
		ID: func(r Record) (string, error) {
			return recordID(r, idField)
		},
		Radius: func(r Record) (float64, error) {
			return recordNumber(r, radiusField)
		},
		Angle: func(r Record) (float64, error) {
			return recordNumber(r, angleField)
		},
	}
}

// Accessors returns the record accessors selected by c's field names.
func (c Config) Accessors() Accessors[Record] {
	return FieldAccessors(c.IDValue, c.RadiusValue, c.AngleValue)
}

// Ingest converts records into nodes using acc. It fails with INVALID_INPUT
// on the first record whose fields are missing or malformed, naming its
// position, and with DUPLICATE_NODE when two records share an identifier.
func Ingest[T any](records []T, acc Accessors[T]) ([]Node, error) {
	nodes := make([]Node, 0, len(records))
	for i, rec := range records {
		id, err := acc.ID(rec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
		}
		r, err := acc.Radius(rec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d (%s)", i, id)
		}
		a, err := acc.Angle(rec)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d (%s)", i, id)
		}
		nodes = append(nodes, Node{ID: id, Radius: r, Angle: a})
	}
	if err := ValidateNodes(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}

// ValidateNodes checks identifiers and coordinates of nodes.
func ValidateNodes(nodes []Node) error {
	seen := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", i)
		}
		if !finite(n.Radius) || !finite(n.Angle) {
			return errors.New(errors.ErrCodeInvalidInput, "node %q: radius and angle must be finite, got (%v, %v)", n.ID, n.Radius, n.Angle)
		}
		if j, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeDuplicateNode, "node %q appears at positions %d and %d", n.ID, j, i)
		}
		seen[n.ID] = i
	}
	return nil
}

func recordID(r Record, field string) (string, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", fmt.Errorf("missing field %q", field)
	}
	id, ok := FormatID(v)
	if !ok {
		return "", fmt.Errorf("field %q: unsupported id type %T", field, v)
	}
	return id, nil
}

// FormatID renders a decoded node identifier as a string. A json.Number
// keeps its source text. Floats use the shortest decimal form without an
// exponent, so a YAML 1e6 and 1000000 name the same node.
func FormatID(v any) (string, bool) {
	switch id := v.(type) {
	case string:
		return id, true
	case json.Number:
		return id.String(), true
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(id), 'f', -1, 32), true
	case int:
		return strconv.Itoa(id), true
	case int64:
		return strconv.FormatInt(id, 10), true
	case int32:
		return strconv.FormatInt(int64(id), 10), true
	case uint:
		return strconv.FormatUint(uint64(id), 10), true
	case uint64:
		return strconv.FormatUint(id, 10), true
	case uint32:
		return strconv.FormatUint(uint64(id), 10), true
	}
	return "", false
}

func recordNumber(r Record, field string) (float64, error) {
	v, ok := r[field]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing field %q", field)
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		x, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", field, err)
		}
		f = x
	case string:
		x, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("field %q: %w", field, err)
		}
		f = x
	default:
		return 0, fmt.Errorf("field %q: unsupported number type %T", field, v)
	}
	if !finite(f) {
		return 0, fmt.Errorf("field %q: value must be finite", field)
	}
	return f, nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
