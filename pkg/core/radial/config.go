package radial

import (
	"slices"

	"github.com/matzehuels/radialtree/pkg/core/grid"
	"github.com/matzehuels/radialtree/pkg/core/polar"
	"github.com/matzehuels/radialtree/pkg/errors"
)

// Default configuration values.
const (
	DefaultWidth         = 500.0
	DefaultHeight        = 500.0
	DefaultRadius        = 250.0
	DefaultInnerRadius   = 125.0
	DefaultOuterRadius   = 250.0
	DefaultRadiusMinStep = 15.0
	DefaultAngleMinStep  = 35.0

	DefaultIDValue     = "id"
	DefaultRadiusValue = "r"
	DefaultAngleValue  = "a"
)

// DefaultAngleExtent is the default angle domain: degrees.
var DefaultAngleExtent = []float64{0, 360}

// Margin insets the drawing frame.
type Margin struct {
	Top    float64 `json:"top" toml:"top" yaml:"top"`
	Right  float64 `json:"right" toml:"right" yaml:"right"`
	Bottom float64 `json:"bottom" toml:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" toml:"left" yaml:"left"`
}

// ScaleFunc builds a scale mapping domain onto rng. Substituting it changes
// how data values are spread across the frame.
type ScaleFunc func(domain, rng [2]float64) polar.Scale

// Linear is the default ScaleFunc.
func Linear(domain, rng [2]float64) polar.Scale {
	return polar.LinearScale{Domain: domain, Range: rng}
}

// Config is the immutable configuration of one layout. Build it with
// [NewConfig]; the zero value is not usable.
type Config struct {
	// IDValue, RadiusValue and AngleValue name the record fields read by
	// [Config.Accessors] when ingesting raw records.
	IDValue     string
	RadiusValue string
	AngleValue  string

	// Width and Height size the frame; with Margin they place the center.
	Width  float64
	Height float64
	Margin Margin

	// Radius is the frame radius, used as OuterRadius when that is zero.
	Radius float64

	// InnerRadius and OuterRadius bound the rings in screen units and form
	// the range of the radius scale.
	InnerRadius float64
	OuterRadius float64

	// RadiusMinStep is the minimum screen gap between rings.
	RadiusMinStep float64
	// AngleMinStep is the minimum screen arc length between slots on a ring.
	AngleMinStep float64

	// RadiusScale maps the radius domain onto [InnerRadius, OuterRadius].
	RadiusScale ScaleFunc
	// AngleScale maps the angle domain onto [0, 2π].
	AngleScale ScaleFunc

	// AngleExtent is the angle domain. Defaults to [0, 360].
	AngleExtent []float64
	// RadiusExtent overrides the radius domain. When empty, the observed
	// minimum and maximum node radius are used.
	RadiusExtent []float64
}

// Option configures a Config.
type Option func(*Config)

// NewConfig returns a Config with defaults and the given options applied.
func NewConfig(opts ...Option) Config {
	c := Config{
		IDValue:       DefaultIDValue,
		RadiusValue:   DefaultRadiusValue,
		AngleValue:    DefaultAngleValue,
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Radius:        DefaultRadius,
		InnerRadius:   DefaultInnerRadius,
		OuterRadius:   DefaultOuterRadius,
		RadiusMinStep: DefaultRadiusMinStep,
		AngleMinStep:  DefaultAngleMinStep,
		RadiusScale:   Linear,
		AngleScale:    Linear,
		AngleExtent:   slices.Clone(DefaultAngleExtent),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithSize sets the frame width and height.
func WithSize(width, height float64) Option {
	return func(c *Config) { c.Width, c.Height = width, height }
}

// WithMargin sets the frame margin.
func WithMargin(m Margin) Option {
	return func(c *Config) { c.Margin = m }
}

// WithRadius sets the frame radius.
func WithRadius(r float64) Option {
	return func(c *Config) { c.Radius = r }
}

// WithRadii sets the inner and outer ring radii.
func WithRadii(inner, outer float64) Option {
	return func(c *Config) { c.InnerRadius, c.OuterRadius = inner, outer }
}

// WithSteps sets the minimum ring gap and slot spacing.
func WithSteps(radiusMinStep, angleMinStep float64) Option {
	return func(c *Config) { c.RadiusMinStep, c.AngleMinStep = radiusMinStep, angleMinStep }
}

// WithRadiusScale substitutes the radius scale.
func WithRadiusScale(f ScaleFunc) Option {
	return func(c *Config) { c.RadiusScale = f }
}

// WithAngleScale substitutes the angle scale.
func WithAngleScale(f ScaleFunc) Option {
	return func(c *Config) { c.AngleScale = f }
}

// WithAngleExtent sets the angle domain.
func WithAngleExtent(lo, hi float64) Option {
	return func(c *Config) { c.AngleExtent = []float64{lo, hi} }
}

// WithRadiusExtent fixes the radius domain instead of using observed values.
func WithRadiusExtent(lo, hi float64) Option {
	return func(c *Config) { c.RadiusExtent = []float64{lo, hi} }
}

// WithFields sets the record field names read by the default accessors.
// Empty names keep the current value.
func WithFields(id, radius, angle string) Option {
	return func(c *Config) {
		if id != "" {
			c.IDValue = id
		}
		if radius != "" {
			c.RadiusValue = radius
		}
		if angle != "" {
			c.AngleValue = angle
		}
	}
}

// Outer returns the effective outer radius.
func (c Config) Outer() float64 {
	if c.OuterRadius == 0 {
		return c.Radius
	}
	return c.OuterRadius
}

// Center returns the frame center inside the margins.
func (c Config) Center() polar.Point {
	m := c.Margin
	return polar.Point{
		X: m.Left + (c.Width-m.Left-m.Right)/2,
		Y: m.Top + (c.Height-m.Top-m.Bottom)/2,
	}
}

// GridOptions returns the grid geometry described by c.
func (c Config) GridOptions() grid.Options {
	return grid.Options{
		InnerRadius:   c.InnerRadius,
		OuterRadius:   c.Outer(),
		RadiusMinStep: c.RadiusMinStep,
		AngleMinStep:  c.AngleMinStep,
	}
}

// Validate rejects degenerate configurations with an INVALID_CONFIG error.
func (c Config) Validate() error {
	if err := errors.ValidatePositive("width", c.Width); err != nil {
		return err
	}
	if err := errors.ValidatePositive("height", c.Height); err != nil {
		return err
	}
	for name, v := range map[string]float64{
		"margin.top": c.Margin.Top, "margin.right": c.Margin.Right,
		"margin.bottom": c.Margin.Bottom, "margin.left": c.Margin.Left,
	} {
		if err := errors.ValidateFinite(name, v); err != nil {
			return err
		}
		if v < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s must not be negative, got %v", name, v)
		}
	}
	if err := errors.ValidateFinite("radius", c.Radius); err != nil {
		return err
	}
	if c.RadiusScale == nil || c.AngleScale == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "radius and angle scales must be set")
	}
	if c.IDValue == "" || c.RadiusValue == "" || c.AngleValue == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "idValue, radiusValue and angleValue must be set")
	}
	if err := errors.ValidateExtent("radiusExtent", c.RadiusExtent); err != nil {
		return err
	}
	if err := errors.ValidateExtent("angleExtent", c.AngleExtent); err != nil {
		return err
	}
	if len(c.AngleExtent) != 2 || c.AngleExtent[0] == c.AngleExtent[1] {
		return errors.New(errors.ErrCodeInvalidConfig, "angleExtent must span a non-empty range, got %v", c.AngleExtent)
	}
	if len(c.RadiusExtent) == 2 && c.RadiusExtent[0] == c.RadiusExtent[1] {
		return errors.New(errors.ErrCodeInvalidConfig, "radiusExtent must span a non-empty range, got %v", c.RadiusExtent)
	}
	return c.GridOptions().Validate()
}

// Projector returns the projector for nodes. The radius domain is
// RadiusExtent when set, otherwise the observed node radius extent; with no
// nodes it falls back to the screen range itself.
func (c Config) Projector(nodes []Node) polar.Projector {
	rng := [2]float64{c.InnerRadius, c.Outer()}
	domain := rng
	if len(c.RadiusExtent) == 2 {
		domain = [2]float64{c.RadiusExtent[0], c.RadiusExtent[1]}
	} else {
		radii := make([]float64, len(nodes))
		for i, n := range nodes {
			radii[i] = n.Radius
		}
		if lo, hi, ok := polar.Extent(radii); ok {
			domain = [2]float64{lo, hi}
		}
	}

	angle := c.AngleScale([2]float64{c.AngleExtent[0], c.AngleExtent[1]}, [2]float64{0, fullCircle})
	return polar.NewProjector(c.RadiusScale(domain, rng), angle)
}
