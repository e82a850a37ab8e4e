// Package pipeline runs the read → layout → export pipeline shared by the
// CLI and the API server.
//
// By centralizing defaults, validation and caching here, every entry point
// produces the same layout for the same graph and options.
//
// # Stages
//
//  1. Read: decode a graph file (JSON or YAML) into [graph.Graph]
//  2. Layout: project, grid, assign and route via [radial.ComputeRecords]
//  3. Export: encode the layout as JSON, YAML or Graphviz DOT
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	opts := pipeline.Options{InnerRadius: 100, OuterRadius: 300}
//	res, err := runner.Layout(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := pipeline.Export(ctx, res.Layout, pipeline.FormatDOT)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radialtree/pkg/cache"
	"github.com/matzehuels/radialtree/pkg/core/radial"
	"github.com/matzehuels/radialtree/pkg/errors"
	"github.com/matzehuels/radialtree/pkg/graph"
)

// =============================================================================
// Options - Layout Configuration
// =============================================================================

// Options contains all configuration for a layout run. It is the shape of
// config files (TOML, YAML, JSON) and of API request options.
//
// Zero values mean "use the default", so a zero Options lays out with the
// package defaults of [radial.NewConfig]. OuterRadius falls back to Radius.
type Options struct {
	Width  float64       `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height float64       `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	Margin radial.Margin `json:"margin" toml:"margin" yaml:"margin"`
	Radius float64       `json:"radius,omitempty" toml:"radius" yaml:"radius,omitempty"`

	InnerRadius   float64 `json:"inner_radius,omitempty" toml:"inner_radius" yaml:"inner_radius,omitempty"`
	OuterRadius   float64 `json:"outer_radius,omitempty" toml:"outer_radius" yaml:"outer_radius,omitempty"`
	RadiusMinStep float64 `json:"radius_min_step,omitempty" toml:"radius_min_step" yaml:"radius_min_step,omitempty"`
	AngleMinStep  float64 `json:"angle_min_step,omitempty" toml:"angle_min_step" yaml:"angle_min_step,omitempty"`

	AngleExtent  []float64 `json:"angle_extent,omitempty" toml:"angle_extent" yaml:"angle_extent,omitempty"`
	RadiusExtent []float64 `json:"radius_extent,omitempty" toml:"radius_extent" yaml:"radius_extent,omitempty"`

	IDField     string `json:"id_field,omitempty" toml:"id_field" yaml:"id_field,omitempty"`
	RadiusField string `json:"radius_field,omitempty" toml:"radius_field" yaml:"radius_field,omitempty"`
	AngleField  string `json:"angle_field,omitempty" toml:"angle_field" yaml:"angle_field,omitempty"`

	// Refresh bypasses the cache read; the result is still written back.
	Refresh bool `json:"refresh,omitempty" toml:"-" yaml:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`
}

// Result contains the outputs of a layout run.
type Result struct {
	Layout    graph.Layout
	GraphHash string
	Stats     Stats
	CacheHit  bool
}

// Stats contains layout execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	Placed     int
	Issues     int
	Capacity   int
	LayoutTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with package defaults.
func (o *Options) SetDefaults() {
	if o.Width == 0 {
		o.Width = radial.DefaultWidth
	}
	if o.Height == 0 {
		o.Height = radial.DefaultHeight
	}
	if o.Radius == 0 {
		o.Radius = radial.DefaultRadius
	}
	if o.InnerRadius == 0 {
		o.InnerRadius = radial.DefaultInnerRadius
	}
	if o.RadiusMinStep == 0 {
		o.RadiusMinStep = radial.DefaultRadiusMinStep
	}
	if o.AngleMinStep == 0 {
		o.AngleMinStep = radial.DefaultAngleMinStep
	}
	if len(o.AngleExtent) == 0 {
		o.AngleExtent = slices.Clone(radial.DefaultAngleExtent)
	}
	if o.IDField == "" {
		o.IDField = radial.DefaultIDValue
	}
	if o.RadiusField == "" {
		o.RadiusField = radial.DefaultRadiusValue
	}
	if o.AngleField == "" {
		o.AngleField = radial.DefaultAngleValue
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Validate applies defaults and checks the resulting configuration.
// Failures carry INVALID_CONFIG.
func (o *Options) Validate() error {
	o.SetDefaults()
	if len(o.AngleExtent) != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "angle_extent must have two values, got %d", len(o.AngleExtent))
	}
	if n := len(o.RadiusExtent); n != 0 && n != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "radius_extent must have two values, got %d", n)
	}
	return o.ToConfig().Validate()
}

// ToConfig converts the options to an immutable layout configuration.
// Call SetDefaults or Validate first; zero fields pass through unchanged.
func (o *Options) ToConfig() radial.Config {
	opts := []radial.Option{
		radial.WithSize(o.Width, o.Height),
		radial.WithMargin(o.Margin),
		radial.WithRadius(o.Radius),
		radial.WithRadii(o.InnerRadius, o.OuterRadius),
		radial.WithSteps(o.RadiusMinStep, o.AngleMinStep),
		radial.WithFields(o.IDField, o.RadiusField, o.AngleField),
	}
	if len(o.AngleExtent) == 2 {
		opts = append(opts, radial.WithAngleExtent(o.AngleExtent[0], o.AngleExtent[1]))
	}
	if len(o.RadiusExtent) == 2 {
		opts = append(opts, radial.WithRadiusExtent(o.RadiusExtent[0], o.RadiusExtent[1]))
	}
	return radial.NewConfig(opts...)
}

// GridKeyOpts returns cache key options for a grid preview.
func (o *Options) GridKeyOpts() cache.GridKeyOpts {
	cfg := o.ToConfig()
	c := cfg.Center()
	return cache.GridKeyOpts{
		InnerRadius:   cfg.InnerRadius,
		OuterRadius:   cfg.Outer(),
		RadiusMinStep: cfg.RadiusMinStep,
		AngleMinStep:  cfg.AngleMinStep,
		AngleExtent:   cfg.AngleExtent,
		RadiusExtent:  cfg.RadiusExtent,
		Center:        [2]float64{c.X, c.Y},
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		GridKeyOpts: o.GridKeyOpts(),
		Width:       o.Width,
		Height:      o.Height,
		IDField:     o.IDField,
		RadiusField: o.RadiusField,
		AngleField:  o.AngleField,
	}
}
