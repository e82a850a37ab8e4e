package cache

// Keyer generates cache keys.
type Keyer interface {
	// LayoutKey returns the key of a layout computed from the graph with the
	// given hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// GridKey returns the key of a grid preview.
	GridKey(opts GridKeyOpts) string
}

// GridKeyOpts are the options that determine a grid and where its slots
// land in the frame.
type GridKeyOpts struct {
	InnerRadius   float64    `json:"inner_radius"`
	OuterRadius   float64    `json:"outer_radius"`
	RadiusMinStep float64    `json:"radius_min_step"`
	AngleMinStep  float64    `json:"angle_min_step"`
	AngleExtent   []float64  `json:"angle_extent"`
	RadiusExtent  []float64  `json:"radius_extent,omitempty"`
	Center        [2]float64 `json:"center"`
}

// LayoutKeyOpts are the options that determine a layout.
type LayoutKeyOpts struct {
	GridKeyOpts

	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	IDField     string  `json:"id_field"`
	RadiusField string  `json:"radius_field"`
	AngleField  string  `json:"angle_field"`
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// GridKey returns "grid:<sha256>".
func (DefaultKeyer) GridKey(opts GridKeyOpts) string {
	return hashKey("grid", opts)
}
