package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments, or several
// major versions of the layout engine, can share one Redis without reading
// each other's entries.
//
// Example usage:
//
//	// Per-environment namespace
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(graphHash, opts)
}

// GridKey generates a prefixed key for grid caching.
func (k *ScopedKeyer) GridKey(opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(opts)
}
