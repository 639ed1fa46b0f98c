package cache

// ScopedKeyer wraps a Keyer with a prefix so that tenants sharing one Redis
// instance cannot read each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "tenant:abc123:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// If inner is nil, DefaultKeyer is used.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DecompositionKey generates a prefixed decomposition key.
func (k *ScopedKeyer) DecompositionKey(graphHash string, opts DecompositionKeyOpts) string {
	return k.prefix + k.inner.DecompositionKey(graphHash, opts)
}

// RenderKey generates a prefixed render key.
func (k *ScopedKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(graphHash, opts)
}
