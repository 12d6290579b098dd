package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each tenant or environment
// its own key space in a shared backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) ArrangementKey(sceneHash string, opts ArrangementKeyOpts) string {
	return k.prefix + k.inner.ArrangementKey(sceneHash, opts)
}

func (k *ScopedKeyer) IntersectionsKey(sceneHash string) string {
	return k.prefix + k.inner.IntersectionsKey(sceneHash)
}

func (k *ScopedKeyer) RenderKey(arrangementHash string, format string) string {
	return k.prefix + k.inner.RenderKey(arrangementHash, format)
}
