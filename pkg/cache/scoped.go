package cache

// ScopedKeyer prefixes every key from an inner Keyer. The CLI scopes keys by
// result format version so that a change to the stored encoding never reads
// stale entries:
//
//	keyer := NewScopedKeyer(nil, "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer returns a keyer that prepends prefix. A nil inner means
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ResultKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) ResultKey(dataHash string, fingerprint []byte) string {
	return k.prefix + k.inner.ResultKey(dataHash, fingerprint)
}
