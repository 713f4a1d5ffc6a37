package cache

// Keyer derives cache keys. Implementations must be deterministic: equal
// inputs always give equal keys.
type Keyer interface {
	// ResultKey addresses a finished search over the schedule with content
	// hash dataHash, run with settings whose fingerprint is fingerprint.
	ResultKey(dataHash string, fingerprint []byte) string
}

// DefaultKeyer produces unprefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey returns "result:<sha256>".
func (DefaultKeyer) ResultKey(dataHash string, fingerprint []byte) string {
	return hashKey("result", dataHash, Hash(fingerprint))
}
