package domain

// Hasher is the core port for any hashing strategy. The relay uses it to
// derive stable conversation fingerprints from transport-level client hints.
type Hasher interface {
	Hash(data []byte) string
}
