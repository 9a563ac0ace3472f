package memo

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// Key builds a SHA-256 content key. Each part is length-prefixed so
// ("ab", "c") and ("a", "bc") hash differently.
type Key struct {
	h hash.Hash
}

// NewKey starts an empty content key.
func NewKey() *Key {
	return &Key{h: sha256.New()}
}

// Add appends one part.
func (k *Key) Add(part string) *Key {
	var n [8]byte
	binary.BigEndian.PutUint64(n[:], uint64(len(part)))
	_, _ = k.h.Write(n[:])
	_, _ = k.h.Write([]byte(part))
	return k
}

// Sum returns the hex digest.
func (k *Key) Sum() string {
	return hex.EncodeToString(k.h.Sum(nil))
}
