package project

import (
	"crypto/sha256"
	"encoding/binary"
)

// Digest - фиксированный 256 битный хеш
type Digest [32]byte

// Hash строит ключ H(len||part ...); длины исключают коллизии на стыках частей.
func Hash(parts ...[]byte) Digest {
	h := sha256.New()
	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		_, _ = h.Write(n[:])
		_, _ = h.Write(p)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// IsZero reports whether d was never computed.
func (d Digest) IsZero() bool { return d == Digest{} }
