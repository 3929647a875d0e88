package shared

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/spacemeshos/sha256-simd"

	"github.com/authds/authds/codec"
)

// Commitment is a fixed-width digest of a value's canonical serialization.
// It stands in for the value without revealing it.
type Commitment []byte

func (c Commitment) Equal(other Commitment) bool { return bytes.Equal(c, other) }

// Compare orders commitments lexicographically by digest bytes.
func (c Commitment) Compare(other Commitment) int { return bytes.Compare(c, other) }

func (c Commitment) String() string { return hex.EncodeToString(c) }

// Hasher digests canonical serializations into commitments.
type Hasher interface {
	// ID returns the name of the cryptographic hash function.
	ID() string
	// Size returns the digest width in bytes.
	Size() int
	// Digest hashes the concatenation of the passed byte slices.
	// The passed slices won't be mutated.
	Digest(ms ...[]byte) []byte
}

type sha256Hasher struct{}

func (sha256Hasher) ID() string { return "sha256" }

func (sha256Hasher) Size() int { return sha256.Size }

func (sha256Hasher) Digest(ms ...[]byte) []byte {
	h := sha256.New()
	for _, m := range ms {
		h.Write(m)
	}
	return h.Sum(nil)
}

// DefaultHasher returns the SHA-256 hasher stores use unless configured
// otherwise.
func DefaultHasher() Hasher { return sha256Hasher{} }

// Commit digests the canonical serialization of value. It is deterministic:
// equal serializations yield equal commitments.
func Commit[A any](cdc codec.Codec, h Hasher, value A) (Commitment, error) {
	enc, err := cdc.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("serialization failure: %w", err)
	}
	return h.Digest(enc), nil
}
