package shared

import (
	"encoding/hex"
	"fmt"
)

// Proof is an authenticated reference: a commitment to a value of type A,
// optionally paired with the value itself. Only proofs produced by an owning
// store carry the payload; a proof decoded from its serialized form never
// does, and must be opened through a database before its value is usable.
//
// Equality and ordering depend solely on the commitment; payload presence
// or content never affects comparison.
type Proof[A any] struct {
	commitment Commitment
	payload    *A
}

// Commitment returns the commitment the proof was constructed with.
// It is fixed at construction.
func (p Proof[A]) Commitment() Commitment { return p.commitment }

// HasPayload reports whether the proof still carries the committed value.
func (p Proof[A]) HasPayload() bool { return p.payload != nil }

func (p Proof[A]) Equal(other Proof[A]) bool { return p.commitment.Equal(other.commitment) }

func (p Proof[A]) Compare(other Proof[A]) int { return p.commitment.Compare(other.commitment) }

func (p Proof[A]) String() string { return p.commitment.String() }

// MarshalText encodes the proof as exactly its commitment in lowercase hex,
// independent of which serializer encodes the enclosing structure.
func (p Proof[A]) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(p.commitment)), nil
}

// UnmarshalText decodes a hex commitment. The resulting proof carries no
// payload.
func (p *Proof[A]) UnmarshalText(text []byte) error {
	c, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("malformed commitment %q: %w", text, err)
	}
	p.commitment = c
	p.payload = nil
	return nil
}
