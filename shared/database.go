package shared

import (
	"fmt"

	"github.com/authds/authds/codec"
)

// Database is the dual-mode capability traversal code is written against.
// An owning store holds full data and records every value it opens onto an
// ordered disclosure tape; a replay store re-opens values from a borrowed
// tape, rejecting any entry whose digest disagrees with the commitment
// expecting it. Traversal code built on Auth and Unauth runs unmodified
// against either, and produces identical results in matched sessions.
//
// Stores have no interior synchronization: the protocol depends on a single
// agreed call order, so concurrent use of one instance is unsupported.
type Database interface {
	// Codec returns the canonical codec committed values are encoded with.
	Codec() codec.Codec

	// Commit digests one canonical serialization into a commitment.
	Commit(enc []byte) Commitment

	// Retains reports whether Auth keeps the payload inside returned proofs.
	Retains() bool

	// Open resolves the canonical serialization standing behind commitment c.
	// payload is the serialized payload held by the proof being opened, nil
	// when the proof carries none. Owning stores record the payload on the
	// tape; replay stores consume and check the next tape entry.
	Open(c Commitment, payload []byte) ([]byte, error)
}

// Auth wraps value into an authenticated reference committing to it. On an
// owning store the reference additionally retains the value; on a replay
// store it carries the commitment alone.
func Auth[A any](db Database, value A) (Proof[A], error) {
	enc, err := db.Codec().Marshal(value)
	if err != nil {
		return Proof[A]{}, fmt.Errorf("serialization failure: %w", err)
	}
	c := db.Commit(enc)
	if !db.Retains() {
		return Proof[A]{commitment: c}, nil
	}
	return Proof[A]{commitment: c, payload: &value}, nil
}

// Unauth opens an authenticated reference and yields the committed value.
// A proof is meant to be opened once per session, and the two sides of one
// session must open the same proofs in the same order; a replay store fails
// the session otherwise.
func Unauth[A any](db Database, proof Proof[A]) (A, error) {
	var zero A

	var enc []byte
	if proof.payload != nil {
		var err error
		enc, err = db.Codec().Marshal(*proof.payload)
		if err != nil {
			return zero, fmt.Errorf("serialization failure: %w", err)
		}
	}

	raw, err := db.Open(proof.commitment, enc)
	if err != nil {
		return zero, err
	}
	if proof.payload != nil {
		return *proof.payload, nil
	}

	var value A
	if err := db.Codec().Unmarshal(raw, &value); err != nil {
		return zero, fmt.Errorf("serialization failure: %w", err)
	}
	return value, nil
}
