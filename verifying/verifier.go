// Package verifying implements the replay side of the authentication
// protocol: a store that re-opens values from a borrowed disclosure tape,
// rejecting any entry whose digest disagrees with the commitment expecting
// it.
package verifying

import (
	"go.uber.org/zap"

	"github.com/authds/authds/codec"
	"github.com/authds/authds/shared"
)

// Verifier is the replay store. It holds a borrowed tape and a cursor
// advanced by exactly one entry per opened proof, never rewound: a tape
// consumed through one Verifier requires a fresh Verifier to re-verify from
// the start. Entries are linked to the proofs consuming them purely by
// position in the shared call order.
//
// The tape must not be mutated while the session is in progress; pass
// WithSnapshot to have the verifier take a defensive copy at construction.
type Verifier struct {
	codec  codec.Codec
	hasher shared.Hasher
	logger *zap.Logger
	tape   []string
	cursor int
}

var _ shared.Database = (*Verifier)(nil)

// NewVerifier creates a replay store over an already-produced tape,
// typically the output of an owning store's Tape.
func NewVerifier(tape []string, opts ...OptionFunc) (*Verifier, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	if options.snapshot {
		tape = append([]string(nil), tape...)
	}
	v := &Verifier{
		codec:  options.codec,
		hasher: options.hasher,
		logger: options.logger,
		tape:   tape,
	}
	v.logger.Debug("verifier session started",
		zap.Int("entries", len(tape)),
		zap.String("hasher", v.hasher.ID()),
	)
	return v, nil
}

func (v *Verifier) Codec() codec.Codec { return v.codec }

func (v *Verifier) Commit(enc []byte) shared.Commitment { return v.hasher.Digest(enc) }

func (v *Verifier) Retains() bool { return false }

// Open consumes the next tape entry, recomputes its digest and checks it
// against c. The cursor advances whether or not the check passes; a failed
// session is not resumable.
func (v *Verifier) Open(c shared.Commitment, _ []byte) ([]byte, error) {
	if v.cursor >= len(v.tape) {
		return nil, shared.ErrTapeExhausted
	}
	position := v.cursor
	entry := []byte(v.tape[position])
	v.cursor++

	computed := v.hasher.Digest(entry)
	if !c.Equal(computed) {
		err := shared.CommitmentMismatchError{
			Expected: c,
			Computed: computed,
			Position: position,
		}
		v.logger.Debug("rejected tape entry", zap.Int("position", position), zap.Error(err))
		return nil, err
	}
	return entry, nil
}

// Consumed returns the number of tape entries opened so far.
func (v *Verifier) Consumed() int { return v.cursor }

// Remaining returns the number of tape entries not yet opened.
func (v *Verifier) Remaining() int { return len(v.tape) - v.cursor }
