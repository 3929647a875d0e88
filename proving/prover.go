// Package proving implements the owning side of the authentication
// protocol: a store that holds full data and discloses every value it opens
// onto an ordered tape for a later replay to consume.
package proving

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/authds/authds/codec"
	"github.com/authds/authds/shared"
)

// Prover is the owning store. Proofs it produces retain their payload;
// opening one through Unauth appends the payload's canonical serialization
// to the disclosure tape, in call order. The tape is the authoritative log
// a matching verifier must later replay.
type Prover struct {
	codec   codec.Codec
	hasher  shared.Hasher
	logger  *zap.Logger
	session uuid.UUID
	tape    []string
}

var _ shared.Database = (*Prover)(nil)

// NewProver creates an owning store with an empty tape.
func NewProver(opts ...OptionFunc) (*Prover, error) {
	options, err := applyOpts(opts...)
	if err != nil {
		return nil, err
	}
	p := &Prover{
		codec:   options.codec,
		hasher:  options.hasher,
		logger:  options.logger,
		session: uuid.New(),
	}
	p.logger.Debug("prover session started",
		zap.String("session", p.session.String()),
		zap.String("hasher", p.hasher.ID()),
	)
	return p, nil
}

// Session returns the identifier this prover's log entries are tagged with.
func (p *Prover) Session() uuid.UUID { return p.session }

func (p *Prover) Codec() codec.Codec { return p.codec }

func (p *Prover) Commit(enc []byte) shared.Commitment { return p.hasher.Digest(enc) }

func (p *Prover) Retains() bool { return true }

// Open records payload as the next tape entry and returns it. A nil payload
// means the proof being opened carries no value, which violates the owning
// store's contract.
func (p *Prover) Open(c shared.Commitment, payload []byte) ([]byte, error) {
	if payload == nil {
		return nil, shared.ErrMissingPayload
	}
	p.tape = append(p.tape, string(payload))
	p.logger.Debug("disclosed tape entry",
		zap.String("session", p.session.String()),
		zap.Int("position", len(p.tape)-1),
		zap.Stringer("commitment", c),
	)
	return payload, nil
}

// Tape returns an order-preserving view over the disclosure tape for
// handoff to a verifier. The view borrows the prover's backing storage: it
// covers the entries disclosed so far and must not be relied upon across
// further openings.
func (p *Prover) Tape() []string { return p.tape }

// Len returns the number of disclosed entries.
func (p *Prover) Len() int { return len(p.tape) }
