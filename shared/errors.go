package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrTapeExhausted is returned by a replay store asked to open a proof
	// after all tape entries were consumed: the two sides of the session
	// disagreed on the count or order of their calls.
	ErrTapeExhausted = errors.New("disclosure tape exhausted")

	// ErrMissingPayload is returned by an owning store asked to open a proof
	// that carries no payload. Proofs produced by the same owning store
	// always carry one, so this is a contract violation by the caller.
	ErrMissingPayload = errors.New("proof carries no payload")
)

// CommitmentMismatchError reports a disclosed tape entry whose recomputed
// digest disagrees with the commitment recorded in the proof opening it.
// It fires on tampering, substitution, reordering, or corruption of the
// tape in transit.
type CommitmentMismatchError struct {
	Expected Commitment
	Computed Commitment
	Position int
}

func (err CommitmentMismatchError) Error() string {
	return fmt.Sprintf("commitment mismatch at tape position %v; expected: %s, computed: %s",
		err.Position, err.Expected, err.Computed)
}
