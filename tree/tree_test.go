package tree

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/authds/authds/codec"
	"github.com/authds/authds/proving"
	"github.com/authds/authds/shared"
	"github.com/authds/authds/verifying"
)

// buildFixture assembles the conformance tree: the left child of the root
// is a leaf holding 1, the right child is a branch whose children are
// leaves holding 3 and 2. The value 2 therefore sits one level further
// down, at path right,right.
func buildFixture(t *testing.T, db shared.Database) *Tree[int] {
	t.Helper()
	inner, err := NewBranch(db, NewLeaf(3), NewLeaf(2))
	require.NoError(t, err)
	root, err := NewBranch(db, NewLeaf(1), inner)
	require.NoError(t, err)
	return root
}

func newProver(t *testing.T) *proving.Prover {
	t.Helper()
	prover, err := proving.NewProver(proving.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return prover
}

func newVerifier(t *testing.T, tape []string) *verifying.Verifier {
	t.Helper()
	verifier, err := verifying.NewVerifier(tape, verifying.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return verifier
}

func TestLookupEquivalence(t *testing.T) {
	r := require.New(t)

	prover := newProver(t)
	root := buildFixture(t, prover)

	value, ok, err := Lookup(prover, root, []Direction{Right, Right})
	r.NoError(err)
	r.True(ok)
	r.Equal(2, value)
	r.Equal(2, prover.Len())

	verifier := newVerifier(t, prover.Tape())
	replayRoot := buildFixture(t, verifier)

	replayValue, replayOK, err := Lookup(verifier, replayRoot, []Direction{Right, Right})
	r.NoError(err)
	r.True(replayOK)
	r.Equal(value, replayValue)
	r.Zero(verifier.Remaining())
}

func TestLookupAbsence(t *testing.T) {
	r := require.New(t)

	prover := newProver(t)
	root := buildFixture(t, prover)

	// Walking left hits the leaf holding 1 with one step still unconsumed.
	_, ok, err := Lookup(prover, root, []Direction{Left, Right})
	r.NoError(err)
	r.False(ok)
	r.Equal(1, prover.Len())

	verifier := newVerifier(t, prover.Tape())
	replayRoot := buildFixture(t, verifier)

	_, replayOK, err := Lookup(verifier, replayRoot, []Direction{Left, Right})
	r.NoError(err)
	r.False(replayOK)
	r.Zero(verifier.Remaining())
}

func TestLookupPathEndsOnBranch(t *testing.T) {
	r := require.New(t)

	prover := newProver(t)
	root := buildFixture(t, prover)

	_, ok, err := Lookup(prover, root, []Direction{Right})
	r.NoError(err)
	r.False(ok)

	_, ok, err = Lookup(prover, root, nil)
	r.NoError(err)
	r.False(ok)
}

func TestLookupTamperDetection(t *testing.T) {
	prover := newProver(t)
	root := buildFixture(t, prover)

	_, ok, err := Lookup(prover, root, []Direction{Right, Right})
	require.NoError(t, err)
	require.True(t, ok)
	tape := prover.Tape()

	for i := range tape {
		for j := 0; j < len(tape[i]); j++ {
			mutated := append([]string(nil), tape...)
			entry := []byte(mutated[i])
			entry[j] ^= 0x01
			mutated[i] = string(entry)

			verifier, err := verifying.NewVerifier(mutated)
			require.NoError(t, err)
			replayRoot := buildFixture(t, verifier)

			_, _, err = Lookup(verifier, replayRoot, []Direction{Right, Right})
			var mismatch shared.CommitmentMismatchError
			require.ErrorAs(t, err, &mismatch, "entry %d, byte %d", i, j)
			require.Equal(t, i, mismatch.Position, "entry %d, byte %d", i, j)
		}
	}
}

func TestLookupTruncationDetection(t *testing.T) {
	prover := newProver(t)
	root := buildFixture(t, prover)

	_, ok, err := Lookup(prover, root, []Direction{Right, Right})
	require.NoError(t, err)
	require.True(t, ok)
	tape := prover.Tape()

	for cut := 0; cut < len(tape); cut++ {
		verifier, err := verifying.NewVerifier(tape[:cut])
		require.NoError(t, err)
		replayRoot := buildFixture(t, verifier)

		_, _, err = Lookup(verifier, replayRoot, []Direction{Right, Right})
		require.ErrorIs(t, err, shared.ErrTapeExhausted, "cut %d", cut)
		require.Equal(t, cut, verifier.Consumed(), "cut %d", cut)
	}
}

func TestBranchSerializationShape(t *testing.T) {
	r := require.New(t)

	prover := newProver(t)
	root := buildFixture(t, prover)

	enc, err := codec.JSON.Marshal(root)
	r.NoError(err)
	r.Equal(`{"left":"4d181974ff5ba1f22749a4aad4f1fe54e8b374d1a8cf3d29265d5b8eaa5e12dc",`+
		`"right":"ce8f11619023f3901283233f211343c79479918f257feb80240420e4ef4250be"}`, string(enc))

	var decoded Tree[int]
	r.NoError(codec.JSON.Unmarshal(enc, &decoded))
	r.False(decoded.IsLeaf())
	r.False(decoded.Left.HasPayload())
	r.True(decoded.Left.Equal(*root.Left))
	r.True(decoded.Right.Equal(*root.Right))
}

func TestLookupTapeGolden(t *testing.T) {
	prover := newProver(t)
	root := buildFixture(t, prover)

	_, ok, err := Lookup(prover, root, []Direction{Right, Right})
	require.NoError(t, err)
	require.True(t, ok)

	g := goldie.New(t)
	g.Assert(t, "lookup_tape", []byte(strings.Join(prover.Tape(), "\n")))
}
