package node

import (
	"consensussim/interfaces"
	"consensussim/util/random"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHonestPassesDigestsThrough(t *testing.T) {
	rng := random.NewSource(1)
	b := NewHonest()

	adopted, ok := b.AcceptPrePrepare("digest", rng)
	require.True(t, ok)
	assert.Equal(t, "digest", adopted)

	emitted, ok := b.EmitDigest("digest", "node2", rng)
	require.True(t, ok)
	assert.Equal(t, "digest", emitted)
	assert.False(t, b.IsByzantine())
}

func TestSilentDropsEverything(t *testing.T) {
	rng := random.NewSource(1)
	b := NewSilent()

	_, ok := b.AcceptPrePrepare("digest", rng)
	assert.False(t, ok)
	_, ok = b.EmitDigest("digest", "node2", rng)
	assert.False(t, ok)
	assert.True(t, b.IsByzantine())
}

func TestEquivocatingFlipsSometimes(t *testing.T) {
	rng := random.NewSource(7)
	b := NewEquivocating()

	real := 0
	forked := 0
	for i := 0; i < 200; i++ {
		emitted, ok := b.EmitDigest("digest", "node2", rng)
		require.True(t, ok)
		switch emitted {
		case "digest":
			real++
		case ConflictingDigest("digest"):
			forked++
		default:
			t.Fatalf("unexpected digest %v", emitted)
		}
	}
	assert.Greater(t, real, 0)
	assert.Greater(t, forked, 0)
	assert.True(t, b.IsByzantine())
}

func TestConflictingDigestDiffers(t *testing.T) {
	assert.NotEqual(t, "digest", ConflictingDigest("digest"))
	assert.Equal(t, ConflictingDigest("digest"), ConflictingDigest("digest"))
}

func TestNewBehaviorMapsNames(t *testing.T) {
	for _, name := range []string{"Honest", "Silent", "Equivocating"} {
		b, err := NewBehavior(name)
		require.NoError(t, err)
		assert.Equal(t, name, b.Name().String())
	}
	_, err := NewBehavior("Flaky")
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfiguration)
}

func TestNewNodeValidation(t *testing.T) {
	n, err := NewNode("node1", 50, NewHonest())
	require.NoError(t, err)
	assert.True(t, n.IsOnline())
	assert.Equal(t, 0, n.LastProposedRound())

	_, err = NewNode("node1", -1, NewHonest())
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfiguration)

	_, err = NewNode("", 1, NewHonest())
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfiguration)
}
