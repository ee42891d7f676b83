package consensus

import (
	"consensussim/interfaces"
	"consensussim/util/random"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowConfigValidation(t *testing.T) {
	_, err := NewProofOfWork(0, 1000)
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfiguration)
	_, err = NewProofOfWork(2, 0)
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfiguration)
}

func TestPowMinedBlockMeetsDifficulty(t *testing.T) {
	p, err := NewProofOfWork(2, 1000000)
	require.NoError(t, err)
	nodes := makeNodes(t, []float64{10, 20, 30}, nil)
	chain := freshChain()
	rng := random.NewSource(1)

	state := NewRoundState(1, rng)
	proposer, err := p.SelectProposer(nodes, state)
	require.NoError(t, err)

	block := produceOn(t, p, proposer, chain, state)
	assert.True(t, strings.HasPrefix(block.Hash(), "00"))
	assert.Equal(t, block.ComputeHash(), block.Hash())
	assert.Greater(t, state.Cost(), int64(0))
	assert.NoError(t, p.Validate(block, chain, state))
}

func TestPowAttemptsGrowWithDifficulty(t *testing.T) {
	nodes := makeNodes(t, []float64{10}, nil)
	chain := freshChain()

	// the first nonce reaching k+1 leading zeros can never come before the
	// first nonce reaching k, the attempt count is monotone per block
	var previous int64
	for difficulty := 1; difficulty <= 3; difficulty++ {
		p, err := NewProofOfWork(difficulty, 10000000)
		require.NoError(t, err)
		state := NewRoundState(1, random.NewSource(1))
		proposer, err := p.SelectProposer(nodes, state)
		require.NoError(t, err)
		produceOn(t, p, proposer, chain, state)
		assert.GreaterOrEqual(t, state.Cost(), previous)
		previous = state.Cost()
	}
}

func TestPowAttemptCapFailsRound(t *testing.T) {
	p, err := NewProofOfWork(10, 50)
	require.NoError(t, err)
	nodes := makeNodes(t, []float64{10}, nil)
	chain := freshChain()
	state := NewRoundState(1, random.NewSource(1))

	proposer, err := p.SelectProposer(nodes, state)
	require.NoError(t, err)
	_, err = p.ProduceBlock(proposer, nil, chain.Head(), state)
	assert.ErrorIs(t, err, interfaces.ErrNoEligibleProposer)
	assert.Equal(t, int64(50), state.Cost())
}

func TestPowSelectRequiresOnlineNode(t *testing.T) {
	p, err := NewProofOfWork(2, 1000)
	require.NoError(t, err)
	nodes := makeNodes(t, []float64{10, 20}, nil)
	nodes[0].SetOnline(false)
	nodes[1].SetOnline(false)

	_, err = p.SelectProposer(nodes, NewRoundState(1, random.NewSource(1)))
	assert.ErrorIs(t, err, interfaces.ErrNoEligibleProposer)
}

func TestPowValidateRejectsTampering(t *testing.T) {
	p, err := NewProofOfWork(1, 1000000)
	require.NoError(t, err)
	nodes := makeNodes(t, []float64{10}, nil)
	chain := freshChain()
	state := NewRoundState(1, random.NewSource(1))

	proposer, err := p.SelectProposer(nodes, state)
	require.NoError(t, err)
	block := produceOn(t, p, proposer, chain, state)

	block.SetNonce(block.Nonce() + 1)
	assert.ErrorIs(t, p.Validate(block, chain, state), interfaces.ErrInvalidBlock)
}
