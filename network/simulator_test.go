package network

import (
	"consensussim/consensus"
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/node"
	"consensussim/util/file"
	"consensussim/util/random"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simConfig(algorithm string, rounds int, seed uint64, stakes []float64) *file.Config {
	return &file.Config{
		CAlgorithm:   algorithm,
		CRounds:      rounds,
		CTxPerRound:  2,
		CSeed:        seed,
		CNodeCount:   len(stakes),
		CStakes:      stakes,
		CDifficulty:  2,
		CMaxNonce:    1000000,
		CAgeFactor:   0.1,
		CMaxCoinAge:  50,
		CBlockReward: 1.0,
		COutPath:     "out",
	}
}

// newSim builds a fully fresh simulator, nothing is shared between calls.
func newSim(t *testing.T, config *file.Config, behaviors map[int]interfaces.IBehavior) *Simulator {
	nodes := make([]interfaces.INode, 0, len(config.Stakes()))
	for i, stake := range config.Stakes() {
		behavior := behaviors[i]
		if behavior == nil {
			behavior = node.NewHonest()
		}
		n, err := node.NewNode(fmt.Sprintf("node%v", i+1), stake, behavior)
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	protocol, err := consensus.NewProtocol(consensus.NewRegistry(), config.Algorithm(), nodes, config)
	require.NoError(t, err)
	return NewSimulator(protocol, nodes, ledger.NewChain(), random.NewSource(config.Seed()), config)
}

func TestRunIsDeterministicForASeed(t *testing.T) {
	config := simConfig("pow", 5, 123, []float64{10, 20, 30, 40, 50})

	first := newSim(t, config, nil).Run()
	second := newSim(t, config, nil).Run()

	firstJson, err := json.Marshal(first)
	require.NoError(t, err)
	secondJson, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJson, secondJson)
}

func TestRunReportAggregates(t *testing.T) {
	config := simConfig("pow", 5, 7, []float64{10, 20, 30})
	sim := newSim(t, config, nil)
	report := sim.Run()

	assert.Equal(t, "pow", report.RAlgorithm)
	assert.Equal(t, uint64(7), report.RSeed)
	assert.Len(t, report.RRounds, 5)
	assert.Equal(t, 5, report.RSuccessfulRounds+report.RFailedRounds)
	assert.Equal(t, 1+report.RSuccessfulRounds, report.RFinalChainHeight)
	assert.Equal(t, report.RSuccessfulRounds*config.TxPerRound(), report.RTotalTransactions)
	assert.True(t, sim.Chain().IsValid())

	produced := 0
	for _, n := range report.RNodes {
		produced += n.NBlocksProduced
	}
	assert.Equal(t, report.RSuccessfulRounds, produced)
}

func TestRunCreditsBlockReward(t *testing.T) {
	config := simConfig("pow", 10, 3, []float64{10, 20, 30})
	sim := newSim(t, config, nil)
	report := sim.Run()

	totalStake := 0.0
	for _, n := range sim.Nodes() {
		totalStake += n.Stake()
	}
	assert.InDelta(t, 60.0+float64(report.RSuccessfulRounds)*config.BlockReward(), totalStake, 1e-9)
}

func TestRunPbftFailsExactlyOnByzantinePrimaryRounds(t *testing.T) {
	// 4 nodes, node3 silent, round-robin primary online[round % 4]
	config := simConfig("pbft", 10, 42, []float64{10, 10, 10, 10})
	config.CByzantineCount = 1
	sim := newSim(t, config, map[int]interfaces.IBehavior{2: node.NewSilent()})
	report := sim.Run()

	for _, result := range report.RRounds {
		if result.RRound%4 == 2 {
			assert.False(t, result.RSuccess, "round %v has a silent primary", result.RRound)
			assert.Equal(t, "QuorumNotReached", result.RFailure)
		} else {
			assert.True(t, result.RSuccess, "round %v: %v", result.RRound, result.RFailure)
		}
	}
	assert.Equal(t, 3, report.RFailedRounds)
	assert.True(t, sim.Chain().IsValid())
}

func TestRunPbftAllHonestCommitsEveryRound(t *testing.T) {
	config := simConfig("pbft", 10, 42, []float64{10, 10, 10, 10})
	report := newSim(t, config, nil).Run()

	assert.Equal(t, 10, report.RSuccessfulRounds)
	assert.Equal(t, 0, report.RFailedRounds)
	assert.Equal(t, 11, report.RFinalChainHeight)
}

func TestRunPosNeverElectsZeroStake(t *testing.T) {
	config := simConfig("pos", 50, 9, []float64{0, 50, 50})
	config.CBlockReward = 0
	report := newSim(t, config, nil).Run()

	for _, result := range report.RRounds {
		assert.NotEqual(t, "node1", result.RProposerId)
	}
}

func TestRunRecoversFromFailedRounds(t *testing.T) {
	// dpos delegates ranked by stake: node3, node2, node1. Taking node2
	// offline fails every slot round % 3 == 1 and nothing else.
	config := simConfig("dpos", 9, 5, []float64{10, 20, 30})
	config.CDelegateCount = 3
	sim := newSim(t, config, nil)
	sim.Nodes()[1].SetOnline(false)
	report := sim.Run()

	for _, result := range report.RRounds {
		if result.RRound%3 == 1 {
			assert.False(t, result.RSuccess)
			assert.Equal(t, "NoEligibleProposer", result.RFailure)
		} else {
			assert.True(t, result.RSuccess, "round %v: %v", result.RRound, result.RFailure)
		}
	}
	assert.Equal(t, 6, report.RSuccessfulRounds)
	assert.Equal(t, 7, report.RFinalChainHeight)
	assert.True(t, sim.Chain().IsValid())
}

func TestStopSimEndsRunAtRoundBoundary(t *testing.T) {
	config := simConfig("pow", 5, 11, []float64{10, 20, 30})
	sim := newSim(t, config, nil)
	sim.StopSim()
	report := sim.Run()

	assert.Empty(t, report.RRounds)
	assert.Equal(t, 0, report.RSuccessfulRounds)
	assert.Equal(t, 0, report.RFailedRounds)
	assert.Equal(t, 1, report.RFinalChainHeight)
	assert.Equal(t, 0.0, report.RAverageCost)

	// a truncated report still serializes
	_, err := json.Marshal(report)
	assert.NoError(t, err)
}

func TestGenerateTxsUsesDistinctParties(t *testing.T) {
	config := simConfig("pow", 1, 1, []float64{10, 20, 30})
	config.CTxPerRound = 50
	sim := newSim(t, config, nil)

	for _, tx := range sim.generateTxs(1) {
		assert.NotEqual(t, tx.SenderId(), tx.RecipientId())
		assert.Greater(t, tx.Amount(), 0.0)
		assert.LessOrEqual(t, tx.Amount(), 10.0)
		assert.Equal(t, int64(1), tx.Timestamp())
	}
}

func TestFailureKindTaxonomy(t *testing.T) {
	assert.Equal(t, "NoEligibleProposer", FailureKind(interfaces.ErrNoEligibleProposer))
	assert.Equal(t, "QuorumNotReached", FailureKind(interfaces.ErrQuorumNotReached))
	assert.Equal(t, "InvalidBlock", FailureKind(fmt.Errorf("%w: tampered", interfaces.ErrInvalidBlock)))
	assert.Equal(t, "InvalidConfiguration", FailureKind(interfaces.ErrInvalidConfiguration))
	assert.Equal(t, "Unknown(boom)", FailureKind(fmt.Errorf("boom")))
}
