package consensus

import (
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/node"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeNodes builds a sorted roster node1..nodeN with the given stakes,
// all honest unless a behavior override is set.
func makeNodes(t *testing.T, stakes []float64, behaviors map[int]interfaces.IBehavior) []interfaces.INode {
	nodes := make([]interfaces.INode, 0, len(stakes))
	for i, stake := range stakes {
		behavior := behaviors[i]
		if behavior == nil {
			behavior = node.NewHonest()
		}
		n, err := node.NewNode(fmt.Sprintf("node%v", i+1), stake, behavior)
		require.NoError(t, err)
		nodes = append(nodes, n)
	}
	return nodes
}

func produceOn(t *testing.T, p interfaces.IProtocol, proposer interfaces.INode, chain interfaces.IChain, state interfaces.IRoundState) interfaces.IBlock {
	block, err := p.ProduceBlock(proposer, nil, chain.Head(), state)
	require.NoError(t, err)
	return block
}

func freshChain() interfaces.IChain {
	return ledger.NewChain()
}
