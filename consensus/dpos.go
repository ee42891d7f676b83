package consensus

import (
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/util/logger"
	"fmt"
	"sort"
)

// DelegatedProofOfStake elects the top-stake nodes into a fixed delegate
// rotation at setup. There is no vote re-tallying between rounds.
type DelegatedProofOfStake struct {
	delegates []string
}

func NewDelegatedProofOfStake(nodes []interfaces.INode, delegateCount int) (interfaces.IProtocol, error) {
	if delegateCount <= 0 {
		return nil, fmt.Errorf("%w: dpos delegateCount must be positive, got %v", interfaces.ErrInvalidConfiguration, delegateCount)
	}
	if delegateCount > len(nodes) {
		return nil, fmt.Errorf("%w: dpos delegateCount %v exceeds node count %v", interfaces.ErrInvalidConfiguration, delegateCount, len(nodes))
	}

	ranked := make([]interfaces.INode, len(nodes))
	copy(ranked, nodes)
	// top stake first, ties broken by lowest id
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Stake() != ranked[j].Stake() {
			return ranked[i].Stake() > ranked[j].Stake()
		}
		return ranked[i].Id() < ranked[j].Id()
	})

	delegates := make([]string, 0, delegateCount)
	for _, n := range ranked[:delegateCount] {
		delegates = append(delegates, n.Id())
	}
	logger.Log.Infof("dpos elected delegates: %v", delegates)
	return &DelegatedProofOfStake{delegates: delegates}, nil
}

func (p *DelegatedProofOfStake) Name() string {
	return "Delegated Proof of Stake (DPoS)"
}

func (p *DelegatedProofOfStake) Delegates() []string {
	return p.delegates
}

func (p *DelegatedProofOfStake) expectedDelegate(round int) string {
	return p.delegates[round%len(p.delegates)]
}

func (p *DelegatedProofOfStake) SelectProposer(nodes []interfaces.INode, state interfaces.IRoundState) (interfaces.INode, error) {
	expected := p.expectedDelegate(state.Round())
	for _, n := range nodes {
		if n.Id() == expected {
			if !n.IsOnline() {
				return nil, fmt.Errorf("%w: delegate %v is offline in round %v", interfaces.ErrNoEligibleProposer, expected, state.Round())
			}
			state.RecordCost(1)
			return n, nil
		}
	}
	return nil, fmt.Errorf("%w: delegate %v not in roster", interfaces.ErrNoEligibleProposer, expected)
}

func (p *DelegatedProofOfStake) ProduceBlock(proposer interfaces.INode, txs []interfaces.ITransaction, head interfaces.IBlock, state interfaces.IRoundState) (interfaces.IBlock, error) {
	block, err := ledger.NewBlock(head.Index()+1, head.Hash(), proposer.Id(), txs, int64(state.Round()))
	if err != nil {
		return nil, err
	}
	block.SetHash(block.ComputeHash())
	return block, nil
}

func (p *DelegatedProofOfStake) Validate(block interfaces.IBlock, chain interfaces.IChain, state interfaces.IRoundState) error {
	if block.Hash() != block.ComputeHash() {
		return fmt.Errorf("%w: block %v hash does not match its contents", interfaces.ErrInvalidBlock, block.Index())
	}
	if block.PreviousHash() != chain.Head().Hash() {
		return fmt.Errorf("%w: block %v does not link to head", interfaces.ErrInvalidBlock, block.Index())
	}
	if expected := p.expectedDelegate(state.Round()); block.ProposerId() != expected {
		return fmt.Errorf("%w: block %v proposed by %v, round %v belongs to delegate %v", interfaces.ErrInvalidBlock, block.Index(), block.ProposerId(), state.Round(), expected)
	}
	return nil
}
