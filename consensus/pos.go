package consensus

import (
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/util/logger"
	"fmt"
)

// ProofOfStake draws the proposer from the online honest validators,
// weighted by stake times a saturating coin-age multiplier so long-idle
// validators are favored. Selections are recorded per round so Validate
// can replay them without signatures.
type ProofOfStake struct {
	ageFactor  float64
	maxCoinAge int
	selected   map[int]string
}

func NewProofOfStake(ageFactor float64, maxCoinAge int) (interfaces.IProtocol, error) {
	if ageFactor < 0 {
		return nil, fmt.Errorf("%w: pos ageFactor must not be negative, got %v", interfaces.ErrInvalidConfiguration, ageFactor)
	}
	if maxCoinAge < 0 {
		return nil, fmt.Errorf("%w: pos maxCoinAge must not be negative, got %v", interfaces.ErrInvalidConfiguration, maxCoinAge)
	}
	return &ProofOfStake{ageFactor: ageFactor, maxCoinAge: maxCoinAge, selected: make(map[int]string)}, nil
}

func (p *ProofOfStake) Name() string {
	return "Proof of Stake (PoS)"
}

// weight is stake * (1 + ageFactor * coinAge), coin age saturating at
// maxCoinAge. Zero stake means zero weight.
func (p *ProofOfStake) weight(n interfaces.INode, round int) float64 {
	age := round - n.LastProposedRound()
	if p.maxCoinAge > 0 && age > p.maxCoinAge {
		age = p.maxCoinAge
	}
	return n.Stake() * (1.0 + p.ageFactor*float64(age))
}

func (p *ProofOfStake) SelectProposer(nodes []interfaces.INode, state interfaces.IRoundState) (interfaces.INode, error) {
	eligible := make([]interfaces.INode, 0, len(nodes))
	total := 0.0
	for _, n := range onlineNodes(nodes) {
		if n.Behavior().IsByzantine() {
			continue
		}
		eligible = append(eligible, n)
		total += p.weight(n, state.Round())
	}
	if len(eligible) == 0 || total == 0 {
		return nil, fmt.Errorf("%w: no staked validator in round %v", interfaces.ErrNoEligibleProposer, state.Round())
	}

	// single draw against the cumulative distribution; the roster is sorted
	// by id, so equal cumulative weights resolve to the lowest id
	draw := state.Rand().Float64() * total
	cumulative := 0.0
	var chosen interfaces.INode
	for _, n := range eligible {
		w := p.weight(n, state.Round())
		if w == 0 {
			continue
		}
		cumulative += w
		chosen = n
		if draw < cumulative {
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: no positively staked validator in round %v", interfaces.ErrNoEligibleProposer, state.Round())
	}
	p.selected[state.Round()] = chosen.Id()
	state.RecordCost(1)
	logger.Log.Debugf("validator %v selected (stake %v, age %v)", chosen.Id(), chosen.Stake(), state.Round()-chosen.LastProposedRound())
	return chosen, nil
}

func (p *ProofOfStake) ProduceBlock(proposer interfaces.INode, txs []interfaces.ITransaction, head interfaces.IBlock, state interfaces.IRoundState) (interfaces.IBlock, error) {
	block, err := ledger.NewBlock(head.Index()+1, head.Hash(), proposer.Id(), txs, int64(state.Round()))
	if err != nil {
		return nil, err
	}
	block.SetHash(block.ComputeHash())
	return block, nil
}

func (p *ProofOfStake) Validate(block interfaces.IBlock, chain interfaces.IChain, state interfaces.IRoundState) error {
	if block.Hash() != block.ComputeHash() {
		return fmt.Errorf("%w: block %v hash does not match its contents", interfaces.ErrInvalidBlock, block.Index())
	}
	if block.PreviousHash() != chain.Head().Hash() {
		return fmt.Errorf("%w: block %v does not link to head", interfaces.ErrInvalidBlock, block.Index())
	}
	// replay of the recorded seeded selection stands in for a signature check
	recorded, ok := p.selected[state.Round()]
	if !ok || recorded != block.ProposerId() {
		return fmt.Errorf("%w: block %v proposer %v does not match recorded selection", interfaces.ErrInvalidBlock, block.Index(), block.ProposerId())
	}
	return nil
}
