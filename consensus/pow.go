package consensus

import (
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/util/logger"
	"consensussim/util/metrics"
	"fmt"
	"strings"
)

// ProofOfWork selects its proposer through the mining competition itself:
// the winner is the node whose turn comes first in the seeded scan order,
// and the block only stands once a nonce below maxNonce satisfies the
// difficulty target.
type ProofOfWork struct {
	difficulty int
	maxNonce   int64
}

func NewProofOfWork(difficulty int, maxNonce int64) (interfaces.IProtocol, error) {
	if difficulty <= 0 {
		return nil, fmt.Errorf("%w: pow difficulty must be positive, got %v", interfaces.ErrInvalidConfiguration, difficulty)
	}
	if maxNonce <= 0 {
		return nil, fmt.Errorf("%w: pow maxNonce must be positive, got %v", interfaces.ErrInvalidConfiguration, maxNonce)
	}
	return &ProofOfWork{difficulty: difficulty, maxNonce: maxNonce}, nil
}

func (p *ProofOfWork) Name() string {
	return "Proof of Work (PoW)"
}

func (p *ProofOfWork) SelectProposer(nodes []interfaces.INode, state interfaces.IRoundState) (interfaces.INode, error) {
	online := onlineNodes(nodes)
	if len(online) == 0 {
		return nil, fmt.Errorf("%w: no online miner in round %v", interfaces.ErrNoEligibleProposer, state.Round())
	}
	// scan from a seeded offset so every miner can win, reproducibly
	start := state.Rand().Intn(len(online))
	return online[start], nil
}

func (p *ProofOfWork) ProduceBlock(proposer interfaces.INode, txs []interfaces.ITransaction, head interfaces.IBlock, state interfaces.IRoundState) (interfaces.IBlock, error) {
	block, err := ledger.NewBlock(head.Index()+1, head.Hash(), proposer.Id(), txs, int64(state.Round()))
	if err != nil {
		return nil, err
	}

	target := strings.Repeat("0", p.difficulty)
	var attempts int64
	for nonce := int64(0); nonce < p.maxNonce; nonce++ {
		block.SetNonce(nonce)
		attempts++
		hash := block.ComputeHash()
		if strings.HasPrefix(hash, target) {
			block.SetHash(hash)
			state.RecordCost(attempts)
			metrics.Counter(metrics.NameFormat(interfaces.METRIC_POW_ATTEMPTS, proposer.Id()), attempts)
			logger.Log.Debugf("miner %v found nonce %v after %v attempts (difficulty %v)", proposer.Id(), nonce, attempts, p.difficulty)
			return block, nil
		}
	}
	state.RecordCost(attempts)
	return nil, fmt.Errorf("%w: no nonce below %v satisfies difficulty %v", interfaces.ErrNoEligibleProposer, p.maxNonce, p.difficulty)
}

func (p *ProofOfWork) Validate(block interfaces.IBlock, chain interfaces.IChain, state interfaces.IRoundState) error {
	if block.Hash() != block.ComputeHash() {
		return fmt.Errorf("%w: block %v hash does not match its contents", interfaces.ErrInvalidBlock, block.Index())
	}
	if !strings.HasPrefix(block.Hash(), strings.Repeat("0", p.difficulty)) {
		return fmt.Errorf("%w: block %v hash misses difficulty %v", interfaces.ErrInvalidBlock, block.Index(), p.difficulty)
	}
	if block.PreviousHash() != chain.Head().Hash() {
		return fmt.Errorf("%w: block %v does not link to head", interfaces.ErrInvalidBlock, block.Index())
	}
	return nil
}
