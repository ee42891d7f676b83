package interfaces

import (
	"errors"
)

// IProtocol is the contract every consensus algorithm satisfies. The
// simulator is written only against this interface, the concrete algorithm
// is injected at setup via the registry.
type IProtocol interface {
	Name() string
	// SelectProposer picks the node that proposes the next block.
	// Returns ErrNoEligibleProposer if no qualifying node exists this round.
	SelectProposer(nodes []INode, state IRoundState) (INode, error)
	// ProduceBlock builds the proposer's block on top of the current head.
	ProduceBlock(proposer INode, txs []ITransaction, head IBlock, state IRoundState) (IBlock, error)
	// Validate checks the block against the chain. For PBFT this runs the
	// three-phase agreement; a block is appended only after Validate succeeds.
	Validate(block IBlock, chain IChain, state IRoundState) error
}

// IRoundState carries per-round context into the protocol operations:
// the round number, the seeded random source, and the protocol-specific
// cost metric (nonce attempts for PoW, message phases for PBFT).
type IRoundState interface {
	Round() int
	Rand() IRNG
	RecordCost(cost int64)
	Cost() int64
}

var (
	ErrInvalidBlock         = errors.New("invalid block")
	ErrNoEligibleProposer   = errors.New("no eligible proposer")
	ErrQuorumNotReached     = errors.New("quorum not reached")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)
