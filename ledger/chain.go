package ledger

import (
	"consensussim/interfaces"
	"fmt"
)

// Chain is the append-only block sequence, owned exclusively by the
// simulator and mutated only between rounds.
type Chain struct {
	CBlocks []interfaces.IBlock `json:"blocks"`
}

func NewChain() interfaces.IChain {
	chain := &Chain{CBlocks: make([]interfaces.IBlock, 0, 100)}
	chain.CBlocks = append(chain.CBlocks, NewGenesisBlock())
	return chain
}

func (chain *Chain) Head() interfaces.IBlock {
	return chain.CBlocks[len(chain.CBlocks)-1]
}

func (chain *Chain) Height() int {
	return len(chain.CBlocks)
}

func (chain *Chain) Get() []interfaces.IBlock {
	return chain.CBlocks
}

func (chain *Chain) Append(block interfaces.IBlock) error {
	if block.Hash() == "" {
		return fmt.Errorf("%w: block %v has no hash", interfaces.ErrInvalidBlock, block.Index())
	}
	if block.Hash() != block.ComputeHash() {
		return fmt.Errorf("%w: block %v hash does not match its contents", interfaces.ErrInvalidBlock, block.Index())
	}
	if block.PreviousHash() != chain.Head().Hash() {
		return fmt.Errorf("%w: block %v does not link to head %v", interfaces.ErrInvalidBlock, block.Index(), chain.Head().Index())
	}
	if block.Index() != chain.Height() {
		return fmt.Errorf("%w: block index %v, expected %v", interfaces.ErrInvalidBlock, block.Index(), chain.Height())
	}
	chain.CBlocks = append(chain.CBlocks, block)
	return nil
}

func (chain *Chain) IsValid() bool {
	for i := 1; i < len(chain.CBlocks); i++ {
		current := chain.CBlocks[i]
		previous := chain.CBlocks[i-1]
		if current.Hash() != current.ComputeHash() {
			return false
		}
		if current.PreviousHash() != previous.Hash() {
			return false
		}
	}
	return true
}
