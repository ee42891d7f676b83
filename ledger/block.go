package ledger

import (
	"consensussim/interfaces"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const GenesisProposerId = "genesis"

type Block struct {
	BIndex        int                       `json:"i"`
	BPreviousHash string                    `json:"p"`
	BHash         string                    `json:"h"`
	BProposerId   string                    `json:"m"`
	BNonce        int64                     `json:"n"`
	BTransactions []interfaces.ITransaction `json:"txs"`
	BTimestamp    int64                     `json:"t"` // logical, in rounds
}

// NewBlock validates the block fields. The hash is left empty, it is set by
// the producing protocol (PoW sets it while mining, the others compute it
// directly).
func NewBlock(index int, previousHash string, proposerId string, txs []interfaces.ITransaction, timestamp int64) (interfaces.IBlock, error) {
	if index <= 0 {
		return nil, fmt.Errorf("%w: block index must be positive, got %v", interfaces.ErrInvalidBlock, index)
	}
	if previousHash == "" {
		return nil, fmt.Errorf("%w: block needs a previous hash", interfaces.ErrInvalidBlock)
	}
	if proposerId == "" {
		return nil, fmt.Errorf("%w: block needs a proposer", interfaces.ErrInvalidBlock)
	}
	if txs == nil {
		txs = make([]interfaces.ITransaction, 0)
	}
	return &Block{BIndex: index, BPreviousHash: previousHash, BProposerId: proposerId, BTransactions: txs, BTimestamp: timestamp}, nil
}

// NewGenesisBlock creates the fixed first block of every chain.
func NewGenesisBlock() interfaces.IBlock {
	block := &Block{BIndex: 0, BPreviousHash: strings.Repeat("0", 64), BProposerId: GenesisProposerId, BTransactions: make([]interfaces.ITransaction, 0), BTimestamp: 0}
	block.BHash = block.ComputeHash()
	return block
}

func (block *Block) Index() int {
	return block.BIndex
}

func (block *Block) PreviousHash() string {
	return block.BPreviousHash
}

func (block *Block) Hash() string {
	return block.BHash
}

func (block *Block) SetHash(hash string) {
	block.BHash = hash
}

func (block *Block) ProposerId() string {
	return block.BProposerId
}

func (block *Block) Nonce() int64 {
	return block.BNonce
}

func (block *Block) SetNonce(nonce int64) {
	block.BNonce = nonce
}

func (block *Block) Transactions() []interfaces.ITransaction {
	return block.BTransactions
}

func (block *Block) Timestamp() int64 {
	return block.BTimestamp
}

func (block *Block) ComputeHash() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%v%v%v", block.BIndex, block.BPreviousHash, block.BNonce)
	for _, tx := range block.BTransactions {
		sb.WriteString(tx.Id())
	}
	fmt.Fprintf(&sb, "%v", block.BTimestamp)
	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
