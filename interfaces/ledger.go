package interfaces

type ITransaction interface {
	Id() string
	SenderId() string
	RecipientId() string
	Amount() float64
	Timestamp() int64
	ComputeHash() string
}

type IBlock interface {
	Index() int
	PreviousHash() string
	Hash() string
	SetHash(hash string)
	ProposerId() string
	Nonce() int64
	SetNonce(nonce int64)
	Transactions() []ITransaction
	Timestamp() int64
	// ComputeHash hashes index, previous hash, nonce, payload and timestamp.
	ComputeHash() string
}

type IChain interface {
	Head() IBlock
	Height() int
	Get() []IBlock
	// Append adds a block after re-checking hash integrity and linkage.
	Append(block IBlock) error
	IsValid() bool
}
