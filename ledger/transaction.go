package ledger

import (
	"consensussim/interfaces"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

type Transaction struct {
	TId          string  `json:"h"`
	TSenderId    string  `json:"s"`
	TRecipientId string  `json:"r"`
	TAmount      float64 `json:"a"`
	TTimestamp   int64   `json:"t"` // logical, in rounds
	TNonce       uint64  `json:"n"`
}

// NewTx validates the transaction fields and computes its id.
func NewTx(senderId string, recipientId string, amount float64, timestamp int64, nonce uint64) (interfaces.ITransaction, error) {
	if senderId == "" || recipientId == "" {
		return nil, fmt.Errorf("%w: transaction needs sender and recipient", interfaces.ErrInvalidConfiguration)
	}
	if senderId == recipientId {
		return nil, fmt.Errorf("%w: transaction sender equals recipient", interfaces.ErrInvalidConfiguration)
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: transaction amount must be positive, got %v", interfaces.ErrInvalidConfiguration, amount)
	}
	tx := &Transaction{TSenderId: senderId, TRecipientId: recipientId, TAmount: amount, TTimestamp: timestamp, TNonce: nonce}
	tx.TId = tx.ComputeHash()
	return tx, nil
}

func (tx *Transaction) Id() string {
	return tx.TId
}

func (tx *Transaction) SenderId() string {
	return tx.TSenderId
}

func (tx *Transaction) RecipientId() string {
	return tx.TRecipientId
}

func (tx *Transaction) Amount() float64 {
	return tx.TAmount
}

func (tx *Transaction) Timestamp() int64 {
	return tx.TTimestamp
}

func (tx *Transaction) ComputeHash() string {
	data := fmt.Sprintf("%v%v%v%v%v", tx.TSenderId, tx.TRecipientId, tx.TAmount, tx.TTimestamp, tx.TNonce)
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}
