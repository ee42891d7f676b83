package node

import (
	"consensussim/interfaces"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Honest nodes follow the protocol as specified.
type Honest struct{}

// Silent nodes model crash-like Byzantine faults, they drop every step of
// their own but still count towards n.
type Silent struct{}

// Equivocating nodes model active Byzantine faults, they may adopt or emit
// a conflicting digest. All coin flips come from the injected seeded source.
type Equivocating struct{}

func NewHonest() interfaces.IBehavior {
	return &Honest{}
}

func NewSilent() interfaces.IBehavior {
	return &Silent{}
}

func NewEquivocating() interfaces.IBehavior {
	return &Equivocating{}
}

func (b *Honest) Name() interfaces.IBehaviorName {
	return interfaces.BEHAVIOR_HONEST
}

func (b *Honest) IsByzantine() bool {
	return false
}

func (b *Honest) AcceptPrePrepare(digest string, rng interfaces.IRNG) (string, bool) {
	return digest, true
}

func (b *Honest) EmitDigest(adopted string, recipientId string, rng interfaces.IRNG) (string, bool) {
	return adopted, true
}

func (b *Silent) Name() interfaces.IBehaviorName {
	return interfaces.BEHAVIOR_SILENT
}

func (b *Silent) IsByzantine() bool {
	return true
}

func (b *Silent) AcceptPrePrepare(digest string, rng interfaces.IRNG) (string, bool) {
	return "", false
}

func (b *Silent) EmitDigest(adopted string, recipientId string, rng interfaces.IRNG) (string, bool) {
	return "", false
}

func (b *Equivocating) Name() interfaces.IBehaviorName {
	return interfaces.BEHAVIOR_EQUIVOCATING
}

func (b *Equivocating) IsByzantine() bool {
	return true
}

func (b *Equivocating) AcceptPrePrepare(digest string, rng interfaces.IRNG) (string, bool) {
	if rng.Float64() < 0.5 {
		return ConflictingDigest(digest), true
	}
	return digest, true
}

func (b *Equivocating) EmitDigest(adopted string, recipientId string, rng interfaces.IRNG) (string, bool) {
	if rng.Float64() < 0.5 {
		return ConflictingDigest(adopted), true
	}
	return adopted, true
}

// ConflictingDigest derives the digest an equivocating node pushes instead
// of the real one.
func ConflictingDigest(digest string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%v:fork", digest)))
	return hex.EncodeToString(sum[:])
}

// NewBehavior maps a behavior name from the config to its strategy.
func NewBehavior(name string) (interfaces.IBehavior, error) {
	switch name {
	case interfaces.BEHAVIOR_HONEST.String():
		return NewHonest(), nil
	case interfaces.BEHAVIOR_SILENT.String():
		return NewSilent(), nil
	case interfaces.BEHAVIOR_EQUIVOCATING.String():
		return NewEquivocating(), nil
	default:
		return nil, fmt.Errorf("%w: unknown behavior %v", interfaces.ErrInvalidConfiguration, name)
	}
}
