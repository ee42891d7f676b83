package interfaces

type INode interface {
	Id() string
	Stake() float64
	SetStake(stake float64)
	IsOnline() bool
	SetOnline(isOnline bool)
	Behavior() IBehavior
	// LastProposedRound is the round this node last proposed a block in,
	// 0 if never. Coin age derives from it.
	LastProposedRound() int
	SetLastProposedRound(round int)
	BlocksProduced() int
	IncBlocksProduced()
}

// IBehavior models how a node acts during the PBFT phases. Honest nodes
// follow the protocol, Silent nodes drop their own steps, Equivocating
// nodes may adopt or emit conflicting digests.
type IBehavior interface {
	Name() IBehaviorName
	IsByzantine() bool
	// AcceptPrePrepare returns the digest this node adopts for the round.
	// ok=false means the node drops out of the round.
	AcceptPrePrepare(digest string, rng IRNG) (adopted string, ok bool)
	// EmitDigest returns the digest this node reports to one recipient.
	// ok=false means no message is sent to that recipient.
	EmitDigest(adopted string, recipientId string, rng IRNG) (digest string, ok bool)
}

type behaviorName string

type IBehaviorName interface {
	getBehaviorName() behaviorName
	String() string
}

// this is just for preventing simple strings from being used as IBehaviorName
func (bName behaviorName) getBehaviorName() behaviorName {
	return bName
}

func (bName behaviorName) String() string {
	return string(bName)
}

// add behavior names here
const (
	BEHAVIOR_HONEST       = behaviorName("Honest")
	BEHAVIOR_SILENT       = behaviorName("Silent")
	BEHAVIOR_EQUIVOCATING = behaviorName("Equivocating")
)
