package interfaces

type messageType string

type IMessageType interface {
	getMessageType() messageType
	String() string
}

// this is just for preventing simple strings from being used as IMessageType
func (mType messageType) getMessageType() messageType {
	return mType
}

func (mType messageType) String() string {
	return string(mType)
}

// add message types here
const (
	MSG_PRE_PREPARE = messageType("PrePrepare")
	MSG_PREPARE     = messageType("Prepare")
	MSG_COMMIT      = messageType("Commit")
)

// IMessage is an ephemeral PBFT protocol message, never persisted.
type IMessage interface {
	Type() IMessageType
	Digest() string
	Round() int
	SenderId() string
}

// IMessageBus is the in-process message fabric PBFT runs on. Messages are
// delivered synchronously within a round, there is no cross-round carryover.
type IMessageBus interface {
	Send(targetId string, msg IMessage)
	Broadcast(targetIds []string, msg IMessage)
	// Receive drains and returns the queued messages for a node.
	Receive(targetId string) []IMessage
	Reset()
}
