package consensus

import "consensussim/interfaces"

type Message struct {
	msgType  interfaces.IMessageType
	digest   string
	round    int
	senderId string
}

func NewMessage(msgType interfaces.IMessageType, digest string, round int, senderId string) interfaces.IMessage {
	return &Message{msgType: msgType, digest: digest, round: round, senderId: senderId}
}

func (msg *Message) Type() interfaces.IMessageType {
	return msg.msgType
}

func (msg *Message) Digest() string {
	return msg.digest
}

func (msg *Message) Round() int {
	return msg.round
}

func (msg *Message) SenderId() string {
	return msg.senderId
}

// Bus is the synchronous in-process message fabric the PBFT phases run on.
// Each phase is broadcast and drained to completion before the next starts,
// so no message ever crosses a round boundary.
type Bus struct {
	queues map[string][]interfaces.IMessage
}

func NewBus() interfaces.IMessageBus {
	return &Bus{queues: make(map[string][]interfaces.IMessage)}
}

func (bus *Bus) Send(targetId string, msg interfaces.IMessage) {
	bus.queues[targetId] = append(bus.queues[targetId], msg)
}

func (bus *Bus) Broadcast(targetIds []string, msg interfaces.IMessage) {
	for _, targetId := range targetIds {
		bus.Send(targetId, msg)
	}
}

func (bus *Bus) Receive(targetId string) []interfaces.IMessage {
	msgs := bus.queues[targetId]
	delete(bus.queues, targetId)
	return msgs
}

func (bus *Bus) Reset() {
	bus.queues = make(map[string][]interfaces.IMessage)
}
