package node

import (
	"consensussim/interfaces"
	"fmt"
)

type Node struct {
	NId                string               `json:"i"`
	NStake             float64              `json:"s"`
	NIsOnline          bool                 `json:"o"`
	NBehavior          interfaces.IBehavior `json:"-"`
	NBehaviorName      string               `json:"b"`
	NLastProposedRound int                  `json:"lp"`
	NBlocksProduced    int                  `json:"bp"`
}

func NewNode(id string, stake float64, behavior interfaces.IBehavior) (interfaces.INode, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: node needs an id", interfaces.ErrInvalidConfiguration)
	}
	if stake < 0 {
		return nil, fmt.Errorf("%w: node %v has negative stake %v", interfaces.ErrInvalidConfiguration, id, stake)
	}
	if behavior == nil {
		behavior = NewHonest()
	}
	return &Node{NId: id, NStake: stake, NIsOnline: true, NBehavior: behavior, NBehaviorName: behavior.Name().String()}, nil
}

func (node *Node) Id() string {
	return node.NId
}

func (node *Node) Stake() float64 {
	return node.NStake
}

func (node *Node) SetStake(stake float64) {
	node.NStake = stake
}

func (node *Node) IsOnline() bool {
	return node.NIsOnline
}

func (node *Node) SetOnline(isOnline bool) {
	node.NIsOnline = isOnline
}

func (node *Node) Behavior() interfaces.IBehavior {
	return node.NBehavior
}

func (node *Node) LastProposedRound() int {
	return node.NLastProposedRound
}

func (node *Node) SetLastProposedRound(round int) {
	node.NLastProposedRound = round
}

func (node *Node) BlocksProduced() int {
	return node.NBlocksProduced
}

func (node *Node) IncBlocksProduced() {
	node.NBlocksProduced++
}
