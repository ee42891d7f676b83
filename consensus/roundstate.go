package consensus

import "consensussim/interfaces"

// RoundState is created by the simulator for every round and handed into
// the protocol operations. Protocols write their cost metric into it.
type RoundState struct {
	round int
	rng   interfaces.IRNG
	cost  int64
}

func NewRoundState(round int, rng interfaces.IRNG) interfaces.IRoundState {
	return &RoundState{round: round, rng: rng}
}

func (state *RoundState) Round() int {
	return state.round
}

func (state *RoundState) Rand() interfaces.IRNG {
	return state.rng
}

func (state *RoundState) RecordCost(cost int64) {
	state.cost = cost
}

func (state *RoundState) Cost() int64 {
	return state.cost
}
