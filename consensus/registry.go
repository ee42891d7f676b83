package consensus

import (
	"consensussim/interfaces"
	"fmt"
)

// Builder constructs a protocol for a given roster and configuration.
type Builder func(nodes []interfaces.INode, config interfaces.IConfig) (interfaces.IProtocol, error)

// NewRegistry returns the table of registered algorithms. It is built once
// at process start and handed to the factory, there is no package-level
// singleton.
func NewRegistry() map[string]Builder {
	return map[string]Builder{
		"pow": func(nodes []interfaces.INode, config interfaces.IConfig) (interfaces.IProtocol, error) {
			return NewProofOfWork(config.Difficulty(), config.MaxNonce())
		},
		"pos": func(nodes []interfaces.INode, config interfaces.IConfig) (interfaces.IProtocol, error) {
			return NewProofOfStake(config.AgeFactor(), config.MaxCoinAge())
		},
		"dpos": func(nodes []interfaces.INode, config interfaces.IConfig) (interfaces.IProtocol, error) {
			return NewDelegatedProofOfStake(nodes, config.DelegateCount())
		},
		"pbft": func(nodes []interfaces.INode, config interfaces.IConfig) (interfaces.IProtocol, error) {
			return NewPracticalBFT(nodes, config.ByzantineCount(), NewBus())
		},
	}
}

// NewProtocol looks up and builds one algorithm from the registry.
func NewProtocol(registry map[string]Builder, algorithm string, nodes []interfaces.INode, config interfaces.IConfig) (interfaces.IProtocol, error) {
	builder, ok := registry[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: unknown algorithm %q", interfaces.ErrInvalidConfiguration, algorithm)
	}
	return builder(nodes, config)
}

func onlineNodes(nodes []interfaces.INode) []interfaces.INode {
	online := make([]interfaces.INode, 0, len(nodes))
	for _, n := range nodes {
		if n.IsOnline() {
			online = append(online, n)
		}
	}
	return online
}
