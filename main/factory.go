package main

import (
	"consensussim/consensus"
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/network"
	"consensussim/node"
	"consensussim/util/file"
	"consensussim/util/logger"
	"consensussim/util/random"
	"fmt"
	"math"
	"sort"
)

// createNodes builds the roster: ids are counted, stakes come from the
// config or a seeded uniform draw, Byzantine behaviors and offline nodes
// are assigned from the same seeded source for reproducibility.
func createNodes(config *file.Config, rng *random.Source) ([]interfaces.INode, error) {
	nodes := make([]interfaces.INode, 0, config.NodeCount())
	for i := 0; i < config.NodeCount(); i++ {
		stake := math.Round((10.0+rng.Float64()*90.0)*10) / 10
		if len(config.Stakes()) > 0 {
			stake = config.Stakes()[i]
		}
		n, err := node.NewNode(fmt.Sprintf("node%v", i+1), stake, node.NewHonest())
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}

	// use a sorted roster because of determinism
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].Id() < nodes[j].Id() })

	// mark Byzantine nodes, alternating between the two fault models
	for i, idx := range sampleIndexes(rng, len(nodes), config.ByzantineCount()) {
		old := nodes[idx]
		name := interfaces.BEHAVIOR_SILENT
		if i%2 == 1 {
			name = interfaces.BEHAVIOR_EQUIVOCATING
		}
		behavior, err := node.NewBehavior(name.String())
		if err != nil {
			return nil, err
		}
		replaced, err := node.NewNode(old.Id(), old.Stake(), behavior)
		if err != nil {
			return nil, err
		}
		nodes[idx] = replaced
		logger.Log.Infof("node %v acts %v", old.Id(), behavior.Name())
	}

	// take nodes offline, never overlapping with unsampled order issues:
	// a Byzantine node may also be offline, it then simply never speaks
	for _, idx := range sampleIndexes(rng, len(nodes), config.OfflineCount()) {
		nodes[idx].SetOnline(false)
		logger.Log.Infof("node %v is offline", nodes[idx].Id())
	}
	return nodes, nil
}

// sampleIndexes draws count distinct indexes below n, in draw order.
func sampleIndexes(rng *random.Source, n int, count int) []int {
	taken := make(map[int]bool, count)
	indexes := make([]int, 0, count)
	for len(indexes) < count && len(indexes) < n {
		idx := rng.Intn(n)
		if taken[idx] {
			continue
		}
		taken[idx] = true
		indexes = append(indexes, idx)
	}
	return indexes
}

// createSimulator wires roster, chain, registry and protocol together for
// one algorithm.
func createSimulator(registry map[string]consensus.Builder, algorithm string, config *file.Config, rng *random.Source) (*network.Simulator, error) {
	nodes, err := createNodes(config, rng)
	if err != nil {
		return nil, err
	}
	protocol, err := consensus.NewProtocol(registry, algorithm, nodes, config)
	if err != nil {
		return nil, err
	}
	return network.NewSimulator(protocol, nodes, ledger.NewChain(), rng, config), nil
}
