package network

import (
	"consensussim/consensus"
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/util/logger"
	"consensussim/util/metrics"
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// RoundResult records the outcome of one consensus round. Failed rounds
// carry the failure kind instead of a block, nothing is swallowed.
type RoundResult struct {
	RRound      int               `json:"r"`
	RProposerId string            `json:"p,omitempty"`
	RBlock      interfaces.IBlock `json:"block,omitempty"`
	RCost       int64             `json:"c"`
	RSuccess    bool              `json:"ok"`
	RFailure    string            `json:"f,omitempty"`
}

type NodeSummary struct {
	NId             string  `json:"i"`
	NStake          float64 `json:"s"`
	NBehavior       string  `json:"b"`
	NIsOnline       bool    `json:"o"`
	NBlocksProduced int     `json:"bp"`
}

// SimulationReport is the stable, serializable record handed to the
// reporting layer. It is immutable once Run returns.
type SimulationReport struct {
	RAlgorithm         string         `json:"algorithm"`
	RSeed              uint64         `json:"seed"`
	RRounds            []*RoundResult `json:"rounds"`
	RNodes             []*NodeSummary `json:"nodes"`
	RFinalChainHeight  int            `json:"finalChainHeight"`
	RSuccessfulRounds  int            `json:"successfulRounds"`
	RFailedRounds      int            `json:"failedRounds"`
	RAverageCost       float64        `json:"averageCost"`
	RTotalTransactions int            `json:"totalTransactions"`
}

// Simulator owns the chain, the node roster and the seeded random source.
// It drives the injected protocol round by round and never mutates shared
// state while a round is in flight.
type Simulator struct {
	protocol      interfaces.IProtocol
	nodes         []interfaces.INode // sorted by id
	chain         interfaces.IChain
	rng           interfaces.IRNG
	config        interfaces.IConfig
	txIdCount     uint64
	simShouldStop bool
}

func NewSimulator(protocol interfaces.IProtocol, nodes []interfaces.INode, chain interfaces.IChain, rng interfaces.IRNG, config interfaces.IConfig) *Simulator {
	return &Simulator{protocol: protocol, nodes: nodes, chain: chain, rng: rng, config: config}
}

func (sim *Simulator) Chain() interfaces.IChain {
	return sim.chain
}

func (sim *Simulator) Nodes() []interfaces.INode {
	return sim.nodes
}

// StopSim ends the run at the next round boundary, the report then covers
// the rounds executed so far.
func (sim *Simulator) StopSim() {
	sim.simShouldStop = true
}

func (sim *Simulator) Run() *SimulationReport {
	logger.Log.Infof("sim started: %v, %v nodes, %v rounds, seed %v", sim.protocol.Name(), len(sim.nodes), sim.config.Rounds(), sim.config.Seed())
	results := make([]*RoundResult, 0, sim.config.Rounds())
	costs := make([]float64, 0, sim.config.Rounds())
	totalTx := 0

	for round := 1; round <= sim.config.Rounds(); round++ {
		if sim.simShouldStop {
			logger.Log.Infof("sim stopped after %v rounds", len(results))
			break
		}
		startTime := time.Now()
		state := consensus.NewRoundState(round, sim.rng)
		txs := sim.generateTxs(round)
		result := sim.runRound(round, txs, state)

		if result.RSuccess {
			totalTx += len(txs)
			metrics.Counter(metrics.NameFormat(interfaces.METRIC_BLOCK_APPENDED, sim.protocol.Name()), 1)
		} else {
			metrics.Counter(metrics.NameFormat(interfaces.METRIC_ROUND_FAILED, sim.protocol.Name()), 1)
		}
		metrics.Gauge(metrics.NameFormat(interfaces.METRIC_ROUND_COST, sim.protocol.Name()), result.RCost)
		metrics.Timer(metrics.NameFormat(interfaces.METRIC_ROUND_REAL_TIME, sim.protocol.Name()), time.Since(startTime))
		costs = append(costs, float64(result.RCost))
		results = append(results, result)
	}

	successful := 0
	for _, r := range results {
		if r.RSuccess {
			successful++
		}
	}
	averageCost := 0.0
	if len(costs) > 0 {
		averageCost = stat.Mean(costs, nil)
	}
	report := &SimulationReport{
		RAlgorithm:         sim.protocol.Name(),
		RSeed:              sim.config.Seed(),
		RRounds:            results,
		RNodes:             sim.nodeSummaries(),
		RFinalChainHeight:  sim.chain.Height(),
		RSuccessfulRounds:  successful,
		RFailedRounds:      len(results) - successful,
		RAverageCost:       averageCost,
		RTotalTransactions: totalTx,
	}
	logger.Log.Infof("sim ended: %v successful, %v failed, chain height %v", report.RSuccessfulRounds, report.RFailedRounds, report.RFinalChainHeight)
	return report
}

// runRound executes select -> produce -> validate -> append. Every error is
// recovered into the result, only configuration errors abort a run and those
// never reach this point.
func (sim *Simulator) runRound(round int, txs []interfaces.ITransaction, state interfaces.IRoundState) *RoundResult {
	result := &RoundResult{RRound: round}

	proposer, err := sim.protocol.SelectProposer(sim.nodes, state)
	if err != nil {
		return sim.failRound(result, state, err)
	}
	result.RProposerId = proposer.Id()

	block, err := sim.protocol.ProduceBlock(proposer, txs, sim.chain.Head(), state)
	if err != nil {
		return sim.failRound(result, state, err)
	}
	if err = sim.protocol.Validate(block, sim.chain, state); err != nil {
		return sim.failRound(result, state, err)
	}
	if err = sim.chain.Append(block); err != nil {
		return sim.failRound(result, state, err)
	}

	// state mutations happen between rounds only
	proposer.SetLastProposedRound(round)
	proposer.IncBlocksProduced()
	proposer.SetStake(proposer.Stake() + sim.config.BlockReward())

	result.RBlock = block
	result.RCost = state.Cost()
	result.RSuccess = true
	logger.Audit(round, sim.protocol.Name(), proposer.Id(), "BlockAppended", block.Hash())
	return result
}

func (sim *Simulator) failRound(result *RoundResult, state interfaces.IRoundState, err error) *RoundResult {
	result.RCost = state.Cost()
	result.RFailure = FailureKind(err)
	logger.Log.Warnf("round %v failed: %v", result.RRound, err)
	logger.Audit(result.RRound, sim.protocol.Name(), result.RProposerId, "RoundFailed", err.Error())
	return result
}

// generateTxs synthesizes a batch of value transfers between two distinct
// roster nodes. Amounts are uniform in [0.1, 10.0), timestamps are logical.
func (sim *Simulator) generateTxs(round int) []interfaces.ITransaction {
	if len(sim.nodes) < 2 || sim.config.TxPerRound() == 0 {
		return make([]interfaces.ITransaction, 0)
	}
	txs := make([]interfaces.ITransaction, 0, sim.config.TxPerRound())
	for i := 0; i < sim.config.TxPerRound(); i++ {
		senderIdx := sim.rng.Intn(len(sim.nodes))
		recipientIdx := sim.rng.Intn(len(sim.nodes) - 1)
		if recipientIdx >= senderIdx {
			recipientIdx++
		}
		amount := math.Round((0.1+sim.rng.Float64()*9.9)*100) / 100
		sim.txIdCount++
		tx, err := ledger.NewTx(sim.nodes[senderIdx].Id(), sim.nodes[recipientIdx].Id(), amount, int64(round), sim.txIdCount)
		if err != nil {
			// synthesized fields cannot violate the constructor checks
			logger.Log.Panicf("tx synthesis: %v", err)
		}
		txs = append(txs, tx)
		metrics.Counter(metrics.NameFormat(interfaces.METRIC_TX_CREATED, "All"), 1)
	}
	return txs
}

func (sim *Simulator) nodeSummaries() []*NodeSummary {
	summaries := make([]*NodeSummary, 0, len(sim.nodes))
	for _, n := range sim.nodes {
		summaries = append(summaries, &NodeSummary{NId: n.Id(), NStake: n.Stake(), NBehavior: n.Behavior().Name().String(), NIsOnline: n.IsOnline(), NBlocksProduced: n.BlocksProduced()})
	}
	return summaries
}

// FailureKind maps an error to its taxonomy entry for the report.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, interfaces.ErrNoEligibleProposer):
		return "NoEligibleProposer"
	case errors.Is(err, interfaces.ErrQuorumNotReached):
		return "QuorumNotReached"
	case errors.Is(err, interfaces.ErrInvalidBlock):
		return "InvalidBlock"
	case errors.Is(err, interfaces.ErrInvalidConfiguration):
		return "InvalidConfiguration"
	default:
		return fmt.Sprintf("Unknown(%v)", err)
	}
}
