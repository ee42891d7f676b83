package consensus

import (
	"consensussim/interfaces"
	"consensussim/ledger"
	"consensussim/util/logger"
	"consensussim/util/metrics"
	"fmt"
)

type replicaPhase string

const (
	phaseIdle        = replicaPhase("Idle")
	phasePrePrepared = replicaPhase("PrePrepared")
	phasePrepared    = replicaPhase("Prepared")
	phaseCommitted   = replicaPhase("Committed")
	phaseFailed      = replicaPhase("Failed")
)

// replica is the per-round protocol state of one validator.
type replica struct {
	node     interfaces.INode
	phase    replicaPhase
	adopted  string
	prepares map[string]map[string]bool // digest -> distinct senders
	commits  map[string]map[string]bool
}

func (r *replica) votes(votes map[string]map[string]bool, digest string) int {
	return len(votes[digest])
}

func (r *replica) addVote(votes map[string]map[string]bool, digest string, senderId string) {
	if votes[digest] == nil {
		votes[digest] = make(map[string]bool)
	}
	votes[digest][senderId] = true
}

// PracticalBFT runs the three-phase Byzantine agreement over the in-process
// message bus. The primary rotates with the round number; there is no
// view-change, so a round with a Byzantine primary may legitimately fail.
type PracticalBFT struct {
	nodes []interfaces.INode
	bus   interfaces.IMessageBus
}

// NewPracticalBFT fails fast when the roster cannot tolerate the declared
// number of Byzantine nodes (n < 3f+1).
func NewPracticalBFT(nodes []interfaces.INode, byzantineCount int, bus interfaces.IMessageBus) (interfaces.IProtocol, error) {
	if byzantineCount < 0 {
		return nil, fmt.Errorf("%w: pbft byzantineCount must not be negative, got %v", interfaces.ErrInvalidConfiguration, byzantineCount)
	}
	if len(nodes) < 3*byzantineCount+1 {
		return nil, fmt.Errorf("%w: pbft tolerates at most f=floor((n-1)/3) Byzantine nodes, n=%v cannot carry f=%v", interfaces.ErrInvalidConfiguration, len(nodes), byzantineCount)
	}
	return &PracticalBFT{nodes: nodes, bus: bus}, nil
}

func (p *PracticalBFT) Name() string {
	return "Practical Byzantine Fault Tolerance (PBFT)"
}

// SelectProposer returns the primary of the round, Byzantine or not. The
// rotation is fixed, a faulty primary fails its round instead of being
// replaced.
func (p *PracticalBFT) SelectProposer(nodes []interfaces.INode, state interfaces.IRoundState) (interfaces.INode, error) {
	online := onlineNodes(nodes)
	if len(online) == 0 {
		return nil, fmt.Errorf("%w: no online validator in round %v", interfaces.ErrNoEligibleProposer, state.Round())
	}
	return online[state.Round()%len(online)], nil
}

func (p *PracticalBFT) ProduceBlock(proposer interfaces.INode, txs []interfaces.ITransaction, head interfaces.IBlock, state interfaces.IRoundState) (interfaces.IBlock, error) {
	block, err := ledger.NewBlock(head.Index()+1, head.Hash(), proposer.Id(), txs, int64(state.Round()))
	if err != nil {
		return nil, err
	}
	block.SetHash(block.ComputeHash())
	return block, nil
}

// Validate runs the agreement: PrePrepare from the primary, Prepare until 2f
// matching votes, Commit until the 2f+1 quorum. The block stands once any
// honest replica commits.
func (p *PracticalBFT) Validate(block interfaces.IBlock, chain interfaces.IChain, state interfaces.IRoundState) error {
	if block.Hash() != block.ComputeHash() {
		return fmt.Errorf("%w: block %v hash does not match its contents", interfaces.ErrInvalidBlock, block.Index())
	}
	if block.PreviousHash() != chain.Head().Hash() {
		return fmt.Errorf("%w: block %v does not link to head", interfaces.ErrInvalidBlock, block.Index())
	}

	online := onlineNodes(p.nodes)
	n := len(online)
	f := (n - 1) / 3
	quorum := 2*f + 1
	round := state.Round()
	digest := block.Hash()
	rng := state.Rand()

	p.bus.Reset()
	replicas := make(map[string]*replica, n)
	ids := make([]string, 0, n)
	var primary *replica
	for _, nd := range online {
		r := &replica{node: nd, phase: phaseIdle, prepares: make(map[string]map[string]bool), commits: make(map[string]map[string]bool)}
		replicas[nd.Id()] = r
		ids = append(ids, nd.Id())
		if nd.Id() == block.ProposerId() {
			primary = r
		}
	}
	if primary == nil {
		return fmt.Errorf("%w: primary %v is not an online validator", interfaces.ErrInvalidBlock, block.ProposerId())
	}

	var phases int64
	var msgCount int64

	// phase 1: the primary broadcasts PrePrepare, per its behavior
	sent := false
	for _, targetId := range ids {
		d, ok := primary.node.Behavior().EmitDigest(digest, targetId, rng)
		if !ok {
			continue
		}
		p.bus.Send(targetId, NewMessage(interfaces.MSG_PRE_PREPARE, d, round, primary.node.Id()))
		msgCount++
		sent = true
	}
	if sent {
		phases++
	}

	// each replica adopts the first PrePrepare its behavior accepts
	for _, id := range ids {
		r := replicas[id]
		for _, msg := range p.bus.Receive(id) {
			if msg.Type() != interfaces.MSG_PRE_PREPARE {
				continue
			}
			adopted, ok := r.node.Behavior().AcceptPrePrepare(msg.Digest(), rng)
			if !ok {
				continue
			}
			r.adopted = adopted
			r.phase = phasePrePrepared
			break
		}
	}

	// phase 2: PrePrepared replicas broadcast Prepare, own vote included
	sent = false
	for _, id := range ids {
		r := replicas[id]
		if r.phase != phasePrePrepared {
			continue
		}
		for _, targetId := range ids {
			d, ok := r.node.Behavior().EmitDigest(r.adopted, targetId, rng)
			if !ok {
				continue
			}
			p.bus.Send(targetId, NewMessage(interfaces.MSG_PREPARE, d, round, id))
			msgCount++
			sent = true
		}
	}
	if sent {
		phases++
	}

	for _, id := range ids {
		r := replicas[id]
		for _, msg := range p.bus.Receive(id) {
			if msg.Type() != interfaces.MSG_PREPARE {
				continue
			}
			r.addVote(r.prepares, msg.Digest(), msg.SenderId())
		}
		if r.phase == phasePrePrepared && r.votes(r.prepares, r.adopted) >= 2*f {
			r.phase = phasePrepared
		}
	}

	// phase 3: Prepared replicas broadcast Commit
	sent = false
	for _, id := range ids {
		r := replicas[id]
		if r.phase != phasePrepared {
			continue
		}
		for _, targetId := range ids {
			d, ok := r.node.Behavior().EmitDigest(r.adopted, targetId, rng)
			if !ok {
				continue
			}
			p.bus.Send(targetId, NewMessage(interfaces.MSG_COMMIT, d, round, id))
			msgCount++
			sent = true
		}
	}
	if sent {
		phases++
	}

	for _, id := range ids {
		r := replicas[id]
		for _, msg := range p.bus.Receive(id) {
			if msg.Type() != interfaces.MSG_COMMIT {
				continue
			}
			r.addVote(r.commits, msg.Digest(), msg.SenderId())
		}
		if r.phase == phasePrepared && r.votes(r.commits, r.adopted) >= quorum {
			r.phase = phaseCommitted
			logger.Audit(round, p.Name(), id, string(phaseCommitted), r.adopted)
		}
	}

	state.RecordCost(phases)
	metrics.Counter(metrics.NameFormat(interfaces.METRIC_PBFT_MESSAGES, "All"), msgCount)

	// finalization: any honest replica in Committed settles the round
	agreed := ""
	committedHonest := 0
	for _, id := range ids {
		r := replicas[id]
		if r.phase != phaseCommitted || r.node.Behavior().IsByzantine() {
			continue
		}
		if committedHonest == 0 {
			agreed = r.adopted
		} else if r.adopted != agreed {
			// cannot happen with at most f Byzantine replicas
			return fmt.Errorf("%w: committed replicas disagree (%v vs %v)", interfaces.ErrInvalidBlock, agreed, r.adopted)
		}
		committedHonest++
	}
	if committedHonest == 0 {
		for _, id := range ids {
			if replicas[id].phase != phaseCommitted {
				replicas[id].phase = phaseFailed
			}
		}
		return fmt.Errorf("%w: no honest replica committed in round %v (n=%v, f=%v, quorum=%v, phases=%v)", interfaces.ErrQuorumNotReached, round, n, f, quorum, phases)
	}
	if agreed != digest {
		return fmt.Errorf("%w: quorum settled on digest %v, block carries %v", interfaces.ErrInvalidBlock, agreed, digest)
	}
	logger.Log.Debugf("pbft round %v committed by %v honest replicas in %v phases (n=%v, f=%v)", round, committedHonest, phases, n, f)
	return nil
}
