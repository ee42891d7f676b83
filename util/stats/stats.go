package stats

import (
	"consensussim/network"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

func PrintReport(report *network.SimulationReport, file *os.File) {
	out, _ := json.Marshal(report)
	file.Write(out)
}

// Summary renders the human-readable round-by-round table.
func Summary(report *network.SimulationReport) string {
	var sb strings.Builder
	line := strings.Repeat("=", 70)
	fmt.Fprintf(&sb, "\n%v\n  Simulation Report: %v (seed %v)\n%v\n", line, report.RAlgorithm, report.RSeed, line)
	fmt.Fprintf(&sb, "  Rounds executed:       %v\n", len(report.RRounds))
	fmt.Fprintf(&sb, "  Successful rounds:     %v\n", report.RSuccessfulRounds)
	fmt.Fprintf(&sb, "  Failed rounds:         %v\n", report.RFailedRounds)
	fmt.Fprintf(&sb, "  Final chain height:    %v\n", report.RFinalChainHeight)
	fmt.Fprintf(&sb, "  Average cost:          %.2f\n", report.RAverageCost)
	fmt.Fprintf(&sb, "  Total txs processed:   %v\n", report.RTotalTransactions)
	fmt.Fprintf(&sb, "%v\n\n  Round Details:\n  %v\n", line, strings.Repeat("-", 66))
	for _, r := range report.RRounds {
		status := "OK"
		detail := ""
		if !r.RSuccess {
			status = "FAIL"
			detail = " (" + r.RFailure + ")"
		}
		proposer := r.RProposerId
		if proposer == "" {
			proposer = "N/A"
		}
		fmt.Fprintf(&sb, "  Round %3v: [%4v] proposer=%-8v cost=%-6v%v\n", r.RRound, status, proposer, r.RCost, detail)
	}
	fmt.Fprintf(&sb, "  %v\n\n  Nodes:\n", strings.Repeat("-", 66))
	for _, n := range report.RNodes {
		online := "online"
		if !n.NIsOnline {
			online = "offline"
		}
		fmt.Fprintf(&sb, "  %-8v stake=%-8.1f behavior=%-13v blocks=%-4v %v\n", n.NId, n.NStake, n.NBehavior, n.NBlocksProduced, online)
	}
	fmt.Fprintf(&sb, "  %v\n", strings.Repeat("-", 66))
	return sb.String()
}

func PrintSummary(report *network.SimulationReport, file *os.File) {
	file.WriteString(Summary(report))
}
