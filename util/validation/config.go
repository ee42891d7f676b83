package validation

import (
	"consensussim/interfaces"
	"consensussim/util/file"
	"fmt"
	"strings"
)

var knownAlgorithms = map[string]bool{"pow": true, "pos": true, "dpos": true, "pbft": true, "all": true}

// ValidateConfig checks the whole configuration up front. Any problem is
// fatal before the first round runs.
func ValidateConfig(config *file.Config) error {
	var err []string = make([]string, 0, 2)
	if !knownAlgorithms[config.Algorithm()] {
		err = append(err, fmt.Sprintf("unknown algorithm %q, want one of pow, pos, dpos, pbft, all", config.Algorithm()))
	}
	if config.Rounds() <= 0 {
		err = append(err, "rounds must be a positive integer")
	}
	if config.TxPerRound() < 0 {
		err = append(err, "txPerRound must not be negative")
	}
	if config.NodeCount() < 1 {
		err = append(err, "nodeCount must be at least 1")
	}
	if len(config.Stakes()) > 0 && len(config.Stakes()) != config.NodeCount() {
		err = append(err, fmt.Sprintf("stakes has %v entries, nodeCount is %v", len(config.Stakes()), config.NodeCount()))
	}
	for i, stake := range config.Stakes() {
		if stake < 0 {
			err = append(err, fmt.Sprintf("stake %v is negative (%v)", i, stake))
		}
	}
	if config.Difficulty() <= 0 && needsAlgorithm(config, "pow") {
		err = append(err, "difficulty must be a positive integer")
	}
	if config.MaxNonce() <= 0 && needsAlgorithm(config, "pow") {
		err = append(err, "maxNonce must be a positive integer")
	}
	if config.AgeFactor() < 0 {
		err = append(err, "ageFactor must not be negative")
	}
	if config.DelegateCount() <= 0 && needsAlgorithm(config, "dpos") {
		err = append(err, "delegateCount must be a positive integer")
	}
	if config.DelegateCount() > config.NodeCount() && needsAlgorithm(config, "dpos") {
		err = append(err, "delegateCount must not exceed nodeCount")
	}
	if config.ByzantineCount() < 0 {
		err = append(err, "byzantineCount must not be negative")
	}
	if needsAlgorithm(config, "pbft") && config.NodeCount() < 3*config.ByzantineCount()+1 {
		err = append(err, fmt.Sprintf("pbft needs n >= 3f+1 nodes, got n=%v for f=%v", config.NodeCount(), config.ByzantineCount()))
	}
	if config.OfflineCount() < 0 || config.OfflineCount() >= config.NodeCount() {
		err = append(err, "offlineCount must leave at least one node online")
	}
	if config.OutPath() == "" {
		err = append(err, "outPath should be set")
	}
	if strings.HasSuffix(config.OutPath(), "/") {
		err = append(err, "outPath should not end with '/'")
	}

	if len(err) > 0 {
		return fmt.Errorf("%w:\n%v", interfaces.ErrInvalidConfiguration, strings.Join(err, "\n"))
	}
	return nil
}

func needsAlgorithm(config *file.Config, algorithm string) bool {
	return config.Algorithm() == algorithm || config.Algorithm() == "all"
}
