package validation

import (
	"consensussim/interfaces"
	"consensussim/util/file"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *file.Config {
	return &file.Config{
		CAlgorithm:      "all",
		CRounds:         10,
		CTxPerRound:     2,
		CSeed:           123,
		CNodeCount:      5,
		CDifficulty:     2,
		CMaxNonce:       1000000,
		CAgeFactor:      0.1,
		CMaxCoinAge:     50,
		CDelegateCount:  3,
		CByzantineCount: 1,
		CBlockReward:    1.0,
		COutPath:        "out",
	}
}

func TestValidateConfigAcceptsValid(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig()))
}

func TestValidateConfigCollectsAllProblems(t *testing.T) {
	config := validConfig()
	config.CAlgorithm = "raft"
	config.CRounds = 0
	config.CNodeCount = 0
	config.COutPath = ""

	err := ValidateConfig(config)
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "unknown algorithm")
	assert.Contains(t, err.Error(), "rounds")
	assert.Contains(t, err.Error(), "nodeCount")
	assert.Contains(t, err.Error(), "outPath")
}

func TestValidateConfigStakesMustMatchRoster(t *testing.T) {
	config := validConfig()
	config.CStakes = []float64{10, 20}
	assert.ErrorIs(t, ValidateConfig(config), interfaces.ErrInvalidConfiguration)

	config.CStakes = []float64{10, 20, 30, -5, 50}
	assert.ErrorIs(t, ValidateConfig(config), interfaces.ErrInvalidConfiguration)

	config.CStakes = []float64{10, 20, 30, 40, 50}
	assert.NoError(t, ValidateConfig(config))
}

func TestValidateConfigPbftQuorumBound(t *testing.T) {
	config := validConfig()
	config.CAlgorithm = "pbft"
	config.CNodeCount = 4
	config.CByzantineCount = 1
	assert.NoError(t, ValidateConfig(config))

	config.CByzantineCount = 2
	err := ValidateConfig(config)
	assert.ErrorIs(t, err, interfaces.ErrInvalidConfiguration)
	assert.Contains(t, err.Error(), "3f+1")
}

func TestValidateConfigAlgorithmScopedChecks(t *testing.T) {
	// pow-only settings are not checked when pow never runs
	config := validConfig()
	config.CAlgorithm = "pos"
	config.CDifficulty = 0
	config.CMaxNonce = 0
	config.CDelegateCount = 0
	assert.NoError(t, ValidateConfig(config))

	config.CAlgorithm = "all"
	assert.ErrorIs(t, ValidateConfig(config), interfaces.ErrInvalidConfiguration)
}

func TestValidateConfigOfflineLeavesOneOnline(t *testing.T) {
	config := validConfig()
	config.COfflineCount = config.CNodeCount
	assert.ErrorIs(t, ValidateConfig(config), interfaces.ErrInvalidConfiguration)

	config.COfflineCount = config.CNodeCount - 1
	assert.NoError(t, ValidateConfig(config))
}
