package interfaces

type IConfig interface {
	Algorithm() string
	Rounds() int
	TxPerRound() int
	Seed() uint64
	NodeCount() int
	Stakes() []float64
	Difficulty() int
	MaxNonce() int64
	AgeFactor() float64
	MaxCoinAge() int
	DelegateCount() int
	ByzantineCount() int
	OfflineCount() int
	BlockReward() float64
	OutPath() string
	PrintLogToConsole() bool
	PrintAuditLogToConsole() bool
	UseMetrics() bool
	LogLevel() string
}

type IRNG interface {
	Float64() float64
	Intn(n int) int
}

type metricName string

type IMetricName interface {
	getMetricName() metricName
	String() string
}

// this is just for preventing simple strings from being used as IMetricName
func (mName metricName) getMetricName() metricName {
	return mName
}

func (mName metricName) String() string {
	return string(mName)
}

// add metric names here
const (
	METRIC_ROUND_COST      = metricName("RoundCost")
	METRIC_ROUND_FAILED    = metricName("RoundFailed")
	METRIC_BLOCK_APPENDED  = metricName("BlockAppended")
	METRIC_TX_CREATED      = metricName("TxCreated")
	METRIC_POW_ATTEMPTS    = metricName("PowAttempts")
	METRIC_PBFT_MESSAGES   = metricName("PbftMessages")
	METRIC_ROUND_REAL_TIME = metricName("RoundRealTime")
)
