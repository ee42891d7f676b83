package file

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	CAlgorithm              string    `yaml:"algorithm"`
	CRounds                 int       `yaml:"rounds"`
	CTxPerRound             int       `yaml:"txPerRound"`
	CSeed                   uint64    `yaml:"seed"`
	CNodeCount              int       `yaml:"nodeCount"`
	CStakes                 []float64 `yaml:"stakes"`
	CDifficulty             int       `yaml:"difficulty"`
	CMaxNonce               int64     `yaml:"maxNonce"`
	CAgeFactor              float64   `yaml:"ageFactor"`
	CMaxCoinAge             int       `yaml:"maxCoinAge"`
	CDelegateCount          int       `yaml:"delegateCount"`
	CByzantineCount         int       `yaml:"byzantineCount"`
	COfflineCount           int       `yaml:"offlineCount"`
	CBlockReward            float64   `yaml:"blockReward"`
	COutPath                string    `yaml:"outPath"`
	CPrintLogToConsole      bool      `yaml:"printLogToConsole"`
	CPrintAuditLogToConsole bool      `yaml:"printAuditLogToConsole"`
	CUseMetrics             bool      `yaml:"useMetrics"`
	CLogLevel               string    `yaml:"logLevel"`
}

func (config *Config) Algorithm() string {
	return config.CAlgorithm
}

func (config *Config) Rounds() int {
	return config.CRounds
}

func (config *Config) TxPerRound() int {
	return config.CTxPerRound
}

func (config *Config) Seed() uint64 {
	return config.CSeed
}

func (config *Config) NodeCount() int {
	return config.CNodeCount
}

func (config *Config) Stakes() []float64 {
	return config.CStakes
}

func (config *Config) Difficulty() int {
	return config.CDifficulty
}

func (config *Config) MaxNonce() int64 {
	return config.CMaxNonce
}

func (config *Config) AgeFactor() float64 {
	return config.CAgeFactor
}

func (config *Config) MaxCoinAge() int {
	return config.CMaxCoinAge
}

func (config *Config) DelegateCount() int {
	return config.CDelegateCount
}

func (config *Config) ByzantineCount() int {
	return config.CByzantineCount
}

func (config *Config) OfflineCount() int {
	return config.COfflineCount
}

func (config *Config) BlockReward() float64 {
	return config.CBlockReward
}

func (config *Config) OutPath() string {
	return config.COutPath
}

func (config *Config) PrintLogToConsole() bool {
	return config.CPrintLogToConsole
}

func (config *Config) PrintAuditLogToConsole() bool {
	return config.CPrintAuditLogToConsole
}

func (config *Config) UseMetrics() bool {
	return config.CUseMetrics
}

func (config *Config) LogLevel() string {
	return config.CLogLevel
}

func LoadConfig(path string) *Config {
	var config Config
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		log.Panic(err)
	}
	err = yaml.Unmarshal(yamlFile, &config)
	if err != nil {
		log.Panic(err)
	}

	return &config
}

func outFile(config *Config, name string) *os.File {
	outPath := fmt.Sprintf("%v/%v", config.OutPath(), config.Seed())
	out := fmt.Sprintf("%v/%v", outPath, name)
	if FileExists(out) {
		err := os.Remove(out)
		if err != nil {
			log.Panic(err)
		}
	} else {
		EnsureOutPath(outPath)
	}
	outputFile, err := os.Create(out)
	if err != nil {
		log.Panic(err)
	}

	return outputFile
}

func ReportFile(config *Config, algorithm string) *os.File {
	return outFile(config, fmt.Sprintf("report_%v.json", algorithm))
}

func SummaryFile(config *Config, algorithm string) *os.File {
	return outFile(config, fmt.Sprintf("summary_%v.txt", algorithm))
}

func MetricsFile(config *Config) *os.File {
	return outFile(config, "metrics.json")
}

func LoggerFile(config *Config) *os.File {
	return outFile(config, "log.txt")
}

func AuditLoggerFile(config *Config) *os.File {
	return outFile(config, "auditLog.csv")
}

func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func EnsureOutPath(outPath string) {
	_, err := os.Stat(outPath)
	if os.IsNotExist(err) {
		os.MkdirAll(outPath, os.ModePerm)
	}
}
