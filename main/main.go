package main

import (
	"consensussim/consensus"
	"consensussim/util/file"
	"consensussim/util/logger"
	"consensussim/util/metrics"
	"consensussim/util/random"
	"consensussim/util/stats"
	"consensussim/util/validation"
	"log"
	"os"
	"os/signal"
	"strconv"
)

func main() {
	runs := 1
	if len(os.Args) > 1 {
		parsedRuns, err := strconv.Atoi(os.Args[1])
		if err != nil {
			log.Panic(err)
		}
		runs = parsedRuns
		log.Printf("Sim will be executed %v times\n", runs)
	}

	// load config
	config := file.LoadConfig("config.yml")
	if err := validation.ValidateConfig(config); err != nil {
		log.Panic(err)
	}

	// the registry is built once and passed along explicitly
	registry := consensus.NewRegistry()
	algorithms := []string{config.Algorithm()}
	if config.Algorithm() == "all" {
		algorithms = []string{"pow", "pos", "dpos", "pbft"}
	}

	interruptChan := make(chan os.Signal, 1)
	signal.Notify(interruptChan, os.Interrupt)

	initialSeed := config.Seed()
	simShouldStop := false
	for i := initialSeed; i < initialSeed+uint64(runs); i++ {
		if simShouldStop {
			break
		}
		config.CSeed = i

		// init logger
		loggerFile := file.LoggerFile(config)
		logger.Initialize(loggerFile, config.PrintLogToConsole(), config.LogLevel())

		// init auditLogger
		auditLoggerFile := file.AuditLoggerFile(config)
		logger.InitAuditLogger(auditLoggerFile, config.PrintAuditLogToConsole())

		// init metrics
		metrics.Initialize(config)

		for _, algorithm := range algorithms {
			if simShouldStop {
				break
			}

			// fresh roster, chain and random source per algorithm
			rng := random.NewSource(config.Seed())
			sim, err := createSimulator(registry, algorithm, config, rng)
			if err != nil {
				log.Panic(err)
			}

			stopListeningForInterruptChan := make(chan bool, 1)
			go func() {
				select {
				case <-interruptChan:
					log.Printf("Sim interrupted\n")
					simShouldStop = true
					sim.StopSim()
				case <-stopListeningForInterruptChan:
				}
			}()

			report := sim.Run()
			stopListeningForInterruptChan <- true

			reportFile := file.ReportFile(config, algorithm)
			stats.PrintReport(report, reportFile)
			_ = reportFile.Close()

			summaryFile := file.SummaryFile(config, algorithm)
			stats.PrintSummary(report, summaryFile)
			_ = summaryFile.Close()

			// just for testing of determinism
			rng.PrintCount()
		}

		// write metrics to file if needed
		if config.UseMetrics() {
			f := file.MetricsFile(config)
			metrics.WriteToFile(f)
			_ = f.Close()
		}

		logger.CloseAuditLogger()
		_ = loggerFile.Close()
		_ = auditLoggerFile.Close()
	}
}
