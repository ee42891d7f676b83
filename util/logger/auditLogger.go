package logger

import (
	"fmt"
	"os"
)

var auditLogger *AuditLogger

// AuditLogger writes one CSV line per consensus event so runs can be
// compared round by round.
type AuditLogger struct {
	file           *os.File
	printToConsole bool
}

func InitAuditLogger(file *os.File, printToConsole bool) {
	auditLogger = &AuditLogger{file: file, printToConsole: printToConsole}
	// write csv headers
	_, _ = auditLogger.file.Write([]byte(fmt.Sprintf("%v ; %v ; %v ; %v ; %v\n", "round", "algorithm", "nodeId", "event", "text")))
}

func CloseAuditLogger() {
	auditLogger = nil
}

func (logger *AuditLogger) log(text string) {
	toPrint := []byte(text + "\n")
	_, _ = logger.file.Write(toPrint)
	if logger.printToConsole {
		_, _ = os.Stdout.Write(toPrint)
	}
}

func Audit(round int, algorithm string, nodeId string, event string, text string) {
	if auditLogger != nil {
		auditLogger.log(fmt.Sprintf("%v ; %v ; %v ; %v ; %v", round, algorithm, nodeId, event, text))
	}
}
