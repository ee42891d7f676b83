package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Writer tees log output to the run's log file and optionally the console.
type Writer struct {
	file           *os.File
	printToConsole bool
}

func NewWriter(file *os.File, printToConsole bool) *Writer {
	return &Writer{file: file, printToConsole: printToConsole}
}

func (writer *Writer) Write(p []byte) (n int, err error) {
	_, _ = writer.file.Write(p)
	if writer.printToConsole {
		_, _ = os.Stdout.Write(p)
	}
	return len(p), nil
}

func Initialize(file *os.File, printToConsole bool, level string) {
	Log.SetOutput(NewWriter(file, printToConsole))
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Log.SetLevel(parsed)
}
