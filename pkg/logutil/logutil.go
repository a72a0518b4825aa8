// Package logutil provides logging utilities.
//
// All loggers returned by GetLogger share one output, which discards
// everything until SetOutput or SetOutputFile is called.
package logutil

import (
	"io"
	"log"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Size cap in megabytes of a log file before it is rotated, and the number of
// rotated files to keep.
const (
	logFileMaxSize    = 10
	logFileMaxBackups = 3
)

var (
	mu      sync.Mutex
	out     io.Writer = io.Discard
	closer  io.Closer
	loggers []*log.Logger
)

// GetLogger gets a logger with the given prefix.
func GetLogger(prefix string) *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	logger := log.New(out, prefix, log.LstdFlags)
	loggers = append(loggers, logger)
	return logger
}

// SetOutput redirects the output of all loggers obtained with GetLogger to
// the new io.Writer. If the old output was a file opened by SetOutputFile, it
// is closed.
func SetOutput(newout io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	setOutput(newout, nil)
}

// SetOutputFile redirects the output of all loggers obtained with GetLogger
// to the named file. The file is rotated when it grows too large. If fname is
// empty, logs are discarded.
func SetOutputFile(fname string) error {
	mu.Lock()
	defer mu.Unlock()
	if fname == "" {
		setOutput(io.Discard, nil)
		return nil
	}
	file := &lumberjack.Logger{
		Filename:   fname,
		MaxSize:    logFileMaxSize,
		MaxBackups: logFileMaxBackups,
	}
	// lumberjack opens the file lazily; write nothing now so that an
	// unwritable path is reported here rather than swallowed later.
	if _, err := file.Write(nil); err != nil {
		return err
	}
	setOutput(file, file)
	return nil
}

func setOutput(newout io.Writer, newcloser io.Closer) {
	if closer != nil {
		closer.Close()
	}
	out, closer = newout, newcloser
	for _, logger := range loggers {
		logger.SetOutput(out)
	}
}
