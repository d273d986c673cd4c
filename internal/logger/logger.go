package logger

import (
	"encoding/json"
	"log"
	"os"
	"time"
)

// Logger is the structured logging interface used across the service.
type Logger interface {
	Info(message string, fields map[string]interface{})
	Warn(message string, fields map[string]interface{})
	Error(message string, fields map[string]interface{})
	Debug(message string, fields map[string]interface{})
}

type jsonLogger struct {
	serviceName string
	logger      *log.Logger
}

// New returns a JSON-line logger writing to stdout.
func New(serviceName string) Logger {
	return &jsonLogger{
		serviceName: serviceName,
		logger:      log.New(os.Stdout, "", 0),
	}
}

func (l *jsonLogger) log(level, message string, fields map[string]interface{}) {
	entry := map[string]interface{}{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"level":     level,
		"service":   l.serviceName,
		"message":   message,
	}
	for k, v := range fields {
		entry[k] = v
	}
	data, _ := json.Marshal(entry)
	l.logger.Println(string(data))
}

func (l *jsonLogger) Info(message string, fields map[string]interface{})  { l.log("info", message, fields) }
func (l *jsonLogger) Warn(message string, fields map[string]interface{})  { l.log("warn", message, fields) }
func (l *jsonLogger) Error(message string, fields map[string]interface{}) { l.log("error", message, fields) }
func (l *jsonLogger) Debug(message string, fields map[string]interface{}) { l.log("debug", message, fields) }

// NewNop returns a logger that discards everything; used in tests.
func NewNop() Logger { return &nopLogger{} }

type nopLogger struct{}

func (l *nopLogger) Info(string, map[string]interface{})  {}
func (l *nopLogger) Warn(string, map[string]interface{})  {}
func (l *nopLogger) Error(string, map[string]interface{}) {}
func (l *nopLogger) Debug(string, map[string]interface{}) {}
