// Package common provides shared utilities for MarketLens
package common

import (
	"encoding/json"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const logTimeFormat = "2006-01-02T15:04:05Z07:00"

// Logger wraps arbor.ILogger so services share one logging surface
type Logger struct {
	arbor.ILogger
}

// NewLogger creates a console logger at the given level.
func NewLogger(level string) *Logger {
	return NewLoggerFromConfig(LoggingConfig{
		Level:   level,
		Outputs: []string{"console"},
	})
}

// NewLoggerFromConfig builds a logger with the configured console and file
// writers. Unknown outputs are ignored; no outputs means console.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}

	l := arbor.NewLogger()
	for _, out := range outputs {
		switch strings.ToLower(strings.TrimSpace(out)) {
		case "console":
			l = l.WithConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				Writer:     os.Stderr,
				TimeFormat: logTimeFormat,
			})
		case "file":
			l = l.WithFileWriter(fileWriterConfig(cfg))
		}
	}

	return &Logger{ILogger: l.WithLevelFromString(levelOrDefault(cfg.Level))}
}

func fileWriterConfig(cfg LoggingConfig) models.WriterConfiguration {
	path := cfg.FilePath
	if path == "" {
		path = "logs/marketlens.log"
	}
	sizeMB := cfg.MaxSizeMB
	if sizeMB <= 0 {
		sizeMB = 10
	}
	backups := cfg.MaxBackups
	if backups <= 0 {
		backups = 5
	}
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeFile,
		FileName:   path,
		MaxSize:    int64(sizeMB) * 1024 * 1024,
		MaxBackups: backups,
		TimeFormat: logTimeFormat,
	}
}

func levelOrDefault(level string) string {
	if strings.TrimSpace(level) == "" {
		return "info"
	}
	return level
}

// NewLoggerWithOutput creates a logger that writes one plain text line per
// event to w.
func NewLoggerWithOutput(level string, w io.Writer) *Logger {
	level = levelOrDefault(level)
	tw := &textWriter{out: w, level: log.ParseLevel(level)}
	l := arbor.NewLogger().WithWriters([]writers.IWriter{tw}).WithLevelFromString(level)
	return &Logger{ILogger: l}
}

// NewSilentLogger creates a logger that discards all output.
func NewSilentLogger() *Logger {
	l := arbor.NewLogger().WithWriters([]writers.IWriter{discardWriter{}})
	return &Logger{ILogger: l}
}

// WithCorrelationId returns a new Logger tagged with a correlation ID.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error)             { return len(p), nil }
func (d discardWriter) WithLevel(_ log.Level) writers.IWriter { return d }
func (discardWriter) GetFilePath() string                     { return "" }
func (discardWriter) Close() error                            { return nil }

// textWriter renders arbor's JSON events as "message k=v ..." with fields
// in key order.
type textWriter struct {
	out   io.Writer
	level log.Level
}

func (w *textWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return w.out.Write(p)
	}
	if evt.Level < w.level {
		return len(p), nil
	}

	var sb strings.Builder
	sb.WriteString(evt.Message)

	keys := make([]string, 0, len(evt.Fields))
	for k := range evt.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(" " + k + "=")
		b, err := json.Marshal(evt.Fields[k])
		if err != nil {
			continue
		}
		sb.WriteString(strings.Trim(string(b), `"`))
	}
	if evt.Error != "" {
		sb.WriteString(" error=" + evt.Error)
	}
	sb.WriteByte('\n')

	if _, err := io.WriteString(w.out, sb.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (w *textWriter) WithLevel(level log.Level) writers.IWriter {
	w.level = level
	return w
}

func (w *textWriter) GetFilePath() string { return "" }
func (w *textWriter) Close() error        { return nil }
