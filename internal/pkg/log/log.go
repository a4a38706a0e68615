// Package log provides the logging setup for a run: JSON logs written to a
// rotating log file, mirrored to stdout, and optionally shipped to an
// Elasticsearch index. The logger is created once by the run command and
// passed explicitly to every component; there is no process-wide state.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/internetarchive/elogrus"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/olivere/elastic/v7"
	"github.com/sirupsen/logrus"
)

// Config holds the logging configuration of one run.
type Config struct {
	Level          string
	NoStdout       bool
	FileOutputDir  string
	RotationPeriod time.Duration
	ESURL          string
	ESIndexPrefix  string
}

// Logger wraps logrus.Logger and owns the rotating log file writer.
type Logger struct {
	*logrus.Logger

	fileWriter *rotatelogs.RotateLogs
}

// New creates the logger for a run. Log entries are written as JSON to a
// rotating file under cfg.FileOutputDir and, unless disabled, to stdout.
// When cfg.ESURL is set, entries are also indexed asynchronously into
// Elasticsearch via an elogrus hook.
func New(cfg Config) (*Logger, error) {
	logger := logrus.New()
	logger.SetLevel(parseLevel(cfg.Level))
	logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})

	if err := os.MkdirAll(cfg.FileOutputDir, 0755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}

	writer, err := rotatelogs.New(
		filepath.Join(cfg.FileOutputDir, "dum_%Y%m%d%H%M%S.log"),
		rotatelogs.WithRotationTime(cfg.RotationPeriod),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize log file: %w", err)
	}

	if cfg.NoStdout {
		logger.SetOutput(writer)
	} else {
		logger.SetOutput(io.MultiWriter(writer, os.Stdout))
	}

	if cfg.ESURL != "" {
		if err := addElasticHook(logger, cfg); err != nil {
			writer.Close()
			return nil, err
		}
	}

	return &Logger{Logger: logger, fileWriter: writer}, nil
}

// WithComponent returns an entry carrying a component field, used by each
// pipeline stage so log lines can be told apart.
func (l *Logger) WithComponent(name string) *logrus.Entry {
	return l.WithField("component", name)
}

// Close flushes and closes the rotating log file.
func (l *Logger) Close() error {
	return l.fileWriter.Close()
}

func addElasticHook(logger *logrus.Logger, cfg Config) error {
	client, err := elastic.NewClient(
		elastic.SetURL(strings.Split(cfg.ESURL, ",")...),
		elastic.SetSniff(false),
	)
	if err != nil {
		return fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		return err
	}

	prefix := cfg.ESIndexPrefix
	if prefix == "" {
		prefix = "dum"
	}

	hook, err := elogrus.NewAsyncElasticHook(client, hostname, logger.Level, prefix+"-"+time.Now().Format("2006.01.02"))
	if err != nil {
		return fmt.Errorf("failed to create Elasticsearch hook: %w", err)
	}
	logger.Hooks.Add(hook)

	return nil
}

func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}
