package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultTag prefixes every diagnostic line
const DefaultTag = "prepare-packdeps"

// LevelForVerbosity maps the -v count to a zerolog level
func LevelForVerbosity(verbosity int) zerolog.Level {
	switch verbosity {
	case 0:
		return zerolog.InfoLevel
	case 1:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// NewConsoleWriter returns a zerolog console writer that prints
// "[tag] message key=value" lines without timestamps.
func NewConsoleWriter(out io.Writer, tag string) zerolog.ConsoleWriter {
	if tag == "" {
		tag = DefaultTag
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    !isTerminal(out),
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.CallerFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i interface{}) string {
			level, _ := i.(string)
			switch level {
			case "", zerolog.LevelInfoValue:
				return "[" + tag + "]"
			default:
				return fmt.Sprintf("[%s] %s", tag, strings.ToUpper(level))
			}
		},
	}
}

// New creates a logger writing tagged console lines to out
func New(out io.Writer, verbosity int, tag string) zerolog.Logger {
	return zerolog.New(NewConsoleWriter(out, tag)).
		Level(LevelForVerbosity(verbosity)).
		With().Timestamp().Logger()
}

// SetupLogger configures the global logger based on verbosity.
// Console output goes to stderr; a JSON copy goes to the state log file
// when it can be opened.
func SetupLogger(verbosity int, tag string) {
	SetupLoggerTo(os.Stderr, verbosity, tag)
}

// SetupLoggerTo is SetupLogger with console output sent to out
func SetupLoggerTo(out io.Writer, verbosity int, tag string) {
	writers := []io.Writer{NewConsoleWriter(out, tag)}

	logFile := getLogFilePath()
	logFileHandle, err := setupLogFile(logFile)
	if err == nil {
		writers = append(writers, logFileHandle)
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).
		Level(LevelForVerbosity(verbosity)).
		With().Timestamp().Logger()

	if err != nil {
		log.Debug().Err(err).Str("path", logFile).Msg("Failed to create log file, logging to console only")
	}

	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	log.Debug().Int("verbosity", verbosity).Str("logFile", logFile).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// LogCommand logs a command execution with its arguments
func LogCommand(logger zerolog.Logger, cmd string, args []string) {
	logger.Debug().
		Str("command", cmd).
		Strs("args", args).
		Msg("Executing command")
}

// LogOperationStart logs the start of an operation and returns a function
// that logs its completion
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	start := time.Now()
	logger.Trace().Str("operation", operation).Msg("Operation started")

	return func() {
		logger.Trace().
			Str("operation", operation).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

// getLogFilePath returns $XDG_STATE_HOME/packdeps/packdeps.log
func getLogFilePath() string {
	return filepath.Join(xdg.StateHome, "packdeps", "packdeps.log")
}

// setupLogFile creates the log file and its parent directories
func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
