package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var log zerolog.Logger

// init sets up a JSON logger so packages can log before Init runs
func init() {
	zerolog.TimestampFieldName = "time"
	zerolog.LevelFieldName = "level"
	zerolog.MessageFieldName = "message"
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().UTC()
	}
	log = newLogger(os.Stdout)
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)
}

// Init configures timezone and output format for the given environment
func Init(timezone, environment string) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
		log.Warn().Err(err).Str("timezone", timezone).Msg("Invalid timezone, using UTC")
	}

	var writer io.Writer = os.Stdout
	if environment != "prod" {
		// Human readable output outside production
		writer = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}

	log = newLogger(writer)
	zerolog.DefaultContextLogger = &log
	zerolog.TimestampFunc = func() time.Time {
		return time.Now().In(loc)
	}
	log.Info().Str("timezone", loc.String()).Str("environment", environment).Msg("Logger configured")
}

// SetOutput redirects log output, mostly for tests
func SetOutput(w io.Writer) {
	log = newLogger(w)
}

// Debug returns an debug level log event
func Debug() *zerolog.Event {
	return log.Debug()
}

// Info returns an info level log event
func Info() *zerolog.Event {
	return log.Info()
}

// Warn returns a warning level log event
func Warn() *zerolog.Event {
	return log.Warn()
}

// Error returns an error level log event
func Error() *zerolog.Event {
	return log.Error()
}

// Fatal returns a fatal level log event
func Fatal() *zerolog.Event {
	return log.Fatal()
}

// ScopedLogger is a logger carrying a fixed "scope" field
type ScopedLogger struct {
	logger zerolog.Logger
	scope  string
}

// WithScope creates a logger tagged with the given scope
func WithScope(scope string) *ScopedLogger {
	return &ScopedLogger{
		logger: log.With().Str("scope", scope).Logger(),
		scope:  scope,
	}
}

func (s *ScopedLogger) Debug() *zerolog.Event { return s.logger.Debug() }
func (s *ScopedLogger) Info() *zerolog.Event  { return s.logger.Info() }
func (s *ScopedLogger) Warn() *zerolog.Event  { return s.logger.Warn() }
func (s *ScopedLogger) Error() *zerolog.Event { return s.logger.Error() }
func (s *ScopedLogger) Fatal() *zerolog.Event { return s.logger.Fatal() }

// GetScope returns the scope name
func (s *ScopedLogger) GetScope() string {
	return s.scope
}
