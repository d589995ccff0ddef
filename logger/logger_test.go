package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		name     string
		input    string
		expected logger.LogLevel
	}{
		{"Zero-Value", "", logger.LogLevelUnk},
		{"Lowercase", "debug", logger.LogLevelUnk},
		{"Debug", "DEBUG", logger.LogLevelDebug},
		{"Info", "INFO", logger.LogLevelInfo},
		{"Warn", "WARN", logger.LogLevelWarn},
		{"Error", "ERROR", logger.LogLevelError},
		{"Fatal", "FATAL", logger.LogLevelFatal},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.input))
		})
	}
}

func TestAppLoggerLevels(t *testing.T) {
	color.NoColor = true

	for _, tc := range []struct {
		name     string
		level    logger.LogLevel
		log      func(l logger.Logger)
		expected string
	}{
		{"Debug-At-Debug", logger.LogLevelDebug, func(l logger.Logger) { l.Debug("hi", nil) }, "[DEBUG]"},
		{"Debug-At-Info", logger.LogLevelInfo, func(l logger.Logger) { l.Debug("hi", nil) }, ""},
		{"Info-At-Info", logger.LogLevelInfo, func(l logger.Logger) { l.Info("hi", nil) }, "[INFO]"},
		{"Info-At-Warn", logger.LogLevelWarn, func(l logger.Logger) { l.Info("hi", nil) }, ""},
		{"Warn-At-Warn", logger.LogLevelWarn, func(l logger.Logger) { l.Warn("hi", nil) }, "[WARN]"},
		{"Warn-At-Error", logger.LogLevelError, func(l logger.Logger) { l.Warn("hi", nil) }, ""},
		{"Error-At-Error", logger.LogLevelError, func(l logger.Logger) { l.Error("hi", nil) }, "[ERROR]"},
		{"Fatal-At-Fatal", logger.LogLevelFatal, func(l logger.Logger) { l.Fatal("hi", nil) }, "[FATAL]"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.log(l)

			// Assert
			require.Equal(t, tc.level, l.LogLevel())
			if tc.expected == "" {
				require.Zero(t, b.Len())
				return
			}

			out := b.String()
			require.Equal(t, tc.expected, logLevelRegexp.FindString(out))
			require.True(t, fpRegexp.MatchString(out), out)
			require.Equal(t, "hi", msgRegexp.FindStringSubmatch(out)[1])
		})
	}
}

func TestAppLoggerLogContext(t *testing.T) {
	color.NoColor = true

	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Error("oops", &logger.LogContext{Error: errors.New("boom")})

	// Assert
	require.Contains(t, b.String(), `log_context: {"error":"boom"}`)

	// Arrange
	b.Reset()

	// Act
	l.Info("elsewhere", &logger.LogContext{Caller: "router/build.go:12"})

	// Assert
	require.Contains(t, b.String(), "[INFO] router/build.go:12 'elsewhere'")
}

func TestAppLoggerAddSkip(t *testing.T) {
	// Arrange
	l := logger.New(logger.WithSkip(1))

	// Act
	actual := l.AddSkip(3)

	// Assert
	require.Equal(t, 1, l.Skip())
	require.Equal(t, 3, actual.Skip())
}

func TestNewSentryLogger(t *testing.T) {
	color.NoColor = true

	t.Run("Bad-DSN", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		base := logger.New(logger.WithLogger(newTestLogger(b)))

		// Act
		actual := logger.NewSentryLogger(base, "not a dsn")

		// Assert
		require.Same(t, base, actual)
		require.Contains(t, b.String(), "'sentry disabled'")
	})

	t.Run("Keeps-Call-Site", func(t *testing.T) {
		// Arrange
		b := new(bytes.Buffer)
		base := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(logger.LogLevelDebug))

		// Act
		actual := logger.NewSentryLogger(base, "https://public@example.com/1")
		actual.Debug("hi", nil)

		// Assert
		sl, ok := actual.(*logger.SentryLogger)
		require.True(t, ok)
		require.Equal(t, 0, sl.Skip())
		require.Equal(t, 2, sl.AddSkip(2).Skip())
		require.True(t, fpRegexp.MatchString(b.String()), b.String())
	})
}

func TestLogLevelString(t *testing.T) {
	require.Equal(t, "[WARN]", logger.LogLevelWarn.String())
	require.Equal(t, "[UNK]", logger.LogLevel(42).String())
}
