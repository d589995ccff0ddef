package logger

import (
	"strconv"

	"github.com/getsentry/sentry-go"
)

// A SentryLogger prints through a SkipLogger and also captures,
// for warnings and worse, the error carried in the LogContext.
type SentryLogger struct {
	next SkipLogger
	hub  *sentry.Hub
}

// NewSentryLogger binds a Sentry client for dsn to the current hub,
// which panic reporting shares, and wraps base.
// If the client cannot be built, the failure is logged and base returned.
func NewSentryLogger(base *AppLogger, dsn string) Logger {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:          dsn,
		Environment:  base.env,
		IgnoreErrors: []string{"broken pipe", "context canceled"},
	})
	if err != nil {
		base.Error("sentry disabled", &LogContext{Error: err})
		return base
	}

	hub := sentry.CurrentHub()
	hub.BindClient(client)

	return &SentryLogger{next: base.AddSkip(base.Skip() + 1), hub: hub}
}

func (sl *SentryLogger) Debug(msg string, ctx *LogContext) { sl.next.Debug(msg, ctx) }
func (sl *SentryLogger) Info(msg string, ctx *LogContext)  { sl.next.Info(msg, ctx) }

func (sl *SentryLogger) Warn(msg string, ctx *LogContext) {
	sl.next.Warn(msg, ctx)
	sl.capture(LogLevelWarn, ctx)
}

func (sl *SentryLogger) Error(msg string, ctx *LogContext) {
	sl.next.Error(msg, ctx)
	sl.capture(LogLevelError, ctx)
}

func (sl *SentryLogger) Fatal(msg string, ctx *LogContext) {
	sl.next.Fatal(msg, ctx)
	sl.capture(LogLevelFatal, ctx)
}

func (sl *SentryLogger) LogLevel() LogLevel { return sl.next.LogLevel() }

// AddSkip and Skip hide the frame SentryLogger adds.
func (sl *SentryLogger) AddSkip(i int) SkipLogger {
	return &SentryLogger{next: sl.next.AddSkip(i + 1), hub: sl.hub}
}

func (sl *SentryLogger) Skip() int { return sl.next.Skip() - 1 }

var sentryLevels = map[LogLevel]sentry.Level{
	LogLevelWarn:  sentry.LevelWarning,
	LogLevelError: sentry.LevelError,
	LogLevelFatal: sentry.LevelFatal,
}

func (sl *SentryLogger) capture(level LogLevel, ctx *LogContext) {
	if level < sl.LogLevel() || ctx == nil || ctx.Error == nil {
		return
	}

	hub := sl.hub.Clone()
	scope := hub.Scope()
	scope.SetLevel(sentryLevels[level])
	if ctx.Request != nil {
		scope.SetRequest(ctx.Request)
	}
	if ctx.User != nil {
		scope.SetUser(sentry.User{ID: strconv.FormatUint(uint64(ctx.User.GetID()), 10), Email: ctx.User.GetEmail()})
	}
	for k, v := range ctx.Data {
		scope.SetExtra(k, v)
	}

	hub.CaptureException(ctx.Error)
}

var _ SkipLogger = new(SentryLogger)
