package logger

import "log"

// A LoggerOptFn configures an AppLogger.
type LoggerOptFn func(*AppLogger)

// WithEnv names the environment, which Sentry tags events with.
func WithEnv(env string) LoggerOptFn {
	return func(l *AppLogger) { l.env = env }
}

// WithLevel sets the lowest level printed.
func WithLevel(level LogLevel) LoggerOptFn {
	return func(l *AppLogger) { l.level = level }
}

// WithLogger prints through out instead of a *log.Logger on os.Stdout.
func WithLogger(out *log.Logger) LoggerOptFn {
	return func(l *AppLogger) {
		if out != nil {
			l.out = out
		}
	}
}

// WithSkip sets how many frames above the logging call the printed call site is.
func WithSkip(skip int) LoggerOptFn {
	return func(l *AppLogger) { l.skip = skip }
}
