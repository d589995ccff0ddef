/*
Package logger provides logging functionality to a switchback app by defining the required behavior in [Logger]
and providing an implementation of it with [AppLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [AppLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*AppLogger.Warn], [*AppLogger.Error], and [*AppLogger.Fatal] produce messages.

# AppLogger

Log messages emitted by [AppLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2022/04/28 15:55:21 [DEBUG] router/build.go:43 'bound GET /mounted/index' log_context: {"data":{"controller":"Mounted"}}

The log context is a JSON-encoded [LogContext].

# SentryLogger

When a SENTRY_DSN is configured, [NewSentryLogger] wraps an [AppLogger]
so errors carried in a [LogContext] are also captured by Sentry.
*/
package logger
