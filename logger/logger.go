package logger

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// A Logger writes messages at a level of importance.
type Logger interface {
	Debug(msg string, ctx *LogContext)
	Info(msg string, ctx *LogContext)
	Warn(msg string, ctx *LogContext)
	Error(msg string, ctx *LogContext)
	Fatal(msg string, ctx *LogContext)

	LogLevel() LogLevel
}

// A SkipLogger can be told how many extra stack frames sit between
// the code logging and the Logger, so the printed call site stays accurate.
type SkipLogger interface {
	Logger
	AddSkip(i int) SkipLogger
	Skip() int
}

// A LogLevel orders messages by importance; higher is more important.
type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	LogLevelFatal
)

var levels = [...]struct {
	name  string
	paint *color.Color
}{
	LogLevelUnk:   {"UNK", color.New(color.Reset)},
	LogLevelDebug: {"DEBUG", color.New(color.FgWhite)},
	LogLevelInfo:  {"INFO", color.New(color.FgBlue)},
	LogLevelWarn:  {"WARN", color.New(color.FgYellow)},
	LogLevelError: {"ERROR", color.New(color.FgRed)},
	LogLevelFatal: {"FATAL", color.New(color.FgMagenta)},
}

// NewLogLevel parses an upper case level name, returning LogLevelUnk for anything else.
func NewLogLevel(name string) LogLevel {
	for ll := LogLevelDebug; ll <= LogLevelFatal; ll++ {
		if levels[ll].name == name {
			return ll
		}
	}

	return LogLevelUnk
}

func (ll LogLevel) String() string {
	if ll < LogLevelUnk || ll > LogLevelFatal {
		ll = LogLevelUnk
	}

	return "[" + levels[ll].name + "]"
}

// An AppLogger prints one colorized line per message through a *log.Logger:
//
//	[LEVEL] file:line 'message' log_context: {...}
type AppLogger struct {
	env   string
	level LogLevel
	out   *log.Logger
	skip  int
}

// New returns an AppLogger printing INFO and up to os.Stdout,
// in the environment named by ENVIRONMENT.
func New(opts ...LoggerOptFn) *AppLogger {
	l := &AppLogger{
		env:   os.Getenv("ENVIRONMENT"),
		level: LogLevelInfo,
		out:   log.New(os.Stdout, "", log.LstdFlags),
	}
	if l.env == "" {
		l.env = "DEVELOPMENT"
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

func (l *AppLogger) Debug(msg string, ctx *LogContext) { l.print(LogLevelDebug, msg, ctx) }
func (l *AppLogger) Info(msg string, ctx *LogContext)  { l.print(LogLevelInfo, msg, ctx) }
func (l *AppLogger) Warn(msg string, ctx *LogContext)  { l.print(LogLevelWarn, msg, ctx) }
func (l *AppLogger) Error(msg string, ctx *LogContext) { l.print(LogLevelError, msg, ctx) }
func (l *AppLogger) Fatal(msg string, ctx *LogContext) { l.print(LogLevelFatal, msg, ctx) }

// LogLevel is the lowest level printed.
func (l *AppLogger) LogLevel() LogLevel { return l.level }

// AddSkip returns a copy of the AppLogger skipping i frames.
func (l *AppLogger) AddSkip(i int) SkipLogger {
	cp := *l
	cp.skip = i
	return &cp
}

func (l *AppLogger) Skip() int { return l.skip }

// callerDepth covers print and the exported method calling it.
const callerDepth = 2

func (l *AppLogger) print(level LogLevel, msg string, ctx *LogContext) {
	if level < l.level {
		return
	}

	site := ""
	if ctx != nil {
		site = ctx.Caller
	}
	if site == "" {
		if _, file, line, ok := runtime.Caller(callerDepth + l.skip); ok {
			site = shortPath(file) + ":" + strconv.Itoa(line)
		}
	}

	line := levels[level].paint.Sprintf("%s %s '%s'", level, site, msg)
	if ctx == nil {
		l.out.Println(line)
		return
	}

	l.out.Println(line, "log_context:", ctx)
}

// shortPath trims file to its path inside this module,
// or for files elsewhere, to its directory and name.
func shortPath(file string) string {
	file = filepath.ToSlash(file)
	if i := strings.LastIndex(file, "/switchback/"); i >= 0 {
		return file[i+1:]
	}

	dir, name := filepath.Split(file)
	return filepath.Base(dir) + "/" + name
}
