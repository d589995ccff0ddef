package switchback

import (
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/xy-planning-network/switchback/logger"
)

// envVarOr parses the value of key, falling back to def
// when the variable is unset or parse rejects it.
func envVarOr[T any](key string, def T, parse func(string) (T, bool)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return def
	}

	if v, ok := parse(raw); ok {
		return v
	}

	return def
}

// EnvVarOrBool accepts "true" or "false" in any case.
func EnvVarOrBool(key string, def bool) bool {
	return envVarOr(key, def, func(s string) (bool, bool) {
		switch strings.ToLower(s) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	})
}

// EnvVarOrDuration accepts anything [time.ParseDuration] does.
func EnvVarOrDuration(key string, def time.Duration) time.Duration {
	return envVarOr(key, def, func(s string) (time.Duration, bool) {
		d, err := time.ParseDuration(s)
		return d, err == nil
	})
}

// EnvVarOrEnv accepts a valid [Environment] in any case.
func EnvVarOrEnv(key string, def Environment) Environment {
	return envVarOr(key, def, func(s string) (Environment, bool) {
		e := Environment(strings.ToUpper(s))
		return e, e.Valid() == nil
	})
}

// EnvVarOrInt accepts base 10 integers.
func EnvVarOrInt(key string, def int) int {
	return envVarOr(key, def, func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	})
}

// EnvVarOrLogLevel accepts a [logger.LogLevel] name in any case.
func EnvVarOrLogLevel(key string, def logger.LogLevel) logger.LogLevel {
	return envVarOr(key, def, func(s string) (logger.LogLevel, bool) {
		ll := logger.NewLogLevel(strings.ToUpper(s))
		return ll, ll != logger.LogLevelUnk
	})
}

// EnvVarOrString returns the raw value.
func EnvVarOrString(key, def string) string {
	return envVarOr(key, def, func(s string) (string, bool) { return s, true })
}

// EnvVarOrURL accepts absolute URLs.
// The default is reduced to its root, and a nil *url.URL returns when def itself is not a URL.
func EnvVarOrURL(key, def string) *url.URL {
	fallback, err := url.ParseRequestURI(def)
	if err != nil {
		return nil
	}
	fallback.Path = "/"

	return envVarOr(key, fallback, func(s string) (*url.URL, bool) {
		u, err := url.ParseRequestURI(s)
		return u, err == nil
	})
}
