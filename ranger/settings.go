package ranger

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// Environment variables read by New; doc.go describes each.
const (
	envBaseURL      = "BASE_URL"
	envContact      = "CONTACT_US_EMAIL"
	envEnvironment  = "ENVIRONMENT"
	envJWTKey       = "JWT_SIGNING_KEY"
	envLogLevel     = "LOG_LEVEL"
	envMaintenance  = "MAINTENANCE_MODE"
	envPort         = "PORT"
	envRedisPass    = "REDIS_PASSWORD"
	envRedisURL     = "REDIS_URL"
	envSentryDSN    = "SENTRY_DSN"
	envIdleTimeout  = "SERVER_IDLE_TIMEOUT"
	envReadTimeout  = "SERVER_READ_TIMEOUT"
	envWriteTimeout = "SERVER_WRITE_TIMEOUT"
	envSessionAuth  = "SESSION_AUTH_KEY"
	envSessionEnc   = "SESSION_ENCRYPTION_KEY"
	envViewsDir     = "VIEWS_DIR"
)

const (
	DefaultHost = "localhost"
	DefaultPort = ":3000"

	defaultAppName   = "switchback"
	defaultContactUs = "hello@xyplanningnetwork.com"
	defaultEnvFile   = ".env"
	defaultViewsDir  = "views"

	assetsPath      = "/assets/"
	sessionMaxAge   = 7 * 24 * time.Hour
	shutdownTimeout = 5 * time.Second
)

// timeouts bounds how long the web server waits on a connection.
type timeouts struct {
	idle, read, write time.Duration
}

var defaultTimeouts = timeouts{idle: 2 * time.Minute, read: 5 * time.Second, write: 5 * time.Second}

// settings is everything New reads from the process environment.
type settings struct {
	baseURL     *url.URL
	contact     string
	env         switchback.Environment
	jwtKey      string
	logLevel    logger.LogLevel
	maintenance bool
	port        string
	redis       *redis.Options
	sentryDSN   string
	sessionAuth string
	sessionEnc  string
	timeouts    timeouts
	viewsDir    string
}

// loadEnvFiles sets variables from files without overriding those already set.
// Missing files are skipped.
func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: env file %s: %s", ErrBadConfig, f, err)
		}
	}

	return nil
}

// loadSettings reads the environment, keeping env when it is already decided.
func loadSettings(env switchback.Environment) (settings, error) {
	if env == "" {
		env = switchback.EnvVarOrEnv(envEnvironment, switchback.Development)
	}

	s := settings{
		baseURL:     switchback.EnvVarOrURL(envBaseURL, "http://"+DefaultHost+DefaultPort),
		contact:     switchback.EnvVarOrString(envContact, defaultContactUs),
		env:         env,
		jwtKey:      os.Getenv(envJWTKey),
		logLevel:    switchback.EnvVarOrLogLevel(envLogLevel, logger.LogLevelInfo),
		maintenance: switchback.EnvVarOrBool(envMaintenance, false),
		port:        switchback.EnvVarOrString(envPort, DefaultPort),
		sentryDSN:   os.Getenv(envSentryDSN),
		sessionAuth: os.Getenv(envSessionAuth),
		sessionEnc:  os.Getenv(envSessionEnc),
		timeouts: timeouts{
			idle:  switchback.EnvVarOrDuration(envIdleTimeout, defaultTimeouts.idle),
			read:  switchback.EnvVarOrDuration(envReadTimeout, defaultTimeouts.read),
			write: switchback.EnvVarOrDuration(envWriteTimeout, defaultTimeouts.write),
		},
		viewsDir: switchback.EnvVarOrString(envViewsDir, defaultViewsDir),
	}

	if !strings.HasPrefix(s.port, ":") {
		s.port = ":" + s.port
	}

	var err error
	s.redis, err = redisOptions(os.Getenv(envRedisURL), os.Getenv(envRedisPass))
	return s, err
}

// redisOptions parses raw, which may leave out the redis:// scheme.
// An empty raw means Redis is not used. A non-empty pass wins over one in raw.
func redisOptions(raw, pass string) (*redis.Options, error) {
	if raw == "" {
		return nil, nil
	}

	if !strings.Contains(raw, "://") {
		raw = "redis://" + raw
	}

	opts, err := redis.ParseURL(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrBadConfig, envRedisURL, err)
	}

	if pass != "" {
		opts.Password = pass
	}

	return opts, nil
}
