package ranger

import (
	"context"
	"errors"
	"net/http"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/auth"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/logger"
)

// An Option replaces a component New would otherwise build from the environment.
type Option func(*Ranger) error

// WithContext makes ctx the parent of every request's context.
// Cancelling ctx shuts the web server down.
func WithContext(ctx context.Context) Option {
	return func(rng *Ranger) error {
		if ctx == nil {
			return errors.New("nil context")
		}

		rng.ctx = ctx
		return nil
	}
}

// WithEnv sets the Environment from name, or from the environment variable called name
// once env files are loaded. Development is the fallback.
func WithEnv(name string) Option {
	return func(rng *Ranger) error {
		if env := switchback.Environment(name); env.Valid() == nil {
			rng.env = env
			return nil
		}

		rng.envName = name
		return nil
	}
}

// WithEnvFiles reads environment variables from files instead of ".env".
// Variables already set are not overridden.
func WithEnvFiles(files ...string) Option {
	return func(rng *Ranger) error {
		rng.envFiles = files
		return nil
	}
}

// WithLogger sets the Logger.
func WithLogger(l logger.Logger) Option {
	return func(rng *Ranger) error {
		rng.l = l
		return nil
	}
}

// WithRateLimit limits how often each IP address may make requests.
// A nil *middleware.Visitors turns rate limiting off.
func WithRateLimit(visitors *middleware.Visitors) Option {
	return func(rng *Ranger) error {
		rng.visitors, rng.limitSet = visitors, true
		return nil
	}
}

// WithReplayStore keeps the responses Idempotent replays in store.
func WithReplayStore(store middleware.ReplayStore) Option {
	return func(rng *Ranger) error {
		rng.replays = store
		return nil
	}
}

// WithResponder sets the Responder.
func WithResponder(rd *resp.Responder) Option {
	return func(rng *Ranger) error {
		rng.Responder = rd
		return nil
	}
}

// WithRouter serves rt as is, without the default middlewares.
func WithRouter(rt *router.Router) Option {
	return func(rng *Ranger) error {
		rng.Router = rt
		return nil
	}
}

// WithServer serves the app with srv. Its Handler is replaced by the Router.
func WithServer(srv *http.Server) Option {
	return func(rng *Ranger) error {
		rng.srv = srv
		return nil
	}
}

// WithSessionStore sets the session.Store.
func WithSessionStore(store session.Store) Option {
	return func(rng *Ranger) error {
		rng.sessions = store
		return nil
	}
}

// WithTokens verifies bearer tokens with s.
func WithTokens(s *auth.Service) Option {
	return func(rng *Ranger) error {
		rng.tokens = s
		return nil
	}
}
