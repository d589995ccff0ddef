package ranger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/auth"
	"github.com/xy-planning-network/switchback/dispatch"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/logger"
	"github.com/xy-planning-network/switchback/registry"
)

// A Ranger runs a switchback app: it owns the components serving requests
// and the web server they are served by.
type Ranger struct {
	*resp.Responder
	*router.Router

	ctx    context.Context
	cancel context.CancelFunc
	srv    *http.Server

	env      switchback.Environment
	envName  string
	envFiles []string
	url      *url.URL
	l        logger.Logger

	reg       *registry.Registry
	loginURL  string
	userStore middleware.UserStorer

	sessions session.Store
	tokens   *auth.Service
	replays  middleware.ReplayStore
	visitors *middleware.Visitors
	limitSet bool
}

// New constructs a Ranger running the app cfg describes.
//
// opts are applied first. The environment, read from ".env" or the files set by WithEnvFiles,
// then supplies every component the options left unset.
func New[U middleware.User](cfg Config[U], opts ...Option) (*Ranger, error) {
	rng := &Ranger{
		ctx:       context.Background(),
		envFiles:  []string{defaultEnvFile},
		loginURL:  cfg.LoginURL,
		reg:       cfg.Registry,
		userStore: cfg.userStore(),
	}

	for _, opt := range opts {
		if err := opt(rng); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadConfig, err)
		}
	}

	if err := loadEnvFiles(rng.envFiles...); err != nil {
		return nil, err
	}

	if rng.envName != "" && rng.env == "" {
		rng.env = switchback.EnvVarOrEnv(rng.envName, switchback.Development)
	}

	s, err := loadSettings(rng.env)
	if err != nil {
		return nil, err
	}

	if err := rng.assemble(s, cfg.app()); err != nil {
		return nil, badConfig(err)
	}

	return rng, nil
}

// assemble builds whatever the options left unset.
func (rng *Ranger) assemble(s settings, a app) error {
	rng.env, rng.url = s.env, s.baseURL
	rng.ctx, rng.cancel = context.WithCancel(rng.ctx)

	if rng.l == nil {
		rng.l = newLogger(s)
	}

	if rng.reg == nil {
		rng.reg = registry.New()
	}

	if rng.sessions == nil {
		store, err := newSessionStore(s, rng.l, a.name)
		if err != nil {
			return err
		}
		rng.sessions = store
	}

	if rng.tokens == nil {
		tokens, err := newTokens(s)
		if err != nil {
			return err
		}
		rng.tokens = tokens
	}

	if rng.replays == nil {
		rng.replays = newReplayStore(s)
	}

	if !rng.limitSet {
		rng.visitors = middleware.NewVisitors()
	}

	parser := newParser(s.env, a.views, a.assets)
	if rng.Responder == nil {
		rng.Responder = newResponder(s, rng.l, parser, a)
	}

	if rng.Router == nil {
		mws := append([]middleware.Adapter{
			middleware.RequestID(),
			middleware.LogRequest(rng.l),
			middleware.InjectIPAddress(),
			middleware.ForceHTTPS(s.env),
			middleware.CORS(s.baseURL.String()),
			middleware.RateLimit(rng.visitors),
			middleware.InjectSession(rng.sessions),
			middleware.CurrentUser(rng.userStore, rng.loginURL),
		}, a.middlewares...)

		rng.Router = newRouter(s, rng.l, rng.Responder, a.assets, mws)
	}

	if s.maintenance {
		rng.l.Warn("maintenance mode is on; every request gets 503", nil)
		rng.Router.CatchAll(MaintModeHandler(parser, rng.l, s.contact))
	}

	if rng.srv == nil {
		rng.srv = newServer(rng.ctx, s)
	}
	rng.srv.Handler = rng.Router

	return nil
}

// Build turns the controllers declared in the Registry into routes on the Router.
// The Registry accepts no declarations afterwards.
//
// Authenticated methods take either a bearer token, when a token service is configured,
// or a session holding a user.
func (rng *Ranger) Build() error {
	bindings, err := router.Build(
		rng.reg,
		dispatch.New(rng.Responder, nil, rng.l),
		router.WithAuthenticator(rng.authenticator()),
		router.WithLogger(rng.l),
	)
	if err != nil {
		return err
	}

	rng.Router.Mount(bindings)
	rng.l.Info(fmt.Sprintf("mounted %d routes", len(bindings)), nil)
	return nil
}

// authenticator sends requests carrying a bearer token through middleware.RequireBearer
// and the rest through middleware.RequireAuthed.
func (rng *Ranger) authenticator() middleware.Adapter {
	var ta middleware.TokenAuthenticator
	if rng.tokens != nil {
		ta = rng.tokens
	}

	bearer, authed := middleware.RequireBearer(ta), middleware.RequireAuthed(rng.loginURL)
	return func(next http.Handler) http.Handler {
		byToken, bySession := bearer(next), authed(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
				byToken.ServeHTTP(w, r)
				return
			}

			bySession.ServeHTTP(w, r)
		})
	}
}

// Idempotent returns middleware making unsafe requests safe to retry,
// keeping responses in the app's ReplayStore.
// Attach it to a method with (*registry.MethodDecl).Use.
func (rng *Ranger) Idempotent() middleware.Adapter { return middleware.Idempotent(rng.replays) }

func (rng *Ranger) Env() switchback.Environment  { return rng.env }
func (rng *Ranger) Logger() logger.Logger        { return rng.l }
func (rng *Ranger) Registry() *registry.Registry { return rng.reg }
func (rng *Ranger) Sessions() session.Store      { return rng.sessions }
func (rng *Ranger) Tokens() *auth.Service        { return rng.tokens }
func (rng *Ranger) URL() *url.URL                { return rng.url }

// Guide serves the app until Shutdown is called, the context passed to WithContext is cancelled,
// or the process receives SIGINT, SIGHUP, SIGQUIT or SIGTERM.
// Routes are built first if Build has not been called.
func (rng *Ranger) Guide() error {
	if !rng.reg.Frozen() {
		if err := rng.Build(); err != nil {
			return fmt.Errorf("%w: %w", ErrNotBuilt, err)
		}
	}

	ctx, stop := signal.NotifyContext(rng.ctx, os.Interrupt, syscall.SIGHUP, syscall.SIGQUIT, syscall.SIGTERM)
	defer stop()

	failed := make(chan error, 1)
	go func() {
		rng.l.Info("web server listening on "+rng.srv.Addr, nil)
		if err := rng.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
	}()

	select {
	case err := <-failed:
		rng.cancel()
		err = fmt.Errorf("could not listen: %w", err)
		rng.l.Error(err.Error(), nil)
		return err

	case <-ctx.Done():
		return rng.Shutdown()
	}
}

// Shutdown stops the web server, giving in-flight requests a few seconds to finish.
func (rng *Ranger) Shutdown() error {
	rng.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := rng.srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shut down: %w", err)
	}

	rng.l.Info("web server stopped", nil)
	return nil
}

func badConfig(err error) error {
	if errors.Is(err, ErrBadConfig) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrBadConfig, err)
}
