package ranger

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"regexp"
	"strings"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/auth"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/http/router"
	"github.com/xy-planning-network/switchback/http/session"
	"github.com/xy-planning-network/switchback/http/template"
	"github.com/xy-planning-network/switchback/logger"
)

// newLogger prints at s.logLevel, also reporting to Sentry when s.sentryDSN is set.
func newLogger(s settings) logger.Logger {
	l := logger.New(logger.WithEnv(s.env.String()), logger.WithLevel(s.logLevel))
	if s.sentryDSN == "" {
		return l
	}

	return logger.NewSentryLogger(l, s.sentryDSN)
}

// newParser reads templates from files, adding to what resp.NewResponder provides:
//
//	env
//	isDevelopment, isStaging, isProduction
//	assetURI, when assets is not nil
func newParser(env switchback.Environment, files, assets fs.FS) *template.Parse {
	p := template.NewParser(template.WithFS(files))
	p.AddFn(template.Env(env))
	p.AddFn("isDevelopment", env.IsDevelopment)
	p.AddFn("isStaging", env.IsStaging)
	p.AddFn("isProduction", env.IsProduction)
	if assets != nil {
		p.AddFn(template.AssetURI(env, assetsPath, assets))
	}

	return p
}

// newResponder renders views found under dir, or at the root of the app's Views,
// caching them outside Development.
func newResponder(s settings, l logger.Logger, p *template.Parse, a app) *resp.Responder {
	dir := ""
	if a.views == nil {
		dir = s.viewsDir
	}

	opts := []template.ViewsOptFn{template.WithDir(dir), template.WithLayouts(a.layouts...)}
	if !s.env.IsDevelopment() {
		opts = append(opts, template.WithCache())
	}

	return resp.NewResponder(
		resp.WithContactErrMsg(fmt.Sprintf(session.MsgContactUs, s.contact)),
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithRootUrl(s.baseURL.String()),
		resp.WithViews(template.NewViews(p, opts...)),
	)
}

// newRouter runs mws on every request and serves assets under assetsPath.
//
// Unmatched requests accepting HTML are redirected to the base URL, unless already there.
// The rest get 404.
func newRouter(s settings, l logger.Logger, rd *resp.Responder, assets fs.FS, mws []middleware.Adapter) *router.Router {
	var opts []router.RouterOpt
	if assets != nil {
		opts = append(opts, router.WithAssets(assetsPath, assets))
	}

	rt := router.New(s.env, middleware.LogRequest(l), opts...)
	rt.OnEveryRequest(mws...)

	root := strings.TrimSuffix(s.baseURL.Path, "/")
	rt.HandleNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wantsPage := strings.Contains(r.Header.Get("Accept"), "text/html")
		if !wantsPage || strings.TrimSuffix(r.URL.Path, "/") == root {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		rd.Redirect(w, r, resp.ToRoot())
	}))

	return rt
}

// newReplayStore keeps idempotent responses in Redis when s names one, and in memory otherwise.
func newReplayStore(s settings) middleware.ReplayStore {
	if s.redis == nil {
		return middleware.NewMemoryReplays(0)
	}

	return middleware.NewRedisReplays(s.redis)
}

var cookieNameUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// newSessionStore keeps sessions in Redis when s names one, and in cookies otherwise.
//
// Both session keys must be hex encoded; cf. [encoding/hex].
// Environments allowed to stub services get throwaway keys when either is missing.
func newSessionStore(s settings, l logger.Logger, appName string) (session.Store, error) {
	name := cookieNameUnsafe.ReplaceAllString(strings.ToLower(appName), "-")

	cfg := session.Config{
		Env:         s.env,
		SessionName: "switchback-" + strings.Trim(name, "-"),
		AuthKey:     s.sessionAuth,
		EncryptKey:  s.sessionEnc,
		MaxAge:      int(sessionMaxAge.Seconds()),
	}

	if cfg.AuthKey == "" || cfg.EncryptKey == "" {
		if !s.env.CanUseServiceStub() {
			return nil, fmt.Errorf("%w: %s and %s must be set in %s", ErrBadConfig, envSessionAuth, envSessionEnc, s.env)
		}

		l.Warn("session keys not set; using throwaway keys that do not survive a restart", nil)
		cfg.AuthKey, cfg.EncryptKey = randomHex(64), randomHex(32)
	}

	if s.redis != nil {
		return session.NewRedisStore(cfg, s.redis.Addr, s.redis.Password)
	}

	return session.NewCookieStore(cfg)
}

// newTokens verifies bearer tokens signed with s.jwtKey, or returns nil when there is none.
func newTokens(s settings) (*auth.Service, error) {
	if s.jwtKey == "" {
		return nil, nil
	}

	return auth.NewService(s.jwtKey)
}

// newServer listens on s.port, handing ctx to every request.
func newServer(ctx context.Context, s settings) *http.Server {
	return &http.Server{
		Addr:         s.port,
		BaseContext:  func(net.Listener) context.Context { return ctx },
		IdleTimeout:  s.timeouts.idle,
		ReadTimeout:  s.timeouts.read,
		WriteTimeout: s.timeouts.write,
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("ranger: reading random bytes: %s", err))
	}

	return hex.EncodeToString(b)
}
