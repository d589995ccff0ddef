package session

import (
	"encoding/hex"
	"fmt"
	"net/http"

	"github.com/boj/redistore"
	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/switchback"
)

// A Store loads the Session belonging to a request.
type Store interface {
	Load(r *http.Request) (Session, error)
}

// Config names a Store's cookie and the hex-encoded keys protecting it.
type Config struct {
	Env         switchback.Environment
	SessionName string
	AuthKey     string
	EncryptKey  string
	MaxAge      int // seconds; zero means one day
}

func (c Config) keys() (auth, enc []byte, err error) {
	if err := c.Env.Valid(); err != nil {
		return nil, nil, fmt.Errorf("%w: %s", switchback.ErrBadConfig, err)
	}

	if c.SessionName == "" {
		return nil, nil, fmt.Errorf("%w: missing session name", switchback.ErrBadConfig)
	}

	if auth, err = hex.DecodeString(c.AuthKey); err != nil {
		return nil, nil, fmt.Errorf("%w: auth key: %s", switchback.ErrBadConfig, err)
	}

	if enc, err = hex.DecodeString(c.EncryptKey); err != nil {
		return nil, nil, fmt.Errorf("%w: encrypt key: %s", switchback.ErrBadConfig, err)
	}

	// Test runs sign cookies without encrypting them so they can be inspected.
	if c.Env.IsTesting() {
		enc = nil
	}

	return auth, enc, nil
}

func (c Config) options() *gorilla.Options {
	age := c.MaxAge
	if age == 0 {
		age = 86400
	}

	return &gorilla.Options{
		Path:     "/",
		MaxAge:   age,
		Secure:   c.Env.SecureCookies(),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// A GorillaStore is a Store over any gorilla/sessions backend.
type GorillaStore struct {
	name    string
	backend gorilla.Store
}

// Load returns the visitor's Session, starting a fresh one when none exists
// or the stored one cannot be decoded.
func (gs GorillaStore) Load(r *http.Request) (Session, error) {
	g, err := gs.backend.Get(r, gs.name)
	return Wrap(g), err
}

// NewCookieStore keeps Sessions entirely in signed (and outside of tests, encrypted) cookies.
func NewCookieStore(cfg Config) (GorillaStore, error) {
	auth, enc, err := cfg.keys()
	if err != nil {
		return GorillaStore{}, err
	}

	pairs := [][]byte{auth}
	if enc != nil {
		pairs = append(pairs, enc)
	}

	cs := gorilla.NewCookieStore(pairs...)
	cs.Options = cfg.options()
	cs.MaxAge(cs.Options.MaxAge)

	return GorillaStore{name: cfg.SessionName, backend: cs}, nil
}

// NewRedisStore keeps Session values in Redis at addr, leaving only an ID in the cookie.
func NewRedisStore(cfg Config, addr, password string) (GorillaStore, error) {
	auth, enc, err := cfg.keys()
	if err != nil {
		return GorillaStore{}, err
	}

	pairs := [][]byte{auth}
	if enc != nil {
		pairs = append(pairs, enc)
	}

	rs, err := redistore.NewRediStore(10, "tcp", addr, password, pairs...)
	if err != nil {
		return GorillaStore{}, fmt.Errorf("%w: redis session store: %s", switchback.ErrBadConfig, err)
	}

	rs.Options = cfg.options()
	rs.SetMaxAge(rs.Options.MaxAge)

	return GorillaStore{name: cfg.SessionName, backend: rs}, nil
}

// A Stub is a Store holding one Session in memory; it never writes cookies.
type Stub struct {
	g *gorilla.Session
}

// NewStub returns a Stub whose Session has user 1 logged in when loggedIn is set.
func NewStub(loggedIn bool) *Stub {
	st := new(Stub)
	st.g = gorilla.NewSession(st, "stub")
	st.g.Options = &gorilla.Options{Path: "/"}
	if loggedIn {
		st.g.Values[userKey] = uint(1)
	}

	return st
}

// Load returns the Stub's Session.
func (st *Stub) Load(*http.Request) (Session, error) { return Wrap(st.g), nil }

// Get and New satisfy gorilla.Store.
func (st *Stub) Get(*http.Request, string) (*gorilla.Session, error) { return st.g, nil }

func (st *Stub) New(*http.Request, string) (*gorilla.Session, error) { return st.g, nil }

// Save discards.
func (st *Stub) Save(*http.Request, http.ResponseWriter, *gorilla.Session) error { return nil }

var (
	_ Store         = GorillaStore{}
	_ Store         = new(Stub)
	_ gorilla.Store = new(Stub)
)
