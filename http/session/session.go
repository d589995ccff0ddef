package session

import (
	"context"
	"fmt"
	"net/http"

	gorilla "github.com/gorilla/sessions"
	"github.com/xy-planning-network/switchback"
)

// userKey is where a Session keeps the logged in user's ID.
const userKey = "switchback.user"

// A Session is the server-side state of a single visitor.
// It is a thin handle over a *gorilla.Session; every mutating method persists the change
// through the Store that loaded it before returning.
type Session struct {
	g *gorilla.Session
}

// Wrap turns a *gorilla.Session into a Session.
func Wrap(g *gorilla.Session) Session { return Session{g: g} }

// FromContext returns the Session InjectSession placed under switchback.SessionKey.
func FromContext(ctx context.Context) (Session, error) {
	switch v := ctx.Value(switchback.SessionKey).(type) {
	case nil:
		return Session{}, fmt.Errorf("%w: no session in context", switchback.ErrNotExist)
	case Session:
		return v, nil
	default:
		return Session{}, fmt.Errorf("%w: session is %T", ErrNotValid, v)
	}
}

func (s Session) persist(w http.ResponseWriter, r *http.Request) error {
	if s.g == nil {
		return fmt.Errorf("%w: empty session", ErrNotValid)
	}

	return s.g.Save(r, w)
}

// Value reads key out of the Session.
func (s Session) Value(key string) any {
	if s.g == nil {
		return nil
	}

	return s.g.Values[key]
}

// Put stores val under key.
func (s Session) Put(w http.ResponseWriter, r *http.Request, key string, val any) error {
	if s.g != nil {
		s.g.Values[key] = val
	}

	return s.persist(w, r)
}

// Touch saves the Session unchanged, pushing its expiry out.
func (s Session) Touch(w http.ResponseWriter, r *http.Request) error { return s.persist(w, r) }

// Expire ends the Session for good.
func (s Session) Expire(w http.ResponseWriter, r *http.Request) error {
	if s.g != nil {
		s.g.Options.MaxAge = -1
	}

	return s.persist(w, r)
}

// Login records id as the Session's user.
func (s Session) Login(w http.ResponseWriter, r *http.Request, id uint) error {
	return s.Put(w, r, userKey, id)
}

// Logout forgets the Session's user but keeps the rest of the Session.
func (s Session) Logout(w http.ResponseWriter, r *http.Request) error {
	if s.g != nil {
		delete(s.g.Values, userKey)
	}

	return s.persist(w, r)
}

// UserID reports who is logged in.
// ErrNoUser means nobody is, which is expected on public pages.
// ErrNotValid means something other than a uint sits under the user key.
func (s Session) UserID() (uint, error) {
	raw := s.Value(userKey)
	if raw == nil {
		return 0, ErrNoUser
	}

	id, ok := raw.(uint)
	if !ok {
		return 0, fmt.Errorf("%w: user id is %T", ErrNotValid, raw)
	}

	return id, nil
}

// AddFlash queues f for the next page rendered to this visitor.
func (s Session) AddFlash(w http.ResponseWriter, r *http.Request, f Flash) error {
	if s.g != nil {
		s.g.AddFlash(f)
	}

	return s.persist(w, r)
}

// PopFlashes drains the queued Flashes.
// Anything in the queue that is not a Flash is discarded.
func (s Session) PopFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	if s.g == nil {
		return nil
	}

	var out []Flash
	for _, v := range s.g.Flashes() {
		if f, ok := v.(Flash); ok {
			out = append(out, f)
		}
	}

	if len(out) == 0 {
		return nil
	}

	if err := s.persist(w, r); err != nil {
		return nil
	}

	return out
}
