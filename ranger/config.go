package ranger

import (
	"fmt"
	"io/fs"

	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/registry"
)

// Config describes the application a *Ranger runs.
//
// U is the concrete type of the application's users.
type Config[U middleware.User] struct {
	// AppName names the session cookie; default: switchback.
	AppName string

	// Assets are served under /assets/, when set.
	Assets fs.FS

	// FindUser loads the user whose ID a session holds.
	// When nil, sessions never carry a current user.
	FindUser func(id uint) (U, error)

	// LoginURL is where unauthenticated HTML requests are redirected.
	// When empty, they get 401 like every other request.
	LoginURL string

	// Middlewares run on every request, after the defaults.
	Middlewares []middleware.Adapter

	// Registry holds the application's controller declarations.
	// When nil, a new, empty one is used; get it with (*Ranger).Registry.
	Registry *registry.Registry

	// Views holds the templates views are read from; default: the VIEWS_DIR directory.
	Views fs.FS

	// Layouts are parsed alongside every view.
	Layouts []string
}

// userStore adapts FindUser into a middleware.UserStorer.
func (c Config[U]) userStore() middleware.UserStorer {
	if c.FindUser == nil {
		return nil
	}

	return func(id uint) (middleware.User, error) {
		u, err := c.FindUser(id)
		if err != nil {
			return nil, fmt.Errorf("finding user %d: %w", id, err)
		}

		return u, nil
	}
}

// app holds the parts of a Config that do not depend on U.
type app struct {
	assets      fs.FS
	layouts     []string
	middlewares []middleware.Adapter
	name        string
	views       fs.FS
}

func (c Config[U]) app() app {
	name := c.AppName
	if name == "" {
		name = defaultAppName
	}

	return app{
		assets:      c.Assets,
		layouts:     c.Layouts,
		middlewares: c.Middlewares,
		name:        name,
		views:       c.Views,
	}
}
