/*
Package main is an example switchback app.

It shows:

(1) declaring controllers and their methods in a registry;
(2) binding query params and request bodies to method arguments;
(3) returning views, JSON, redirects and nothing at all;
(4) and guarding methods with authentication and custom authorization.
*/
package main

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/xy-planning-network/switchback/ranger"
)

//go:embed assets views
var files embed.FS

var demoUser = user{ID: 1, Name: "Hiker"}

// newApp constructs the example app with its controllers declared.
func newApp(opts ...ranger.Option) (*ranger.Ranger, error) {
	views, err := fs.Sub(files, "views")
	if err != nil {
		return nil, err
	}

	assets, err := fs.Sub(files, "assets")
	if err != nil {
		return nil, err
	}

	store := newUsers(demoUser)
	rng, err := ranger.New(
		ranger.Config[user]{
			AppName:  "switchback example",
			Assets:   assets,
			FindUser: store.find,
			Layouts:  []string{"layout.tmpl"},
			Views:    views,
		},
		opts...,
	)
	if err != nil {
		return nil, err
	}

	declare(rng)

	return rng, nil
}

func main() {
	rng, err := newApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// start the web server until receiving a signal to stop.
	if err := rng.Guide(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
