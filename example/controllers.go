package main

import (
	"net/http"

	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/http/resp"
	"github.com/xy-planning-network/switchback/ranger"
	"github.com/xy-planning-network/switchback/registry"
)

// home serves the pages at the root of the app.
type home struct {
	registry.BaseController
}

func (h *home) Index(args []any) (any, error) {
	return resp.NewModelAndView("index").AddAttribute("title", "switchback"), nil
}

// About names its view and nothing else.
func (h *home) About(args []any) (any, error) { return "about", nil }

func (h *home) View(args []any) (any, error) {
	return resp.AsView("data", map[string]any{"trails": []string{"Lost Lake", "Hanging Lake", "Maroon Bells"}}), nil
}

func (h *home) Authenticated(args []any) (any, error) { return "secret", nil }

// SignIn signs in the demo user.
func (h *home) SignIn(args []any) (any, error) {
	if err := h.Login(demoUser.ID); err != nil {
		return nil, err
	}

	return map[string]any{"loggedIn": true, "name": demoUser.Name}, nil
}

func (h *home) Main(args []any) (any, error) {
	return resp.NewModelAndView("main").
		AddAttribute("param", registry.Arg[string](args, 0)).
		AddAttribute("param2", registry.Arg[string](args, 1)), nil
}

func (h *home) JSON(args []any) (any, error) {
	return map[string]string{"trail": "Lost Lake", "difficulty": "easy"}, nil
}

// Redirect sends the client to the about page.
func (h *home) Redirect(args []any) (any, error) { return resp.RedirectPrefix + "/about", nil }

func (h *home) Void(args []any) (any, error) { return nil, nil }

func (h *home) Put(args []any) (any, error) {
	return map[string]string{"updated": "ok"}, nil
}

// mounted serves pages under /mounted.
type mounted struct {
	registry.BaseController
}

func (m *mounted) Index(args []any) (any, error) {
	return resp.NewModelAndView("mounted/index").AddAttribute("base", "/mounted"), nil
}

// SelfAuth authorizes requests itself instead of declaring Authenticated.
func (m *mounted) SelfAuth(args []any) (any, error) {
	u, _ := m.CurrentUser().(user)
	return map[string]string{"hello": u.Name}, nil
}

// hike is posted to create a hike.
type hike struct {
	Trail string `json:"trail" schema:"trail" validate:"required"`
	Miles int    `json:"miles" schema:"miles" validate:"gte=0"`
}

type hikes struct {
	registry.BaseController
}

func (h *hikes) Create(args []any) (any, error) {
	return resp.AsJSON(registry.Arg[*hike](args, 0)).WithCode(http.StatusCreated), nil
}

// declare registers the app's controllers.
func declare(rng *ranger.Ranger) {
	reg := rng.Registry()

	hc := reg.Controller("Home", func() registry.Controller { return new(home) })
	hc.Get("Index", "/", registry.Handle((*home).Index))
	hc.Get("About", "/about", registry.Handle((*home).About))
	hc.Get("View", "/view", registry.Handle((*home).View))
	hc.Get("Authenticated", "/authenticated", registry.Handle((*home).Authenticated)).Authenticated()
	hc.Post("Login", "/login", registry.Handle((*home).SignIn)).JSON()
	hc.Get("Main", "/main", registry.Handle((*home).Main)).Query(0, "param").Query(1, "param2")
	hc.Get("JSON", "/json", registry.Handle((*home).JSON)).JSON()
	hc.Get("Redirect", "/redirect", registry.Handle((*home).Redirect))
	hc.Get("Void", "/test-void", registry.Handle((*home).Void))
	hc.Put("Put", "/test-put", registry.Handle((*home).Put)).JSON()

	mc := reg.Controller("Mounted", func() registry.Controller { return new(mounted) }).BaseURL("mounted")
	mc.Get("Index", "index", registry.Handle((*mounted).Index))
	mc.Get("SelfAuth", "self-auth", registry.Handle((*mounted).SelfAuth)).
		JSON().
		Use(middleware.NewAuthorizeApplicator[user]("/").Apply(func(u user) (string, bool) {
			return "", u.HasAccess()
		}))

	kc := reg.Controller("Hikes", func() registry.Controller { return new(hikes) }).BaseURL("hikes")
	kc.Post("Create", "", registry.Handle((*hikes).Create)).
		Model(0, "hike", func() any { return new(hike) }).
		JSON().
		Use(rng.Idempotent())
}
