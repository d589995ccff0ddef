package registry_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/http/middleware"
	"github.com/xy-planning-network/switchback/registry"
)

type testController struct {
	r *http.Request
}

func (c *testController) SetRequest(r *http.Request) { c.r = r }

func (c *testController) Index(args []any) (any, error) { return "index", nil }

func newTestController() registry.Controller { return new(testController) }

func TestRegistryEnsure(t *testing.T) {
	// Arrange
	reg := registry.New()

	// Act
	require.Nil(t, reg.EnsureController("Home"))
	require.Nil(t, reg.EnsureController("Home"))
	require.Nil(t, reg.EnsureMethod("Home", ""))
	require.Nil(t, reg.EnsureMethod("Home", "Index"))
	require.Nil(t, reg.EnsureMethod("Home", "Index"))
	require.Nil(t, reg.EnsureMethod("Other", "About"))

	// Assert
	cds := reg.Controllers()
	require.Len(t, cds, 2)
	require.Equal(t, "Home", cds[0].Name)
	require.Equal(t, []string{"Index"}, cds[0].MethodNames())
	require.Equal(t, "Other", cds[1].Name)
	require.Equal(t, []string{"About"}, cds[1].MethodNames())
	require.Empty(t, reg.Conflicts())
}

func TestRegistryEnsureNoName(t *testing.T) {
	reg := registry.New()
	require.ErrorIs(t, reg.EnsureController(""), registry.ErrNoName)
	require.ErrorIs(t, reg.EnsureMethod("", "Index"), registry.ErrNoName)
	require.ErrorIs(t, reg.SetURL("Home", "", "x"), registry.ErrNoName)
}

func TestRegistryAttachParameter(t *testing.T) {
	// Arrange
	reg := registry.New()

	// Act
	err := reg.AttachParameter("Home", "Main", registry.ParameterDescriptor{Name: "param", Index: 0, Source: registry.Query})

	// Assert
	require.Nil(t, err)
	md, ok := reg.Lookup("Home", "Main")
	require.True(t, ok)
	require.Len(t, md.Params, 1)

	// Act
	err = reg.AttachParameter("Home", "Main", registry.ParameterDescriptor{Name: "bad"})

	// Assert
	require.ErrorIs(t, err, switchback.ErrNotValid)

	// Act
	err = reg.AttachParameter("Home", "Main", registry.ParameterDescriptor{Name: "m", Index: 1, Source: registry.Model})

	// Assert
	require.ErrorIs(t, err, registry.ErrNoName)

	// Act
	err = reg.AttachParameter("Home", "Main", registry.ParameterDescriptor{Name: "dup", Index: 0, Source: registry.Path})

	// Assert
	require.Nil(t, err)
	require.Equal(t, []registry.Conflict{{Controller: "Home", Method: "Main", Field: "parameter index 0"}}, reg.Conflicts())
}

func TestRegistryLastWriteWins(t *testing.T) {
	// Arrange
	reg := registry.New()
	require.Nil(t, reg.SetURL("Home", "Main", "first"))
	require.Nil(t, reg.AttachParameter("Home", "Main", registry.ParameterDescriptor{Name: "a", Index: 0, Source: registry.Query}))
	require.Nil(t, reg.SetAuth("Home", "Main", true))

	// Act
	err := reg.SetURL("Home", "Main", "second")

	// Assert
	require.Nil(t, err)
	md, ok := reg.Lookup("Home", "Main")
	require.True(t, ok)
	require.Equal(t, "second", md.URL)
	require.True(t, md.Authenticated)
	require.Len(t, md.Params, 1)
	require.Equal(t, "a", md.Params[0].Name)
	require.Equal(t, []registry.Conflict{{Controller: "Home", Method: "Main", Field: "url"}}, reg.Conflicts())
	require.Nil(t, reg.Err())
}

func TestRegistryStrict(t *testing.T) {
	// Arrange
	reg := registry.New(registry.WithStrict())
	require.Nil(t, reg.SetBaseURL("Home", "a"))
	require.Nil(t, reg.SetBaseURL("Home", "b"))

	// Act
	err := reg.Err()

	// Assert
	require.ErrorIs(t, err, registry.ErrConflict)
	require.Contains(t, err.Error(), "Home: base url declared more than once")
}

func TestRegistryFreeze(t *testing.T) {
	// Arrange
	reg := registry.New()
	require.Nil(t, reg.SetRoute("Home", "Index", "", registry.GET))

	// Act
	reg.Freeze()

	// Assert
	require.True(t, reg.Frozen())
	require.ErrorIs(t, reg.EnsureController("Other"), registry.ErrFrozen)
	require.ErrorIs(t, reg.SetURL("Home", "Index", "changed"), registry.ErrFrozen)
	require.ErrorIs(t, reg.AttachParameter("Home", "Index", registry.ParameterDescriptor{Source: registry.Query}), registry.ErrFrozen)

	md, ok := reg.Lookup("Home", "Index")
	require.True(t, ok)
	require.Equal(t, "", md.URL)
	require.Equal(t, registry.GET, md.Verb)
}

func TestRegistryControllersAreCopies(t *testing.T) {
	// Arrange
	reg := registry.New()
	require.Nil(t, reg.AttachParameter("Home", "Main", registry.ParameterDescriptor{Name: "a", Source: registry.Query}))

	// Act
	cds := reg.Controllers()
	cds[0].Methods["Main"].Params[0].Name = "changed"
	cds[0].BaseURL = "changed"

	// Assert
	md, _ := reg.Lookup("Home", "Main")
	require.Equal(t, "a", md.Params[0].Name)
	require.Equal(t, "", reg.Controllers()[0].BaseURL)
}

func TestDeclare(t *testing.T) {
	// Arrange
	reg := registry.New()
	mw := middleware.NoopAdapter

	// Act
	home := reg.Controller("Mounted", newTestController).BaseURL("mounted")
	home.Get("Index", "index", registry.Handle((*testController).Index))
	home.Post("Save", "save/{id}", registry.Handle((*testController).Index)).
		Path(1, "id").
		Model(0, "form", func() any { return new(struct{ Name string }) }).
		Authenticated().
		JSON().
		Use(mw)
	home.Put("Replace", "replace", nil).Query(0, "q")

	// Assert
	require.Nil(t, reg.Err())

	cds := reg.Controllers()
	require.Len(t, cds, 1)
	cd := cds[0]
	require.Equal(t, "mounted", cd.BaseURL)
	require.NotNil(t, cd.Factory)
	require.Equal(t, []string{"Index", "Replace", "Save"}, cd.MethodNames())

	save := cd.Methods["Save"]
	require.Equal(t, "save/{id}", save.URL)
	require.Equal(t, registry.POST, save.Verb)
	require.True(t, save.Authenticated)
	require.Equal(t, registry.JSON, save.Response)
	require.Len(t, save.Middlewares, 1)
	require.NotNil(t, save.Action)

	params := save.SortedParams()
	require.Equal(t, "form", params[0].Name)
	require.Equal(t, "id", params[1].Name)

	index := cd.Methods["Index"]
	require.Equal(t, registry.GET, index.Verb)
	require.False(t, index.Authenticated)
	require.Equal(t, registry.Infer, index.Response)

	require.Equal(t, registry.PUT, cd.Methods["Replace"].Verb)
}

func TestDeclareCollectsErrors(t *testing.T) {
	// Arrange
	reg := registry.New()

	// Act
	reg.Controller("", newTestController)
	reg.Controller("Home", newTestController).Method("").Query(0, "q")

	// Assert
	require.ErrorIs(t, reg.Err(), registry.ErrNoName)
}

func TestSortedParams(t *testing.T) {
	// Arrange
	md := registry.MethodDescriptor{Params: []registry.ParameterDescriptor{
		{Name: "two", Index: 2},
		{Name: "zero", Index: 0},
		{Name: "one", Index: 1},
		{Name: "one-again", Index: 1},
	}}

	// Act
	actual := md.SortedParams()

	// Assert
	var names []string
	for _, p := range actual {
		names = append(names, p.Name)
	}
	require.Equal(t, []string{"zero", "one", "one-again", "two"}, names)
	require.Equal(t, "two", md.Params[0].Name)
}

func TestHandle(t *testing.T) {
	// Arrange
	a := registry.Handle(func(c *testController, args []any) (any, error) {
		return registry.Arg[string](args, 0), nil
	})

	// Act
	actual, err := a(new(testController), []any{"hi"})

	// Assert
	require.Nil(t, err)
	require.Equal(t, "hi", actual)

	// Act
	actual, err = a(otherController{}, nil)

	// Assert
	require.ErrorIs(t, err, switchback.ErrNotValid)
	require.Nil(t, actual)
}

func TestArg(t *testing.T) {
	args := []any{"a", 2, nil}
	require.Equal(t, "a", registry.Arg[string](args, 0))
	require.Equal(t, 2, registry.Arg[int](args, 1))
	require.Equal(t, "", registry.Arg[string](args, 1))
	require.Equal(t, "", registry.Arg[string](args, 2))
	require.Equal(t, "", registry.Arg[string](args, 9))
	require.Equal(t, "", registry.Arg[string](args, -1))
}

type otherController struct{}

func (otherController) SetRequest(*http.Request) {}

func TestEnums(t *testing.T) {
	require.Nil(t, registry.GET.Valid())
	require.Nil(t, registry.POST.Valid())
	require.Nil(t, registry.PUT.Valid())
	require.ErrorIs(t, registry.Verb("DELETE").Valid(), switchback.ErrNotValid)
	require.ErrorIs(t, registry.VerbUnset.Valid(), switchback.ErrNotValid)

	require.Nil(t, registry.Query.Valid())
	require.ErrorIs(t, registry.SourceUnk.Valid(), switchback.ErrNotValid)
	require.Equal(t, "model", registry.Model.String())

	require.Nil(t, registry.Infer.Valid())
	require.Nil(t, registry.JSON.Valid())
	require.ErrorIs(t, registry.ResponseKind(9).Valid(), switchback.ErrNotValid)
	require.Equal(t, "json", registry.JSON.String())
}
