package switchback

import "fmt"

// An Environment names where a switchback app is running.
type Environment string

const (
	Demo        Environment = "DEMO"
	Development Environment = "DEVELOPMENT"
	Production  Environment = "PRODUCTION"
	Review      Environment = "REVIEW"
	Staging     Environment = "STAGING"
	Testing     Environment = "TESTING"
)

// envTraits records what each Environment permits.
var envTraits = map[Environment]struct {
	// stubs allows stand-ins for services the app cannot reach, like throwaway session keys.
	stubs bool

	// plainHTTP allows cookies over plain HTTP.
	plainHTTP bool
}{
	Demo:        {stubs: true},
	Development: {stubs: true, plainHTTP: true},
	Production:  {},
	Review:      {},
	Staging:     {},
	Testing:     {stubs: true, plainHTTP: true},
}

func (e Environment) String() string { return string(e) }

// Valid returns ErrNotValid for names outside the constants above.
func (e Environment) Valid() error {
	if _, ok := envTraits[e]; !ok {
		return fmt.Errorf("%w: environment %q", ErrNotValid, string(e))
	}

	return nil
}

// CanUseServiceStub reports whether missing services may be stubbed out.
func (e Environment) CanUseServiceStub() bool { return envTraits[e].stubs }

// SecureCookies reports whether cookies must only travel over HTTPS.
// Unknown environments get secure cookies.
func (e Environment) SecureCookies() bool { return !envTraits[e].plainHTTP }

func (e Environment) IsDemo() bool        { return e == Demo }
func (e Environment) IsDevelopment() bool { return e == Development }
func (e Environment) IsProduction() bool  { return e == Production }
func (e Environment) IsReview() bool      { return e == Review }
func (e Environment) IsStaging() bool     { return e == Staging }
func (e Environment) IsTesting() bool     { return e == Testing }
