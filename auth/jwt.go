package auth

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims are the registered claims of a token plus the ID of the user it was issued to.
type Claims struct {
	jwt.RegisteredClaims

	UserID uint `json:"uid,omitempty"`
}

// A Service signs and verifies tokens with a shared HS256 key.
type Service struct {
	key    []byte
	parser *jwt.Parser
}

// NewService constructs a Service keyed with jwtKey.
func NewService(jwtKey string) (*Service, error) {
	if jwtKey == "" {
		return nil, fmt.Errorf(`%w: key cannot be ""`, ErrNotValid)
	}

	return &Service{
		key:    []byte(jwtKey),
		parser: &jwt.Parser{ValidMethods: []string{jwt.SigningMethodHS256.Alg()}},
	}, nil
}

// Authenticate pulls the token out of the request and verifies it.
// The "Authorization" header takes precedence over the "jwt" query param.
func (s *Service) Authenticate(r *http.Request) (*Claims, error) {
	raw := bearerToken(r.Header)
	if raw == "" {
		return s.AuthenticateJWT(r.URL.Query())
	}

	return s.Verify(raw)
}

// AuthenticateJWT decodes claims from the "jwt" query param.
// If no token is set in the params, AuthenticateJWT returns ErrNoToken.
func (s *Service) AuthenticateJWT(v url.Values) (*Claims, error) {
	raw := v.Get("jwt")
	if raw == "" {
		return nil, fmt.Errorf("%w: no jwt param set", ErrNoToken)
	}

	return s.Verify(raw)
}

// Sign issues a token for the user valid for ttl.
func (s *Service) Sign(userID uint, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return signed, nil
}

// Verify parses raw and checks its signature and expiry.
func (s *Service) Verify(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrNoToken
	}

	c := new(Claims)
	_, err := s.parser.ParseWithClaims(raw, c, func(token *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotValid, err)
	}

	return c, nil
}

func bearerToken(h http.Header) string {
	const prefix = "bearer "
	v := h.Get("Authorization")
	if len(v) < len(prefix) || !strings.EqualFold(v[:len(prefix)], prefix) {
		return ""
	}

	return strings.TrimSpace(v[len(prefix):])
}
