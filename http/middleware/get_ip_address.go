package middleware

import (
	"context"
	"net/http"
	"net/netip"
	"strings"

	"github.com/xy-planning-network/switchback"
)

// UnknownIP stands in when no public address can be found.
const UnknownIP = "0.0.0.0"

// forwardingHeaders are checked in order for the client's address.
var forwardingHeaders = []string{"X-Forwarded-For", "X-Real-Ip"}

// nonPublic lists the IPv4 blocks netip.Addr.IsPrivate does not cover
// but that still never belong to a visitor.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("192.0.0.0/24"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

// InjectIPAddress places ClientIP under switchback.IpAddrKey.
func InjectIPAddress() Adapter {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), switchback.IpAddrKey, ClientIP(r.Header))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientIP finds the visitor's address in proxy headers.
// Each header is walked right to left, since the rightmost public hop is the one
// our own proxy saw, and the first public address wins.
// Without one, ClientIP returns UnknownIP.
func ClientIP(h http.Header) string {
	for _, name := range forwardingHeaders {
		hops := strings.Split(h.Get(name), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
			if err == nil && isPublic(addr) {
				return addr.String()
			}
		}
	}

	return UnknownIP
}

func isPublic(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsGlobalUnicast() || addr.IsPrivate() {
		return false
	}

	for _, p := range nonPublic {
		if p.Contains(addr) {
			return false
		}
	}

	return true
}

func ipFromContext(r *http.Request) string {
	if ip, ok := r.Context().Value(switchback.IpAddrKey).(string); ok && ip != "" {
		return ip
	}

	return ClientIP(r.Header)
}
