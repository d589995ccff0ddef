package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// A Visitors hands out one token bucket per client IP.
type Visitors struct {
	mu      sync.Mutex
	every   rate.Limit
	burst   int
	idle    time.Duration
	swept   time.Time
	buckets map[string]*visitor
}

type visitor struct {
	lim  *rate.Limiter
	seen time.Time
}

// A VisitorsOpt tunes a Visitors.
type VisitorsOpt func(*Visitors)

// WithRate allows perSec requests a second with bursts of burst.
func WithRate(perSec float64, burst int) VisitorsOpt {
	return func(vs *Visitors) {
		vs.every = rate.Limit(perSec)
		vs.burst = burst
	}
}

// WithIdle forgets visitors quiet for longer than d.
func WithIdle(d time.Duration) VisitorsOpt {
	return func(vs *Visitors) { vs.idle = d }
}

// NewVisitors allows 5 requests a second with bursts of 20 and forgets visitors after an hour,
// unless opts say otherwise.
func NewVisitors(opts ...VisitorsOpt) *Visitors {
	vs := &Visitors{every: 5, burst: 20, idle: time.Hour, buckets: make(map[string]*visitor)}
	for _, opt := range opts {
		opt(vs)
	}

	return vs
}

// Reserve takes a token for ip.
// When none is left it returns false and how long until one is.
func (vs *Visitors) Reserve(ip string) (bool, time.Duration) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	now := time.Now()
	if now.Sub(vs.swept) > vs.idle {
		for k, v := range vs.buckets {
			if now.Sub(v.seen) > vs.idle {
				delete(vs.buckets, k)
			}
		}
		vs.swept = now
	}

	v, ok := vs.buckets[ip]
	if !ok {
		v = &visitor{lim: rate.NewLimiter(vs.every, vs.burst)}
		vs.buckets[ip] = v
	}
	v.seen = now

	if v.lim.AllowN(now, 1) {
		return true, 0
	}

	res := v.lim.ReserveN(now, 1)
	wait := res.DelayFrom(now)
	res.CancelAt(now)
	return false, wait
}

// Len reports how many visitors are tracked.
func (vs *Visitors) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	return len(vs.buckets)
}

// RateLimit answers 429 with a Retry-After header once the client's bucket is empty.
// Clients are told apart by the address InjectIPAddress stored, or ClientIP when it did not run.
//
// A nil visitors makes RateLimit a NoopAdapter.
func RateLimit(visitors *Visitors) Adapter {
	if visitors == nil {
		return NoopAdapter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := visitors.Reserve(ipFromContext(r))
			if !ok {
				secs := int(math.Ceil(wait.Seconds()))
				w.Header().Set("Retry-After", strconv.Itoa(max(secs, 1)))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
