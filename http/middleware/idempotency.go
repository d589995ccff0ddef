package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// IdempotencyHeader carries the client's idempotency key.
const IdempotencyHeader = "Idempotency-Key"

// A Replay is the response recorded for one idempotency key.
// A zero Status marks a request still being handled.
type Replay struct {
	Fingerprint string      `json:"fingerprint"`
	Status      int         `json:"status"`
	Header      http.Header `json:"header,omitempty"`
	Body        []byte      `json:"body,omitempty"`
}

// Pending reports whether the original request is still in flight.
func (rp Replay) Pending() bool { return rp.Status == 0 }

// A ReplayStore keeps Replays by key.
type ReplayStore interface {
	// Reserve records rp under key unless key is already taken,
	// in which case it returns the Replay held there and false.
	Reserve(ctx context.Context, key string, rp Replay) (Replay, bool, error)

	// Save overwrites the Replay under key.
	Save(ctx context.Context, key string, rp Replay) error

	// Release frees key so the request can be retried.
	Release(ctx context.Context, key string) error
}

// Idempotent makes the handlers it wraps safe to retry, following the
// Idempotency-Key HTTP header draft.
//
// Keys are scoped to the route template, so the same key may be reused on different endpoints.
// Each request is fingerprinted by its method, URI and body.
// The first request under a key runs; later ones are answered from store:
//   - 409 while the first is still running
//   - 422 when the fingerprint differs
//   - otherwise the recorded status, Content-Type and body
//
// Requests without a key get 400. Responses of 500 and up are not kept,
// nor are responses whose handler panicked.
//
// Safe methods pass straight through.
// A nil store is replaced by a MemoryReplays holding keys for a day.
func Idempotent(store ReplayStore) Adapter {
	if store == nil {
		store = NewMemoryReplays(0)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(IdempotencyHeader)
			if key == "" {
				w.WriteHeader(http.StatusBadRequest)
				return
			}

			body, err := io.ReadAll(r.Body)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			key = routeScope(r) + "|" + key
			fp := fingerprint(r, body)

			prior, fresh, err := store.Reserve(r.Context(), key, Replay{Fingerprint: fp})
			switch {
			case err != nil:
				w.WriteHeader(http.StatusInternalServerError)
				return
			case fresh:
			case prior.Pending():
				w.WriteHeader(http.StatusConflict)
				return
			case prior.Fingerprint != fp:
				w.WriteHeader(http.StatusUnprocessableEntity)
				return
			default:
				if ct := prior.Header.Get("Content-Type"); ct != "" {
					w.Header().Set("Content-Type", ct)
				}
				w.WriteHeader(prior.Status)
				w.Write(prior.Body)
				return
			}

			rec := &replayRecorder{ResponseWriter: w, rp: Replay{Fingerprint: fp}}
			ctx := context.WithoutCancel(r.Context())
			done := false
			defer func() {
				if !done || rec.rp.Status >= http.StatusInternalServerError {
					store.Release(ctx, key)
					return
				}

				store.Save(ctx, key, rec.rp)
			}()

			next.ServeHTTP(rec, r)
			if rec.rp.Status == 0 {
				rec.rp.Status = http.StatusOK
			}
			done = true
		})
	}
}

func routeScope(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tmpl, err := route.GetPathTemplate(); err == nil {
			return r.Method + " " + tmpl
		}
	}

	return r.Method + " " + r.URL.Path
}

func fingerprint(r *http.Request, body []byte) string {
	h := sha256.New()
	io.WriteString(h, r.Method+" "+r.URL.RequestURI()+"\n")
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// A replayRecorder copies what a handler writes into a Replay.
type replayRecorder struct {
	http.ResponseWriter
	rp Replay
}

func (rr *replayRecorder) WriteHeader(code int) {
	if rr.rp.Status != 0 {
		return
	}

	rr.rp.Status = code
	if ct := rr.Header().Get("Content-Type"); ct != "" {
		rr.rp.Header = http.Header{"Content-Type": {ct}}
	}
	rr.ResponseWriter.WriteHeader(code)
}

func (rr *replayRecorder) Write(b []byte) (int, error) {
	if rr.rp.Status == 0 {
		rr.WriteHeader(http.StatusOK)
	}

	rr.rp.Body = append(rr.rp.Body, b...)
	return rr.ResponseWriter.Write(b)
}
