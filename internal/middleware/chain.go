// Package middleware composes the HTTP middleware stack of the dashboard.
package middleware

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/conneroisu/webpulse/internal/logging"
)

// Middleware represents a single middleware function
type Middleware func(http.Handler) http.Handler

// Chain manages an ordered middleware stack. The first middleware added is
// the outermost: requests flow first to last, responses last to first.
type Chain struct {
	middlewares []Middleware
}

// New creates a chain from middlewares, outermost first.
func New(middlewares ...Middleware) *Chain {
	chain := &Chain{middlewares: make([]Middleware, 0, len(middlewares))}
	for _, m := range middlewares {
		chain.Add(m)
	}
	return chain
}

// Add appends a middleware inside the existing ones. Nil middlewares are
// ignored.
func (c *Chain) Add(m Middleware) {
	if m != nil {
		c.middlewares = append(c.middlewares, m)
	}
}

// Len returns the number of middlewares in the chain.
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Apply wraps handler with every middleware of the chain.
func (c *Chain) Apply(handler http.Handler) http.Handler {
	if handler == nil {
		panic("middleware.Chain.Apply: handler cannot be nil")
	}

	wrapped := handler
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		wrapped = c.middlewares[i](wrapped)
	}
	return wrapped
}

// SecurityHeaders sets conservative browser security headers.
func SecurityHeaders() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}

// Logging logs every request with its status and duration at debug level.
func Logging(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Debug(r.Context(), "HTTP request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"duration", time.Since(start))
		})
	}
}

// Recover turns a panicking handler into a 500 response.
func Recover(logger logging.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					if v == http.ErrAbortHandler {
						panic(v)
					}
					logger.Error(r.Context(), fmt.Errorf("panic: %v", v), "Handler panicked",
						"method", r.Method,
						"path", r.URL.Path)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder captures the response status. It forwards Hijack so that
// websocket upgrades keep working behind the logging middleware.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hj.Hijack()
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
