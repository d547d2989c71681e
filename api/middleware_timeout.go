package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// timeoutWriter drops writes from the handler once the deadline response has
// been sent
type timeoutWriter struct {
	http.ResponseWriter
	mu       sync.Mutex
	timedOut bool
	wrote    bool
}

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut || tw.wrote {
		return
	}
	tw.wrote = true
	tw.ResponseWriter.WriteHeader(code)
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	tw.wrote = true
	return tw.ResponseWriter.Write(b)
}

func safeMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// TimeoutMiddleware adds request timeout to prevent long-running requests.
// Reads are answered with 503 once the deadline passes. Other methods wait
// for the handler, so a client is never told a committed write failed.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutWriter{ResponseWriter: w}
			done := make(chan struct{})
			go func() {
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				if !safeMethod(r.Method) {
					// a mutation may already be committing; the handler sees the
					// cancelled context and reports the outcome itself
					<-done
					return
				}
				tw.mu.Lock()
				defer tw.mu.Unlock()
				if tw.wrote {
					return
				}
				tw.timedOut = true
				zap.S().Warnw("Request timeout",
					"path", r.URL.Path,
					"method", r.Method,
					"timeout", timeout)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"Response":{"Message":"request timeout","Error":"the request took too long to process"}}`))
			}
		})
	}
}
