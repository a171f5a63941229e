package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/flashcard-tutor/pkg/ctxutil"
)

// Logger logs one "http.request" record per request. 5xx responses are
// logged at ERROR, 4xx at WARN, everything else at INFO.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			if clientID, ok := sw.clientID(); ok {
				attrs = append(attrs, slog.String("client_id", clientID))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status >= 400:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter captures the status code and body size. Auth runs inside
// Logger, so it reports the client ID back through SetClientID.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
	client      string
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.wroteHeader = true
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// SetClientID records the authenticated client for the access log.
func (w *statusWriter) SetClientID(id string) { w.client = id }

func (w *statusWriter) clientID() (string, bool) {
	return w.client, w.client != ""
}

// clientIDSetter is implemented by the Logger's response writer.
type clientIDSetter interface {
	SetClientID(id string)
}
