package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("log")

// LoggingMiddleware logs every request with its status, duration and a
// generated request id. The id is echoed in the X-Request-ID header so
// frontend reports can be matched to server logs.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		wrw := &responseWriter{
			ResponseWriter: w,
			status:         http.StatusOK,
		}

		next.ServeHTTP(wrw, r)

		log.Infof("%s - %s %s %d %v [%s]",
			r.RemoteAddr,
			r.Method,
			r.URL.RequestURI(),
			wrw.status,
			time.Since(start),
			requestID,
		)
	})
}

type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}
