package middleware

import "net/http"

// CORSDebugMiddleware logs origin headers at debug level while the
// dashboard frontend and API are served from different hosts.
func CORSDebugMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			log.Debugf("[CORS] %s %s from origin %s", r.Method, r.URL.Path, origin)
		}
		next.ServeHTTP(w, r)
	})
}
