package middleware

import (
	"net/http"
	"strings"
)

// CORS echoes the caller's Origin and allows credentials. The policy is
// deliberately permissive: every origin is accepted.
func CORS() func(http.Handler) http.Handler {
	allowedMethods := []string{"GET", "POST", "PUT", "OPTIONS"}
	allowedHeaders := []string{"Accept", "Authorization", "Content-Type"}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); origin != "" {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(allowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(allowedHeaders, ", "))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
