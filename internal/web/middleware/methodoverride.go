package middleware

import "net/http"

// MethodOverride rewrites POST requests carrying a ?_method=PUT|DELETE
// query parameter into the stated method before routing. HTML forms can
// only submit GET and POST, so edit and delete forms post with the
// override parameter.
func MethodOverride() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				switch r.URL.Query().Get("_method") {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
