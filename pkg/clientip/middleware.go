package clientip

import "net/http"

// Middleware stores the resolved client address in the request context.
func Middleware(opts ...Option) func(http.Handler) http.Handler {
	res := NewResolver(opts...)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ip := res.IP(r); ip != "" {
				r = r.WithContext(WithContext(r.Context(), ip))
			}
			next.ServeHTTP(w, r)
		})
	}
}
