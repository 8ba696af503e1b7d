package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/katalis-hr/attendance-backend-go/internal/handler/http/response"
)

// AdminOnly restricts the route to tokens carrying the admin role. Used for
// the manual cutoff triggers and execution log queries.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			response.Forbidden(w, "Admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
