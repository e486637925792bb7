package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/paydesk/payroll-backend-go/internal/handler/http/response"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Missing or invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID extracts the authenticated user's id from the verified token.
func UserID(r *http.Request) *string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil
	}
	if id, ok := claims["user_id"].(string); ok && id != "" {
		return &id
	}
	return nil
}

// EmployeeID extracts the authenticated user's employee id, when linked.
func EmployeeID(r *http.Request) *string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return nil
	}
	if id, ok := claims["employee_id"].(string); ok && id != "" {
		return &id
	}
	return nil
}
