package auth

import (
	"net/http"

	"github.com/go-chi/jwtauth"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// RequireAdmin rejects requests whose verified token does not carry the
// admin role. Mount after jwtauth.Verifier and jwtauth.Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		role, _ := claims["role"].(string)
		if role != string(charity.RoleAdmin) {
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
