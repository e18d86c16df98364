package middleware

import (
	"fmt"
	"net/http"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/response"
)

// RequireCapability checks that the caller holds capability through its role or privileges
func RequireCapability(capability user.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.HandleError(w, user.ErrInvalidIdentity)
				return
			}

			if !user.Can(identity, capability) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", capability, identity.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireCompany rejects callers without a company unless they are super admins
func RequireCompany(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			response.HandleError(w, user.ErrInvalidIdentity)
			return
		}

		if !identity.IsSuperAdmin() && identity.CompanyIDValue() == "" {
			response.HandleError(w, user.ErrCompanyIDRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
