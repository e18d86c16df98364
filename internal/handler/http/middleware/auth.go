package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/Ogbudugodwin/Workhub-sub001/internal/domain/user"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/handler/http/response"
	"github.com/Ogbudugodwin/Workhub-sub001/internal/pkg/logging"
)

type identityKey struct{}

// RequireIdentity resolves the verified token into a user.Identity and a
// request-scoped logger. It must run after jwtauth.Verifier.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		token, _, err := jwtauth.FromContext(ctx)
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.HandleError(w, user.ErrInvalidIdentity)
			return
		}

		claims, err := token.AsMap(ctx)
		if err != nil {
			response.HandleError(w, user.ErrInvalidIdentity)
			return
		}

		identity, err := user.IdentityFromClaims(claims)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		httplog.SetAttrs(ctx,
			slog.String("user_id", identity.UserID),
			slog.String("role", string(identity.Role)),
		)
		logger := logging.FromContext(ctx).With(
			slog.String("user_id", identity.UserID),
			slog.String("role", string(identity.Role)),
			slog.String("company_id", identity.CompanyIDValue()),
		)

		ctx = context.WithValue(ctx, identityKey{}, identity)
		ctx = logging.ContextWithLogger(ctx, logger)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithIdentity returns a context carrying identity, as RequireIdentity does.
func WithIdentity(ctx context.Context, identity user.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity attached by RequireIdentity.
func IdentityFromContext(ctx context.Context) (user.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(user.Identity)
	return identity, ok
}
