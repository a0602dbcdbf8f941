package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/finflow/internal"
	"github.com/frahmantamala/finflow/internal/auth"
	"github.com/frahmantamala/finflow/internal/transport"
	"github.com/frahmantamala/finflow/pkg/logger"
)

type AuthOptions struct {
	AllowAnonymous bool
	DefaultUserID  string
}

// Authenticate resolves the request user from a bearer token. Requests without a token fall back
// to the default user when anonymous access is allowed.
func Authenticate(validator auth.TokenValidator, opts AuthOptions, lg *slog.Logger) func(http.Handler) http.Handler {
	base := transport.NewBaseHandler(lg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var userID string

			token := transport.ExtractTokenFromHeader(r)
			switch {
			case token != "":
				claims, err := validator.ValidateToken(token)
				if err != nil {
					base.Logger.WarnContext(r.Context(), "rejected bearer token", "error", err)
					if appErr, ok := internal.IsAppError(err); ok {
						base.WriteAppError(w, appErr)
					} else {
						base.WriteAppError(w, internal.ErrInvalidToken)
					}
					return
				}
				userID = claims.Subject
			case opts.AllowAnonymous && strings.TrimSpace(opts.DefaultUserID) != "":
				userID = opts.DefaultUserID
			default:
				base.WriteAppError(w, internal.ErrInvalidToken)
				return
			}

			ctx := internal.ContextWithUserID(r.Context(), userID)
			ctx = logger.With(ctx, "user_id", userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
