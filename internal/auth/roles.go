package auth

import (
	"log/slog"
	"net/http"

	internal "github.com/dcontreras/workshop-management/internal"
	"github.com/dcontreras/workshop-management/internal/transport"
)

// RoleAuthorization gates route groups on an explicit role allow-list. The
// role comes from the authenticated user placed in context by the auth
// middleware, which in turn comes from the verified token.
type RoleAuthorization struct {
	*transport.BaseHandler
}

func NewRoleAuthorization(logger *slog.Logger) *RoleAuthorization {
	return &RoleAuthorization{BaseHandler: transport.NewBaseHandler(logger)}
}

func (ra *RoleAuthorization) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || user == nil {
				ra.Logger.Warn("authorization check failed: user not found in context", "path", r.URL.Path)
				ra.HandleServiceError(w, internal.ErrMissingToken)
				return
			}

			if !user.HasAnyRole(roles...) {
				ra.Logger.Warn("access denied: role not in allow-list",
					"user_id", user.ID,
					"role", user.Role,
					"allowed_roles", roles,
					"path", r.URL.Path)
				ra.HandleServiceError(w, internal.ErrRoleNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
