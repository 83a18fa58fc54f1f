package access

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ferrumtrans/ferrumtrans/internal/platform/httpx"
	"github.com/ferrumtrans/ferrumtrans/internal/shared"
)

// Directory resolves a stored principal by ID. Implemented by the users
// module.
type Directory interface {
	PrincipalByID(ctx context.Context, id int64) (Principal, error)
}

// Middleware wires policy checks into chi route groups.
type Middleware struct {
	Directory Directory
	Logger    *slog.Logger
}

// Require gates the wrapped handlers on the resource decision for op.
// A denied request is answered 403 regardless of whether the target
// row exists; probes must not be able to tell the difference.
func (m Middleware) Require(res Resource, op Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := m.principal(r)
			if !ok || !CanPrincipal(p, res, op, true) {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "operation not permitted")
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole gates on membership in the given roles, for surfaces that
// do not map onto a single resource (dashboards, exports).
func (m Middleware) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := m.principal(r)
			if !ok {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "operation not permitted")
				return
			}
			role, resolved := ResolveRole(p)
			if !resolved {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "operation not permitted")
				return
			}
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r.WithContext(ContextWithPrincipal(r.Context(), p)))
					return
				}
			}
			httpx.Problem(w, http.StatusForbidden, "Forbidden", "operation not permitted")
		})
	}
}

func (m Middleware) principal(r *http.Request) (Principal, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return Principal{}, false
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return Principal{}, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Error("access: parse session user id", slog.String("value", raw))
		}
		return Principal{}, false
	}
	p, err := m.Directory.PrincipalByID(r.Context(), id)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Warn("access: principal lookup", slog.Int64("user_id", id), slog.Any("error", err))
		}
		return Principal{}, false
	}
	return p, true
}

type principalContextKey struct{}

// ContextWithPrincipal stores the resolved principal in context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal placed by Require.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}
