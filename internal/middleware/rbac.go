package middleware

import (
	"net/http"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/pkg/httputil"
)

// RequireRole はプリンシパルのロールが許可リストに含まれるか検査するミドルウェアを返す。
// プリンシパル不在は401、許可リスト外のロールは403。ロール階層は計算しない。
func RequireRole(allowed ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := PrincipalFrom(r.Context())
			if !ok {
				httputil.Error(w, domain.ErrUnauthorized)
				return
			}
			if err := Check(principal, allowed); err != nil {
				httputil.Error(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Check はプリンシパルのロールが許可リストに含まれるか判定する純粋な述語。
func Check(principal *domain.Principal, allowed []domain.Role) error {
	if principal == nil {
		return domain.ErrUnauthorized
	}
	for _, role := range allowed {
		if principal.Role == role {
			return nil
		}
	}
	return domain.ErrForbidden
}
