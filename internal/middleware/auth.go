// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/pkg/httputil"
)

type contextKey string

const principalKey contextKey = "principal"

// claims はアクセストークンのクレームを表す。トークンの発行は上流の認証基盤が行う。
type claims struct {
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticate はAuthorizationヘッダのBearerトークンを検証し、
// プリンシパルをリクエストコンテキストに設定するミドルウェアを返す。
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.Error(w, domain.ErrUnauthorized)
				return
			}

			var c claims
			parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				httputil.Error(w, domain.ErrUnauthorized)
				return
			}

			principal := &domain.Principal{
				UserID:    c.Subject,
				CompanyID: c.CompanyID,
				Role:      domain.Role(c.Role),
			}
			if principal.UserID == "" || principal.CompanyID == "" || !principal.Role.Valid() {
				httputil.Error(w, domain.ErrUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom はコンテキストからプリンシパルを取得する。
func PrincipalFrom(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalKey).(*domain.Principal)
	return p, ok
}

// WithPrincipal はプリンシパルを設定したコンテキストを返す。テストおよびハンドラ層で使用する。
func WithPrincipal(ctx context.Context, p *domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}
