// Package handler はHTTPハンドラを提供する。
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/middleware"
)

// principal はリクエストコンテキストからプリンシパルを取得する。
// 認証ミドルウェアの後段でのみ呼ばれる前提。
func principal(r *http.Request) (*domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	return p, nil
}

// decodeJSON はリクエストボディをデコードする。不正なJSONはバリデーションエラー。
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrValidation)
	}
	return nil
}

// queryInt はクエリパラメータを整数として取得する。未指定・不正な値は0を返す。
func queryInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}
