// Package httputil はHTTPレスポンス生成のユーティリティを提供する。
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// Response は全エンドポイント共通のレスポンスエンベロープ。
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ListResponse は一覧エンドポイント用のエンベロープ。ページネーション情報を含む。
type ListResponse struct {
	Success bool  `json:"success"`
	Data    any   `json:"data"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	HasMore bool  `json:"hasMore"`
}

// JSON はJSONレスポンスを返す。
func JSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			// ヘッダーは既に送信済みのため、エラーレスポンスには変更できない
			http.Error(w, "", http.StatusInternalServerError)
		}
	}
}

// OK は成功レスポンスを返す。
func OK(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Response{Success: true, Data: data})
}

// List は一覧の成功レスポンスを返す。
func List(w http.ResponseWriter, data any, page *domain.PageInfo) {
	JSON(w, http.StatusOK, ListResponse{
		Success: true,
		Data:    data,
		Page:    page.Page,
		Limit:   page.Limit,
		Total:   page.Total,
		HasMore: page.HasMore,
	})
}

// Fail はエラーレスポンスを返す。
func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Response{Success: false, Error: http.StatusText(status), Message: message})
}

// Error はドメインエラーをHTTPステータスにマッピングしてエラーレスポンスを返す。
// 404: NotFound / 403: Forbidden / 401: Unauthorized / 400: Validation / 409: Conflict / 500: その他。
func Error(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Fail(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		Fail(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		Fail(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrValidation):
		Fail(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		Fail(w, http.StatusConflict, err.Error())
	default:
		Fail(w, http.StatusInternalServerError, "internal server error")
	}
}
