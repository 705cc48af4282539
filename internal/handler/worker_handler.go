package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/usecase"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/pkg/httputil"
)

// WorkerHandler は作業員エンドポイントのHTTPハンドラを提供する。
type WorkerHandler struct {
	service *usecase.WorkerService
}

// NewWorkerHandler は新しいWorkerHandlerを生成する。
func NewWorkerHandler(service *usecase.WorkerService) *WorkerHandler {
	return &WorkerHandler{service: service}
}

// WorkerResponse は作業員のレスポンス形式。
type WorkerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toWorkerResponse(u *domain.User) WorkerResponse {
	return WorkerResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

// ListWorkers は作業員一覧を取得する。
func (h *WorkerHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	workers, page, err := h.service.ListWorkers(r.Context(), p.CompanyID, queryInt(r, "page"), queryInt(r, "limit"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]WorkerResponse, len(workers))
	for i, u := range workers {
		data[i] = toWorkerResponse(u)
	}
	httputil.List(w, data, page)
}

// GetWorker は指定された作業員を取得する。
func (h *WorkerHandler) GetWorker(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	worker, err := h.service.GetWorker(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.OK(w, http.StatusOK, toWorkerResponse(worker))
}
