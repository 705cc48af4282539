package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/middleware"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/usecase"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/pkg/httputil"
)

// VariationHandler は設計変更エンドポイントのHTTPハンドラを提供する。
type VariationHandler struct {
	service *usecase.VariationService
}

// NewVariationHandler は新しいVariationHandlerを生成する。
func NewVariationHandler(service *usecase.VariationService) *VariationHandler {
	return &VariationHandler{service: service}
}

// VariationResponse は設計変更のレスポンス形式。
type VariationResponse struct {
	ID          string    `json:"id"`
	SiteID      string    `json:"siteId"`
	JobID       *string   `json:"jobId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CostChange  float64   `json:"costChange"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toVariationResponse(v *domain.Variation) VariationResponse {
	return VariationResponse{
		ID:          v.ID,
		SiteID:      v.SiteID,
		JobID:       v.JobID,
		Title:       v.Title,
		Description: v.Description,
		Status:      string(v.Status),
		CostChange:  v.CostChange,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

// createVariationRequest は設計変更作成のリクエスト形式。
type createVariationRequest struct {
	SiteID      string  `json:"siteId"`
	JobID       *string `json:"jobId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	CostChange  float64 `json:"costChange"`
}

// CreateVariation は新しい設計変更を作成する。
func (h *VariationHandler) CreateVariation(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req createVariationRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	variation, err := h.service.CreateVariation(r.Context(), p.CompanyID, usecase.CreateVariationInput{
		SiteID:      req.SiteID,
		JobID:       req.JobID,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.VariationStatus(req.Status),
		CostChange:  req.CostChange,
	})
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "CREATE_VARIATION", p.CompanyID, "", "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "CREATE_VARIATION", p.CompanyID, variation.ID, "SUCCESS")
	httputil.OK(w, http.StatusCreated, toVariationResponse(variation))
}

// ListVariations は設計変更一覧を取得する。
func (h *VariationHandler) ListVariations(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.VariationFilter{
		Status: domain.VariationStatus(q.Get("status")),
		SiteID: q.Get("siteId"),
		Search: q.Get("search"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	variations, page, err := h.service.ListVariations(r.Context(), p.CompanyID, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]VariationResponse, len(variations))
	for i, v := range variations {
		data[i] = toVariationResponse(v)
	}
	httputil.List(w, data, page)
}

// GetVariation は指定された設計変更を取得する。
func (h *VariationHandler) GetVariation(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	variation, err := h.service.GetVariation(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.OK(w, http.StatusOK, toVariationResponse(variation))
}

// updateVariationRequest は設計変更更新のリクエスト形式。nilのフィールドは変更しない。
type updateVariationRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	CostChange  *float64 `json:"costChange"`
}

// UpdateVariation は指定された設計変更を部分更新する。
func (h *VariationHandler) UpdateVariation(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req updateVariationRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	update := &domain.VariationUpdate{
		Title:       req.Title,
		Description: req.Description,
		CostChange:  req.CostChange,
	}
	if req.Status != nil {
		status := domain.VariationStatus(*req.Status)
		update.Status = &status
	}

	id := chi.URLParam(r, "id")
	variation, err := h.service.UpdateVariation(r.Context(), p.CompanyID, id, update)
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "UPDATE_VARIATION", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "UPDATE_VARIATION", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, toVariationResponse(variation))
}

// DeleteVariation は指定された設計変更を論理削除する。
func (h *VariationHandler) DeleteVariation(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteVariation(r.Context(), p.CompanyID, id); err != nil {
		middleware.WriteAuditLog(r.Context(), "DELETE_VARIATION", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "DELETE_VARIATION", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, nil)
}
