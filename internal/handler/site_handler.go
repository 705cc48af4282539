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

// SiteHandler は現場エンドポイントのHTTPハンドラを提供する。
type SiteHandler struct {
	service *usecase.SiteService
}

// NewSiteHandler は新しいSiteHandlerを生成する。
func NewSiteHandler(service *usecase.SiteService) *SiteHandler {
	return &SiteHandler{service: service}
}

// SiteResponse は現場のレスポンス形式。
type SiteResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func toSiteResponse(s *domain.Site) SiteResponse {
	return SiteResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		Status:    string(s.Status),
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// createSiteRequest は現場作成のリクエスト形式。
type createSiteRequest struct {
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// CreateSite は新しい現場を作成する。
func (h *SiteHandler) CreateSite(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req createSiteRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	site, err := h.service.CreateSite(r.Context(), p.CompanyID, usecase.CreateSiteInput{
		Name:      req.Name,
		Address:   req.Address,
		Status:    domain.SiteStatus(req.Status),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "CREATE_SITE", p.CompanyID, "", "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "CREATE_SITE", p.CompanyID, site.ID, "SUCCESS")
	httputil.OK(w, http.StatusCreated, toSiteResponse(site))
}

// ListSites は現場一覧を取得する。
func (h *SiteHandler) ListSites(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	filter := domain.SiteFilter{
		Status: domain.SiteStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	sites, page, err := h.service.ListSites(r.Context(), p.CompanyID, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]SiteResponse, len(sites))
	for i, s := range sites {
		data[i] = toSiteResponse(s)
	}
	httputil.List(w, data, page)
}

// GetSite は指定された現場を取得する。
func (h *SiteHandler) GetSite(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	site, err := h.service.GetSite(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.OK(w, http.StatusOK, toSiteResponse(site))
}

// ListSiteJobs は指定された現場の作業一覧を取得する。
func (h *SiteHandler) ListSiteJobs(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	jobs, err := h.service.ListSiteJobs(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		data[i] = toJobResponse(j)
	}
	httputil.OK(w, http.StatusOK, data)
}

// updateSiteRequest は現場更新のリクエスト形式。nilのフィールドは変更しない。
type updateSiteRequest struct {
	Name      *string    `json:"name"`
	Address   *string    `json:"address"`
	Status    *string    `json:"status"`
	StartDate *time.Time `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
}

// UpdateSite は指定された現場を部分更新する。
func (h *SiteHandler) UpdateSite(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req updateSiteRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	update := &domain.SiteUpdate{
		Name:      req.Name,
		Address:   req.Address,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Status != nil {
		status := domain.SiteStatus(*req.Status)
		update.Status = &status
	}

	id := chi.URLParam(r, "id")
	site, err := h.service.UpdateSite(r.Context(), p.CompanyID, id, update)
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "UPDATE_SITE", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "UPDATE_SITE", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, toSiteResponse(site))
}

// DeleteSite は指定された現場を論理削除する。
func (h *SiteHandler) DeleteSite(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteSite(r.Context(), p.CompanyID, id); err != nil {
		middleware.WriteAuditLog(r.Context(), "DELETE_SITE", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "DELETE_SITE", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, nil)
}
