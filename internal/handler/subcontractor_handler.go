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

// SubcontractorHandler は下請業者エンドポイントのHTTPハンドラを提供する。
type SubcontractorHandler struct {
	service *usecase.SubcontractorService
}

// NewSubcontractorHandler は新しいSubcontractorHandlerを生成する。
func NewSubcontractorHandler(service *usecase.SubcontractorService) *SubcontractorHandler {
	return &SubcontractorHandler{service: service}
}

// SubcontractorResponse は下請業者のレスポンス形式。
type SubcontractorResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Trade     string    `json:"trade,omitempty"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toSubcontractorResponse(s *domain.Subcontractor) SubcontractorResponse {
	return SubcontractorResponse{
		ID:        s.ID,
		Name:      s.Name,
		Trade:     s.Trade,
		Email:     s.Email,
		Phone:     s.Phone,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// createSubcontractorRequest は下請業者作成のリクエスト形式。
type createSubcontractorRequest struct {
	Name  string `json:"name"`
	Trade string `json:"trade"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateSubcontractor は新しい下請業者を作成する。
func (h *SubcontractorHandler) CreateSubcontractor(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req createSubcontractorRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	sub, err := h.service.CreateSubcontractor(r.Context(), p.CompanyID, usecase.CreateSubcontractorInput{
		Name:  req.Name,
		Trade: req.Trade,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "CREATE_SUBCONTRACTOR", p.CompanyID, "", "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "CREATE_SUBCONTRACTOR", p.CompanyID, sub.ID, "SUCCESS")
	httputil.OK(w, http.StatusCreated, toSubcontractorResponse(sub))
}

// ListSubcontractors は下請業者一覧を取得する。
func (h *SubcontractorHandler) ListSubcontractors(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.SubcontractorFilter{
		Trade:  q.Get("trade"),
		Search: q.Get("search"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	subs, page, err := h.service.ListSubcontractors(r.Context(), p.CompanyID, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]SubcontractorResponse, len(subs))
	for i, s := range subs {
		data[i] = toSubcontractorResponse(s)
	}
	httputil.List(w, data, page)
}

// GetSubcontractor は指定された下請業者を取得する。
func (h *SubcontractorHandler) GetSubcontractor(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	sub, err := h.service.GetSubcontractor(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.OK(w, http.StatusOK, toSubcontractorResponse(sub))
}

// updateSubcontractorRequest は下請業者更新のリクエスト形式。nilのフィールドは変更しない。
type updateSubcontractorRequest struct {
	Name  *string `json:"name"`
	Trade *string `json:"trade"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// UpdateSubcontractor は指定された下請業者を部分更新する。
func (h *SubcontractorHandler) UpdateSubcontractor(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req updateSubcontractorRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	sub, err := h.service.UpdateSubcontractor(r.Context(), p.CompanyID, id, &domain.SubcontractorUpdate{
		Name:  req.Name,
		Trade: req.Trade,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "UPDATE_SUBCONTRACTOR", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "UPDATE_SUBCONTRACTOR", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, toSubcontractorResponse(sub))
}

// DeleteSubcontractor は指定された下請業者を論理削除する。
func (h *SubcontractorHandler) DeleteSubcontractor(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteSubcontractor(r.Context(), p.CompanyID, id); err != nil {
		middleware.WriteAuditLog(r.Context(), "DELETE_SUBCONTRACTOR", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "DELETE_SUBCONTRACTOR", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, nil)
}
