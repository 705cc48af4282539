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

// ContractHandler は契約エンドポイントのHTTPハンドラを提供する。
type ContractHandler struct {
	service *usecase.ContractService
}

// NewContractHandler は新しいContractHandlerを生成する。
func NewContractHandler(service *usecase.ContractService) *ContractHandler {
	return &ContractHandler{service: service}
}

// ContractResponse は契約のレスポンス形式。
type ContractResponse struct {
	ID              string     `json:"id"`
	SubcontractorID string     `json:"subcontractorId"`
	SiteID          string     `json:"siteId"`
	Title           string     `json:"title"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentMethod"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

func toContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ID:              c.ID,
		SubcontractorID: c.SubcontractorID,
		SiteID:          c.SiteID,
		Title:           c.Title,
		Amount:          c.Amount,
		Status:          string(c.Status),
		PaymentMethod:   string(c.PaymentMethod),
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// createContractRequest は契約作成のリクエスト形式。
type createContractRequest struct {
	SubcontractorID string     `json:"subcontractorId"`
	SiteID          string     `json:"siteId"`
	Title           string     `json:"title"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	PaymentMethod   string     `json:"paymentMethod"`
	StartDate       *time.Time `json:"startDate"`
	EndDate         *time.Time `json:"endDate"`
}

// CreateContract は新しい契約を作成する。
func (h *ContractHandler) CreateContract(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req createContractRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	contract, err := h.service.CreateContract(r.Context(), p.CompanyID, usecase.CreateContractInput{
		SubcontractorID: req.SubcontractorID,
		SiteID:          req.SiteID,
		Title:           req.Title,
		Amount:          req.Amount,
		Status:          domain.ContractStatus(req.Status),
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	})
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "CREATE_CONTRACT", p.CompanyID, "", "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "CREATE_CONTRACT", p.CompanyID, contract.ID, "SUCCESS")
	httputil.OK(w, http.StatusCreated, toContractResponse(contract))
}

// ListContracts は契約一覧を取得する。
func (h *ContractHandler) ListContracts(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.ContractFilter{
		Status:          domain.ContractStatus(q.Get("status")),
		SubcontractorID: q.Get("subcontractorId"),
		SiteID:          q.Get("siteId"),
		Page:            queryInt(r, "page"),
		Limit:           queryInt(r, "limit"),
	}

	contracts, page, err := h.service.ListContracts(r.Context(), p.CompanyID, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]ContractResponse, len(contracts))
	for i, c := range contracts {
		data[i] = toContractResponse(c)
	}
	httputil.List(w, data, page)
}

// GetContract は指定された契約を取得する。
func (h *ContractHandler) GetContract(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	contract, err := h.service.GetContract(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.OK(w, http.StatusOK, toContractResponse(contract))
}

// updateContractRequest は契約更新のリクエスト形式。nilのフィールドは変更しない。
type updateContractRequest struct {
	Title         *string    `json:"title"`
	Amount        *float64   `json:"amount"`
	Status        *string    `json:"status"`
	PaymentMethod *string    `json:"paymentMethod"`
	StartDate     *time.Time `json:"startDate"`
	EndDate       *time.Time `json:"endDate"`
}

// UpdateContract は指定された契約を部分更新する。
func (h *ContractHandler) UpdateContract(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req updateContractRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	update := &domain.ContractUpdate{
		Title:     req.Title,
		Amount:    req.Amount,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.Status != nil {
		status := domain.ContractStatus(*req.Status)
		update.Status = &status
	}
	if req.PaymentMethod != nil {
		method := domain.PaymentMethod(*req.PaymentMethod)
		update.PaymentMethod = &method
	}

	id := chi.URLParam(r, "id")
	contract, err := h.service.UpdateContract(r.Context(), p.CompanyID, id, update)
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "UPDATE_CONTRACT", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "UPDATE_CONTRACT", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, toContractResponse(contract))
}

// DeleteContract は指定された契約を論理削除する。
func (h *ContractHandler) DeleteContract(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteContract(r.Context(), p.CompanyID, id); err != nil {
		middleware.WriteAuditLog(r.Context(), "DELETE_CONTRACT", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "DELETE_CONTRACT", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, nil)
}
