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

// JobHandler は作業エンドポイントのHTTPハンドラを提供する。
type JobHandler struct {
	service *usecase.JobService
}

// NewJobHandler は新しいJobHandlerを生成する。
func NewJobHandler(service *usecase.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// JobResponse は作業のレスポンス形式。
type JobResponse struct {
	ID          string     `json:"id"`
	SiteID      string     `json:"siteId"`
	AssignedTo  *string    `json:"assignedTo,omitempty"`
	CreatedBy   string     `json:"createdBy"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toJobResponse(j *domain.Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		SiteID:      j.SiteID,
		AssignedTo:  j.AssignedTo,
		CreatedBy:   j.CreatedBy,
		Title:       j.Title,
		Description: j.Description,
		Status:      string(j.Status),
		Priority:    string(j.Priority),
		StartDate:   j.StartDate,
		DueDate:     j.DueDate,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

// createJobRequest は作業作成のリクエスト形式。
type createJobRequest struct {
	SiteID      string     `json:"siteId"`
	AssignedTo  *string    `json:"assignedTo"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}

// CreateJob は新しい作業を作成する。
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req createJobRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	job, err := h.service.CreateJob(r.Context(), p, usecase.CreateJobInput{
		SiteID:      req.SiteID,
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.JobStatus(req.Status),
		Priority:    domain.Priority(req.Priority),
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	})
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "CREATE_JOB", p.CompanyID, "", "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "CREATE_JOB", p.CompanyID, job.ID, "SUCCESS")
	httputil.OK(w, http.StatusCreated, toJobResponse(job))
}

// ListJobs は作業一覧を取得する。
func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.JobFilter{
		Status:     domain.JobStatus(q.Get("status")),
		Priority:   domain.Priority(q.Get("priority")),
		SiteID:     q.Get("siteId"),
		AssignedTo: q.Get("assignedTo"),
		Search:     q.Get("search"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	jobs, page, err := h.service.ListJobs(r.Context(), p.CompanyID, filter)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	data := make([]JobResponse, len(jobs))
	for i, j := range jobs {
		data[i] = toJobResponse(j)
	}
	httputil.List(w, data, page)
}

// GetJob は指定された作業を取得する。
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	job, err := h.service.GetJob(r.Context(), p.CompanyID, chi.URLParam(r, "id"))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.OK(w, http.StatusOK, toJobResponse(job))
}

// updateJobRequest は作業更新のリクエスト形式。nilのフィールドは変更しない。
type updateJobRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	AssignedTo  *string    `json:"assignedTo"`
	StartDate   *time.Time `json:"startDate"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateJob は指定された作業を部分更新する。
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	var req updateJobRequest
	if err := decodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	update := &domain.JobUpdate{
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		status := domain.JobStatus(*req.Status)
		update.Status = &status
	}
	if req.Priority != nil {
		priority := domain.Priority(*req.Priority)
		update.Priority = &priority
	}

	id := chi.URLParam(r, "id")
	job, err := h.service.UpdateJob(r.Context(), p.CompanyID, id, update)
	if err != nil {
		middleware.WriteAuditLog(r.Context(), "UPDATE_JOB", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "UPDATE_JOB", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, toJobResponse(job))
}

// DeleteJob は指定された作業を論理削除する。
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.service.DeleteJob(r.Context(), p.CompanyID, id); err != nil {
		middleware.WriteAuditLog(r.Context(), "DELETE_JOB", p.CompanyID, id, "FAILED")
		httputil.Error(w, err)
		return
	}

	middleware.WriteAuditLog(r.Context(), "DELETE_JOB", p.CompanyID, id, "SUCCESS")
	httputil.OK(w, http.StatusOK, nil)
}
