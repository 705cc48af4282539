package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/middleware"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/usecase"
)

// mockJobRepository はテスト用のモックリポジトリ。
type mockJobRepository struct {
	findResult  *domain.Job
	findErr     error
	listResult  []*domain.Job
	listTotal   int64
	listErr     error
	createErr   error
	updateErr   error
	deleteErr   error
	assigned    []*domain.MobileJob
	activeCount int64
	created     []*domain.Job
}

func (m *mockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	if m.createErr != nil {
		return m.createErr
	}
	job.ID = "job-generated"
	m.created = append(m.created, job)
	return nil
}

func (m *mockJobRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Job, error) {
	return m.findResult, m.findErr
}

func (m *mockJobRepository) List(ctx context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockJobRepository) ListBySite(ctx context.Context, companyID, siteID string) ([]*domain.Job, error) {
	return m.listResult, m.listErr
}

func (m *mockJobRepository) ListAssignedTo(ctx context.Context, companyID, userID string) ([]*domain.MobileJob, error) {
	return m.assigned, nil
}

func (m *mockJobRepository) CountActiveByAssignee(ctx context.Context, companyID, userID string) (int64, error) {
	return m.activeCount, nil
}

func (m *mockJobRepository) Update(ctx context.Context, companyID, id string, update *domain.JobUpdate) error {
	return m.updateErr
}

func (m *mockJobRepository) Delete(ctx context.Context, companyID, id string) error {
	return m.deleteErr
}

// mockSiteRepository はテスト用のモックリポジトリ。
type mockSiteRepository struct {
	findResult *domain.Site
	findErr    error
}

func (m *mockSiteRepository) Create(ctx context.Context, site *domain.Site) error { return nil }

func (m *mockSiteRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Site, error) {
	return m.findResult, m.findErr
}

func (m *mockSiteRepository) List(ctx context.Context, companyID string, filter domain.SiteFilter) ([]*domain.Site, int64, error) {
	return nil, 0, nil
}

func (m *mockSiteRepository) Update(ctx context.Context, companyID, id string, update *domain.SiteUpdate) error {
	return nil
}

func (m *mockSiteRepository) Delete(ctx context.Context, companyID, id string) error { return nil }

var testPrincipal = &domain.Principal{
	UserID:    "user-1",
	CompanyID: "company-1",
	Role:      domain.RoleProjectManager,
}

// newAuthedRequest はプリンシパルとchiルートコンテキストを設定したリクエストを生成する。
func newAuthedRequest(method, target, body string, params map[string]string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.WithPrincipal(ctx, testPrincipal)
	return req.WithContext(ctx)
}

func setupJobHandler(repo *mockJobRepository, siteRepo *mockSiteRepository) *JobHandler {
	service := usecase.NewJobService(repo, siteRepo)
	return NewJobHandler(service)
}

func TestCreateJob_Success(t *testing.T) {
	repo := &mockJobRepository{}
	siteRepo := &mockSiteRepository{findResult: &domain.Site{ID: "site-1"}}
	h := setupJobHandler(repo, siteRepo)

	body := `{"siteId":"site-1","title":"Pour foundation slab","priority":"high"}`
	req := newAuthedRequest(http.MethodPost, "/v1/jobs", body, nil)
	rec := httptest.NewRecorder()
	h.CreateJob(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("want status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool        `json:"success"`
		Data    JobResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Error("want success true, got false")
	}
	if resp.Data.CreatedBy != "user-1" {
		t.Errorf("want createdBy user-1, got %s", resp.Data.CreatedBy)
	}
	if resp.Data.Priority != "high" {
		t.Errorf("want priority high, got %s", resp.Data.Priority)
	}
}

func TestCreateJob_InvalidBody(t *testing.T) {
	h := setupJobHandler(&mockJobRepository{}, &mockSiteRepository{})

	req := newAuthedRequest(http.MethodPost, "/v1/jobs", `{not json`, nil)
	rec := httptest.NewRecorder()
	h.CreateJob(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("want status 400, got %d", rec.Code)
	}
}

func TestCreateJob_MissingTitle(t *testing.T) {
	h := setupJobHandler(&mockJobRepository{}, &mockSiteRepository{})

	req := newAuthedRequest(http.MethodPost, "/v1/jobs", `{"siteId":"site-1"}`, nil)
	rec := httptest.NewRecorder()
	h.CreateJob(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("want status 400, got %d", rec.Code)
	}
}

func TestGetJob_NotFound(t *testing.T) {
	h := setupJobHandler(&mockJobRepository{findResult: nil}, &mockSiteRepository{})

	req := newAuthedRequest(http.MethodGet, "/v1/jobs/job-unknown", "", map[string]string{"id": "job-unknown"})
	rec := httptest.NewRecorder()
	h.GetJob(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("want status 404, got %d", rec.Code)
	}

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Success {
		t.Error("want success false, got true")
	}
	if resp.Error == "" {
		t.Error("want error message, got empty")
	}
}

func TestListJobs_PaginationEnvelope(t *testing.T) {
	repo := &mockJobRepository{
		listResult: []*domain.Job{{ID: "job-1"}, {ID: "job-2"}},
		listTotal:  45,
	}
	h := setupJobHandler(repo, &mockSiteRepository{})

	req := newAuthedRequest(http.MethodGet, "/v1/jobs?page=2&limit=20", "", nil)
	rec := httptest.NewRecorder()
	h.ListJobs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", rec.Code)
	}

	var resp struct {
		Success bool          `json:"success"`
		Data    []JobResponse `json:"data"`
		Page    int           `json:"page"`
		Limit   int           `json:"limit"`
		Total   int64         `json:"total"`
		HasMore bool          `json:"hasMore"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Page != 2 || resp.Limit != 20 || resp.Total != 45 {
		t.Errorf("want page=2 limit=20 total=45, got page=%d limit=%d total=%d", resp.Page, resp.Limit, resp.Total)
	}
	// 2*20 < 45 なので次ページあり
	if !resp.HasMore {
		t.Error("want hasMore true, got false")
	}
	if len(resp.Data) != 2 {
		t.Errorf("want 2 jobs, got %d", len(resp.Data))
	}
}

func TestListJobs_EmptyResult(t *testing.T) {
	h := setupJobHandler(&mockJobRepository{listTotal: 0}, &mockSiteRepository{})

	req := newAuthedRequest(http.MethodGet, "/v1/jobs", "", nil)
	rec := httptest.NewRecorder()
	h.ListJobs(rec, req)

	// ヒット0件でも200
	if rec.Code != http.StatusOK {
		t.Fatalf("want status 200, got %d", rec.Code)
	}

	var resp struct {
		Data    []JobResponse `json:"data"`
		HasMore bool          `json:"hasMore"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Errorf("want empty data, got %d", len(resp.Data))
	}
	if resp.HasMore {
		t.Error("want hasMore false, got true")
	}
}

func TestUpdateJob_NoFields(t *testing.T) {
	repo := &mockJobRepository{findResult: &domain.Job{ID: "job-1"}}
	h := setupJobHandler(repo, &mockSiteRepository{})

	req := newAuthedRequest(http.MethodPatch, "/v1/jobs/job-1", `{}`, map[string]string{"id": "job-1"})
	rec := httptest.NewRecorder()
	h.UpdateJob(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("want status 400, got %d", rec.Code)
	}
}

func TestDeleteJob_Success(t *testing.T) {
	repo := &mockJobRepository{findResult: &domain.Job{ID: "job-1"}}
	h := setupJobHandler(repo, &mockSiteRepository{})

	req := newAuthedRequest(http.MethodDelete, "/v1/jobs/job-1", "", map[string]string{"id": "job-1"})
	rec := httptest.NewRecorder()
	h.DeleteJob(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("want status 200, got %d", rec.Code)
	}
}

func TestGetJob_NoPrincipal(t *testing.T) {
	h := setupJobHandler(&mockJobRepository{}, &mockSiteRepository{})

	// プリンシパルなしのコンテキストでは401
	req := httptest.NewRequest(http.MethodGet, "/v1/jobs/job-1", nil)
	rec := httptest.NewRecorder()
	h.GetJob(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("want status 401, got %d", rec.Code)
	}
}
