package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

var testPrincipal = &domain.Principal{
	UserID:    "user-1",
	CompanyID: "company-1",
	Role:      domain.RoleProjectManager,
}

func TestJobService_CreateJob_Success(t *testing.T) {
	repo := &mockJobRepository{}
	siteRepo := &mockSiteRepository{findResult: &domain.Site{ID: "site-1", CompanyID: "company-1"}}
	svc := NewJobService(repo, siteRepo)

	job, err := svc.CreateJob(context.Background(), testPrincipal, CreateJobInput{
		SiteID: "site-1",
		Title:  "Pour foundation slab",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 作成者はプリンシパルから記録される
	if job.CreatedBy != "user-1" {
		t.Errorf("want created_by user-1, got %s", job.CreatedBy)
	}
	if job.CompanyID != "company-1" {
		t.Errorf("want company_id company-1, got %s", job.CompanyID)
	}
	// 未指定のステータス・優先度はデフォルト値になる
	if job.Status != domain.JobStatusPending {
		t.Errorf("want status pending, got %s", job.Status)
	}
	if job.Priority != domain.PriorityMedium {
		t.Errorf("want priority medium, got %s", job.Priority)
	}
	if len(repo.created) != 1 {
		t.Errorf("want 1 created job, got %d", len(repo.created))
	}
}

func TestJobService_CreateJob_MissingTitle(t *testing.T) {
	svc := NewJobService(&mockJobRepository{}, &mockSiteRepository{})

	_, err := svc.CreateJob(context.Background(), testPrincipal, CreateJobInput{SiteID: "site-1"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestJobService_CreateJob_UnknownSite(t *testing.T) {
	// 現場が見つからない場合はバリデーションエラー
	svc := NewJobService(&mockJobRepository{}, &mockSiteRepository{findResult: nil})

	_, err := svc.CreateJob(context.Background(), testPrincipal, CreateJobInput{
		SiteID: "site-unknown",
		Title:  "Pour foundation slab",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestJobService_CreateJob_InvalidStatus(t *testing.T) {
	svc := NewJobService(&mockJobRepository{}, &mockSiteRepository{})

	_, err := svc.CreateJob(context.Background(), testPrincipal, CreateJobInput{
		SiteID: "site-1",
		Title:  "Pour foundation slab",
		Status: "finished",
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestJobService_GetJob_NotFound(t *testing.T) {
	svc := NewJobService(&mockJobRepository{findResult: nil}, &mockSiteRepository{})

	_, err := svc.GetJob(context.Background(), "company-1", "job-unknown")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestJobService_ListJobs_NormalizesPagination(t *testing.T) {
	repo := &mockJobRepository{listTotal: 250}
	svc := NewJobService(repo, &mockSiteRepository{})

	// 範囲外の値はデフォルト値・上限に正規化される
	_, page, err := svc.ListJobs(context.Background(), "company-1", domain.JobFilter{Page: 0, Limit: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.listFilter.Page != 1 {
		t.Errorf("want page 1, got %d", repo.listFilter.Page)
	}
	if repo.listFilter.Limit != domain.MaxLimit {
		t.Errorf("want limit %d, got %d", domain.MaxLimit, repo.listFilter.Limit)
	}
	if page.Total != 250 {
		t.Errorf("want total 250, got %d", page.Total)
	}
	// 1*100 < 250 なので次ページあり
	if !page.HasMore {
		t.Error("want hasMore true, got false")
	}
}

func TestJobService_ListJobs_InvalidFilter(t *testing.T) {
	svc := NewJobService(&mockJobRepository{}, &mockSiteRepository{})

	_, _, err := svc.ListJobs(context.Background(), "company-1", domain.JobFilter{Status: "finished"})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
}

func TestJobService_UpdateJob_NoFields(t *testing.T) {
	repo := &mockJobRepository{findResult: &domain.Job{ID: "job-1"}}
	svc := NewJobService(repo, &mockSiteRepository{})

	// 全フィールドnilの更新はディスパッチ前に拒否される
	_, err := svc.UpdateJob(context.Background(), "company-1", "job-1", &domain.JobUpdate{})
	if !errors.Is(err, domain.ErrNoFieldsToUpdate) {
		t.Errorf("want ErrNoFieldsToUpdate, got %v", err)
	}
	if repo.updateCalled {
		t.Error("update must not be dispatched for empty update")
	}
}

func TestJobService_UpdateJob_NotFound(t *testing.T) {
	repo := &mockJobRepository{findResult: nil}
	svc := NewJobService(repo, &mockSiteRepository{})

	status := domain.JobStatusCompleted
	_, err := svc.UpdateJob(context.Background(), "company-1", "job-unknown", &domain.JobUpdate{Status: &status})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestJobService_DeleteJob_NotFound(t *testing.T) {
	repo := &mockJobRepository{findResult: nil}
	svc := NewJobService(repo, &mockSiteRepository{})

	err := svc.DeleteJob(context.Background(), "company-1", "job-unknown")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
	if repo.deleteCalled {
		t.Error("delete must not be dispatched for missing job")
	}
}
