package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

func TestWorkerService_MobileProfile_Success(t *testing.T) {
	workerRepo := &mockWorkerRepository{
		findResult: &domain.User{ID: "user-1", CompanyID: "company-1", Name: "Alex Carter", Role: domain.RoleWorker},
	}
	jobRepo := &mockJobRepository{activeCount: 3}
	svc := NewWorkerService(workerRepo, jobRepo)

	profile, err := svc.MobileProfile(context.Background(), testPrincipal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Name != "Alex Carter" {
		t.Errorf("want name Alex Carter, got %s", profile.Name)
	}
	if profile.ActiveJobCount != 3 {
		t.Errorf("want active job count 3, got %d", profile.ActiveJobCount)
	}
}

func TestWorkerService_MobileProfile_UserNotFound(t *testing.T) {
	svc := NewWorkerService(&mockWorkerRepository{findResult: nil}, &mockJobRepository{})

	_, err := svc.MobileProfile(context.Background(), testPrincipal)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}

func TestWorkerService_MobileJobs(t *testing.T) {
	jobRepo := &mockJobRepository{assigned: []*domain.MobileJob{
		{ID: "job-1", Title: "Pour slab", SiteName: "Riverside Apartments"},
	}}
	svc := NewWorkerService(&mockWorkerRepository{}, jobRepo)

	jobs, err := svc.MobileJobs(context.Background(), testPrincipal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("want 1 job, got %d", len(jobs))
	}
	if jobs[0].SiteName != "Riverside Apartments" {
		t.Errorf("want site name Riverside Apartments, got %s", jobs[0].SiteName)
	}
}

func TestWorkerService_ListWorkers(t *testing.T) {
	workerRepo := &mockWorkerRepository{
		listResult: []*domain.User{{ID: "user-1"}, {ID: "user-2"}},
		listTotal:  2,
	}
	svc := NewWorkerService(workerRepo, &mockJobRepository{})

	workers, page, err := svc.ListWorkers(context.Background(), "company-1", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(workers) != 2 {
		t.Errorf("want 2 workers, got %d", len(workers))
	}
	// 未指定のページングはデフォルト値に正規化される
	if page.Page != domain.DefaultPage || page.Limit != domain.DefaultLimit {
		t.Errorf("want page=%d limit=%d, got page=%d limit=%d",
			domain.DefaultPage, domain.DefaultLimit, page.Page, page.Limit)
	}
	if page.HasMore {
		t.Error("want hasMore false, got true")
	}
}

func TestWorkerService_GetWorker_NotFound(t *testing.T) {
	svc := NewWorkerService(&mockWorkerRepository{findResult: nil}, &mockJobRepository{})

	_, err := svc.GetWorker(context.Background(), "company-1", "user-unknown")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("want ErrNotFound, got %v", err)
	}
}
