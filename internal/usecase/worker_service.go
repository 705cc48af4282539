package usecase

import (
	"context"
	"fmt"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// WorkerRepository は作業員データアクセスのインターフェース。
type WorkerRepository interface {
	FindByID(ctx context.Context, companyID, id string) (*domain.User, error)
	ListWorkers(ctx context.Context, companyID string, page, limit int) ([]*domain.User, int64, error)
}

// WorkerService は作業員一覧とモバイル向けビューのビジネスロジックを提供する。
type WorkerService struct {
	repo    WorkerRepository
	jobRepo JobRepository
}

// NewWorkerService は新しいWorkerServiceを生成する。
func NewWorkerService(repo WorkerRepository, jobRepo JobRepository) *WorkerService {
	return &WorkerService{
		repo:    repo,
		jobRepo: jobRepo,
	}
}

// ListWorkers は指定されたテナントの作業員一覧を取得する。
func (s *WorkerService) ListWorkers(ctx context.Context, companyID string, page, limit int) ([]*domain.User, *domain.PageInfo, error) {
	page, limit = domain.NormalizePage(page, limit)

	workers, total, err := s.repo.ListWorkers(ctx, companyID, page, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("listing workers: %w", err)
	}
	return workers, domain.NewPageInfo(page, limit, total), nil
}

// GetWorker は指定されたテナント・IDの作業員を取得する。
func (s *WorkerService) GetWorker(ctx context.Context, companyID, id string) (*domain.User, error) {
	worker, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding worker: %w", err)
	}
	if worker == nil {
		return nil, domain.ErrNotFound
	}
	return worker, nil
}

// MobileJobs は認証済みユーザーに割り当てられた未完了の作業を取得する。
func (s *WorkerService) MobileJobs(ctx context.Context, principal *domain.Principal) ([]*domain.MobileJob, error) {
	jobs, err := s.jobRepo.ListAssignedTo(ctx, principal.CompanyID, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing assigned jobs: %w", err)
	}
	return jobs, nil
}

// MobileProfile は認証済みユーザーのプロフィールと進行中の作業数を取得する。
func (s *WorkerService) MobileProfile(ctx context.Context, principal *domain.Principal) (*domain.WorkerProfile, error) {
	user, err := s.repo.FindByID(ctx, principal.CompanyID, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("finding user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	count, err := s.jobRepo.CountActiveByAssignee(ctx, principal.CompanyID, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("counting active jobs: %w", err)
	}

	return &domain.WorkerProfile{
		User:           *user,
		ActiveJobCount: count,
	}, nil
}
