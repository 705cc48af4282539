package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// JobRepository は作業データアクセスのインターフェース。
type JobRepository interface {
	Create(ctx context.Context, job *domain.Job) error
	FindByID(ctx context.Context, companyID, id string) (*domain.Job, error)
	List(ctx context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, int64, error)
	ListBySite(ctx context.Context, companyID, siteID string) ([]*domain.Job, error)
	ListAssignedTo(ctx context.Context, companyID, userID string) ([]*domain.MobileJob, error)
	CountActiveByAssignee(ctx context.Context, companyID, userID string) (int64, error)
	Update(ctx context.Context, companyID, id string, update *domain.JobUpdate) error
	Delete(ctx context.Context, companyID, id string) error
}

// CreateJobInput は作業作成の入力を表す。
type CreateJobInput struct {
	SiteID      string
	AssignedTo  *string
	Title       string
	Description string
	Status      domain.JobStatus
	Priority    domain.Priority
	StartDate   *time.Time
	DueDate     *time.Time
}

// JobService は作業に関するビジネスロジックを提供する。
type JobService struct {
	repo     JobRepository
	siteRepo SiteRepository
}

// NewJobService は新しいJobServiceを生成する。
func NewJobService(repo JobRepository, siteRepo SiteRepository) *JobService {
	return &JobService{
		repo:     repo,
		siteRepo: siteRepo,
	}
}

// CreateJob は指定されたテナントに新しい作業を作成する。
// 作成者は認証済みプリンシパルのユーザーIDを記録する。
func (s *JobService) CreateJob(ctx context.Context, principal *domain.Principal, input CreateJobInput) (*domain.Job, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.SiteID == "" {
		return nil, fmt.Errorf("%w: siteId is required", domain.ErrValidation)
	}
	if input.Status == "" {
		input.Status = domain.JobStatusPending
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, input.Status)
	}
	if input.Priority == "" {
		input.Priority = domain.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, input.Priority)
	}

	// 参照先の現場が同一テナントに存在することを確認
	site, err := s.siteRepo.FindByID(ctx, principal.CompanyID, input.SiteID)
	if err != nil {
		return nil, fmt.Errorf("finding site: %w", err)
	}
	if site == nil {
		return nil, fmt.Errorf("%w: site %s not found", domain.ErrValidation, input.SiteID)
	}

	job := &domain.Job{
		CompanyID:   principal.CompanyID,
		SiteID:      input.SiteID,
		AssignedTo:  input.AssignedTo,
		CreatedBy:   principal.UserID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		StartDate:   input.StartDate,
		DueDate:     input.DueDate,
	}
	if err := s.repo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}
	return job, nil
}

// GetJob は指定されたテナント・IDの作業を取得する。
func (s *JobService) GetJob(ctx context.Context, companyID, id string) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding job: %w", err)
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}
	return job, nil
}

// ListJobs は指定されたテナントの作業一覧を取得する。
func (s *JobService) ListJobs(ctx context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, *domain.PageInfo, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, filter.Status)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid priority %q", domain.ErrValidation, filter.Priority)
	}
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	jobs, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("listing jobs: %w", err)
	}
	return jobs, domain.NewPageInfo(filter.Page, filter.Limit, total), nil
}

// UpdateJob は指定された作業を部分更新して更新後の状態を返す。
func (s *JobService) UpdateJob(ctx context.Context, companyID, id string, update *domain.JobUpdate) (*domain.Job, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	job, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding job: %w", err)
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Update(ctx, companyID, id, update); err != nil {
		return nil, fmt.Errorf("updating job: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("reloading job: %w", err)
	}
	return updated, nil
}

// DeleteJob は指定された作業を論理削除する。
func (s *JobService) DeleteJob(ctx context.Context, companyID, id string) error {
	job, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("finding job: %w", err)
	}
	if job == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("deleting job: %w", err)
	}
	return nil
}
