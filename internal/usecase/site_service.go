// Package usecase はアプリケーションのユースケースを実装する。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// SiteRepository は現場データアクセスのインターフェース。
type SiteRepository interface {
	Create(ctx context.Context, site *domain.Site) error
	FindByID(ctx context.Context, companyID, id string) (*domain.Site, error)
	List(ctx context.Context, companyID string, filter domain.SiteFilter) ([]*domain.Site, int64, error)
	Update(ctx context.Context, companyID, id string, update *domain.SiteUpdate) error
	Delete(ctx context.Context, companyID, id string) error
}

// CreateSiteInput は現場作成の入力を表す。
type CreateSiteInput struct {
	Name      string
	Address   string
	Status    domain.SiteStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// SiteService は現場に関するビジネスロジックを提供する。
type SiteService struct {
	repo    SiteRepository
	jobRepo JobRepository
}

// NewSiteService は新しいSiteServiceを生成する。
func NewSiteService(repo SiteRepository, jobRepo JobRepository) *SiteService {
	return &SiteService{
		repo:    repo,
		jobRepo: jobRepo,
	}
}

// CreateSite は指定されたテナントに新しい現場を作成する。
func (s *SiteService) CreateSite(ctx context.Context, companyID string, input CreateSiteInput) (*domain.Site, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if input.Status == "" {
		input.Status = domain.SiteStatusPlanning
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, input.Status)
	}

	site := &domain.Site{
		CompanyID: companyID,
		Name:      input.Name,
		Address:   input.Address,
		Status:    input.Status,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
	}
	if err := s.repo.Create(ctx, site); err != nil {
		return nil, fmt.Errorf("creating site: %w", err)
	}
	return site, nil
}

// GetSite は指定されたテナント・IDの現場を取得する。
func (s *SiteService) GetSite(ctx context.Context, companyID, id string) (*domain.Site, error) {
	site, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding site: %w", err)
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}
	return site, nil
}

// ListSites は指定されたテナントの現場一覧を取得する。
func (s *SiteService) ListSites(ctx context.Context, companyID string, filter domain.SiteFilter) ([]*domain.Site, *domain.PageInfo, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, filter.Status)
	}
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	sites, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("listing sites: %w", err)
	}
	return sites, domain.NewPageInfo(filter.Page, filter.Limit, total), nil
}

// ListSiteJobs は指定された現場の作業一覧を開始日の新しい順に取得する。
func (s *SiteService) ListSiteJobs(ctx context.Context, companyID, siteID string) ([]*domain.Job, error) {
	site, err := s.repo.FindByID(ctx, companyID, siteID)
	if err != nil {
		return nil, fmt.Errorf("finding site: %w", err)
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}

	jobs, err := s.jobRepo.ListBySite(ctx, companyID, siteID)
	if err != nil {
		return nil, fmt.Errorf("listing site jobs: %w", err)
	}
	return jobs, nil
}

// UpdateSite は指定された現場を部分更新して更新後の状態を返す。
func (s *SiteService) UpdateSite(ctx context.Context, companyID, id string, update *domain.SiteUpdate) (*domain.Site, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	site, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding site: %w", err)
	}
	if site == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Update(ctx, companyID, id, update); err != nil {
		return nil, fmt.Errorf("updating site: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("reloading site: %w", err)
	}
	return updated, nil
}

// DeleteSite は指定された現場を論理削除する。
func (s *SiteService) DeleteSite(ctx context.Context, companyID, id string) error {
	site, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("finding site: %w", err)
	}
	if site == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("deleting site: %w", err)
	}
	return nil
}
