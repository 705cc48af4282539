package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// VariationRepository は設計変更データアクセスのインターフェース。
type VariationRepository interface {
	Create(ctx context.Context, v *domain.Variation) error
	FindByID(ctx context.Context, companyID, id string) (*domain.Variation, error)
	List(ctx context.Context, companyID string, filter domain.VariationFilter) ([]*domain.Variation, int64, error)
	Update(ctx context.Context, companyID, id string, update *domain.VariationUpdate) error
	Delete(ctx context.Context, companyID, id string) error
}

// CreateVariationInput は設計変更作成の入力を表す。
type CreateVariationInput struct {
	SiteID      string
	JobID       *string
	Title       string
	Description string
	Status      domain.VariationStatus
	CostChange  float64
}

// VariationService は設計変更に関するビジネスロジックを提供する。
type VariationService struct {
	repo     VariationRepository
	siteRepo SiteRepository
	jobRepo  JobRepository
}

// NewVariationService は新しいVariationServiceを生成する。
func NewVariationService(repo VariationRepository, siteRepo SiteRepository, jobRepo JobRepository) *VariationService {
	return &VariationService{
		repo:     repo,
		siteRepo: siteRepo,
		jobRepo:  jobRepo,
	}
}

// CreateVariation は指定されたテナントに新しい設計変更を作成する。
func (s *VariationService) CreateVariation(ctx context.Context, companyID string, input CreateVariationInput) (*domain.Variation, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.SiteID == "" {
		return nil, fmt.Errorf("%w: siteId is required", domain.ErrValidation)
	}
	if input.Status == "" {
		input.Status = domain.VariationStatusProposed
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, input.Status)
	}

	site, err := s.siteRepo.FindByID(ctx, companyID, input.SiteID)
	if err != nil {
		return nil, fmt.Errorf("finding site: %w", err)
	}
	if site == nil {
		return nil, fmt.Errorf("%w: site %s not found", domain.ErrValidation, input.SiteID)
	}

	// 作業への紐付けは任意。指定された場合のみ存在を確認する。
	if input.JobID != nil {
		job, err := s.jobRepo.FindByID(ctx, companyID, *input.JobID)
		if err != nil {
			return nil, fmt.Errorf("finding job: %w", err)
		}
		if job == nil {
			return nil, fmt.Errorf("%w: job %s not found", domain.ErrValidation, *input.JobID)
		}
	}

	variation := &domain.Variation{
		CompanyID:   companyID,
		SiteID:      input.SiteID,
		JobID:       input.JobID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		CostChange:  input.CostChange,
	}
	if err := s.repo.Create(ctx, variation); err != nil {
		return nil, fmt.Errorf("creating variation: %w", err)
	}
	return variation, nil
}

// GetVariation は指定されたテナント・IDの設計変更を取得する。
func (s *VariationService) GetVariation(ctx context.Context, companyID, id string) (*domain.Variation, error) {
	variation, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding variation: %w", err)
	}
	if variation == nil {
		return nil, domain.ErrNotFound
	}
	return variation, nil
}

// ListVariations は指定されたテナントの設計変更一覧を取得する。
func (s *VariationService) ListVariations(ctx context.Context, companyID string, filter domain.VariationFilter) ([]*domain.Variation, *domain.PageInfo, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, filter.Status)
	}
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	variations, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("listing variations: %w", err)
	}
	return variations, domain.NewPageInfo(filter.Page, filter.Limit, total), nil
}

// UpdateVariation は指定された設計変更を部分更新して更新後の状態を返す。
func (s *VariationService) UpdateVariation(ctx context.Context, companyID, id string, update *domain.VariationUpdate) (*domain.Variation, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	variation, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding variation: %w", err)
	}
	if variation == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Update(ctx, companyID, id, update); err != nil {
		return nil, fmt.Errorf("updating variation: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("reloading variation: %w", err)
	}
	return updated, nil
}

// DeleteVariation は指定された設計変更を論理削除する。
func (s *VariationService) DeleteVariation(ctx context.Context, companyID, id string) error {
	variation, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("finding variation: %w", err)
	}
	if variation == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("deleting variation: %w", err)
	}
	return nil
}
