package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// SubcontractorRepository は下請業者データアクセスのインターフェース。
type SubcontractorRepository interface {
	Create(ctx context.Context, s *domain.Subcontractor) error
	FindByID(ctx context.Context, companyID, id string) (*domain.Subcontractor, error)
	List(ctx context.Context, companyID string, filter domain.SubcontractorFilter) ([]*domain.Subcontractor, int64, error)
	Update(ctx context.Context, companyID, id string, update *domain.SubcontractorUpdate) error
	Delete(ctx context.Context, companyID, id string) error
}

// CreateSubcontractorInput は下請業者作成の入力を表す。
type CreateSubcontractorInput struct {
	Name  string
	Trade string
	Email string
	Phone string
}

// SubcontractorService は下請業者に関するビジネスロジックを提供する。
type SubcontractorService struct {
	repo SubcontractorRepository
}

// NewSubcontractorService は新しいSubcontractorServiceを生成する。
func NewSubcontractorService(repo SubcontractorRepository) *SubcontractorService {
	return &SubcontractorService{repo: repo}
}

// CreateSubcontractor は指定されたテナントに新しい下請業者を作成する。
func (s *SubcontractorService) CreateSubcontractor(ctx context.Context, companyID string, input CreateSubcontractorInput) (*domain.Subcontractor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	sub := &domain.Subcontractor{
		CompanyID: companyID,
		Name:      input.Name,
		Trade:     input.Trade,
		Email:     input.Email,
		Phone:     input.Phone,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("creating subcontractor: %w", err)
	}
	return sub, nil
}

// GetSubcontractor は指定されたテナント・IDの下請業者を取得する。
func (s *SubcontractorService) GetSubcontractor(ctx context.Context, companyID, id string) (*domain.Subcontractor, error) {
	sub, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding subcontractor: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	return sub, nil
}

// ListSubcontractors は指定されたテナントの下請業者一覧を取得する。
func (s *SubcontractorService) ListSubcontractors(ctx context.Context, companyID string, filter domain.SubcontractorFilter) ([]*domain.Subcontractor, *domain.PageInfo, error) {
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	subs, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("listing subcontractors: %w", err)
	}
	return subs, domain.NewPageInfo(filter.Page, filter.Limit, total), nil
}

// UpdateSubcontractor は指定された下請業者を部分更新して更新後の状態を返す。
func (s *SubcontractorService) UpdateSubcontractor(ctx context.Context, companyID, id string, update *domain.SubcontractorUpdate) (*domain.Subcontractor, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	sub, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding subcontractor: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Update(ctx, companyID, id, update); err != nil {
		return nil, fmt.Errorf("updating subcontractor: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("reloading subcontractor: %w", err)
	}
	return updated, nil
}

// DeleteSubcontractor は指定された下請業者を論理削除する。
func (s *SubcontractorService) DeleteSubcontractor(ctx context.Context, companyID, id string) error {
	sub, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("finding subcontractor: %w", err)
	}
	if sub == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("deleting subcontractor: %w", err)
	}
	return nil
}
