package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// ContractRepository は契約データアクセスのインターフェース。
type ContractRepository interface {
	Create(ctx context.Context, c *domain.Contract) error
	FindByID(ctx context.Context, companyID, id string) (*domain.Contract, error)
	List(ctx context.Context, companyID string, filter domain.ContractFilter) ([]*domain.Contract, int64, error)
	Update(ctx context.Context, companyID, id string, update *domain.ContractUpdate) error
	Delete(ctx context.Context, companyID, id string) error
}

// CreateContractInput は契約作成の入力を表す。
type CreateContractInput struct {
	SubcontractorID string
	SiteID          string
	Title           string
	Amount          float64
	Status          domain.ContractStatus
	PaymentMethod   domain.PaymentMethod
	StartDate       *time.Time
	EndDate         *time.Time
}

// ContractService は契約に関するビジネスロジックを提供する。
type ContractService struct {
	repo     ContractRepository
	subRepo  SubcontractorRepository
	siteRepo SiteRepository
}

// NewContractService は新しいContractServiceを生成する。
func NewContractService(repo ContractRepository, subRepo SubcontractorRepository, siteRepo SiteRepository) *ContractService {
	return &ContractService{
		repo:     repo,
		subRepo:  subRepo,
		siteRepo: siteRepo,
	}
}

// CreateContract は指定されたテナントに新しい契約を作成する。
func (s *ContractService) CreateContract(ctx context.Context, companyID string, input CreateContractInput) (*domain.Contract, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if input.SubcontractorID == "" {
		return nil, fmt.Errorf("%w: subcontractorId is required", domain.ErrValidation)
	}
	if input.SiteID == "" {
		return nil, fmt.Errorf("%w: siteId is required", domain.ErrValidation)
	}
	if input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}
	if input.Status == "" {
		input.Status = domain.ContractStatusDraft
	}
	if !input.Status.Valid() {
		return nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, input.Status)
	}
	if input.PaymentMethod == "" {
		input.PaymentMethod = domain.PaymentMethodBankTransfer
	}
	if !input.PaymentMethod.Valid() {
		return nil, fmt.Errorf("%w: invalid payment method %q", domain.ErrValidation, input.PaymentMethod)
	}

	// 参照先が同一テナントに存在することを確認
	sub, err := s.subRepo.FindByID(ctx, companyID, input.SubcontractorID)
	if err != nil {
		return nil, fmt.Errorf("finding subcontractor: %w", err)
	}
	if sub == nil {
		return nil, fmt.Errorf("%w: subcontractor %s not found", domain.ErrValidation, input.SubcontractorID)
	}
	site, err := s.siteRepo.FindByID(ctx, companyID, input.SiteID)
	if err != nil {
		return nil, fmt.Errorf("finding site: %w", err)
	}
	if site == nil {
		return nil, fmt.Errorf("%w: site %s not found", domain.ErrValidation, input.SiteID)
	}

	contract := &domain.Contract{
		CompanyID:       companyID,
		SubcontractorID: input.SubcontractorID,
		SiteID:          input.SiteID,
		Title:           input.Title,
		Amount:          input.Amount,
		Status:          input.Status,
		PaymentMethod:   input.PaymentMethod,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
	}
	if err := s.repo.Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("creating contract: %w", err)
	}
	return contract, nil
}

// GetContract は指定されたテナント・IDの契約を取得する。
func (s *ContractService) GetContract(ctx context.Context, companyID, id string) (*domain.Contract, error) {
	contract, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding contract: %w", err)
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}
	return contract, nil
}

// ListContracts は指定されたテナントの契約一覧を取得する。
func (s *ContractService) ListContracts(ctx context.Context, companyID string, filter domain.ContractFilter) ([]*domain.Contract, *domain.PageInfo, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, nil, fmt.Errorf("%w: invalid status %q", domain.ErrValidation, filter.Status)
	}
	filter.Page, filter.Limit = domain.NormalizePage(filter.Page, filter.Limit)

	contracts, total, err := s.repo.List(ctx, companyID, filter)
	if err != nil {
		return nil, nil, fmt.Errorf("listing contracts: %w", err)
	}
	return contracts, domain.NewPageInfo(filter.Page, filter.Limit, total), nil
}

// UpdateContract は指定された契約を部分更新して更新後の状態を返す。
func (s *ContractService) UpdateContract(ctx context.Context, companyID, id string, update *domain.ContractUpdate) (*domain.Contract, error) {
	if err := update.Validate(); err != nil {
		return nil, err
	}

	contract, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("finding contract: %w", err)
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	if err := s.repo.Update(ctx, companyID, id, update); err != nil {
		return nil, fmt.Errorf("updating contract: %w", err)
	}

	updated, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return nil, fmt.Errorf("reloading contract: %w", err)
	}
	return updated, nil
}

// DeleteContract は指定された契約を論理削除する。
func (s *ContractService) DeleteContract(ctx context.Context, companyID, id string) error {
	contract, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("finding contract: %w", err)
	}
	if contract == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, companyID, id); err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}
	return nil
}
