package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// ContractModel はgorm用のモデル定義。
type ContractModel struct {
	ID              string  `gorm:"type:uuid;primaryKey"`
	CompanyID       string  `gorm:"type:uuid;not null;index:idx_contracts_company_id"`
	SubcontractorID string  `gorm:"type:uuid;not null"`
	SiteID          string  `gorm:"type:uuid;not null"`
	Title           string  `gorm:"type:varchar(255);not null"`
	Amount          float64 `gorm:"type:numeric(14,2);not null;default:0"`
	Status          string  `gorm:"type:contract_status;not null;default:'draft'"`
	PaymentMethod   string  `gorm:"type:payment_method;not null;default:'bank_transfer'"`
	StartDate       *time.Time `gorm:"type:date"`
	EndDate         *time.Time `gorm:"type:date"`
	CreatedAt       time.Time  `gorm:"not null;autoCreateTime"`
	UpdatedAt       time.Time  `gorm:"not null;autoUpdateTime"`
	DeletedAt       gorm.DeletedAt
}

// TableName はテーブル名を返す。
func (ContractModel) TableName() string {
	return "contracts"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *ContractModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *ContractModel) toDomain() *domain.Contract {
	return &domain.Contract{
		ID:              m.ID,
		CompanyID:       m.CompanyID,
		SubcontractorID: m.SubcontractorID,
		SiteID:          m.SiteID,
		Title:           m.Title,
		Amount:          m.Amount,
		Status:          domain.ContractStatus(m.Status),
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ContractRepository は契約のデータアクセスを提供する。
type ContractRepository struct {
	db *gorm.DB
}

// NewContractRepository は新しいContractRepositoryを生成する。
func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

// Create は新しい契約を保存する。
func (r *ContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	model := &ContractModel{
		CompanyID:       c.CompanyID,
		SubcontractorID: c.SubcontractorID,
		SiteID:          c.SiteID,
		Title:           c.Title,
		Amount:          c.Amount,
		Status:          string(c.Status),
		PaymentMethod:   string(c.PaymentMethod),
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create contract",
			"operation", "create_contract",
			"company_id", c.CompanyID,
			"error", err,
		)
		return err
	}
	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID は指定されたテナント・IDの契約を取得する。存在しない場合はnilを返す。
func (r *ContractRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Contract, error) {
	var model ContractModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find contract",
			"operation", "find_contract_by_id",
			"company_id", companyID,
			"contract_id", id,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}

func (r *ContractRepository) listQuery(ctx context.Context, companyID string, filter domain.ContractFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&ContractModel{}).Where("company_id = ?", companyID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.SubcontractorID != "" {
		q = q.Where("subcontractor_id = ?", filter.SubcontractorID)
	}
	if filter.SiteID != "" {
		q = q.Where("site_id = ?", filter.SiteID)
	}
	return q
}

// List は指定されたテナントの契約一覧を新しい順に返す。
func (r *ContractRepository) List(ctx context.Context, companyID string, filter domain.ContractFilter) ([]*domain.Contract, int64, error) {
	var total int64
	if err := r.listQuery(ctx, companyID, filter).Count(&total).Error; err != nil {
		slog.ErrorContext(ctx, "failed to count contracts",
			"operation", "list_contracts",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	var models []ContractModel
	err := r.listQuery(ctx, companyID, filter).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list contracts",
			"operation", "list_contracts",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	contracts := make([]*domain.Contract, len(models))
	for i, m := range models {
		contracts[i] = m.toDomain()
	}
	return contracts, total, nil
}

// Update は指定された契約を部分更新する。
func (r *ContractRepository) Update(ctx context.Context, companyID, id string, update *domain.ContractUpdate) error {
	values := map[string]any{}
	if update.Title != nil {
		values["title"] = *update.Title
	}
	if update.Amount != nil {
		values["amount"] = *update.Amount
	}
	if update.Status != nil {
		values["status"] = string(*update.Status)
	}
	if update.PaymentMethod != nil {
		values["payment_method"] = string(*update.PaymentMethod)
	}
	if update.StartDate != nil {
		values["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		values["end_date"] = *update.EndDate
	}

	err := r.db.WithContext(ctx).
		Model(&ContractModel{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(values).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to update contract",
			"operation", "update_contract",
			"company_id", companyID,
			"contract_id", id,
			"error", err,
		)
		return err
	}
	return nil
}

// Delete は指定された契約をソフトデリートする。
func (r *ContractRepository) Delete(ctx context.Context, companyID, id string) error {
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&ContractModel{}).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete contract",
			"operation", "delete_contract",
			"company_id", companyID,
			"contract_id", id,
			"error", err,
		)
		return err
	}
	return nil
}
