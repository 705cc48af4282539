package repository

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// VariationModel はgorm用のモデル定義。
type VariationModel struct {
	ID          string  `gorm:"type:uuid;primaryKey"`
	CompanyID   string  `gorm:"type:uuid;not null;index:idx_variations_company_id"`
	SiteID      string  `gorm:"type:uuid;not null;index:idx_variations_site_id"`
	JobID       *string `gorm:"type:uuid"`
	Title       string  `gorm:"type:varchar(255);not null"`
	Description string  `gorm:"type:text"`
	Status      string  `gorm:"type:variation_status;not null;default:'proposed'"`
	CostChange  float64 `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt
}

// TableName はテーブル名を返す。
func (VariationModel) TableName() string {
	return "variations"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *VariationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *VariationModel) toDomain() *domain.Variation {
	return &domain.Variation{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		SiteID:      m.SiteID,
		JobID:       m.JobID,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.VariationStatus(m.Status),
		CostChange:  m.CostChange,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// VariationRepository は設計変更のデータアクセスを提供する。
type VariationRepository struct {
	db *gorm.DB
}

// NewVariationRepository は新しいVariationRepositoryを生成する。
func NewVariationRepository(db *gorm.DB) *VariationRepository {
	return &VariationRepository{db: db}
}

// Create は新しい設計変更を保存する。
func (r *VariationRepository) Create(ctx context.Context, v *domain.Variation) error {
	model := &VariationModel{
		CompanyID:   v.CompanyID,
		SiteID:      v.SiteID,
		JobID:       v.JobID,
		Title:       v.Title,
		Description: v.Description,
		Status:      string(v.Status),
		CostChange:  v.CostChange,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create variation",
			"operation", "create_variation",
			"company_id", v.CompanyID,
			"error", err,
		)
		return err
	}
	v.ID = model.ID
	v.CreatedAt = model.CreatedAt
	v.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID は指定されたテナント・IDの設計変更を取得する。存在しない場合はnilを返す。
func (r *VariationRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Variation, error) {
	var model VariationModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find variation",
			"operation", "find_variation_by_id",
			"company_id", companyID,
			"variation_id", id,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}

func (r *VariationRepository) listQuery(ctx context.Context, companyID string, filter domain.VariationFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&VariationModel{}).Where("company_id = ?", companyID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.SiteID != "" {
		q = q.Where("site_id = ?", filter.SiteID)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return q
}

// List は指定されたテナントの設計変更一覧を新しい順に返す。
func (r *VariationRepository) List(ctx context.Context, companyID string, filter domain.VariationFilter) ([]*domain.Variation, int64, error) {
	var total int64
	if err := r.listQuery(ctx, companyID, filter).Count(&total).Error; err != nil {
		slog.ErrorContext(ctx, "failed to count variations",
			"operation", "list_variations",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	var models []VariationModel
	err := r.listQuery(ctx, companyID, filter).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list variations",
			"operation", "list_variations",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	variations := make([]*domain.Variation, len(models))
	for i, m := range models {
		variations[i] = m.toDomain()
	}
	return variations, total, nil
}

// Update は指定された設計変更を部分更新する。
func (r *VariationRepository) Update(ctx context.Context, companyID, id string, update *domain.VariationUpdate) error {
	values := map[string]any{}
	if update.Title != nil {
		values["title"] = *update.Title
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if update.Status != nil {
		values["status"] = string(*update.Status)
	}
	if update.CostChange != nil {
		values["cost_change"] = *update.CostChange
	}

	err := r.db.WithContext(ctx).
		Model(&VariationModel{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(values).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to update variation",
			"operation", "update_variation",
			"company_id", companyID,
			"variation_id", id,
			"error", err,
		)
		return err
	}
	return nil
}

// Delete は指定された設計変更をソフトデリートする。
func (r *VariationRepository) Delete(ctx context.Context, companyID, id string) error {
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&VariationModel{}).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete variation",
			"operation", "delete_variation",
			"company_id", companyID,
			"variation_id", id,
			"error", err,
		)
		return err
	}
	return nil
}
