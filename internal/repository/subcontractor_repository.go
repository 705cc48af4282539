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

// SubcontractorModel はgorm用のモデル定義。
type SubcontractorModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	CompanyID string `gorm:"type:uuid;not null;index"`
	Name      string `gorm:"type:varchar(255);not null"`
	Trade     string `gorm:"type:varchar(128)"`
	Email     string `gorm:"type:varchar(255)"`
	Phone     string `gorm:"type:varchar(32)"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt
}

// TableName はテーブル名を返す。
func (SubcontractorModel) TableName() string {
	return "subcontractors"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *SubcontractorModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *SubcontractorModel) toDomain() *domain.Subcontractor {
	return &domain.Subcontractor{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Trade:     m.Trade,
		Email:     m.Email,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SubcontractorRepository は下請業者のデータアクセスを提供する。
type SubcontractorRepository struct {
	db *gorm.DB
}

// NewSubcontractorRepository は新しいSubcontractorRepositoryを生成する。
func NewSubcontractorRepository(db *gorm.DB) *SubcontractorRepository {
	return &SubcontractorRepository{db: db}
}

// Create は新しい下請業者を保存する。
func (r *SubcontractorRepository) Create(ctx context.Context, s *domain.Subcontractor) error {
	model := &SubcontractorModel{
		CompanyID: s.CompanyID,
		Name:      s.Name,
		Trade:     s.Trade,
		Email:     s.Email,
		Phone:     s.Phone,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create subcontractor",
			"operation", "create_subcontractor",
			"company_id", s.CompanyID,
			"error", err,
		)
		return err
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID は指定されたテナント・IDの下請業者を取得する。存在しない場合はnilを返す。
func (r *SubcontractorRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Subcontractor, error) {
	var model SubcontractorModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find subcontractor",
			"operation", "find_subcontractor_by_id",
			"company_id", companyID,
			"subcontractor_id", id,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}

func (r *SubcontractorRepository) listQuery(ctx context.Context, companyID string, filter domain.SubcontractorFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&SubcontractorModel{}).Where("company_id = ?", companyID)
	if filter.Trade != "" {
		q = q.Where("trade = ?", filter.Trade)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ?", pattern)
	}
	return q
}

// List は指定されたテナントの下請業者一覧を新しい順に返す。
func (r *SubcontractorRepository) List(ctx context.Context, companyID string, filter domain.SubcontractorFilter) ([]*domain.Subcontractor, int64, error) {
	var total int64
	if err := r.listQuery(ctx, companyID, filter).Count(&total).Error; err != nil {
		slog.ErrorContext(ctx, "failed to count subcontractors",
			"operation", "list_subcontractors",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	var models []SubcontractorModel
	err := r.listQuery(ctx, companyID, filter).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list subcontractors",
			"operation", "list_subcontractors",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	subs := make([]*domain.Subcontractor, len(models))
	for i, m := range models {
		subs[i] = m.toDomain()
	}
	return subs, total, nil
}

// Update は指定された下請業者を部分更新する。
func (r *SubcontractorRepository) Update(ctx context.Context, companyID, id string, update *domain.SubcontractorUpdate) error {
	values := map[string]any{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Trade != nil {
		values["trade"] = *update.Trade
	}
	if update.Email != nil {
		values["email"] = *update.Email
	}
	if update.Phone != nil {
		values["phone"] = *update.Phone
	}

	err := r.db.WithContext(ctx).
		Model(&SubcontractorModel{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(values).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to update subcontractor",
			"operation", "update_subcontractor",
			"company_id", companyID,
			"subcontractor_id", id,
			"error", err,
		)
		return err
	}
	return nil
}

// Delete は指定された下請業者をソフトデリートする。
func (r *SubcontractorRepository) Delete(ctx context.Context, companyID, id string) error {
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&SubcontractorModel{}).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete subcontractor",
			"operation", "delete_subcontractor",
			"company_id", companyID,
			"subcontractor_id", id,
			"error", err,
		)
		return err
	}
	return nil
}
