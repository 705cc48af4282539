// Package repository はデータアクセス層の実装を提供する。
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

// SiteModel はgorm用のモデル定義。
type SiteModel struct {
	ID        string  `gorm:"type:uuid;primaryKey"`
	CompanyID string  `gorm:"type:uuid;not null;index:idx_sites_company_id"`
	Name      string  `gorm:"type:varchar(255);not null"`
	Address   string  `gorm:"type:text"`
	Status    string  `gorm:"type:site_status;not null;default:'planning'"`
	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt
}

// TableName はテーブル名を返す。
func (SiteModel) TableName() string {
	return "sites"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *SiteModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *SiteModel) toDomain() *domain.Site {
	return &domain.Site{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Address:   m.Address,
		Status:    domain.SiteStatus(m.Status),
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// SiteRepository は現場のデータアクセスを提供する。
type SiteRepository struct {
	db *gorm.DB
}

// NewSiteRepository は新しいSiteRepositoryを生成する。
func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

// Create は新しい現場を保存する。
func (r *SiteRepository) Create(ctx context.Context, site *domain.Site) error {
	model := &SiteModel{
		CompanyID: site.CompanyID,
		Name:      site.Name,
		Address:   site.Address,
		Status:    string(site.Status),
		StartDate: site.StartDate,
		EndDate:   site.EndDate,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create site",
			"operation", "create_site",
			"company_id", site.CompanyID,
			"error", err,
		)
		return err
	}
	site.ID = model.ID
	site.CreatedAt = model.CreatedAt
	site.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID は指定されたテナント・IDの現場を取得する。存在しない場合はnilを返す。
// 他テナントの現場は存在と区別できない（どちらもnil）。
func (r *SiteRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Site, error) {
	var model SiteModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find site",
			"operation", "find_site_by_id",
			"company_id", companyID,
			"site_id", id,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}

// listQuery は一覧・件数の両方に使う共通の絞り込みを構築する。
// テナント述語は必須。ソフトデリート除外はgormのDeletedAtで常に適用される。
func (r *SiteRepository) listQuery(ctx context.Context, companyID string, filter domain.SiteFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&SiteModel{}).Where("company_id = ?", companyID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ?", pattern, pattern)
	}
	return q
}

// List は指定されたテナントの現場一覧を新しい順に返す。
func (r *SiteRepository) List(ctx context.Context, companyID string, filter domain.SiteFilter) ([]*domain.Site, int64, error) {
	var total int64
	if err := r.listQuery(ctx, companyID, filter).Count(&total).Error; err != nil {
		slog.ErrorContext(ctx, "failed to count sites",
			"operation", "list_sites",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	var models []SiteModel
	err := r.listQuery(ctx, companyID, filter).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list sites",
			"operation", "list_sites",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	sites := make([]*domain.Site, len(models))
	for i, m := range models {
		sites[i] = m.toDomain()
	}
	return sites, total, nil
}

// Update は指定された現場を部分更新する。
func (r *SiteRepository) Update(ctx context.Context, companyID, id string, update *domain.SiteUpdate) error {
	values := map[string]any{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Address != nil {
		values["address"] = *update.Address
	}
	if update.Status != nil {
		values["status"] = string(*update.Status)
	}
	if update.StartDate != nil {
		values["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		values["end_date"] = *update.EndDate
	}

	err := r.db.WithContext(ctx).
		Model(&SiteModel{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(values).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to update site",
			"operation", "update_site",
			"company_id", companyID,
			"site_id", id,
			"error", err,
		)
		return err
	}
	return nil
}

// Delete は指定された現場をソフトデリートする。
func (r *SiteRepository) Delete(ctx context.Context, companyID, id string) error {
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&SiteModel{}).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete site",
			"operation", "delete_site",
			"company_id", companyID,
			"site_id", id,
			"error", err,
		)
		return err
	}
	return nil
}
