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

// UserModel はgorm用のモデル定義。作業員プロフィールもこのテーブルから読む。
type UserModel struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	CompanyID string `gorm:"type:uuid;not null;index:idx_users_company_id"`
	Name      string `gorm:"type:varchar(255);not null"`
	Email     string `gorm:"type:varchar(255);not null;unique"`
	Phone     string `gorm:"type:varchar(32)"`
	Role      string `gorm:"type:user_role;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"`
	DeletedAt gorm.DeletedAt
}

// TableName はテーブル名を返す。
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *UserModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		CompanyID: m.CompanyID,
		Name:      m.Name,
		Email:     m.Email,
		Phone:     m.Phone,
		Role:      domain.Role(m.Role),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// workerRoles は作業員一覧に含めるロール。
var workerRoles = []string{string(domain.RoleWorker), string(domain.RoleForeman)}

// WorkerRepository は作業員（usersテーブル）のデータアクセスを提供する。
type WorkerRepository struct {
	db *gorm.DB
}

// NewWorkerRepository は新しいWorkerRepositoryを生成する。
func NewWorkerRepository(db *gorm.DB) *WorkerRepository {
	return &WorkerRepository{db: db}
}

// FindByID は指定されたテナント・IDのユーザーを取得する。存在しない場合はnilを返す。
func (r *WorkerRepository) FindByID(ctx context.Context, companyID, id string) (*domain.User, error) {
	var model UserModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find user",
			"operation", "find_user_by_id",
			"company_id", companyID,
			"user_id", id,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}

// ListWorkers は指定されたテナントの作業員一覧を新しい順に返す。
func (r *WorkerRepository) ListWorkers(ctx context.Context, companyID string, page, limit int) ([]*domain.User, int64, error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).
			Model(&UserModel{}).
			Where("company_id = ?", companyID).
			Where("role IN ?", workerRoles)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		slog.ErrorContext(ctx, "failed to count workers",
			"operation", "list_workers",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	var models []UserModel
	err := base().
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list workers",
			"operation", "list_workers",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	workers := make([]*domain.User, len(models))
	for i, m := range models {
		workers[i] = m.toDomain()
	}
	return workers, total, nil
}
