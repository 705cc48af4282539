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

// JobModel はgorm用のモデル定義。
type JobModel struct {
	ID          string  `gorm:"type:uuid;primaryKey"`
	CompanyID   string  `gorm:"type:uuid;not null;index:idx_jobs_company_id"`
	SiteID      string  `gorm:"type:uuid;not null;index:idx_jobs_site_id"`
	AssignedTo  *string `gorm:"type:uuid"`
	CreatedBy   string  `gorm:"type:uuid;not null"`
	Title       string  `gorm:"type:varchar(255);not null"`
	Description string  `gorm:"type:text"`
	Status      string  `gorm:"type:job_status;not null;default:'pending'"`
	Priority    string  `gorm:"type:priority_level;not null;default:'medium'"`
	StartDate   *time.Time `gorm:"type:date"`
	DueDate     *time.Time `gorm:"type:date"`
	CreatedAt   time.Time  `gorm:"not null;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"not null;autoUpdateTime"`
	DeletedAt   gorm.DeletedAt
}

// TableName はテーブル名を返す。
func (JobModel) TableName() string {
	return "jobs"
}

// BeforeCreate はレコード作成前にUUIDを生成する。
func (m *JobModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

func (m *JobModel) toDomain() *domain.Job {
	return &domain.Job{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		SiteID:      m.SiteID,
		AssignedTo:  m.AssignedTo,
		CreatedBy:   m.CreatedBy,
		Title:       m.Title,
		Description: m.Description,
		Status:      domain.JobStatus(m.Status),
		Priority:    domain.Priority(m.Priority),
		StartDate:   m.StartDate,
		DueDate:     m.DueDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// JobRepository は作業のデータアクセスを提供する。
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository は新しいJobRepositoryを生成する。
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create は新しい作業を保存する。
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	model := &JobModel{
		CompanyID:   job.CompanyID,
		SiteID:      job.SiteID,
		AssignedTo:  job.AssignedTo,
		CreatedBy:   job.CreatedBy,
		Title:       job.Title,
		Description: job.Description,
		Status:      string(job.Status),
		Priority:    string(job.Priority),
		StartDate:   job.StartDate,
		DueDate:     job.DueDate,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		slog.ErrorContext(ctx, "failed to create job",
			"operation", "create_job",
			"company_id", job.CompanyID,
			"site_id", job.SiteID,
			"error", err,
		)
		return err
	}
	job.ID = model.ID
	job.CreatedAt = model.CreatedAt
	job.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID は指定されたテナント・IDの作業を取得する。存在しない場合はnilを返す。
func (r *JobRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Job, error) {
	var model JobModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		slog.ErrorContext(ctx, "failed to find job",
			"operation", "find_job_by_id",
			"company_id", companyID,
			"job_id", id,
			"error", err,
		)
		return nil, err
	}
	return model.toDomain(), nil
}

func (r *JobRepository) listQuery(ctx context.Context, companyID string, filter domain.JobFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&JobModel{}).Where("company_id = ?", companyID)
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", string(filter.Priority))
	}
	if filter.SiteID != "" {
		q = q.Where("site_id = ?", filter.SiteID)
	}
	if filter.AssignedTo != "" {
		q = q.Where("assigned_to = ?", filter.AssignedTo)
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}
	return q
}

// List は指定されたテナントの作業一覧を新しい順に返す。
// 件数は一覧と同一の述語で数える。
func (r *JobRepository) List(ctx context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, int64, error) {
	var total int64
	if err := r.listQuery(ctx, companyID, filter).Count(&total).Error; err != nil {
		slog.ErrorContext(ctx, "failed to count jobs",
			"operation", "list_jobs",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	var models []JobModel
	err := r.listQuery(ctx, companyID, filter).
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&models).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list jobs",
			"operation", "list_jobs",
			"company_id", companyID,
			"error", err,
		)
		return nil, 0, err
	}

	jobs := make([]*domain.Job, len(models))
	for i, m := range models {
		jobs[i] = m.toDomain()
	}
	return jobs, total, nil
}

// ListBySite は指定された現場の作業を開始日の降順で返す。
func (r *JobRepository) ListBySite(ctx context.Context, companyID, siteID string) ([]*domain.Job, error) {
	var models []JobModel
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND site_id = ?", companyID, siteID).
		Order("start_date DESC").
		Find(&models).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list jobs by site",
			"operation", "list_jobs_by_site",
			"company_id", companyID,
			"site_id", siteID,
			"error", err,
		)
		return nil, err
	}

	jobs := make([]*domain.Job, len(models))
	for i, m := range models {
		jobs[i] = m.toDomain()
	}
	return jobs, nil
}

// mobileJobRow はモバイル向けビューの結合結果行。
type mobileJobRow struct {
	ID       string
	Title    string
	Status   string
	Priority string
	SiteName string
	DueDate  *time.Time
}

// ListAssignedTo は指定されたユーザーに割り当てられた作業のモバイル向けビューを返す。
// 現場名を結合し、期限の昇順に並べる。
func (r *JobRepository) ListAssignedTo(ctx context.Context, companyID, userID string) ([]*domain.MobileJob, error) {
	var rows []mobileJobRow
	err := r.db.WithContext(ctx).
		Model(&JobModel{}).
		Select("jobs.id, jobs.title, jobs.status, jobs.priority, sites.name AS site_name, jobs.due_date").
		Joins("JOIN sites ON sites.id = jobs.site_id AND sites.deleted_at IS NULL").
		Where("jobs.company_id = ? AND jobs.assigned_to = ?", companyID, userID).
		Where("jobs.status IN ?", []string{string(domain.JobStatusPending), string(domain.JobStatusInProgress), string(domain.JobStatusOnHold)}).
		Order("jobs.due_date ASC").
		Scan(&rows).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to list assigned jobs",
			"operation", "list_assigned_jobs",
			"company_id", companyID,
			"user_id", userID,
			"error", err,
		)
		return nil, err
	}

	jobs := make([]*domain.MobileJob, len(rows))
	for i, row := range rows {
		jobs[i] = &domain.MobileJob{
			ID:       row.ID,
			Title:    row.Title,
			Status:   domain.JobStatus(row.Status),
			Priority: domain.Priority(row.Priority),
			SiteName: row.SiteName,
			DueDate:  row.DueDate,
		}
	}
	return jobs, nil
}

// CountActiveByAssignee は指定されたユーザーの進行中作業数を返す。
func (r *JobRepository) CountActiveByAssignee(ctx context.Context, companyID, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&JobModel{}).
		Where("company_id = ? AND assigned_to = ?", companyID, userID).
		Where("status IN ?", []string{string(domain.JobStatusPending), string(domain.JobStatusInProgress)}).
		Count(&count).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to count active jobs",
			"operation", "count_active_jobs",
			"company_id", companyID,
			"user_id", userID,
			"error", err,
		)
		return 0, err
	}
	return count, nil
}

// Update は指定された作業を部分更新する。
func (r *JobRepository) Update(ctx context.Context, companyID, id string, update *domain.JobUpdate) error {
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
	if update.Priority != nil {
		values["priority"] = string(*update.Priority)
	}
	if update.AssignedTo != nil {
		values["assigned_to"] = *update.AssignedTo
	}
	if update.StartDate != nil {
		values["start_date"] = *update.StartDate
	}
	if update.DueDate != nil {
		values["due_date"] = *update.DueDate
	}

	err := r.db.WithContext(ctx).
		Model(&JobModel{}).
		Where("company_id = ? AND id = ?", companyID, id).
		Updates(values).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to update job",
			"operation", "update_job",
			"company_id", companyID,
			"job_id", id,
			"error", err,
		)
		return err
	}
	return nil
}

// Delete は指定された作業をソフトデリートする。
func (r *JobRepository) Delete(ctx context.Context, companyID, id string) error {
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		Delete(&JobModel{}).Error
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete job",
			"operation", "delete_job",
			"company_id", companyID,
			"job_id", id,
			"error", err,
		)
		return err
	}
	return nil
}
