package domain

import "time"

// JobStatus は作業のステータスを表す。
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusOnHold     JobStatus = "on_hold"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// Valid はステータスが定義済みか判定する。
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusOnHold, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// Priority は作業の優先度を表す。
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Valid は優先度が定義済みか判定する。
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Job は現場の作業エンティティを表す。
type Job struct {
	ID          string
	CompanyID   string
	SiteID      string
	AssignedTo  *string
	CreatedBy   string
	Title       string
	Description string
	Status      JobStatus
	Priority    Priority
	StartDate   *time.Time
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// JobFilter は作業一覧の絞り込み条件を表す。
type JobFilter struct {
	Status     JobStatus
	Priority   Priority
	SiteID     string
	AssignedTo string
	Search     string
	Page       int
	Limit      int
}

// JobUpdate は作業の部分更新を表す。nilのフィールドは変更しない。
type JobUpdate struct {
	Title       *string
	Description *string
	Status      *JobStatus
	Priority    *Priority
	AssignedTo  *string
	StartDate   *time.Time
	DueDate     *time.Time
}

// Validate は少なくとも1つのフィールドが指定されているか検証する。
func (u *JobUpdate) Validate() error {
	if u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil &&
		u.AssignedTo == nil && u.StartDate == nil && u.DueDate == nil {
		return ErrNoFieldsToUpdate
	}
	if u.Status != nil && !u.Status.Valid() {
		return ErrValidation
	}
	if u.Priority != nil && !u.Priority.Valid() {
		return ErrValidation
	}
	return nil
}

// MobileJob は作業のモバイル向け読み取りビューを表す。
type MobileJob struct {
	ID       string
	Title    string
	Status   JobStatus
	Priority Priority
	SiteName string
	DueDate  *time.Time
}
