package domain

import "time"

// SiteStatus は現場のステータスを表す。
type SiteStatus string

const (
	SiteStatusPlanning  SiteStatus = "planning"
	SiteStatusActive    SiteStatus = "active"
	SiteStatusOnHold    SiteStatus = "on_hold"
	SiteStatusCompleted SiteStatus = "completed"
)

// Valid はステータスが定義済みか判定する。
func (s SiteStatus) Valid() bool {
	switch s {
	case SiteStatusPlanning, SiteStatusActive, SiteStatusOnHold, SiteStatusCompleted:
		return true
	}
	return false
}

// Site は建設現場エンティティを表す。
type Site struct {
	ID        string
	CompanyID string
	Name      string
	Address   string
	Status    SiteStatus
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SiteFilter は現場一覧の絞り込み条件を表す。
type SiteFilter struct {
	Status SiteStatus
	Search string
	Page   int
	Limit  int
}

// SiteUpdate は現場の部分更新を表す。nilのフィールドは変更しない。
type SiteUpdate struct {
	Name      *string
	Address   *string
	Status    *SiteStatus
	StartDate *time.Time
	EndDate   *time.Time
}

// Validate は少なくとも1つのフィールドが指定されているか検証する。
func (u *SiteUpdate) Validate() error {
	if u.Name == nil && u.Address == nil && u.Status == nil && u.StartDate == nil && u.EndDate == nil {
		return ErrNoFieldsToUpdate
	}
	if u.Status != nil && !u.Status.Valid() {
		return ErrValidation
	}
	return nil
}
