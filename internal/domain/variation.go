package domain

import "time"

// VariationStatus は設計変更のステータスを表す。
type VariationStatus string

const (
	VariationStatusProposed  VariationStatus = "proposed"
	VariationStatusApproved  VariationStatus = "approved"
	VariationStatusRejected  VariationStatus = "rejected"
	VariationStatusCompleted VariationStatus = "completed"
)

// Valid はステータスが定義済みか判定する。
func (s VariationStatus) Valid() bool {
	switch s {
	case VariationStatusProposed, VariationStatusApproved, VariationStatusRejected, VariationStatusCompleted:
		return true
	}
	return false
}

// Variation は契約範囲外の設計変更（バリエーション）エンティティを表す。
type Variation struct {
	ID          string
	CompanyID   string
	SiteID      string
	JobID       *string
	Title       string
	Description string
	Status      VariationStatus
	CostChange  float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// VariationFilter は設計変更一覧の絞り込み条件を表す。
type VariationFilter struct {
	Status VariationStatus
	SiteID string
	Search string
	Page   int
	Limit  int
}

// VariationUpdate は設計変更の部分更新を表す。nilのフィールドは変更しない。
type VariationUpdate struct {
	Title       *string
	Description *string
	Status      *VariationStatus
	CostChange  *float64
}

// Validate は少なくとも1つのフィールドが指定されているか検証する。
func (u *VariationUpdate) Validate() error {
	if u.Title == nil && u.Description == nil && u.Status == nil && u.CostChange == nil {
		return ErrNoFieldsToUpdate
	}
	if u.Status != nil && !u.Status.Valid() {
		return ErrValidation
	}
	return nil
}
