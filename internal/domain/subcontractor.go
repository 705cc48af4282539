package domain

import "time"

// Subcontractor は下請業者エンティティを表す。
type Subcontractor struct {
	ID        string
	CompanyID string
	Name      string
	Trade     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubcontractorFilter は下請業者一覧の絞り込み条件を表す。
type SubcontractorFilter struct {
	Trade  string
	Search string
	Page   int
	Limit  int
}

// SubcontractorUpdate は下請業者の部分更新を表す。nilのフィールドは変更しない。
type SubcontractorUpdate struct {
	Name  *string
	Trade *string
	Email *string
	Phone *string
}

// Validate は少なくとも1つのフィールドが指定されているか検証する。
func (u *SubcontractorUpdate) Validate() error {
	if u.Name == nil && u.Trade == nil && u.Email == nil && u.Phone == nil {
		return ErrNoFieldsToUpdate
	}
	return nil
}
