package domain

import "time"

// ContractStatus は契約のステータスを表す。
type ContractStatus string

const (
	ContractStatusDraft      ContractStatus = "draft"
	ContractStatusActive     ContractStatus = "active"
	ContractStatusCompleted  ContractStatus = "completed"
	ContractStatusTerminated ContractStatus = "terminated"
)

// Valid はステータスが定義済みか判定する。
func (s ContractStatus) Valid() bool {
	switch s {
	case ContractStatusDraft, ContractStatusActive, ContractStatusCompleted, ContractStatusTerminated:
		return true
	}
	return false
}

// PaymentMethod は支払方法を表す。
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
)

// Valid は支払方法が定義済みか判定する。
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodCash, PaymentMethodCard:
		return true
	}
	return false
}

// Contract は下請業者との契約エンティティを表す。
type Contract struct {
	ID              string
	CompanyID       string
	SubcontractorID string
	SiteID          string
	Title           string
	Amount          float64
	Status          ContractStatus
	PaymentMethod   PaymentMethod
	StartDate       *time.Time
	EndDate         *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ContractFilter は契約一覧の絞り込み条件を表す。
type ContractFilter struct {
	Status          ContractStatus
	SubcontractorID string
	SiteID          string
	Page            int
	Limit           int
}

// ContractUpdate は契約の部分更新を表す。nilのフィールドは変更しない。
type ContractUpdate struct {
	Title         *string
	Amount        *float64
	Status        *ContractStatus
	PaymentMethod *PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
}

// Validate は少なくとも1つのフィールドが指定されているか検証する。
func (u *ContractUpdate) Validate() error {
	if u.Title == nil && u.Amount == nil && u.Status == nil && u.PaymentMethod == nil &&
		u.StartDate == nil && u.EndDate == nil {
		return ErrNoFieldsToUpdate
	}
	if u.Status != nil && !u.Status.Valid() {
		return ErrValidation
	}
	if u.PaymentMethod != nil && !u.PaymentMethod.Valid() {
		return ErrValidation
	}
	return nil
}
