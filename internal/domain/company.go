// Package domain はドメインモデルとビジネスルールを定義する。
package domain

import "time"

// Company はテナント（会社）エンティティを表す。データ分離の単位。
type Company struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// User は会社に所属するユーザーを表す。
type User struct {
	ID        string
	CompanyID string
	Name      string
	Email     string
	Phone     string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WorkerProfile は作業員のモバイル向けプロフィールビューを表す。
type WorkerProfile struct {
	User
	ActiveJobCount int64
}
