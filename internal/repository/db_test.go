package repository

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB はテスト用のインメモリSQLiteデータベースを作成する。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// 全テーブルを作成（SQLite用にUUID/ENUM→TEXT変換）
	sql := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			phone TEXT,
			role TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at DATETIME
		);
		CREATE TABLE sites (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			name TEXT NOT NULL,
			address TEXT,
			status TEXT NOT NULL DEFAULT 'planning',
			start_date DATETIME,
			end_date DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at DATETIME
		);
		CREATE TABLE jobs (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			site_id TEXT NOT NULL,
			assigned_to TEXT,
			created_by TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'pending',
			priority TEXT NOT NULL DEFAULT 'medium',
			start_date DATETIME,
			due_date DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at DATETIME
		);
		CREATE TABLE subcontractors (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			name TEXT NOT NULL,
			trade TEXT,
			email TEXT,
			phone TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at DATETIME
		);
		CREATE TABLE contracts (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			subcontractor_id TEXT NOT NULL,
			site_id TEXT NOT NULL,
			title TEXT NOT NULL,
			amount REAL NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'draft',
			payment_method TEXT NOT NULL DEFAULT 'bank_transfer',
			start_date DATETIME,
			end_date DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at DATETIME
		);
		CREATE TABLE variations (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			site_id TEXT NOT NULL,
			job_id TEXT,
			title TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL DEFAULT 'proposed',
			cost_change REAL NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			deleted_at DATETIME
		);
	`

	if err := db.Exec(sql).Error; err != nil {
		t.Fatalf("failed to create test tables: %v", err)
	}

	return db
}
