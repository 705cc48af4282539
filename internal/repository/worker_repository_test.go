package repository

import (
	"context"
	"testing"

	"gorm.io/gorm"
)

func insertTestUser(t *testing.T, db *gorm.DB, id, companyID, name, email, role string) {
	t.Helper()
	if err := db.Exec("INSERT INTO users (id, company_id, name, email, role) VALUES (?, ?, ?, ?, ?)",
		id, companyID, name, email, role).Error; err != nil {
		t.Fatalf("failed to insert test user: %v", err)
	}
}

func TestWorkerRepository_ListWorkers_FiltersByRole(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewWorkerRepository(db)

	insertTestUser(t, db, "user-1", "company-1", "Alex Carter", "alex@example.com", "worker")
	insertTestUser(t, db, "user-2", "company-1", "Sam Reid", "sam@example.com", "foreman")
	insertTestUser(t, db, "user-3", "company-1", "Pat Moore", "pat@example.com", "company_admin")
	insertTestUser(t, db, "user-4", "company-2", "Other Tenant", "other@example.com", "worker")

	workers, total, err := repo.ListWorkers(ctx, "company-1", 1, 20)
	if err != nil {
		t.Fatalf("ListWorkers failed: %v", err)
	}
	// worker/foremanのみ、管理者と他テナントは除外
	if total != 2 {
		t.Errorf("expected total=2, got %d", total)
	}
	if len(workers) != 2 {
		t.Fatalf("expected 2 workers, got %d", len(workers))
	}
	for _, w := range workers {
		if w.CompanyID != "company-1" {
			t.Errorf("expected company-1, got %s", w.CompanyID)
		}
	}
}

func TestWorkerRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewWorkerRepository(db)

	insertTestUser(t, db, "user-1", "company-1", "Alex Carter", "alex@example.com", "worker")

	user, err := repo.FindByID(ctx, "company-1", "user-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.Name != "Alex Carter" {
		t.Errorf("expected name=Alex Carter, got %s", user.Name)
	}

	// 他テナントからは見えない
	user, err = repo.FindByID(ctx, "company-2", "user-1")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if user != nil {
		t.Errorf("expected nil for other tenant, got %+v", user)
	}
}
