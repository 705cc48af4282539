package repository

import (
	"context"
	"testing"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

func TestSiteRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSiteRepository(db)

	site := &domain.Site{
		CompanyID: "company-1",
		Name:      "Riverside Apartments",
		Address:   "12 River St",
		Status:    domain.SiteStatusActive,
	}
	if err := repo.Create(ctx, site); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if site.ID == "" {
		t.Error("expected ID to be generated, got empty")
	}

	found, err := repo.FindByID(ctx, "company-1", site.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected site, got nil")
	}
	if found.Name != "Riverside Apartments" {
		t.Errorf("expected name=Riverside Apartments, got %s", found.Name)
	}

	// 他テナントからは見えない
	found, err = repo.FindByID(ctx, "company-2", site.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for other tenant, got %+v", found)
	}
}

func TestSiteRepository_List_StatusAndSearch(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSiteRepository(db)

	insertTestSite(t, db, "site-1", "company-1", "Riverside Apartments")
	insertTestSite(t, db, "site-2", "company-1", "Harbour Tower")
	if err := db.Exec("UPDATE sites SET status = 'on_hold' WHERE id = 'site-2'").Error; err != nil {
		t.Fatalf("failed to update test data: %v", err)
	}
	insertTestSite(t, db, "site-9", "company-2", "Riverside Clone")

	// ステータス絞り込み
	sites, total, err := repo.List(ctx, "company-1", domain.SiteFilter{Status: domain.SiteStatusOnHold, Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(sites) != 1 {
		t.Fatalf("expected 1 site, got total=%d len=%d", total, len(sites))
	}
	if sites[0].Name != "Harbour Tower" {
		t.Errorf("expected Harbour Tower, got %s", sites[0].Name)
	}

	// 名称の部分一致はテナント内に閉じる
	sites, total, err = repo.List(ctx, "company-1", domain.SiteFilter{Search: "riverside", Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 {
		t.Errorf("expected total=1, got %d", total)
	}
}

func TestSiteRepository_Delete_ExcludedFromList(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSiteRepository(db)

	insertTestSite(t, db, "site-1", "company-1", "Riverside Apartments")
	insertTestSite(t, db, "site-2", "company-1", "Harbour Tower")

	if err := repo.Delete(ctx, "company-1", "site-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	sites, total, err := repo.List(ctx, "company-1", domain.SiteFilter{Page: 1, Limit: 20})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if total != 1 || len(sites) != 1 {
		t.Fatalf("expected 1 site after delete, got total=%d len=%d", total, len(sites))
	}
	if sites[0].ID != "site-2" {
		t.Errorf("expected site-2, got %s", sites[0].ID)
	}
}

func TestSiteRepository_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSiteRepository(db)

	insertTestSite(t, db, "site-1", "company-1", "Riverside Apartments")

	status := domain.SiteStatusCompleted
	if err := repo.Update(ctx, "company-1", "site-1", &domain.SiteUpdate{Status: &status}); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	var model SiteModel
	if err := db.Where("id = ?", "site-1").First(&model).Error; err != nil {
		t.Fatalf("failed to fetch updated record: %v", err)
	}
	if model.Status != "completed" {
		t.Errorf("expected status=completed, got %s", model.Status)
	}
	if model.Name != "Riverside Apartments" {
		t.Errorf("expected name unchanged, got %s", model.Name)
	}
}
