package usecase

import (
	"context"
	"time"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
)

// mockSiteRepository はテスト用のモックリポジトリ。
type mockSiteRepository struct {
	createErr    error
	findResult   *domain.Site
	findErr      error
	listResult   []*domain.Site
	listTotal    int64
	listErr      error
	listFilter   domain.SiteFilter
	updateErr    error
	updateCalled bool
	deleteErr    error
	deleteCalled bool
	created      []*domain.Site
}

func (m *mockSiteRepository) Create(ctx context.Context, site *domain.Site) error {
	if m.createErr != nil {
		return m.createErr
	}
	site.ID = "site-generated"
	site.CreatedAt = time.Now()
	m.created = append(m.created, site)
	return nil
}

func (m *mockSiteRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Site, error) {
	return m.findResult, m.findErr
}

func (m *mockSiteRepository) List(ctx context.Context, companyID string, filter domain.SiteFilter) ([]*domain.Site, int64, error) {
	m.listFilter = filter
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockSiteRepository) Update(ctx context.Context, companyID, id string, update *domain.SiteUpdate) error {
	m.updateCalled = true
	return m.updateErr
}

func (m *mockSiteRepository) Delete(ctx context.Context, companyID, id string) error {
	m.deleteCalled = true
	return m.deleteErr
}

// mockJobRepository はテスト用のモックリポジトリ。
type mockJobRepository struct {
	createErr     error
	findResult    *domain.Job
	findErr       error
	listResult    []*domain.Job
	listTotal     int64
	listErr       error
	listFilter    domain.JobFilter
	listBySite    []*domain.Job
	listBySiteErr error
	assigned      []*domain.MobileJob
	assignedErr   error
	activeCount   int64
	activeErr     error
	updateErr     error
	updateCalled  bool
	deleteErr     error
	deleteCalled  bool
	created       []*domain.Job
}

func (m *mockJobRepository) Create(ctx context.Context, job *domain.Job) error {
	if m.createErr != nil {
		return m.createErr
	}
	job.ID = "job-generated"
	job.CreatedAt = time.Now()
	m.created = append(m.created, job)
	return nil
}

func (m *mockJobRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Job, error) {
	return m.findResult, m.findErr
}

func (m *mockJobRepository) List(ctx context.Context, companyID string, filter domain.JobFilter) ([]*domain.Job, int64, error) {
	m.listFilter = filter
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockJobRepository) ListBySite(ctx context.Context, companyID, siteID string) ([]*domain.Job, error) {
	return m.listBySite, m.listBySiteErr
}

func (m *mockJobRepository) ListAssignedTo(ctx context.Context, companyID, userID string) ([]*domain.MobileJob, error) {
	return m.assigned, m.assignedErr
}

func (m *mockJobRepository) CountActiveByAssignee(ctx context.Context, companyID, userID string) (int64, error) {
	return m.activeCount, m.activeErr
}

func (m *mockJobRepository) Update(ctx context.Context, companyID, id string, update *domain.JobUpdate) error {
	m.updateCalled = true
	return m.updateErr
}

func (m *mockJobRepository) Delete(ctx context.Context, companyID, id string) error {
	m.deleteCalled = true
	return m.deleteErr
}

// mockVariationRepository はテスト用のモックリポジトリ。
type mockVariationRepository struct {
	createErr  error
	findResult *domain.Variation
	findErr    error
	listResult []*domain.Variation
	listTotal  int64
	listErr    error
	updateErr  error
	deleteErr  error
	created    []*domain.Variation
}

func (m *mockVariationRepository) Create(ctx context.Context, v *domain.Variation) error {
	if m.createErr != nil {
		return m.createErr
	}
	v.ID = "variation-generated"
	m.created = append(m.created, v)
	return nil
}

func (m *mockVariationRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Variation, error) {
	return m.findResult, m.findErr
}

func (m *mockVariationRepository) List(ctx context.Context, companyID string, filter domain.VariationFilter) ([]*domain.Variation, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockVariationRepository) Update(ctx context.Context, companyID, id string, update *domain.VariationUpdate) error {
	return m.updateErr
}

func (m *mockVariationRepository) Delete(ctx context.Context, companyID, id string) error {
	return m.deleteErr
}

// mockSubcontractorRepository はテスト用のモックリポジトリ。
type mockSubcontractorRepository struct {
	createErr  error
	findResult *domain.Subcontractor
	findErr    error
	listResult []*domain.Subcontractor
	listTotal  int64
	listErr    error
	updateErr  error
	deleteErr  error
	created    []*domain.Subcontractor
}

func (m *mockSubcontractorRepository) Create(ctx context.Context, s *domain.Subcontractor) error {
	if m.createErr != nil {
		return m.createErr
	}
	s.ID = "sub-generated"
	m.created = append(m.created, s)
	return nil
}

func (m *mockSubcontractorRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Subcontractor, error) {
	return m.findResult, m.findErr
}

func (m *mockSubcontractorRepository) List(ctx context.Context, companyID string, filter domain.SubcontractorFilter) ([]*domain.Subcontractor, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockSubcontractorRepository) Update(ctx context.Context, companyID, id string, update *domain.SubcontractorUpdate) error {
	return m.updateErr
}

func (m *mockSubcontractorRepository) Delete(ctx context.Context, companyID, id string) error {
	return m.deleteErr
}

// mockContractRepository はテスト用のモックリポジトリ。
type mockContractRepository struct {
	createErr  error
	findResult *domain.Contract
	findErr    error
	listResult []*domain.Contract
	listTotal  int64
	listErr    error
	updateErr  error
	deleteErr  error
	created    []*domain.Contract
}

func (m *mockContractRepository) Create(ctx context.Context, c *domain.Contract) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = "contract-generated"
	m.created = append(m.created, c)
	return nil
}

func (m *mockContractRepository) FindByID(ctx context.Context, companyID, id string) (*domain.Contract, error) {
	return m.findResult, m.findErr
}

func (m *mockContractRepository) List(ctx context.Context, companyID string, filter domain.ContractFilter) ([]*domain.Contract, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}

func (m *mockContractRepository) Update(ctx context.Context, companyID, id string, update *domain.ContractUpdate) error {
	return m.updateErr
}

func (m *mockContractRepository) Delete(ctx context.Context, companyID, id string) error {
	return m.deleteErr
}

// mockWorkerRepository はテスト用のモックリポジトリ。
type mockWorkerRepository struct {
	findResult *domain.User
	findErr    error
	listResult []*domain.User
	listTotal  int64
	listErr    error
}

func (m *mockWorkerRepository) FindByID(ctx context.Context, companyID, id string) (*domain.User, error) {
	return m.findResult, m.findErr
}

func (m *mockWorkerRepository) ListWorkers(ctx context.Context, companyID string, page, limit int) ([]*domain.User, int64, error) {
	return m.listResult, m.listTotal, m.listErr
}
