package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/domain"
	"github.com/sidsagwekar16/construct-sync-backend-sub002/internal/middleware"
)

// Handlers はルーティング対象のハンドラ群。
type Handlers struct {
	Site          *SiteHandler
	Job           *JobHandler
	Variation     *VariationHandler
	Subcontractor *SubcontractorHandler
	Contract      *ContractHandler
	Worker        *WorkerHandler
	Mobile        *MobileHandler
}

// NewRouter はルーターを生成する。
func NewRouter(h Handlers, jwtSecret string) http.Handler {
	r := chi.NewRouter()

	// ミドルウェア
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	manager := middleware.RequireRole(domain.ManagerRoles...)
	admin := middleware.RequireRole(domain.AdminRoles...)
	authenticated := middleware.RequireRole(domain.AllRoles...)

	// ルート定義
	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Route("/sites", func(r chi.Router) {
			r.With(manager).Post("/", h.Site.CreateSite)
			r.With(authenticated).Get("/", h.Site.ListSites)
			r.With(authenticated).Get("/{id}", h.Site.GetSite)
			r.With(authenticated).Get("/{id}/jobs", h.Site.ListSiteJobs)
			r.With(manager).Patch("/{id}", h.Site.UpdateSite)
			r.With(admin).Delete("/{id}", h.Site.DeleteSite)
		})

		r.Route("/jobs", func(r chi.Router) {
			r.With(manager).Post("/", h.Job.CreateJob)
			r.With(authenticated).Get("/", h.Job.ListJobs)
			r.With(authenticated).Get("/{id}", h.Job.GetJob)
			r.With(manager).Patch("/{id}", h.Job.UpdateJob)
			r.With(manager).Delete("/{id}", h.Job.DeleteJob)
		})

		r.Route("/variations", func(r chi.Router) {
			r.With(manager).Post("/", h.Variation.CreateVariation)
			r.With(authenticated).Get("/", h.Variation.ListVariations)
			r.With(authenticated).Get("/{id}", h.Variation.GetVariation)
			r.With(manager).Patch("/{id}", h.Variation.UpdateVariation)
			r.With(manager).Delete("/{id}", h.Variation.DeleteVariation)
		})

		r.Route("/subcontractors", func(r chi.Router) {
			r.With(admin).Post("/", h.Subcontractor.CreateSubcontractor)
			r.With(authenticated).Get("/", h.Subcontractor.ListSubcontractors)
			r.With(authenticated).Get("/{id}", h.Subcontractor.GetSubcontractor)
			r.With(admin).Patch("/{id}", h.Subcontractor.UpdateSubcontractor)
			r.With(admin).Delete("/{id}", h.Subcontractor.DeleteSubcontractor)
		})

		r.Route("/contracts", func(r chi.Router) {
			r.With(admin).Post("/", h.Contract.CreateContract)
			r.With(authenticated).Get("/", h.Contract.ListContracts)
			r.With(authenticated).Get("/{id}", h.Contract.GetContract)
			r.With(admin).Patch("/{id}", h.Contract.UpdateContract)
			r.With(admin).Delete("/{id}", h.Contract.DeleteContract)
		})

		r.Route("/workers", func(r chi.Router) {
			r.With(manager).Get("/", h.Worker.ListWorkers)
			r.With(manager).Get("/{id}", h.Worker.GetWorker)
		})

		r.Route("/mobile", func(r chi.Router) {
			r.With(authenticated).Get("/jobs", h.Mobile.MyJobs)
			r.With(authenticated).Get("/profile", h.Mobile.MyProfile)
		})
	})

	return otelhttp.NewHandler(r, "construct-sync")
}
