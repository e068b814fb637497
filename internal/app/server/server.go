package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/notifications"
	"appraisal/internal/domain/reports"
	"appraisal/internal/platform/config"
	"appraisal/internal/platform/db"
	"appraisal/internal/platform/jobs"
	"appraisal/internal/platform/metrics"
	"appraisal/internal/transport/http/api"
	appraisalhandler "appraisal/internal/transport/http/handlers/appraisal"
	audithandler "appraisal/internal/transport/http/handlers/audit"
	authhandler "appraisal/internal/transport/http/handlers/auth"
	directoryhandler "appraisal/internal/transport/http/handlers/directory"
	notificationshandler "appraisal/internal/transport/http/handlers/notifications"
	orgcharthandler "appraisal/internal/transport/http/handlers/orgchart"
	reportshandler "appraisal/internal/transport/http/handlers/reports"
	"appraisal/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	directoryService := directory.NewService(directory.NewStore(pool))
	appraisalService := appraisal.NewService(appraisal.NewStore(pool))
	authStore := auth.NewStore(pool)
	notifyService := notifications.New(pool)
	auditService := audit.New(pool)
	reportsService := reports.NewService(reports.NewStore(pool))

	jobService := jobs.New(appraisalService, notifyService, cfg)
	jobService.Start(ctx)

	collector := metrics.New()
	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.With(middleware.RequirePermission(auth.PermReportsRead, authStore)).
			Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
			})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret, limiter).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryService, authStore).RegisterRoutes(r)
		orgcharthandler.NewHandler(directoryService, authStore).RegisterRoutes(r)
		appraisalhandler.NewHandler(appraisalService, directoryService, notifyService, auditService, authStore).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService, authStore).RegisterRoutes(r)
		notificationshandler.NewHandler(notifyService, authStore).RegisterRoutes(r)
		audithandler.NewHandler(auditService, authStore).RegisterRoutes(r)

		r.With(middleware.RequirePermission(auth.PermAppraisalAssign, authStore)).
			Post("/admin/jobs/overdue-sweep", func(w http.ResponseWriter, r *http.Request) {
				if err := jobService.RunNow(r.Context(), jobs.JobOverdueSweep, jobService.SweepOverdue); err != nil {
					api.Fail(w, http.StatusInternalServerError, "job_failed", "overdue sweep failed", middleware.GetRequestID(r.Context()))
					return
				}
				api.Success(w, map[string]string{"status": "completed"}, middleware.GetRequestID(r.Context()))
			})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("appraisal server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

// spaHandler serves the built frontend, falling back to index.html so
// client-side routes resolve.
type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
