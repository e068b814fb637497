package reportshandler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/reports"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

const reportStorageDir = "storage/reports"

type Handler struct {
	Service *reports.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *reports.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/dashboard", h.handleDashboard)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/dashboard/{employeeID}", h.handleEmployeeDashboard)
		r.With(middleware.RequirePermission(auth.PermReportsRead, h.Perms)).Get("/periods/{periodID}/summary.pdf", h.handlePeriodSummaryPDF)
	})
}

// handleDashboard serves the caller's own dashboard.
func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "no_employee", "no employee record linked to this account", middleware.GetRequestID(r.Context()))
		return
	}
	h.writeDashboard(w, r, user.EmployeeID)
}

// handleEmployeeDashboard lets admins and managers inspect another
// employee's dashboard.
func (h *Handler) handleEmployeeDashboard(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}
	employeeID := chi.URLParam(r, "employeeID")
	if user.RoleName == auth.RoleEmployee && user.EmployeeID != employeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not allowed", middleware.GetRequestID(r.Context()))
		return
	}
	h.writeDashboard(w, r, employeeID)
}

func (h *Handler) writeDashboard(w http.ResponseWriter, r *http.Request, employeeID string) {
	summary, err := h.Service.EmployeeDashboard(r.Context(), employeeID)
	if err != nil {
		log.Printf("dashboard aggregate failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to build dashboard", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, summary, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handlePeriodSummaryPDF(w http.ResponseWriter, r *http.Request) {
	periodID := chi.URLParam(r, "periodID")

	if err := os.MkdirAll(reportStorageDir, 0o755); err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to prepare report storage", middleware.GetRequestID(r.Context()))
		return
	}
	filePath := filepath.Join(reportStorageDir, periodID+".pdf")

	if err := h.Service.PeriodSummaryPDF(r.Context(), periodID, filePath); err != nil {
		log.Printf("period summary pdf generation failed: %v", err)
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to generate report", middleware.GetRequestID(r.Context()))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	http.ServeFile(w, r, filePath)
}
