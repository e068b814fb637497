package orgcharthandler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/orgchart"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Directory *directory.Service
	Perms     middleware.PermissionStore
}

func NewHandler(dir *directory.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Directory: dir, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/orgchart", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermOrgChartRead, h.Perms))
		r.Get("/tree", h.handleTree)
		r.Get("/teams/{teamID}/tree", h.handleDepartmentTree)
		r.Get("/levels", h.handleLevels)
		r.Get("/employees/{employeeID}/direct-reports", h.handleDirectReports)
		r.Get("/employees/{employeeID}/reporting-chain", h.handleReportingChain)
	})
}

// configFromQuery maps query parameters onto chart build options. Unknown or
// malformed values fall back to defaults rather than failing the request.
func configFromQuery(r *http.Request) orgchart.Config {
	q := r.URL.Query()
	cfg := orgchart.Config{
		RootEmployeeID:    q.Get("root"),
		GroupByDepartment: q.Get("groupByDepartment") == "true",
	}
	if raw := q.Get("includeTags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				cfg.IncludeTags = append(cfg.IncludeTags, tag)
			}
		}
	}
	if raw := q.Get("maxDepth"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.MaxDepth = v
		}
	}
	return cfg
}

func (h *Handler) handleTree(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Directory.Snapshot(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "orgchart_failed", "failed to load directory", middleware.GetRequestID(r.Context()))
		return
	}

	tree := orgchart.BuildTree(snap.Employees, snap.Teams, snap.Profiles, configFromQuery(r))
	if tree == nil {
		tree = []*orgchart.Node{}
	}
	api.Success(w, tree, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDepartmentTree(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Directory.Snapshot(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "orgchart_failed", "failed to load directory", middleware.GetRequestID(r.Context()))
		return
	}

	node := orgchart.BuildDepartmentTree(chi.URLParam(r, "teamID"), snap.Employees, snap.Teams, snap.Profiles, configFromQuery(r))
	if node == nil {
		api.Fail(w, http.StatusNotFound, "team_not_found", "team not found or has no members", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, node, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleLevels(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Directory.Snapshot(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "orgchart_failed", "failed to load directory", middleware.GetRequestID(r.Context()))
		return
	}

	levels := orgchart.BuildLevels(snap.Employees, snap.Teams, snap.Profiles, configFromQuery(r))
	api.Success(w, levels, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDirectReports(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Directory.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "orgchart_failed", "failed to load directory", middleware.GetRequestID(r.Context()))
		return
	}

	reports := orgchart.DirectReports(chi.URLParam(r, "employeeID"), employees)
	if reports == nil {
		reports = []directory.Employee{}
	}
	api.Success(w, reports, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleReportingChain(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Directory.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "orgchart_failed", "failed to load directory", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	known := false
	for _, emp := range employees {
		if emp.ID == employeeID {
			known = true
			break
		}
	}
	if !known {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}

	chain := orgchart.ReportingChain(employeeID, employees)
	if chain == nil {
		chain = []directory.Employee{}
	}
	api.Success(w, chain, middleware.GetRequestID(r.Context()))
}
