package directoryhandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/orgchart"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
)

type Handler struct {
	Service *directory.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *directory.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/", h.handleListEmployees)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Post("/", h.handleCreateEmployee)
		r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/{employeeID}", h.handleGetEmployee)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Put("/{employeeID}", h.handleUpdateEmployee)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Delete("/{employeeID}", h.handleDeleteEmployee)
		r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/{employeeID}/profile", h.handleGetProfile)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Put("/{employeeID}/profile", h.handleUpsertProfile)
	})
	r.Route("/teams", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermDirectoryRead, h.Perms)).Get("/", h.handleListTeams)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Post("/", h.handleCreateTeam)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Put("/{teamID}", h.handleUpdateTeam)
		r.With(middleware.RequirePermission(auth.PermDirectoryWrite, h.Perms)).Delete("/{teamID}", h.handleDeleteTeam)
	})
}

type employeePayload struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	Hierarchy string `json:"hierarchy"`
	TeamID    string `json:"teamId"`
	ReportsTo string `json:"reportsTo"`
	Email     string `json:"email"`
}

func (h *Handler) handleListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, employees, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Service.GetEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, emp, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "name is required", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateEmployee(r.Context(), directory.Employee{
		Name:      payload.Name,
		Role:      payload.Role,
		Hierarchy: orgchart.Normalize(payload.Hierarchy),
		TeamID:    payload.TeamID,
		ReportsTo: payload.ReportsTo,
		Email:     payload.Email,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateEmployee(w http.ResponseWriter, r *http.Request) {
	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.UpdateEmployee(r.Context(), directory.Employee{
		ID:        chi.URLParam(r, "employeeID"),
		Name:      payload.Name,
		Role:      payload.Role,
		Hierarchy: orgchart.Normalize(payload.Hierarchy),
		TeamID:    payload.TeamID,
		ReportsTo: payload.ReportsTo,
		Email:     payload.Email,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteEmployee(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEmployee(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Service.GetProfile(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "profile_not_found", "profile not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, profile, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Bio      string   `json:"bio"`
		Skills   []string `json:"skills"`
		PhotoURL string   `json:"photoUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	err := h.Service.UpsertProfile(r.Context(), directory.EmployeeProfile{
		EmployeeID: chi.URLParam(r, "employeeID"),
		Bio:        payload.Bio,
		Skills:     payload.Skills,
		PhotoURL:   payload.PhotoURL,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "profile_update_failed", "failed to save profile", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "saved"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.Service.ListTeams(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_list_failed", "failed to list teams", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, teams, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "team name is required", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateTeam(r.Context(), payload.Name)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_create_failed", "failed to create team", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "team name is required", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateTeam(r.Context(), chi.URLParam(r, "teamID"), payload.Name); err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_update_failed", "failed to update team", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTeam(r.Context(), chi.URLParam(r, "teamID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "team_delete_failed", "failed to delete team", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}
