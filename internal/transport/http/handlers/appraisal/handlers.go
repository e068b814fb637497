package appraisalhandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"appraisal/internal/domain/appraisal"
	"appraisal/internal/domain/audit"
	"appraisal/internal/domain/auth"
	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/notifications"
	"appraisal/internal/transport/http/api"
	"appraisal/internal/transport/http/middleware"
	"appraisal/internal/transport/http/shared"
)

type Handler struct {
	Service   *appraisal.Service
	Directory *directory.Service
	Notify    *notifications.Service
	Audit     *audit.Service
	Perms     middleware.PermissionStore
}

func NewHandler(service *appraisal.Service, dir *directory.Service, notify *notifications.Service, auditSvc *audit.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Directory: dir, Notify: notify, Audit: auditSvc, Perms: perms}
}

// recordAudit is best effort; a failed write must not fail the request.
func (h *Handler) recordAudit(r *http.Request, action, entityType, entityID string, details any) {
	actorID := ""
	if user, ok := middleware.GetUser(r.Context()); ok {
		actorID = user.UserID
	}
	if err := h.Audit.Record(r.Context(), actorID, action, entityType, entityID, middleware.GetRequestID(r.Context()), details); err != nil {
		slog.Warn("audit record failed", "action", action, "err", err)
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/appraisal", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/periods", h.handleListPeriods)
		r.With(middleware.RequirePermission(auth.PermAppraisalAssign, h.Perms)).Post("/periods", h.handleCreatePeriod)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/periods/{periodID}", h.handleGetPeriod)
		r.With(middleware.RequirePermission(auth.PermAppraisalAssign, h.Perms)).Put("/periods/{periodID}/status", h.handleUpdatePeriodStatus)

		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/templates", h.handleListTemplates)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite, h.Perms)).Post("/templates", h.handleCreateTemplate)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/templates/{templateID}", h.handleGetTemplate)
		r.With(middleware.RequirePermission(auth.PermTemplatesWrite, h.Perms)).Delete("/templates/{templateID}", h.handleDeleteTemplate)

		r.With(middleware.RequirePermission(auth.PermAppraisalAssign, h.Perms)).Post("/periods/{periodID}/auto-assign/preview", h.handlePreviewAutoAssign)
		r.With(middleware.RequirePermission(auth.PermAppraisalAssign, h.Perms)).Post("/periods/{periodID}/auto-assign/confirm", h.handleConfirmAutoAssign)
		r.With(middleware.RequirePermission(auth.PermAppraisalAssign, h.Perms)).Post("/assignments", h.handleCreateManualAssignment)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/assignments", h.handleListAssignments)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/assignments/{assignmentID}", h.handleGetAssignment)
		r.With(middleware.RequirePermission(auth.PermAppraisalSubmit, h.Perms)).Put("/assignments/{assignmentID}/status", h.handleUpdateAssignmentStatus)
		r.With(middleware.RequirePermission(auth.PermAppraisalSubmit, h.Perms)).Post("/assignments/{assignmentID}/form", h.handleSubmitForm)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/assignments/{assignmentID}/form", h.handleGetForm)
		r.With(middleware.RequirePermission(auth.PermAppraisalRead, h.Perms)).Get("/employees/{employeeID}/forms", h.handleListEmployeeForms)
	})
}

func (h *Handler) handleListPeriods(w http.ResponseWriter, r *http.Request) {
	periods, err := h.Service.ListReviewPeriods(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_list_failed", "failed to list review periods", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, periods, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreatePeriod(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string `json:"name"`
		StartDate string `json:"startDate"`
		EndDate   string `json:"endDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "period name is required", middleware.GetRequestID(r.Context()))
		return
	}

	start, err := shared.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid start date", middleware.GetRequestID(r.Context()))
		return
	}
	end, err := shared.ParseDate(payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid end date", middleware.GetRequestID(r.Context()))
		return
	}
	if end.Before(start) {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "end date must not precede start date", middleware.GetRequestID(r.Context()))
		return
	}

	id, err := h.Service.CreateReviewPeriod(r.Context(), appraisal.ReviewPeriod{
		Name:      payload.Name,
		StartDate: start,
		EndDate:   end,
		Status:    appraisal.PeriodStatusDraft,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_create_failed", "failed to create review period", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetPeriod(w http.ResponseWriter, r *http.Request) {
	period, err := h.Service.GetReviewPeriod(r.Context(), chi.URLParam(r, "periodID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "period_not_found", "review period not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, period, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdatePeriodStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	switch payload.Status {
	case appraisal.PeriodStatusDraft, appraisal.PeriodStatusActive, appraisal.PeriodStatusClosed:
	default:
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unknown period status", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	if err := h.Service.UpdateReviewPeriodStatus(r.Context(), periodID, payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "period_update_failed", "failed to update review period", middleware.GetRequestID(r.Context()))
		return
	}

	h.recordAudit(r, audit.ActionPeriodStatusChanged, "review_period", periodID, map[string]string{"status": payload.Status})

	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Service.ListTemplates(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_list_failed", "failed to list templates", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, templates, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Service.GetTemplate(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "template_not_found", "template not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, tpl, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name        string                       `json:"name"`
		RatingScale int                          `json:"ratingScale"`
		Categories  []appraisal.TemplateCategory `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Name == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "template name is required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.RatingScale <= 0 {
		payload.RatingScale = 5
	}

	id, err := h.Service.CreateTemplate(r.Context(), payload.Name, payload.RatingScale, payload.Categories)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_create_failed", "failed to create template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Created(w, map[string]string{"id": id}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteTemplate(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "template_delete_failed", "failed to delete template", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, middleware.GetRequestID(r.Context()))
}

type autoAssignRequest struct {
	Options   *appraisal.AutoAssignOptions `json:"options"`
	Templates appraisal.TemplateMapping    `json:"templates"`
	DueDate   string                       `json:"dueDate"`
}

func (h *Handler) handlePreviewAutoAssign(w http.ResponseWriter, r *http.Request) {
	var payload autoAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	if _, err := h.Service.GetReviewPeriod(r.Context(), periodID); err != nil {
		api.Fail(w, http.StatusNotFound, "period_not_found", "review period not found", middleware.GetRequestID(r.Context()))
		return
	}

	employees, err := h.Directory.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "auto_assign_failed", "failed to load directory", middleware.GetRequestID(r.Context()))
		return
	}

	preview := appraisal.PreviewAutoAssignments(employees, periodID, payload.Options)
	api.Success(w, preview, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleConfirmAutoAssign(w http.ResponseWriter, r *http.Request) {
	var payload autoAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	periodID := chi.URLParam(r, "periodID")
	period, err := h.Service.GetReviewPeriod(r.Context(), periodID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "period_not_found", "review period not found", middleware.GetRequestID(r.Context()))
		return
	}

	var dueDate *time.Time
	if payload.DueDate != "" {
		parsed, err := shared.ParseDate(payload.DueDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid due date", middleware.GetRequestID(r.Context()))
			return
		}
		dueDate = &parsed
	}

	employees, err := h.Directory.ListEmployees(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "auto_assign_failed", "failed to load directory", middleware.GetRequestID(r.Context()))
		return
	}

	preview := appraisal.PreviewAutoAssignments(employees, periodID, payload.Options)
	assignments := appraisal.BuildAssignmentsFromPreview(preview, payload.Templates, periodID, period.Name, dueDate)

	saved, err := h.Service.SaveAssignments(r.Context(), assignments)
	if err != nil {
		slog.Error("auto-assign save failed", "periodId", periodID, "saved", len(saved), "total", len(assignments), "err", err)
		api.Fail(w, http.StatusInternalServerError, "auto_assign_failed", fmt.Sprintf("saved %d of %d assignments", len(saved), len(assignments)), middleware.GetRequestID(r.Context()))
		return
	}

	h.notifyAppraisers(r, saved, period.Name)
	h.recordAudit(r, audit.ActionAssignmentsCreated, "review_period", periodID, map[string]int{"created": len(saved)})

	api.Created(w, map[string]any{
		"created":  len(saved),
		"warnings": preview.Warnings,
	}, middleware.GetRequestID(r.Context()))
}

// notifyAppraisers fans out one notification per new assignment. Failures are
// logged and do not fail the request.
func (h *Handler) notifyAppraisers(r *http.Request, assignments []appraisal.Assignment, periodName string) {
	for _, a := range assignments {
		err := h.Notify.Create(r.Context(), a.AppraiserID, notifications.TypeAssignmentCreated,
			"New appraisal assigned",
			fmt.Sprintf("You have been assigned an appraisal for period %s.", periodName))
		if err != nil {
			slog.Warn("assignment notification failed", "assignmentId", a.ID, "err", err)
		}
	}
}

func (h *Handler) handleCreateManualAssignment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ReviewPeriodID string `json:"reviewPeriodId"`
		AppraiserID    string `json:"appraiserId"`
		EmployeeID     string `json:"employeeId"`
		TemplateID     string `json:"templateId"`
		DueDate        string `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.ReviewPeriodID == "" || payload.AppraiserID == "" || payload.EmployeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "reviewPeriodId, appraiserId and employeeId are required", middleware.GetRequestID(r.Context()))
		return
	}
	if payload.AppraiserID == payload.EmployeeID {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "appraiser and employee must differ", middleware.GetRequestID(r.Context()))
		return
	}

	period, err := h.Service.GetReviewPeriod(r.Context(), payload.ReviewPeriodID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "period_not_found", "review period not found", middleware.GetRequestID(r.Context()))
		return
	}

	var dueDate *time.Time
	if payload.DueDate != "" {
		parsed, err := shared.ParseDate(payload.DueDate)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid due date", middleware.GetRequestID(r.Context()))
			return
		}
		dueDate = &parsed
	}

	assignment, err := h.Service.CreateManualAssignment(r.Context(), period.ID, period.Name, payload.AppraiserID, payload.EmployeeID, payload.TemplateID, dueDate)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_create_failed", "failed to create assignment", middleware.GetRequestID(r.Context()))
		return
	}

	h.notifyAppraisers(r, []appraisal.Assignment{assignment}, period.Name)
	h.recordAudit(r, audit.ActionAssignmentCreated, "assignment", assignment.ID, nil)

	api.Created(w, assignment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListAssignments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	assignments, err := h.Service.ListAssignments(r.Context(), q.Get("periodId"), q.Get("appraiserId"), q.Get("employeeId"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_list_failed", "failed to list assignments", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignments, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.Service.GetAssignment(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, assignment, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdateAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}
	switch payload.Status {
	case appraisal.StatusPending, appraisal.StatusInProgress:
	default:
		// Completed and overdue transitions happen through form submission
		// and the sweep job respectively.
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "unsupported status transition", middleware.GetRequestID(r.Context()))
		return
	}

	assignmentID := chi.URLParam(r, "assignmentID")
	assignment, err := h.Service.GetAssignment(r.Context(), assignmentID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", middleware.GetRequestID(r.Context()))
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok && user.RoleName != auth.RoleAdmin && user.EmployeeID != assignment.AppraiserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "only the appraiser may update this assignment", middleware.GetRequestID(r.Context()))
		return
	}

	if err := h.Service.UpdateAssignmentStatus(r.Context(), assignmentID, payload.Status); err != nil {
		api.Fail(w, http.StatusInternalServerError, "assignment_update_failed", "failed to update assignment", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]string{"status": payload.Status}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Responses    json.RawMessage `json:"responses"`
		OverallScore float64         `json:"overallScore"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload.Responses) == 0 {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "responses are required", middleware.GetRequestID(r.Context()))
		return
	}

	assignmentID := chi.URLParam(r, "assignmentID")
	assignment, err := h.Service.GetAssignment(r.Context(), assignmentID)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "assignment_not_found", "assignment not found", middleware.GetRequestID(r.Context()))
		return
	}
	if assignment.Status == appraisal.StatusCompleted {
		api.Fail(w, http.StatusConflict, "already_submitted", "form already submitted for this assignment", middleware.GetRequestID(r.Context()))
		return
	}
	if user, ok := middleware.GetUser(r.Context()); ok && user.RoleName != auth.RoleAdmin && user.EmployeeID != assignment.AppraiserID {
		api.Fail(w, http.StatusForbidden, "forbidden", "only the appraiser may submit this form", middleware.GetRequestID(r.Context()))
		return
	}

	formID, err := h.Service.SubmitForm(r.Context(), assignmentID, payload.Responses, payload.OverallScore)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "form_submit_failed", "failed to submit form", middleware.GetRequestID(r.Context()))
		return
	}

	if assignment.EmployeeID != "" {
		err := h.Notify.Create(r.Context(), assignment.EmployeeID, notifications.TypeFormSubmitted,
			"Appraisal completed",
			fmt.Sprintf("An appraisal about you for period %s has been submitted.", assignment.ReviewPeriodName))
		if err != nil {
			slog.Warn("form submission notification failed", "assignmentId", assignmentID, "err", err)
		}
	}

	h.recordAudit(r, audit.ActionFormSubmitted, "assignment", assignmentID, nil)

	api.Created(w, map[string]string{"id": formID}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleGetForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.Service.GetFormByAssignment(r.Context(), chi.URLParam(r, "assignmentID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "form_not_found", "form not found", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, form, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleListEmployeeForms(w http.ResponseWriter, r *http.Request) {
	forms, err := h.Service.ListFormsByEmployee(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "form_list_failed", "failed to list forms", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, forms, middleware.GetRequestID(r.Context()))
}
