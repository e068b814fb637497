package appraisal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListReviewPeriods(ctx context.Context) ([]ReviewPeriod, error) {
	return s.Store.ListReviewPeriods(ctx)
}

func (s *Service) GetReviewPeriod(ctx context.Context, periodID string) (*ReviewPeriod, error) {
	return s.Store.GetReviewPeriod(ctx, periodID)
}

func (s *Service) CreateReviewPeriod(ctx context.Context, period ReviewPeriod) (string, error) {
	return s.Store.CreateReviewPeriod(ctx, period)
}

func (s *Service) UpdateReviewPeriodStatus(ctx context.Context, periodID, status string) error {
	return s.Store.UpdateReviewPeriodStatus(ctx, periodID, status)
}

func (s *Service) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.Store.ListTemplates(ctx)
}

func (s *Service) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	return s.Store.GetTemplate(ctx, templateID)
}

func (s *Service) CreateTemplate(ctx context.Context, name string, ratingScale int, categories []TemplateCategory) (string, error) {
	return s.Store.CreateTemplate(ctx, name, ratingScale, categories)
}

func (s *Service) DeleteTemplate(ctx context.Context, templateID string) error {
	return s.Store.DeleteTemplate(ctx, templateID)
}

// SaveAssignments persists materialized assignments one record at a time and
// returns the ones that were written. A failure mid-batch leaves earlier
// records in place; the ids make retries idempotent enough to reconcile.
func (s *Service) SaveAssignments(ctx context.Context, assignments []Assignment) ([]Assignment, error) {
	saved := make([]Assignment, 0, len(assignments))
	for _, a := range assignments {
		if err := s.Store.SaveAssignment(ctx, a); err != nil {
			return saved, err
		}
		saved = append(saved, a)
	}
	return saved, nil
}

// CreateManualAssignment builds and saves a single admin-created assignment.
func (s *Service) CreateManualAssignment(ctx context.Context, periodID, periodName, appraiserID, employeeID, templateID string, dueDate *time.Time) (Assignment, error) {
	a := Assignment{
		ID:               uuid.NewString(),
		ReviewPeriodID:   periodID,
		ReviewPeriodName: periodName,
		AppraiserID:      appraiserID,
		EmployeeID:       employeeID,
		RelationshipType: RelationshipCustom,
		TemplateID:       templateID,
		Status:           StatusPending,
		AssignmentType:   AssignmentTypeManual,
		CreatedAt:        time.Now().UTC(),
		DueDate:          dueDate,
	}
	if err := s.Store.SaveAssignment(ctx, a); err != nil {
		return Assignment{}, err
	}
	return a, nil
}

func (s *Service) GetAssignment(ctx context.Context, assignmentID string) (*Assignment, error) {
	return s.Store.GetAssignment(ctx, assignmentID)
}

func (s *Service) ListAssignments(ctx context.Context, periodID, appraiserID, employeeID string) ([]Assignment, error) {
	return s.Store.ListAssignments(ctx, periodID, appraiserID, employeeID)
}

func (s *Service) UpdateAssignmentStatus(ctx context.Context, assignmentID, status string) error {
	return s.Store.UpdateAssignmentStatus(ctx, assignmentID, status)
}

func (s *Service) MarkOverdue(ctx context.Context) ([]Assignment, error) {
	return s.Store.MarkOverdue(ctx)
}

func (s *Service) SubmitForm(ctx context.Context, assignmentID string, responses json.RawMessage, overallScore float64) (string, error) {
	return s.Store.CreateForm(ctx, assignmentID, responses, overallScore)
}

func (s *Service) ListFormsByEmployee(ctx context.Context, employeeID string) ([]Form, error) {
	return s.Store.ListFormsByEmployee(ctx, employeeID)
}

func (s *Service) GetFormByAssignment(ctx context.Context, assignmentID string) (*Form, error) {
	return s.Store.GetFormByAssignment(ctx, assignmentID)
}
