package appraisal

import (
	"context"

	"github.com/jackc/pgx/v5"
)

const assignmentColumns = `
    id,
    review_period_id,
    COALESCE(review_period_name, ''),
    appraiser_id,
    employee_id,
    relationship_type,
    COALESCE(template_id::text, ''),
    status,
    assignment_type,
    created_at,
    due_date`

func scanAssignment(row pgx.Row) (Assignment, error) {
	var a Assignment
	err := row.Scan(
		&a.ID, &a.ReviewPeriodID, &a.ReviewPeriodName,
		&a.AppraiserID, &a.EmployeeID, &a.RelationshipType,
		&a.TemplateID, &a.Status, &a.AssignmentType,
		&a.CreatedAt, &a.DueDate,
	)
	return a, err
}

// SaveAssignment persists one materialized assignment. Ids come from the
// materializer; storage assigns nothing.
func (s *Store) SaveAssignment(ctx context.Context, a Assignment) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO appraisal_assignments
      (id, review_period_id, review_period_name, appraiser_id, employee_id,
       relationship_type, template_id, status, assignment_type, created_at, due_date)
    VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid, $8, $9, $10, $11)
  `, a.ID, a.ReviewPeriodID, a.ReviewPeriodName, a.AppraiserID, a.EmployeeID,
		a.RelationshipType, a.TemplateID, a.Status, a.AssignmentType, a.CreatedAt, a.DueDate)
	return err
}

func (s *Store) GetAssignment(ctx context.Context, assignmentID string) (*Assignment, error) {
	a, err := scanAssignment(s.DB.QueryRow(ctx, `
    SELECT`+assignmentColumns+`
    FROM appraisal_assignments
    WHERE id = $1
  `, assignmentID))
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) ListAssignments(ctx context.Context, periodID, appraiserID, employeeID string) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+assignmentColumns+`
    FROM appraisal_assignments
    WHERE ($1 = '' OR review_period_id = $1::uuid)
      AND ($2 = '' OR appraiser_id = $2::uuid)
      AND ($3 = '' OR employee_id = $3::uuid)
    ORDER BY created_at, id
  `, periodID, appraiserID, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *Store) UpdateAssignmentStatus(ctx context.Context, assignmentID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE appraisal_assignments SET status = $2 WHERE id = $1", assignmentID, status)
	return err
}

// MarkOverdue flips every pending or in-progress assignment whose due date
// has passed and returns the affected rows for notification fan-out.
func (s *Store) MarkOverdue(ctx context.Context) ([]Assignment, error) {
	rows, err := s.DB.Query(ctx, `
    UPDATE appraisal_assignments
    SET status = $1
    WHERE status IN ($2, $3)
      AND due_date IS NOT NULL
      AND due_date < now()
    RETURNING`+assignmentColumns+`
  `, StatusOverdue, StatusPending, StatusInProgress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var flipped []Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		flipped = append(flipped, a)
	}
	return flipped, rows.Err()
}
