package appraisal

import (
	"context"
	"encoding/json"
)

// CreateForm records a submitted appraisal and completes its assignment in
// one transaction.
func (s *Store) CreateForm(ctx context.Context, assignmentID string, responses json.RawMessage, overallScore float64) (string, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id string
	if err := tx.QueryRow(ctx, `
    INSERT INTO appraisal_forms (assignment_id, responses, overall_score)
    VALUES ($1, $2, $3)
    RETURNING id
  `, assignmentID, responses, overallScore).Scan(&id); err != nil {
		return "", err
	}

	if _, err := tx.Exec(ctx, `
    UPDATE appraisal_assignments SET status = $2 WHERE id = $1
  `, assignmentID, StatusCompleted); err != nil {
		return "", err
	}

	return id, tx.Commit(ctx)
}

func (s *Store) ListFormsByEmployee(ctx context.Context, employeeID string) ([]Form, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT f.id, f.assignment_id, f.responses, f.overall_score, f.submitted_at
    FROM appraisal_forms f
    JOIN appraisal_assignments a ON f.assignment_id = a.id
    WHERE a.employee_id = $1
    ORDER BY f.submitted_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []Form
	for rows.Next() {
		var form Form
		if err := rows.Scan(&form.ID, &form.AssignmentID, &form.Responses, &form.OverallScore, &form.SubmittedAt); err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

func (s *Store) GetFormByAssignment(ctx context.Context, assignmentID string) (*Form, error) {
	var form Form
	err := s.DB.QueryRow(ctx, `
    SELECT id, assignment_id, responses, overall_score, submitted_at
    FROM appraisal_forms
    WHERE assignment_id = $1
  `, assignmentID).Scan(&form.ID, &form.AssignmentID, &form.Responses, &form.OverallScore, &form.SubmittedAt)
	if err != nil {
		return nil, err
	}
	return &form, nil
}
