package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"appraisal/internal/domain/appraisal"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) EmployeeSummaryData(ctx context.Context, employeeID string) (int, int, []float64, error) {
	var total, overdue int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COUNT(1) FILTER (WHERE status = $2)
    FROM appraisal_assignments
    WHERE employee_id = $1
  `, employeeID, appraisal.StatusOverdue).Scan(&total, &overdue)
	if err != nil {
		return 0, 0, nil, err
	}

	rows, err := s.DB.Query(ctx, `
    SELECT f.overall_score
    FROM appraisal_forms f
    JOIN appraisal_assignments a ON f.assignment_id = a.id
    WHERE a.employee_id = $1
    ORDER BY f.submitted_at
  `, employeeID)
	if err != nil {
		return 0, 0, nil, err
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return 0, 0, nil, err
		}
		scores = append(scores, score)
	}
	return total, overdue, scores, rows.Err()
}

func (s *Store) RecentCompletedForms(ctx context.Context, employeeID string, limit int) ([]RecentForm, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT f.assignment_id, COALESCE(a.review_period_name, ''), f.overall_score, f.submitted_at
    FROM appraisal_forms f
    JOIN appraisal_assignments a ON f.assignment_id = a.id
    WHERE a.employee_id = $1
    ORDER BY f.submitted_at DESC
    LIMIT $2
  `, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var forms []RecentForm
	for rows.Next() {
		var form RecentForm
		if err := rows.Scan(&form.AssignmentID, &form.ReviewPeriodName, &form.OverallScore, &form.SubmittedAt); err != nil {
			return nil, err
		}
		forms = append(forms, form)
	}
	return forms, rows.Err()
}

func (s *Store) PeriodSummaryData(ctx context.Context, periodID string) (string, time.Time, time.Time, int, int, float64, error) {
	var name string
	var startDate, endDate time.Time
	var total, completed int
	var average float64
	err := s.DB.QueryRow(ctx, `
    SELECT p.name, p.start_date, p.end_date,
           COUNT(a.id),
           COUNT(a.id) FILTER (WHERE a.status = $2),
           COALESCE(AVG(f.overall_score), 0)
    FROM review_periods p
    LEFT JOIN appraisal_assignments a ON a.review_period_id = p.id
    LEFT JOIN appraisal_forms f ON f.assignment_id = a.id
    WHERE p.id = $1
    GROUP BY p.id, p.name, p.start_date, p.end_date
  `, periodID, appraisal.StatusCompleted).Scan(&name, &startDate, &endDate, &total, &completed, &average)
	return name, startDate, endDate, total, completed, average, err
}
