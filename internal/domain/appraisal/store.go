package appraisal

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListReviewPeriods(ctx context.Context) ([]ReviewPeriod, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, start_date, end_date, status, created_at
    FROM review_periods
    ORDER BY start_date DESC, created_at DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var periods []ReviewPeriod
	for rows.Next() {
		var period ReviewPeriod
		if err := rows.Scan(&period.ID, &period.Name, &period.StartDate, &period.EndDate, &period.Status, &period.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (s *Store) GetReviewPeriod(ctx context.Context, periodID string) (*ReviewPeriod, error) {
	var period ReviewPeriod
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, start_date, end_date, status, created_at
    FROM review_periods
    WHERE id = $1
  `, periodID).Scan(&period.ID, &period.Name, &period.StartDate, &period.EndDate, &period.Status, &period.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &period, nil
}

func (s *Store) CreateReviewPeriod(ctx context.Context, period ReviewPeriod) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO review_periods (name, start_date, end_date, status)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, period.Name, period.StartDate, period.EndDate, period.Status).Scan(&id)
	return id, err
}

func (s *Store) UpdateReviewPeriodStatus(ctx context.Context, periodID, status string) error {
	_, err := s.DB.Exec(ctx, "UPDATE review_periods SET status = $2 WHERE id = $1", periodID, status)
	return err
}
