package directory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const employeeColumns = `
    id,
    name,
    COALESCE(role, ''),
    COALESCE(hierarchy, ''),
    COALESCE(team_id::text, ''),
    COALESCE(reports_to::text, ''),
    COALESCE(email, ''),
    created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var emp Employee
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Role, &emp.Hierarchy,
		&emp.TeamID, &emp.ReportsTo, &emp.Email,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]Employee, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY created_at, id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

func (s *Store) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	emp, err := scanEmployee(s.DB.QueryRow(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    WHERE id = $1
  `, employeeID))
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *Store) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (name, role, hierarchy, team_id, reports_to, email)
    VALUES ($1, $2, $3, NULLIF($4, '')::uuid, NULLIF($5, '')::uuid, NULLIF($6, ''))
    RETURNING id
  `, emp.Name, emp.Role, emp.Hierarchy, emp.TeamID, emp.ReportsTo, emp.Email).Scan(&id)
	return id, err
}

func (s *Store) UpdateEmployee(ctx context.Context, emp Employee) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE employees
    SET name = $2,
        role = $3,
        hierarchy = $4,
        team_id = NULLIF($5, '')::uuid,
        reports_to = NULLIF($6, '')::uuid,
        email = NULLIF($7, ''),
        updated_at = now()
    WHERE id = $1
  `, emp.ID, emp.Name, emp.Role, emp.Hierarchy, emp.TeamID, emp.ReportsTo, emp.Email)
	return err
}

func (s *Store) DeleteEmployee(ctx context.Context, employeeID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", employeeID)
	return err
}

func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, created_at
    FROM teams
    ORDER BY created_at, id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *Store) CreateTeam(ctx context.Context, name string) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "INSERT INTO teams (name) VALUES ($1) RETURNING id", name).Scan(&id)
	return id, err
}

func (s *Store) UpdateTeam(ctx context.Context, teamID, name string) error {
	_, err := s.DB.Exec(ctx, "UPDATE teams SET name = $2 WHERE id = $1", teamID, name)
	return err
}

func (s *Store) DeleteTeam(ctx context.Context, teamID string) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM teams WHERE id = $1", teamID)
	return err
}

func (s *Store) GetProfile(ctx context.Context, employeeID string) (*EmployeeProfile, error) {
	var profile EmployeeProfile
	err := s.DB.QueryRow(ctx, `
    SELECT employee_id, COALESCE(bio, ''), COALESCE(skills, '{}'), COALESCE(photo_url, '')
    FROM employee_profiles
    WHERE employee_id = $1
  `, employeeID).Scan(&profile.EmployeeID, &profile.Bio, &profile.Skills, &profile.PhotoURL)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) UpsertProfile(ctx context.Context, profile EmployeeProfile) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employee_profiles (employee_id, bio, skills, photo_url)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (employee_id) DO UPDATE
    SET bio = EXCLUDED.bio, skills = EXCLUDED.skills, photo_url = EXCLUDED.photo_url
  `, profile.EmployeeID, profile.Bio, profile.Skills, profile.PhotoURL)
	return err
}

// Snapshot reads the three collections inside one repeatable-read
// transaction so org-chart and auto-assignment callers see mutually
// consistent data.
func (s *Store) Snapshot(ctx context.Context) (Snapshot, error) {
	var snapshot Snapshot

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return snapshot, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx, `
    SELECT`+employeeColumns+`
    FROM employees
    ORDER BY created_at, id
  `)
	if err != nil {
		return snapshot, err
	}
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			rows.Close()
			return snapshot, err
		}
		snapshot.Employees = append(snapshot.Employees, emp)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, err
	}

	rows, err = tx.Query(ctx, "SELECT id, name, created_at FROM teams ORDER BY created_at, id")
	if err != nil {
		return snapshot, err
	}
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.CreatedAt); err != nil {
			rows.Close()
			return snapshot, err
		}
		snapshot.Teams = append(snapshot.Teams, team)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, err
	}

	rows, err = tx.Query(ctx, `
    SELECT employee_id, COALESCE(bio, ''), COALESCE(skills, '{}'), COALESCE(photo_url, '')
    FROM employee_profiles
  `)
	if err != nil {
		return snapshot, err
	}
	for rows.Next() {
		var profile EmployeeProfile
		if err := rows.Scan(&profile.EmployeeID, &profile.Bio, &profile.Skills, &profile.PhotoURL); err != nil {
			rows.Close()
			return snapshot, err
		}
		snapshot.Profiles = append(snapshot.Profiles, profile)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return snapshot, err
	}

	return snapshot, tx.Commit(ctx)
}
