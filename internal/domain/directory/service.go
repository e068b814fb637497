package directory

import "context"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.Store.ListEmployees(ctx)
}

func (s *Service) GetEmployee(ctx context.Context, employeeID string) (*Employee, error) {
	return s.Store.GetEmployee(ctx, employeeID)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (string, error) {
	return s.Store.CreateEmployee(ctx, emp)
}

func (s *Service) UpdateEmployee(ctx context.Context, emp Employee) error {
	return s.Store.UpdateEmployee(ctx, emp)
}

func (s *Service) DeleteEmployee(ctx context.Context, employeeID string) error {
	return s.Store.DeleteEmployee(ctx, employeeID)
}

func (s *Service) ListTeams(ctx context.Context) ([]Team, error) {
	return s.Store.ListTeams(ctx)
}

func (s *Service) CreateTeam(ctx context.Context, name string) (string, error) {
	return s.Store.CreateTeam(ctx, name)
}

func (s *Service) UpdateTeam(ctx context.Context, teamID, name string) error {
	return s.Store.UpdateTeam(ctx, teamID, name)
}

func (s *Service) DeleteTeam(ctx context.Context, teamID string) error {
	return s.Store.DeleteTeam(ctx, teamID)
}

func (s *Service) GetProfile(ctx context.Context, employeeID string) (*EmployeeProfile, error) {
	return s.Store.GetProfile(ctx, employeeID)
}

func (s *Service) UpsertProfile(ctx context.Context, profile EmployeeProfile) error {
	return s.Store.UpsertProfile(ctx, profile)
}

func (s *Service) Snapshot(ctx context.Context) (Snapshot, error) {
	return s.Store.Snapshot(ctx)
}
