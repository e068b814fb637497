package directory

import "time"

// Employee is a flat directory record. Hierarchy is a free-form rank tag
// normalized by the orgchart package; TeamID and ReportsTo may dangle and
// consumers are expected to treat a dangling reference as absent.
type Employee struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Hierarchy string    `json:"hierarchy"`
	TeamID    string    `json:"teamId,omitempty"`
	ReportsTo string    `json:"reportsTo,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmployeeProfile is an optional 1:1 extension of Employee.
type EmployeeProfile struct {
	EmployeeID string   `json:"employeeId"`
	Bio        string   `json:"bio,omitempty"`
	Skills     []string `json:"skills,omitempty"`
	PhotoURL   string   `json:"photoUrl,omitempty"`
}

// Snapshot bundles the three directory collections read in one pass so that
// org-chart and assignment callers work from mutually consistent data.
type Snapshot struct {
	Employees []Employee        `json:"employees"`
	Teams     []Team            `json:"teams"`
	Profiles  []EmployeeProfile `json:"profiles"`
}
