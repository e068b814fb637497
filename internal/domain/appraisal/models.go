package appraisal

import (
	"encoding/json"
	"time"
)

type ReviewPeriod struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// Assignment is one reviewer-to-reviewee appraisal task. Materialized
// assignments carry their own ids; storage persists them as given.
type Assignment struct {
	ID               string     `json:"id"`
	ReviewPeriodID   string     `json:"reviewPeriodId"`
	ReviewPeriodName string     `json:"reviewPeriodName,omitempty"`
	AppraiserID      string     `json:"appraiserId"`
	EmployeeID       string     `json:"employeeId"`
	RelationshipType string     `json:"relationshipType"`
	TemplateID       string     `json:"templateId"`
	Status           string     `json:"status"`
	AssignmentType   string     `json:"assignmentType"`
	CreatedAt        time.Time  `json:"createdAt"`
	DueDate          *time.Time `json:"dueDate,omitempty"`
}

// Form is a submitted appraisal: the appraiser's responses for one
// assignment plus the overall score recorded at submission time.
type Form struct {
	ID           string          `json:"id"`
	AssignmentID string          `json:"assignmentId"`
	Responses    json.RawMessage `json:"responses"`
	OverallScore float64         `json:"overallScore"`
	SubmittedAt  time.Time       `json:"submittedAt"`
}
