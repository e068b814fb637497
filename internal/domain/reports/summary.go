package reports

import (
	"fmt"
	"time"
)

// DashboardSummary is one employee's performance snapshot: what was
// assigned about them and what came back.
type DashboardSummary struct {
	EmployeeID         string         `json:"employeeId"`
	AssignmentsTotal   int            `json:"assignmentsTotal"`
	FormsCompleted     int            `json:"formsCompleted"`
	CompletionRate     float64        `json:"completionRate"`
	AverageScore       float64        `json:"averageScore"`
	ScoreDistribution  map[string]int `json:"scoreDistribution"`
	OverdueAssignments int            `json:"overdueAssignments"`
	RecentForms        []RecentForm   `json:"recentForms"`
}

// RecentForm is one completed form in the dashboard's recency list.
type RecentForm struct {
	AssignmentID     string    `json:"assignmentId"`
	ReviewPeriodName string    `json:"reviewPeriodName"`
	OverallScore     float64   `json:"overallScore"`
	SubmittedAt      time.Time `json:"submittedAt"`
}

// BuildDashboardSummary aggregates already-loaded counts and scores into the
// dashboard view model. Pure; scores bucket by rounding to the nearest
// integer.
func BuildDashboardSummary(employeeID string, assignmentsTotal, overdue int, scores []float64) DashboardSummary {
	summary := DashboardSummary{
		EmployeeID:         employeeID,
		AssignmentsTotal:   assignmentsTotal,
		FormsCompleted:     len(scores),
		OverdueAssignments: overdue,
		ScoreDistribution:  map[string]int{},
	}

	total := 0.0
	for _, score := range scores {
		total += score
		bucket := fmt.Sprintf("%d", int(score+0.5))
		summary.ScoreDistribution[bucket]++
	}
	if len(scores) > 0 {
		summary.AverageScore = total / float64(len(scores))
	}
	if assignmentsTotal > 0 {
		summary.CompletionRate = float64(len(scores)) / float64(assignmentsTotal)
	}
	return summary
}
