package appraisal

import (
	"time"

	"github.com/google/uuid"
)

// TemplateMapping selects which template each relationship kind uses when a
// preview is materialized.
type TemplateMapping struct {
	LeaderToMember string `json:"leaderToMember"`
	MemberToLeader string `json:"memberToLeader"`
	LeaderToLeader string `json:"leaderToLeader"`
	ExecToLeader   string `json:"execToLeader"`
}

// BuildAssignmentsFromPreview turns an accepted preview into persistable
// assignment records: one per preview row, in preview order, each with a
// fresh unique id, pending status and auto assignment type. Saving the
// records is the caller's concern.
func BuildAssignmentsFromPreview(preview AutoAssignPreview, mapping TemplateMapping, reviewPeriodID, reviewPeriodName string, dueDate *time.Time) []Assignment {
	now := time.Now().UTC()

	groups := []struct {
		pairs        []CandidatePair
		relationship string
		templateID   string
	}{
		{preview.LeaderToMember, RelationshipLeaderToMember, mapping.LeaderToMember},
		{preview.MemberToLeader, RelationshipMemberToLeader, mapping.MemberToLeader},
		{preview.LeaderToLeader, RelationshipLeaderToLeader, mapping.LeaderToLeader},
		{preview.ExecToLeader, RelationshipExecToLeader, mapping.ExecToLeader},
	}

	var assignments []Assignment
	for _, group := range groups {
		for _, candidate := range group.pairs {
			assignments = append(assignments, Assignment{
				ID:               uuid.NewString(),
				ReviewPeriodID:   reviewPeriodID,
				ReviewPeriodName: reviewPeriodName,
				AppraiserID:      candidate.AppraiserID,
				EmployeeID:       candidate.EmployeeID,
				RelationshipType: group.relationship,
				TemplateID:       group.templateID,
				Status:           StatusPending,
				AssignmentType:   AssignmentTypeAuto,
				CreatedAt:        now,
				DueDate:          dueDate,
			})
		}
	}
	return assignments
}
