package appraisal

const (
	PeriodStatusDraft  = "draft"
	PeriodStatusActive = "active"
	PeriodStatusClosed = "closed"

	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOverdue    = "overdue"

	AssignmentTypeAuto   = "auto"
	AssignmentTypeManual = "manual"

	RelationshipLeaderToMember = "leader_to_member"
	RelationshipMemberToLeader = "member_to_leader"
	RelationshipLeaderToLeader = "leader_to_leader"
	RelationshipExecToLeader   = "exec_to_leader"
	RelationshipCustom         = "custom"
)
