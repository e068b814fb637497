package appraisal

import (
	"fmt"

	"appraisal/internal/domain/directory"
	"appraisal/internal/domain/orgchart"
)

// AutoAssignOptions toggles the four derivation rules. Callers start from
// DefaultAutoAssignOptions and flip individual fields.
type AutoAssignOptions struct {
	LeaderToMember bool `json:"leaderToMember"`
	MemberToLeader bool `json:"memberToLeader"`
	LeaderToLeader bool `json:"leaderToLeader"`
	ExecToLeader   bool `json:"execToLeader"`
}

func DefaultAutoAssignOptions() AutoAssignOptions {
	return AutoAssignOptions{
		LeaderToMember: true,
		MemberToLeader: true,
		LeaderToLeader: false,
		ExecToLeader:   false,
	}
}

// CandidatePair is one derived appraiser-to-employee pairing.
type CandidatePair struct {
	AppraiserID   string `json:"appraiserId"`
	AppraiserName string `json:"appraiserName"`
	EmployeeID    string `json:"employeeId"`
	EmployeeName  string `json:"employeeName"`
}

// AutoAssignPreview is the ephemeral result shown to an admin before
// materialization. It is never persisted.
type AutoAssignPreview struct {
	ReviewPeriodID string          `json:"reviewPeriodId"`
	LeaderToMember []CandidatePair `json:"leaderToMember"`
	MemberToLeader []CandidatePair `json:"memberToLeader"`
	LeaderToLeader []CandidatePair `json:"leaderToLeader"`
	ExecToLeader   []CandidatePair `json:"execToLeader"`
	Warnings       []string        `json:"warnings"`
}

// isManager checks the literal hierarchy tag, not the rank: only employees
// tagged exactly leader or executive qualify. department-leader is excluded
// here even though the tree builder ranks it with leader; the asymmetry is
// kept as-is pending product clarification.
func isManager(emp directory.Employee) bool {
	return emp.Hierarchy == orgchart.TagLeader || emp.Hierarchy == orgchart.TagExecutive
}

func isMember(emp directory.Employee) bool {
	return emp.Hierarchy == orgchart.TagMember
}

// PreviewAutoAssignments derives candidate reviewer/reviewee pairs from the
// employee list under the enabled rules. Pure function: output order follows
// input iteration order, inputs are never mutated, and identical inputs
// yield identical previews. reviewPeriodID is carried through for future
// period scoping; it does not filter anything yet. A nil opts means
// defaults.
func PreviewAutoAssignments(employees []directory.Employee, reviewPeriodID string, opts *AutoAssignOptions) AutoAssignPreview {
	options := DefaultAutoAssignOptions()
	if opts != nil {
		options = *opts
	}

	byID := make(map[string]directory.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	preview := AutoAssignPreview{
		ReviewPeriodID: reviewPeriodID,
		LeaderToMember: []CandidatePair{},
		MemberToLeader: []CandidatePair{},
		LeaderToLeader: []CandidatePair{},
		ExecToLeader:   []CandidatePair{},
		Warnings:       []string{},
	}

	if options.LeaderToMember {
		for _, emp := range employees {
			if !isMember(emp) || emp.ReportsTo == "" {
				continue
			}
			manager, ok := byID[emp.ReportsTo]
			if !ok || !isManager(manager) {
				continue
			}
			preview.LeaderToMember = append(preview.LeaderToMember, pair(manager, emp))
		}
	}

	if options.MemberToLeader {
		for _, emp := range employees {
			if !isMember(emp) || emp.ReportsTo == "" {
				continue
			}
			// Upward feedback targets whoever the member reports to,
			// manager-tagged or not.
			target, ok := byID[emp.ReportsTo]
			if !ok {
				continue
			}
			preview.MemberToLeader = append(preview.MemberToLeader, pair(emp, target))
		}
	}

	if options.LeaderToLeader {
		var managers []directory.Employee
		for _, emp := range employees {
			if isManager(emp) {
				managers = append(managers, emp)
			}
		}
		// Peers are grouped by team id; managers without a team form one
		// shared bucket. Both directions are emitted.
		for _, appraiser := range managers {
			for _, peer := range managers {
				if appraiser.ID == peer.ID || appraiser.TeamID != peer.TeamID {
					continue
				}
				preview.LeaderToLeader = append(preview.LeaderToLeader, pair(appraiser, peer))
			}
		}
	}

	if options.ExecToLeader {
		for _, exec := range employees {
			if exec.Hierarchy != orgchart.TagExecutive || exec.TeamID == "" {
				continue
			}
			for _, leader := range employees {
				if leader.Hierarchy != orgchart.TagLeader || leader.TeamID != exec.TeamID {
					continue
				}
				preview.ExecToLeader = append(preview.ExecToLeader, pair(exec, leader))
			}
		}
	}

	preview.Warnings = structuralWarnings(employees)
	return preview
}

// structuralWarnings is computed on every preview regardless of which rules
// are enabled.
func structuralWarnings(employees []directory.Employee) []string {
	warnings := []string{}

	orphanedMembers := 0
	for _, emp := range employees {
		if isMember(emp) && emp.ReportsTo == "" {
			orphanedMembers++
		}
	}
	if orphanedMembers > 0 {
		warnings = append(warnings, fmt.Sprintf("%d member(s) have no reportsTo set and cannot be paired with a leader", orphanedMembers))
	}

	idleLeaders := 0
	for _, emp := range employees {
		if emp.Hierarchy != orgchart.TagLeader {
			continue
		}
		if len(orgchart.DirectReports(emp.ID, employees)) == 0 {
			idleLeaders++
		}
	}
	if idleLeaders > 0 {
		warnings = append(warnings, fmt.Sprintf("%d leader(s) have no direct reports", idleLeaders))
	}

	return warnings
}

func pair(appraiser, employee directory.Employee) CandidatePair {
	return CandidatePair{
		AppraiserID:   appraiser.ID,
		AppraiserName: appraiser.Name,
		EmployeeID:    employee.ID,
		EmployeeName:  employee.Name,
	}
}
