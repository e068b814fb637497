package appraisal

import (
	"reflect"
	"testing"

	"appraisal/internal/domain/directory"
)

func basicOrg() []directory.Employee {
	return []directory.Employee{
		{ID: "c1", Name: "Dana", Hierarchy: "chairman"},
		{ID: "e1", Name: "Evan", Hierarchy: "executive"},
		{ID: "l1", Name: "Lena", Hierarchy: "leader", TeamID: "t1"},
		{ID: "m1", Name: "Mia", Hierarchy: "member", TeamID: "t1", ReportsTo: "l1"},
	}
}

func TestPreviewDefaults(t *testing.T) {
	preview := PreviewAutoAssignments(basicOrg(), "p1", nil)

	if preview.ReviewPeriodID != "p1" {
		t.Fatalf("review period id not carried through: %q", preview.ReviewPeriodID)
	}
	if len(preview.LeaderToMember) != 1 {
		t.Fatalf("expected 1 leader-to-member pair, got %d", len(preview.LeaderToMember))
	}
	got := preview.LeaderToMember[0]
	if got.AppraiserID != "l1" || got.EmployeeID != "m1" {
		t.Fatalf("wrong pair: %+v", got)
	}
	if got.AppraiserName != "Lena" || got.EmployeeName != "Mia" {
		t.Fatalf("names not resolved: %+v", got)
	}

	if len(preview.MemberToLeader) != 1 {
		t.Fatalf("expected 1 member-to-leader pair, got %d", len(preview.MemberToLeader))
	}
	up := preview.MemberToLeader[0]
	if up.AppraiserID != "m1" || up.EmployeeID != "l1" {
		t.Fatalf("wrong upward pair: %+v", up)
	}

	if len(preview.LeaderToLeader) != 0 || len(preview.ExecToLeader) != 0 {
		t.Fatal("peer and exec rules default to disabled")
	}
	if len(preview.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", preview.Warnings)
	}
}

func TestPreviewMemberToLeaderTargetsAnyManager(t *testing.T) {
	employees := []directory.Employee{
		{ID: "h1", Name: "Hugo", Hierarchy: "hr"},
		{ID: "m1", Name: "Mia", Hierarchy: "member", ReportsTo: "h1"},
	}
	preview := PreviewAutoAssignments(employees, "p1", nil)

	// Upward feedback does not require the target to be manager-tagged.
	if len(preview.MemberToLeader) != 1 || preview.MemberToLeader[0].EmployeeID != "h1" {
		t.Fatalf("expected upward pair to hr target, got %+v", preview.MemberToLeader)
	}
	// Downward pairing does: hr is not a manager.
	if len(preview.LeaderToMember) != 0 {
		t.Fatalf("hr must not appraise downward, got %+v", preview.LeaderToMember)
	}
}

func TestPreviewDepartmentLeaderIsNotManager(t *testing.T) {
	employees := []directory.Employee{
		{ID: "d1", Name: "Dee", Hierarchy: "department-leader", TeamID: "t1"},
		{ID: "m1", Name: "Mia", Hierarchy: "member", TeamID: "t1", ReportsTo: "d1"},
	}
	opts := DefaultAutoAssignOptions()
	opts.LeaderToLeader = true
	preview := PreviewAutoAssignments(employees, "p1", &opts)

	// The manager check is on the literal tag, so department-leader does not
	// qualify for downward or peer pairing.
	if len(preview.LeaderToMember) != 0 {
		t.Fatalf("department-leader must not appraise downward, got %+v", preview.LeaderToMember)
	}
	if len(preview.LeaderToLeader) != 0 {
		t.Fatalf("department-leader must not peer-review, got %+v", preview.LeaderToLeader)
	}
	if len(preview.MemberToLeader) != 1 {
		t.Fatal("upward feedback still applies")
	}
}

func TestPreviewDanglingReportsTo(t *testing.T) {
	employees := []directory.Employee{
		{ID: "m1", Name: "Mia", Hierarchy: "member", ReportsTo: "ghost"},
	}
	preview := PreviewAutoAssignments(employees, "p1", nil)

	if len(preview.LeaderToMember) != 0 || len(preview.MemberToLeader) != 0 {
		t.Fatal("dangling reportsTo must produce no pairs")
	}
}

func TestPreviewLeaderToLeaderSameTeamBothDirections(t *testing.T) {
	employees := []directory.Employee{
		{ID: "l1", Name: "Lena", Hierarchy: "leader", TeamID: "t1"},
		{ID: "l2", Name: "Karl", Hierarchy: "leader", TeamID: "t1"},
		{ID: "l3", Name: "Noa", Hierarchy: "leader", TeamID: "t2"},
	}
	opts := AutoAssignOptions{LeaderToLeader: true}
	preview := PreviewAutoAssignments(employees, "p1", &opts)

	if len(preview.LeaderToLeader) != 2 {
		t.Fatalf("expected both directions within t1 only, got %d", len(preview.LeaderToLeader))
	}
	first, second := preview.LeaderToLeader[0], preview.LeaderToLeader[1]
	if first.AppraiserID != "l1" || first.EmployeeID != "l2" {
		t.Fatalf("wrong first pair: %+v", first)
	}
	if second.AppraiserID != "l2" || second.EmployeeID != "l1" {
		t.Fatalf("wrong second pair: %+v", second)
	}
}

func TestPreviewLeaderToLeaderNoTeamBucket(t *testing.T) {
	employees := []directory.Employee{
		{ID: "l1", Name: "Lena", Hierarchy: "leader"},
		{ID: "e1", Name: "Evan", Hierarchy: "executive"},
	}
	opts := AutoAssignOptions{LeaderToLeader: true}
	preview := PreviewAutoAssignments(employees, "p1", &opts)

	// Managers without a team share one bucket and pair with each other.
	if len(preview.LeaderToLeader) != 2 {
		t.Fatalf("expected the no-team bucket to pair, got %d", len(preview.LeaderToLeader))
	}
}

func TestPreviewExecToLeader(t *testing.T) {
	employees := []directory.Employee{
		{ID: "e1", Name: "Evan", Hierarchy: "executive", TeamID: "t1"},
		{ID: "e2", Name: "Faye", Hierarchy: "executive"},
		{ID: "l1", Name: "Lena", Hierarchy: "leader", TeamID: "t1"},
		{ID: "d1", Name: "Dee", Hierarchy: "department-leader", TeamID: "t1"},
		{ID: "l2", Name: "Karl", Hierarchy: "leader", TeamID: "t2"},
	}
	opts := AutoAssignOptions{ExecToLeader: true}
	preview := PreviewAutoAssignments(employees, "p1", &opts)

	// Only leader-tagged employees in the executive's exact team; the
	// teamless executive is skipped entirely.
	if len(preview.ExecToLeader) != 1 {
		t.Fatalf("expected exactly one exec pair, got %+v", preview.ExecToLeader)
	}
	got := preview.ExecToLeader[0]
	if got.AppraiserID != "e1" || got.EmployeeID != "l1" {
		t.Fatalf("wrong exec pair: %+v", got)
	}
}

func TestPreviewWarnings(t *testing.T) {
	employees := []directory.Employee{
		{ID: "l1", Name: "Lena", Hierarchy: "leader"},
		{ID: "m1", Name: "Mia", Hierarchy: "member"},
	}
	preview := PreviewAutoAssignments(employees, "p1", nil)

	if len(preview.Warnings) != 2 {
		t.Fatalf("expected orphaned member and idle leader warnings, got %v", preview.Warnings)
	}
	if preview.Warnings[0] != "1 member(s) have no reportsTo set and cannot be paired with a leader" {
		t.Fatalf("unexpected warning: %q", preview.Warnings[0])
	}
	if preview.Warnings[1] != "1 leader(s) have no direct reports" {
		t.Fatalf("unexpected warning: %q", preview.Warnings[1])
	}
	if len(preview.LeaderToMember) != 0 || len(preview.MemberToLeader) != 0 {
		t.Fatal("orphaned member must be excluded from both rule outputs")
	}
}

func TestPreviewWarningsComputedWhenRulesDisabled(t *testing.T) {
	employees := []directory.Employee{
		{ID: "m1", Name: "Mia", Hierarchy: "member"},
	}
	opts := AutoAssignOptions{}
	preview := PreviewAutoAssignments(employees, "p1", &opts)

	if len(preview.Warnings) != 1 {
		t.Fatalf("warnings are advisory and always computed, got %v", preview.Warnings)
	}
}

func TestPreviewIdempotent(t *testing.T) {
	employees := basicOrg()
	opts := DefaultAutoAssignOptions()
	opts.LeaderToLeader = true
	opts.ExecToLeader = true

	first := PreviewAutoAssignments(employees, "p1", &opts)
	second := PreviewAutoAssignments(employees, "p1", &opts)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("identical inputs must yield identical previews")
	}
}

func TestPreviewEmptyInput(t *testing.T) {
	preview := PreviewAutoAssignments(nil, "p1", nil)
	if len(preview.LeaderToMember) != 0 || len(preview.Warnings) != 0 {
		t.Fatalf("empty input must yield an empty preview, got %+v", preview)
	}
}
