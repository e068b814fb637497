package appraisal

import (
	"testing"
	"time"
)

func samplePreview() AutoAssignPreview {
	return AutoAssignPreview{
		ReviewPeriodID: "p1",
		LeaderToMember: []CandidatePair{
			{AppraiserID: "l1", AppraiserName: "Lena", EmployeeID: "m1", EmployeeName: "Mia"},
			{AppraiserID: "l1", AppraiserName: "Lena", EmployeeID: "m2", EmployeeName: "Aaron"},
		},
		MemberToLeader: []CandidatePair{
			{AppraiserID: "m1", AppraiserName: "Mia", EmployeeID: "l1", EmployeeName: "Lena"},
		},
		LeaderToLeader: []CandidatePair{},
		ExecToLeader:   []CandidatePair{},
		Warnings:       []string{},
	}
}

func sampleMapping() TemplateMapping {
	return TemplateMapping{
		LeaderToMember: "tpl-down",
		MemberToLeader: "tpl-up",
		LeaderToLeader: "tpl-peer",
		ExecToLeader:   "tpl-exec",
	}
}

func TestBuildAssignmentsFromPreview(t *testing.T) {
	assignments := BuildAssignmentsFromPreview(samplePreview(), sampleMapping(), "p1", "H1 2026", nil)

	if len(assignments) != 3 {
		t.Fatalf("every preview row becomes exactly one assignment, got %d", len(assignments))
	}

	ids := map[string]bool{}
	for _, a := range assignments {
		if a.ID == "" || ids[a.ID] {
			t.Fatalf("assignment ids must be fresh and unique, got %q", a.ID)
		}
		ids[a.ID] = true
		if a.Status != StatusPending {
			t.Fatalf("expected pending status, got %q", a.Status)
		}
		if a.AssignmentType != AssignmentTypeAuto {
			t.Fatalf("expected auto type, got %q", a.AssignmentType)
		}
		if a.ReviewPeriodID != "p1" || a.ReviewPeriodName != "H1 2026" {
			t.Fatalf("period not carried through: %+v", a)
		}
		if a.CreatedAt.IsZero() {
			t.Fatal("createdAt must be set")
		}
		if a.DueDate != nil {
			t.Fatal("due date was not supplied")
		}
	}
}

func TestBuildAssignmentsOrderAndTemplates(t *testing.T) {
	assignments := BuildAssignmentsFromPreview(samplePreview(), sampleMapping(), "p1", "H1 2026", nil)

	if assignments[0].EmployeeID != "m1" || assignments[1].EmployeeID != "m2" {
		t.Fatal("row order must be preserved within a relationship kind")
	}
	if assignments[0].RelationshipType != RelationshipLeaderToMember || assignments[0].TemplateID != "tpl-down" {
		t.Fatalf("wrong relationship/template: %+v", assignments[0])
	}
	if assignments[2].RelationshipType != RelationshipMemberToLeader || assignments[2].TemplateID != "tpl-up" {
		t.Fatalf("wrong relationship/template: %+v", assignments[2])
	}
}

func TestBuildAssignmentsDueDate(t *testing.T) {
	due := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	assignments := BuildAssignmentsFromPreview(samplePreview(), sampleMapping(), "p1", "H1 2026", &due)

	for _, a := range assignments {
		if a.DueDate == nil || !a.DueDate.Equal(due) {
			t.Fatalf("due date must propagate to every assignment, got %+v", a.DueDate)
		}
	}
}

func TestBuildAssignmentsNoIDCollisionsAcrossCalls(t *testing.T) {
	ids := map[string]bool{}
	for i := 0; i < 3; i++ {
		for _, a := range BuildAssignmentsFromPreview(samplePreview(), sampleMapping(), "p1", "H1 2026", nil) {
			if ids[a.ID] {
				t.Fatalf("id %q collided across calls", a.ID)
			}
			ids[a.ID] = true
		}
	}
}

func TestBuildAssignmentsEmptyPreview(t *testing.T) {
	empty := AutoAssignPreview{}
	if got := BuildAssignmentsFromPreview(empty, sampleMapping(), "p1", "H1 2026", nil); len(got) != 0 {
		t.Fatalf("empty preview must yield no assignments, got %d", len(got))
	}
}
