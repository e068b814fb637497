package orgchart

import (
	"testing"

	"appraisal/internal/domain/directory"
)

func TestDirectReports(t *testing.T) {
	employees := []directory.Employee{
		{ID: "l1", Hierarchy: "leader"},
		{ID: "m1", Hierarchy: "member", ReportsTo: "l1"},
		{ID: "m2", Hierarchy: "member", ReportsTo: "l1"},
		{ID: "m3", Hierarchy: "member", ReportsTo: "other"},
		{ID: "m4", Hierarchy: "member"},
	}

	reports := DirectReports("l1", employees)
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ID != "m1" || reports[1].ID != "m2" {
		t.Fatalf("input order must be preserved, got %s, %s", reports[0].ID, reports[1].ID)
	}

	if got := DirectReports("m4", employees); len(got) != 0 {
		t.Fatalf("expected no reports, got %d", len(got))
	}
	if got := DirectReports("", employees); len(got) != 0 {
		t.Fatal("empty id must not match employees without reportsTo")
	}
}

func TestReportingChain(t *testing.T) {
	employees := []directory.Employee{
		{ID: "c1", Hierarchy: "chairman"},
		{ID: "e1", Hierarchy: "executive", ReportsTo: "c1"},
		{ID: "l1", Hierarchy: "leader", ReportsTo: "e1"},
		{ID: "m1", Hierarchy: "member", ReportsTo: "l1"},
	}

	chain := ReportingChain("m1", employees)
	if len(chain) != 3 {
		t.Fatalf("expected 3 managers, got %d", len(chain))
	}
	if chain[0].ID != "l1" || chain[1].ID != "e1" || chain[2].ID != "c1" {
		t.Fatalf("chain must run nearest to most senior: %s, %s, %s", chain[0].ID, chain[1].ID, chain[2].ID)
	}
}

func TestReportingChainDanglingManager(t *testing.T) {
	employees := []directory.Employee{
		{ID: "l1", Hierarchy: "leader", ReportsTo: "ghost"},
		{ID: "m1", Hierarchy: "member", ReportsTo: "l1"},
	}

	chain := ReportingChain("m1", employees)
	if len(chain) != 1 || chain[0].ID != "l1" {
		t.Fatalf("dangling reference must truncate the chain, got %+v", chain)
	}
}

func TestReportingChainCycle(t *testing.T) {
	employees := []directory.Employee{
		{ID: "a", ReportsTo: "b"},
		{ID: "b", ReportsTo: "c"},
		{ID: "c", ReportsTo: "a"},
	}

	chain := ReportingChain("a", employees)
	if len(chain) != 2 {
		t.Fatalf("cycle must stop before re-adding, got %d entries", len(chain))
	}
	seen := map[string]bool{}
	for _, emp := range chain {
		if seen[emp.ID] || emp.ID == "a" {
			t.Fatalf("chain contains duplicate or starting employee: %s", emp.ID)
		}
		seen[emp.ID] = true
	}
}

func TestReportingChainSelfReference(t *testing.T) {
	employees := []directory.Employee{
		{ID: "a", ReportsTo: "a"},
	}
	if chain := ReportingChain("a", employees); len(chain) != 0 {
		t.Fatalf("self reference must yield an empty chain, got %d", len(chain))
	}
}

func TestReportingChainUnknownEmployee(t *testing.T) {
	if chain := ReportingChain("missing", nil); chain != nil {
		t.Fatalf("unknown employee must yield nil, got %+v", chain)
	}
}

func TestReportingChainHopBound(t *testing.T) {
	var employees []directory.Employee
	for i := 0; i < 80; i++ {
		emp := directory.Employee{ID: idFor(i)}
		if i < 79 {
			emp.ReportsTo = idFor(i + 1)
		}
		employees = append(employees, emp)
	}

	chain := ReportingChain(idFor(0), employees)
	if len(chain) != maxChainHops {
		t.Fatalf("expected chain capped at %d hops, got %d", maxChainHops, len(chain))
	}
}

func idFor(i int) string {
	return string(rune('A'+i/26)) + string(rune('a'+i%26))
}
