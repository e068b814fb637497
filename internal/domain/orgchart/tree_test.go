package orgchart

import (
	"testing"

	"appraisal/internal/domain/directory"
)

func sampleCompany() ([]directory.Employee, []directory.Team, []directory.EmployeeProfile) {
	employees := []directory.Employee{
		{ID: "c1", Name: "Dana Chair", Hierarchy: "chairman"},
		{ID: "e1", Name: "Evan Exec", Hierarchy: "executive", TeamID: "t1"},
		{ID: "l1", Name: "lena lead", Hierarchy: "leader", TeamID: "t1"},
		{ID: "l2", Name: "Karl Lead", Hierarchy: "department-leader", TeamID: "t2"},
		{ID: "m1", Name: "Mia Member", Hierarchy: "member", TeamID: "t1", ReportsTo: "l1"},
		{ID: "m2", Name: "aaron member", Hierarchy: "member", TeamID: "t2", ReportsTo: "l2"},
		{ID: "h1", Name: "Hugo HR", Hierarchy: "hr", TeamID: "t2"},
	}
	teams := []directory.Team{
		{ID: "t1", Name: "Engineering"},
		{ID: "t2", Name: "Operations"},
	}
	profiles := []directory.EmployeeProfile{
		{EmployeeID: "l1", Bio: "ten years in"},
	}
	return employees, teams, profiles
}

func TestBuildTreeLevelAdjacency(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	forest := BuildTree(employees, teams, profiles, Config{})
	if len(forest) != 1 {
		t.Fatalf("expected a single root, got %d", len(forest))
	}
	root := forest[0]
	if root.Employee.ID != "c1" {
		t.Fatalf("expected chairman root, got %s", root.Employee.ID)
	}
	if len(root.Children) != 1 || root.Children[0].Employee.ID != "e1" {
		t.Fatalf("chairman children should be executives, got %+v", root.Children)
	}
	exec := root.Children[0]
	if len(exec.Children) != 2 {
		t.Fatalf("executive should parent both leader-rank employees, got %d", len(exec.Children))
	}
	leader := exec.Children[0]
	if leader.Employee.ID != "l1" {
		t.Fatalf("expected l1 first, got %s", leader.Employee.ID)
	}
	if len(leader.Children) != 3 {
		t.Fatalf("leader should parent members and hr, got %d", len(leader.Children))
	}
	for _, leaf := range leader.Children {
		if len(leaf.Children) != 0 {
			t.Fatalf("member/hr must be leaves, %s has children", leaf.Employee.ID)
		}
	}
}

func TestBuildTreeVisitedPlaceholders(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	forest := BuildTree(employees, teams, profiles, Config{})
	exec := forest[0].Children[0]
	second := exec.Children[1]
	if second.Employee.ID != "l2" {
		t.Fatalf("expected l2 second, got %s", second.Employee.ID)
	}
	// l1 consumed all level-3 employees first, so l2 sees them as placeholders.
	if len(second.Children) != 3 {
		t.Fatalf("expected 3 placeholder children, got %d", len(second.Children))
	}
	for _, placeholder := range second.Children {
		if len(placeholder.Children) != 0 || placeholder.Expanded {
			t.Fatalf("revisited employee %s must be a closed childless placeholder", placeholder.Employee.ID)
		}
	}
}

func TestBuildTreeExpandedHint(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	forest := BuildTree(employees, teams, profiles, Config{})
	root := forest[0]
	if !root.Expanded || !root.Children[0].Expanded {
		t.Fatal("depth 0 and 1 default to expanded")
	}
	if root.Children[0].Children[0].Expanded {
		t.Fatal("depth 2 defaults to closed")
	}
}

func TestBuildTreeMaxDepth(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	forest := BuildTree(employees, teams, profiles, Config{MaxDepth: 1})
	root := forest[0]
	if len(root.Children) != 1 {
		t.Fatalf("depth 0 still expands, got %d children", len(root.Children))
	}
	exec := root.Children[0]
	if len(exec.Children) != 0 || exec.Expanded {
		t.Fatal("nodes at the depth bound must be childless and closed")
	}
}

func TestBuildTreeRootFallbacks(t *testing.T) {
	_, teams, profiles := sampleCompany()

	noChair := []directory.Employee{
		{ID: "l1", Name: "Lena", Hierarchy: "leader"},
		{ID: "m1", Name: "Mia", Hierarchy: "member"},
	}
	forest := BuildTree(noChair, teams, profiles, Config{})
	if forest[0].Employee.ID != "l1" {
		t.Fatalf("expected leader fallback root, got %s", forest[0].Employee.ID)
	}

	membersOnly := []directory.Employee{
		{ID: "m9", Name: "Solo", Hierarchy: "member"},
	}
	forest = BuildTree(membersOnly, teams, profiles, Config{})
	if forest[0].Employee.ID != "m9" {
		t.Fatalf("expected member fallback root, got %s", forest[0].Employee.ID)
	}
}

func TestBuildTreeExplicitRoot(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	forest := BuildTree(employees, teams, profiles, Config{RootEmployeeID: "l1"})
	if forest[0].Employee.ID != "l1" {
		t.Fatalf("expected requested root, got %s", forest[0].Employee.ID)
	}
	if len(forest[0].Children) != 3 {
		t.Fatalf("leader root parents the member/hr band, got %d", len(forest[0].Children))
	}
}

func TestBuildTreeEmptySet(t *testing.T) {
	if forest := BuildTree(nil, nil, nil, Config{}); len(forest) != 0 {
		t.Fatalf("empty input must yield an empty forest, got %d", len(forest))
	}
}

func TestBuildTreeResolvesTeamAndProfile(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	forest := BuildTree(employees, teams, profiles, Config{RootEmployeeID: "l1"})
	root := forest[0]
	if root.Team == nil || root.Team.Name != "Engineering" {
		t.Fatalf("expected resolved team, got %+v", root.Team)
	}
	if root.Profile == nil || root.Profile.Bio != "ten years in" {
		t.Fatalf("expected resolved profile, got %+v", root.Profile)
	}
}

func TestBuildDepartmentTree(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	node := BuildDepartmentTree("t2", employees, teams, profiles, Config{})
	if node == nil {
		t.Fatal("expected a department subtree")
	}
	if node.Employee.ID != "l2" {
		t.Fatalf("expected leader-rank root for t2, got %s", node.Employee.ID)
	}
	if len(node.Children) != 2 {
		t.Fatalf("expected the two t2 level-3 employees, got %d", len(node.Children))
	}
}

func TestBuildDepartmentTreeChairmanWins(t *testing.T) {
	employees := []directory.Employee{
		{ID: "m1", Name: "Mia", Hierarchy: "member", TeamID: "t9"},
		{ID: "c1", Name: "Dana", Hierarchy: "chairman", TeamID: "t9"},
	}
	node := BuildDepartmentTree("t9", employees, nil, nil, Config{})
	if node == nil || node.Employee.ID != "c1" {
		t.Fatalf("chairman in the team must be root, got %+v", node)
	}
}

func TestBuildDepartmentTreeMissingTeam(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	if node := BuildDepartmentTree("nope", employees, teams, profiles, Config{}); node != nil {
		t.Fatalf("unknown team must resolve to nil, got %+v", node)
	}
	if node := BuildDepartmentTree("", employees, teams, profiles, Config{}); node != nil {
		t.Fatal("empty team id must resolve to nil")
	}
}

func TestBuildDepartmentTreeMemberFallbackRoot(t *testing.T) {
	employees := []directory.Employee{
		{ID: "m2", Name: "Aaron", Hierarchy: "member", TeamID: "t3"},
		{ID: "h1", Name: "Hugo", Hierarchy: "hr", TeamID: "t3"},
	}
	node := BuildDepartmentTree("t3", employees, nil, nil, Config{})
	if node == nil || node.Employee.ID != "m2" {
		t.Fatalf("expected first team employee as root, got %+v", node)
	}
}

func TestBuildLevelsBands(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	levels := BuildLevels(employees, teams, profiles, Config{})
	if len(levels) != 4 {
		t.Fatalf("expected 4 bands, got %d", len(levels))
	}
	if len(levels[0]) != 1 || levels[0][0].Employee.ID != "c1" {
		t.Fatalf("band 0 should hold the chairman, got %+v", levels[0])
	}
	if len(levels[1]) != 1 || levels[1][0].Employee.ID != "e1" {
		t.Fatalf("band 1 should hold the executive, got %+v", levels[1])
	}
	if len(levels[2]) != 2 {
		t.Fatalf("band 2 should hold both leader ranks, got %d", len(levels[2]))
	}
	if len(levels[3]) != 3 {
		t.Fatalf("band 3 should hold members and hr, got %d", len(levels[3]))
	}
	for _, band := range levels {
		for _, node := range band {
			if node.Children == nil || len(node.Children) != 0 {
				t.Fatalf("level nodes never nest, %s has children", node.Employee.ID)
			}
		}
	}
}

func TestBuildLevelsSortCaseInsensitive(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	levels := BuildLevels(employees, teams, profiles, Config{})
	// "Karl Lead" before "lena lead" regardless of case.
	if levels[2][0].Employee.ID != "l2" || levels[2][1].Employee.ID != "l1" {
		t.Fatalf("band 2 order wrong: %s, %s", levels[2][0].Employee.ID, levels[2][1].Employee.ID)
	}
	if levels[3][0].Employee.ID != "m2" {
		t.Fatalf("expected aaron first in band 3, got %s", levels[3][0].Employee.ID)
	}
}

func TestBuildLevelsGroupByDepartment(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	levels := BuildLevels(employees, teams, profiles, Config{GroupByDepartment: true})
	// Engineering sorts before Operations, so Mia (t1) precedes the t2 pair.
	band := levels[3]
	if band[0].Employee.ID != "m1" {
		t.Fatalf("expected t1 member first, got %s", band[0].Employee.ID)
	}
	if band[1].Employee.ID != "m2" || band[2].Employee.ID != "h1" {
		t.Fatalf("expected t2 members by name, got %s, %s", band[1].Employee.ID, band[2].Employee.ID)
	}
}

func TestBuildLevelsIncludeTags(t *testing.T) {
	employees, teams, profiles := sampleCompany()

	levels := BuildLevels(employees, teams, profiles, Config{IncludeTags: []string{"chairman", "executive"}})
	if len(levels[0]) != 1 || len(levels[1]) != 1 {
		t.Fatal("tag filter should keep chairman and executive")
	}
	if len(levels[2]) != 0 || len(levels[3]) != 0 {
		t.Fatal("tag filter should drop the remaining bands")
	}
}

func TestBuildTreeDoesNotMutateInput(t *testing.T) {
	employees, teams, profiles := sampleCompany()
	before := make([]directory.Employee, len(employees))
	copy(before, employees)

	BuildTree(employees, teams, profiles, Config{})
	BuildLevels(employees, teams, profiles, Config{GroupByDepartment: true})

	for i := range before {
		if employees[i] != before[i] {
			t.Fatalf("input employees mutated at %d", i)
		}
	}
}
