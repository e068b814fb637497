package orgchart

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"appraisal/internal/domain/directory"
)

// DefaultMaxDepth bounds tree recursion when the caller does not set one.
const DefaultMaxDepth = 20

// Config filters and shapes a single chart build. Zero value means: all
// tags, automatic root selection, default depth bound, sort by name.
type Config struct {
	IncludeTags       []string `json:"includeTags,omitempty"`
	RootEmployeeID    string   `json:"rootEmployeeId,omitempty"`
	MaxDepth          int      `json:"maxDepth,omitempty"`
	GroupByDepartment bool     `json:"groupByDepartment,omitempty"`
}

// Node is the view model for one chart entry. Nodes are built fresh per call
// and owned by the caller; Expanded is a rendering hint only.
type Node struct {
	Employee directory.Employee         `json:"employee"`
	Team     *directory.Team            `json:"team,omitempty"`
	Profile  *directory.EmployeeProfile `json:"profile,omitempty"`
	Depth    int                        `json:"depth"`
	Expanded bool                       `json:"expanded"`
	Children []*Node                    `json:"children"`
}

type builder struct {
	employees []directory.Employee
	byLevel   [4][]directory.Employee
	teams     map[string]directory.Team
	profiles  map[string]directory.EmployeeProfile
	maxDepth  int
}

func newBuilder(employees []directory.Employee, teams []directory.Team, profiles []directory.EmployeeProfile, cfg Config) *builder {
	b := &builder{
		employees: filterByTags(employees, cfg.IncludeTags),
		teams:     make(map[string]directory.Team, len(teams)),
		profiles:  make(map[string]directory.EmployeeProfile, len(profiles)),
		maxDepth:  cfg.MaxDepth,
	}
	if b.maxDepth <= 0 {
		b.maxDepth = DefaultMaxDepth
	}
	for _, team := range teams {
		b.teams[team.ID] = team
	}
	for _, profile := range profiles {
		b.profiles[profile.EmployeeID] = profile
	}
	for _, emp := range b.employees {
		lvl := Level(emp.Hierarchy)
		b.byLevel[lvl] = append(b.byLevel[lvl], emp)
	}
	return b
}

// BuildTree builds the whole-company nested tree. Parent/child relations
// come from hierarchy level adjacency alone, never from ReportsTo: the root's
// children are every employee one level below it, and so on down to the
// member/hr band, which is always leaves. An empty filtered set yields an
// empty forest.
func BuildTree(employees []directory.Employee, teams []directory.Team, profiles []directory.EmployeeProfile, cfg Config) []*Node {
	b := newBuilder(employees, teams, profiles, cfg)
	if len(b.employees) == 0 {
		return nil
	}
	root, ok := b.pickRoot(cfg.RootEmployeeID)
	if !ok {
		return nil
	}
	visited := make(map[string]bool)
	return []*Node{b.build(root, 0, visited)}
}

// BuildDepartmentTree builds the subtree for one team. A missing team or a
// team with no employees resolves to nil, not an error.
func BuildDepartmentTree(teamID string, employees []directory.Employee, teams []directory.Team, profiles []directory.EmployeeProfile, cfg Config) *Node {
	if teamID == "" {
		return nil
	}
	var scoped []directory.Employee
	for _, emp := range employees {
		if emp.TeamID == teamID {
			scoped = append(scoped, emp)
		}
	}
	b := newBuilder(scoped, teams, profiles, cfg)
	if len(b.employees) == 0 {
		return nil
	}
	root, ok := b.pickRoot("")
	if !ok {
		root = b.employees[0]
	}
	visited := make(map[string]bool)
	return b.build(root, 0, visited)
}

// BuildLevels partitions the filtered set into the four fixed hierarchy
// bands. This mode never nests: every node keeps an empty children slice.
// Within a band, employees sort by team name then employee name when
// grouping by department, otherwise by employee name, using a locale-aware
// case-insensitive collation.
func BuildLevels(employees []directory.Employee, teams []directory.Team, profiles []directory.EmployeeProfile, cfg Config) [][]*Node {
	b := newBuilder(employees, teams, profiles, cfg)
	cl := collate.New(language.English, collate.IgnoreCase)

	levels := make([][]*Node, 4)
	for lvl := 0; lvl < 4; lvl++ {
		band := b.byLevel[lvl]
		nodes := make([]*Node, 0, len(band))
		for _, emp := range band {
			node := b.newNode(emp, lvl)
			node.Children = []*Node{}
			nodes = append(nodes, node)
		}
		sort.SliceStable(nodes, func(i, j int) bool {
			if cfg.GroupByDepartment {
				ti, tj := b.teamName(nodes[i].Employee), b.teamName(nodes[j].Employee)
				if cmp := cl.CompareString(ti, tj); cmp != 0 {
					return cmp < 0
				}
			}
			return cl.CompareString(nodes[i].Employee.Name, nodes[j].Employee.Name) < 0
		})
		levels[lvl] = nodes
	}
	return levels
}

// build recurses down the level bands. The visited set is the only mutable
// state shared across the recursion and is scoped to one top-level call: an
// employee already placed anywhere in this build renders as a childless
// placeholder on any later encounter.
func (b *builder) build(emp directory.Employee, depth int, visited map[string]bool) *Node {
	node := b.newNode(emp, depth)
	if visited[emp.ID] {
		node.Expanded = false
		return node
	}
	visited[emp.ID] = true

	if depth >= b.maxDepth {
		node.Expanded = false
		return node
	}
	lvl := Level(emp.Hierarchy)
	if lvl >= LevelMember {
		return node
	}
	for _, child := range b.byLevel[lvl+1] {
		node.Children = append(node.Children, b.build(child, depth+1, visited))
	}
	return node
}

func (b *builder) newNode(emp directory.Employee, depth int) *Node {
	node := &Node{
		Employee: emp,
		Depth:    depth,
		Expanded: depth < 2,
	}
	if team, ok := b.teams[emp.TeamID]; ok {
		t := team
		node.Team = &t
	}
	if profile, ok := b.profiles[emp.ID]; ok {
		p := profile
		node.Profile = &p
	}
	return node
}

// pickRoot resolves the requested root id, then falls back rank by rank:
// first chairman, first executive, first leader-rank employee, first
// member/hr, finally the first filtered employee.
func (b *builder) pickRoot(rootID string) (directory.Employee, bool) {
	if rootID != "" {
		for _, emp := range b.employees {
			if emp.ID == rootID {
				return emp, true
			}
		}
	}
	for lvl := 0; lvl < 4; lvl++ {
		if len(b.byLevel[lvl]) > 0 {
			return b.byLevel[lvl][0], true
		}
	}
	if len(b.employees) > 0 {
		return b.employees[0], true
	}
	return directory.Employee{}, false
}

func (b *builder) teamName(emp directory.Employee) string {
	if team, ok := b.teams[emp.TeamID]; ok {
		return team.Name
	}
	return ""
}

func filterByTags(employees []directory.Employee, tags []string) []directory.Employee {
	if len(tags) == 0 {
		return employees
	}
	allowed := make(map[string]bool, len(tags))
	for _, tag := range tags {
		allowed[Normalize(tag)] = true
	}
	var filtered []directory.Employee
	for _, emp := range employees {
		if allowed[Normalize(emp.Hierarchy)] {
			filtered = append(filtered, emp)
		}
	}
	return filtered
}
