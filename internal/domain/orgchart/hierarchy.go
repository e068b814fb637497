package orgchart

import "strings"

const (
	TagChairman         = "chairman"
	TagExecutive        = "executive"
	TagLeader           = "leader"
	TagDepartmentLeader = "department-leader"
	TagMember           = "member"
	TagHR               = "hr"
)

const (
	LevelChairman  = 0
	LevelExecutive = 1
	LevelLeader    = 2
	LevelMember    = 3
)

// Normalize maps any hierarchy tag to one of the six valid tags. Unknown or
// empty input falls back to member rather than failing; the classifier is
// total by contract.
func Normalize(tag string) string {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case TagChairman:
		return TagChairman
	case TagExecutive:
		return TagExecutive
	case TagLeader:
		return TagLeader
	case TagDepartmentLeader:
		return TagDepartmentLeader
	case TagHR:
		return TagHR
	case TagMember:
		return TagMember
	default:
		return TagMember
	}
}

// Level ranks a hierarchy tag: chairman=0, executive=1, leader and
// department-leader share 2, member and hr (and anything unknown) are 3.
func Level(tag string) int {
	switch Normalize(tag) {
	case TagChairman:
		return LevelChairman
	case TagExecutive:
		return LevelExecutive
	case TagLeader, TagDepartmentLeader:
		return LevelLeader
	default:
		return LevelMember
	}
}
