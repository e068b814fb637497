package orgchart

import "testing"

func TestNormalizeValidTags(t *testing.T) {
	for _, tag := range []string{TagChairman, TagExecutive, TagLeader, TagDepartmentLeader, TagMember, TagHR} {
		if got := Normalize(tag); got != tag {
			t.Fatalf("Normalize(%q) = %q", tag, got)
		}
	}
}

func TestNormalizeUnknownFallsBackToMember(t *testing.T) {
	for _, tag := range []string{"", "ceo", "intern", "LEADERSHIP", "  "} {
		if got := Normalize(tag); got != TagMember {
			t.Fatalf("Normalize(%q) = %q, want member", tag, got)
		}
	}
}

func TestNormalizeTrimsAndLowercases(t *testing.T) {
	if got := Normalize("  Chairman "); got != TagChairman {
		t.Fatalf("expected chairman, got %q", got)
	}
	if got := Normalize("DEPARTMENT-LEADER"); got != TagDepartmentLeader {
		t.Fatalf("expected department-leader, got %q", got)
	}
}

func TestLevelRanks(t *testing.T) {
	cases := map[string]int{
		TagChairman:         0,
		TagExecutive:        1,
		TagLeader:           2,
		TagDepartmentLeader: 2,
		TagMember:           3,
		TagHR:               3,
		"something-else":    3,
		"":                  3,
	}
	for tag, want := range cases {
		if got := Level(tag); got != want {
			t.Fatalf("Level(%q) = %d, want %d", tag, got, want)
		}
	}
}
