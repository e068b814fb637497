package reports

import "testing"

func TestBuildDashboardSummary(t *testing.T) {
	summary := BuildDashboardSummary("e1", 4, 1, []float64{4.2, 3.8, 2.4})

	if summary.AssignmentsTotal != 4 || summary.FormsCompleted != 3 || summary.OverdueAssignments != 1 {
		t.Fatalf("counts wrong: %+v", summary)
	}
	if summary.CompletionRate != 0.75 {
		t.Fatalf("completion rate = %v", summary.CompletionRate)
	}
	want := (4.2 + 3.8 + 2.4) / 3
	if summary.AverageScore != want {
		t.Fatalf("average = %v, want %v", summary.AverageScore, want)
	}
	if summary.ScoreDistribution["4"] != 2 || summary.ScoreDistribution["2"] != 1 {
		t.Fatalf("distribution wrong: %v", summary.ScoreDistribution)
	}
}

func TestBuildDashboardSummaryEmpty(t *testing.T) {
	summary := BuildDashboardSummary("e1", 0, 0, nil)

	if summary.CompletionRate != 0 || summary.AverageScore != 0 {
		t.Fatalf("empty input must not divide by zero: %+v", summary)
	}
	if len(summary.ScoreDistribution) != 0 {
		t.Fatalf("distribution should be empty, got %v", summary.ScoreDistribution)
	}
}
