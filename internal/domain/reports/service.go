package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) EmployeeDashboard(ctx context.Context, employeeID string) (DashboardSummary, error) {
	assignmentsTotal, overdue, scores, err := s.Store.EmployeeSummaryData(ctx, employeeID)
	if err != nil {
		return DashboardSummary{}, err
	}
	summary := BuildDashboardSummary(employeeID, assignmentsTotal, overdue, scores)

	recent, err := s.Store.RecentCompletedForms(ctx, employeeID, 5)
	if err != nil {
		return DashboardSummary{}, err
	}
	summary.RecentForms = recent
	return summary, nil
}

// PeriodSummaryPDF renders a review-period completion report to the given
// file path.
func (s *Service) PeriodSummaryPDF(ctx context.Context, periodID, filePath string) error {
	name, startDate, endDate, total, completed, average, err := s.Store.PeriodSummaryData(ctx, periodID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Appraisal Period Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Period: %s", name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Dates: %s to %s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")))
	pdf.Ln(10)
	pdf.Cell(0, 8, fmt.Sprintf("Assignments: %d", total))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Completed: %d", completed))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Average score: %.2f", average))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Generated: %s", time.Now().UTC().Format(time.RFC3339)))

	return pdf.OutputFileAndClose(filePath)
}
