package orgchart

import "appraisal/internal/domain/directory"

// maxChainHops bounds ReportingChain against malformed data.
const maxChainHops = 50

// DirectReports returns every employee whose ReportsTo equals the given id,
// in input order.
func DirectReports(employeeID string, employees []directory.Employee) []directory.Employee {
	var reports []directory.Employee
	for _, emp := range employees {
		if emp.ReportsTo != "" && emp.ReportsTo == employeeID {
			reports = append(reports, emp)
		}
	}
	return reports
}

// ReportingChain walks ReportsTo upward from the given employee and returns
// the management chain from nearest manager to most senior, excluding the
// starting employee. The walk stops on a missing link, a dangling manager
// id, a repeated id (cycle), or after 50 hops; it never errors.
func ReportingChain(employeeID string, employees []directory.Employee) []directory.Employee {
	byID := make(map[string]directory.Employee, len(employees))
	for _, emp := range employees {
		byID[emp.ID] = emp
	}

	start, ok := byID[employeeID]
	if !ok {
		return nil
	}

	seen := map[string]bool{start.ID: true}
	var chain []directory.Employee
	current := start
	for hops := 0; hops < maxChainHops; hops++ {
		if current.ReportsTo == "" {
			break
		}
		manager, ok := byID[current.ReportsTo]
		if !ok {
			break
		}
		if seen[manager.ID] {
			break
		}
		seen[manager.ID] = true
		chain = append(chain, manager)
		current = manager
	}
	return chain
}
