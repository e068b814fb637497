package auth

const (
	RoleAdmin    = "Admin"
	RoleManager  = "Manager"
	RoleEmployee = "Employee"
)

const (
	PermDirectoryRead     = "directory.read"
	PermDirectoryWrite    = "directory.write"
	PermOrgChartRead      = "orgchart.read"
	PermAppraisalRead     = "appraisal.read"
	PermAppraisalSubmit   = "appraisal.submit"
	PermAppraisalAssign   = "appraisal.assign"
	PermTemplatesWrite    = "appraisal.templates.write"
	PermReportsRead       = "reports.read"
	PermNotificationsRead = "notifications.read"
	PermAuditRead         = "audit.read"
)

var DefaultPermissions = []string{
	PermDirectoryRead,
	PermDirectoryWrite,
	PermOrgChartRead,
	PermAppraisalRead,
	PermAppraisalSubmit,
	PermAppraisalAssign,
	PermTemplatesWrite,
	PermReportsRead,
	PermNotificationsRead,
	PermAuditRead,
}

var RolePermissions = map[string][]string{
	RoleEmployee: {
		PermDirectoryRead,
		PermOrgChartRead,
		PermAppraisalRead,
		PermAppraisalSubmit,
		PermReportsRead,
		PermNotificationsRead,
	},
	RoleManager: {
		PermDirectoryRead,
		PermOrgChartRead,
		PermAppraisalRead,
		PermAppraisalSubmit,
		PermReportsRead,
		PermNotificationsRead,
	},
	RoleAdmin: {
		PermDirectoryRead,
		PermDirectoryWrite,
		PermOrgChartRead,
		PermAppraisalRead,
		PermAppraisalSubmit,
		PermAppraisalAssign,
		PermTemplatesWrite,
		PermReportsRead,
		PermNotificationsRead,
		PermAuditRead,
	},
}
