package dto

// MonthlyReportParams defines the query parameters selecting a report period.
type MonthlyReportParams struct {
	Month int `form:"month" binding:"required,min=1,max=12"`
	Year  int `form:"year" binding:"required,min=2000"`
}

// EmailReportRequest asks for the monthly report to be mailed out.
type EmailReportRequest struct {
	Address string `json:"address" binding:"required,email"`
	Month   int    `json:"month" binding:"required,min=1,max=12"`
	Year    int    `json:"year" binding:"required,min=2000"`
}
