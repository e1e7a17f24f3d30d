package services

import (
	"context"
	"time"

	"github.com/rostech/erp-backend/internal/core/domain"
)

// ReportingSvcFacade defines the read-side projections. All operations are
// pure folds over the other components' data; none of them write.
type ReportingSvcFacade interface {
	MonthlyReport(ctx context.Context, month int, year int) (*domain.MonthlyReport, error)
	DashboardStats(ctx context.Context, now time.Time) (*domain.DashboardStats, error)
	// SendMonthlyReport renders the same aggregation as MonthlyReport and
	// hands it to the mail dispatcher.
	SendMonthlyReport(ctx context.Context, address string, month int, year int) error
}

// Mailer dispatches rendered reports. Implementations must respect the
// context deadline and surface failures instead of retrying.
type Mailer interface {
	Send(ctx context.Context, to string, subject string, htmlBody string) error
}
