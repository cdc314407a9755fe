package service

import (
	"context"
	"io"
	"time"

	"github.com/jefanko/app-updates/internal/domain"
	"github.com/jefanko/app-updates/internal/report"
	"go.uber.org/zap"
)

// ReportService builds the dashboard and the weekly report from the mirror
type ReportService struct {
	sync   *Sync
	logger *zap.Logger
	now    func() time.Time
}

// NewReportService creates a new ReportService instance
func NewReportService(sync *Sync, logger *zap.Logger) *ReportService {
	return &ReportService{sync: sync, logger: logger, now: time.Now}
}

// Dashboard summarises the projects of one org, or all when org is empty
func (s *ReportService) Dashboard(ctx context.Context, org domain.Org) report.Dashboard {
	projects := s.sync.Store.Projects.Filter(ProjectFilter{Org: org}.matches)
	return report.BuildDashboard(projects, s.now())
}

// WeeklyRows returns the weekly report lines for one org
func (s *ReportService) WeeklyRows(ctx context.Context, org domain.Org, filter report.WeeklyFilter) []report.WeeklyRow {
	projects := s.sync.Store.Projects.Filter(ProjectFilter{Org: org}.matches)
	return report.WeeklyRows(projects, s.sync.Store.Clients.Items(), filter)
}

// ExportWeekly writes the weekly report workbook to w and returns its file name
func (s *ReportService) ExportWeekly(ctx context.Context, org domain.Org, filter report.WeeklyFilter, w io.Writer) (string, error) {
	rows := s.WeeklyRows(ctx, org, filter)
	if err := report.WriteWeekly(w, rows); err != nil {
		return "", err
	}
	name := report.WeeklyFileName(s.now())
	s.logger.Info("weekly report exported", zap.String("file", name), zap.Int("rows", len(rows)))
	return name, nil
}
