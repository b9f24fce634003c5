package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

const (
	FormatCSV   = "csv"
	FormatExcel = "excel"

	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportDeps groups the repositories and encoders a ReportService reads from.
type ReportDeps struct {
	Users    ports.UserRepository
	Leads    ports.LeadRepository
	Courses  ports.CourseRepository
	Statuses ports.LeadStatusRepository
	CSV      ports.LeadEncoder
	Excel    ports.LeadEncoder
	Backup   ports.BackupEncoder
	Audit    ports.AuditRecorder
}

type reportService struct {
	deps ReportDeps
	log  zerolog.Logger
}

// NewReportService returns a ReportService implementation.
func NewReportService(deps ReportDeps, log zerolog.Logger) ports.ReportService {
	return &reportService{deps: deps, log: log}
}

// ExportLeads renders the filtered leads as csv or excel. An empty result is
// reported as ErrNoLeads rather than an empty file.
func (s *reportService) ExportLeads(ctx context.Context, p *domain.Principal, format string, filter domain.LeadFilter) (*ports.Report, error) {
	if err := authorize(p, access.ActionExportLeads); err != nil {
		return nil, err
	}

	var (
		enc    ports.LeadEncoder
		report ports.Report
	)
	switch format {
	case FormatCSV:
		enc = s.deps.CSV
		report = ports.Report{Filename: "leads.csv", ContentType: contentTypeCSV}
	case FormatExcel:
		enc = s.deps.Excel
		report = ports.Report{Filename: "leads.xlsx", ContentType: contentTypeXLSX}
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}

	leads, err := s.deps.Leads.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("export leads: %w", err)
	}
	if len(leads) == 0 {
		return nil, domain.ErrNoLeads
	}

	var buf bytes.Buffer
	if err := enc.EncodeLeads(&buf, leads); err != nil {
		return nil, fmt.Errorf("export leads: encode %s: %w", format, err)
	}
	report.Body = buf.Bytes()
	return &report, nil
}

// Backup dumps users, leads, courses and statuses into one workbook.
func (s *reportService) Backup(ctx context.Context, p *domain.Principal) (*ports.Report, error) {
	if err := authorize(p, access.ActionBackup); err != nil {
		return nil, err
	}

	var b ports.Backup
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		b.Users, err = s.deps.Users.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		b.Leads, err = s.deps.Leads.List(gctx, domain.LeadFilter{})
		return err
	})
	g.Go(func() (err error) {
		b.Courses, err = s.deps.Courses.List(gctx, false)
		return err
	})
	g.Go(func() (err error) {
		b.Statuses, err = s.deps.Statuses.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}

	var buf bytes.Buffer
	if err := s.deps.Backup.EncodeBackup(&buf, b); err != nil {
		return nil, fmt.Errorf("backup: encode: %w", err)
	}

	s.deps.Audit.Record(ctx, audit(p, domain.AuditBackup, domain.EntitySystem, "full", "Backup completo realizado"))
	s.log.Info().Str("user_id", p.UserID).Int("leads", len(b.Leads)).Msg("backup generated")
	return &ports.Report{Filename: "backup_uninorte.xlsx", ContentType: contentTypeXLSX, Body: buf.Bytes()}, nil
}
