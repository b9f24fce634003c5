package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/uninorte/lead-system/internal/core/domain"
)

type reportFixture struct {
	deps  ReportDeps
	csv   *stubEncoder
	excel *stubEncoder
	book  *stubEncoder
	audit *stubAudit
	leads *stubLeadRepo
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		csv:   &stubEncoder{name: "csv"},
		excel: &stubEncoder{name: "xlsx"},
		book:  &stubEncoder{name: "backup"},
		audit: &stubAudit{},
		leads: &stubLeadRepo{leads: []*domain.Lead{
			{ID: "1", Course: "Direito"},
			{ID: "2", Course: "Pedagogia"},
		}},
	}
	f.deps = ReportDeps{
		Users:    newStubUserRepo(&domain.User{ID: "u1", Email: "a@lead.com.br"}),
		Leads:    f.leads,
		Courses:  &stubCourseRepo{courses: []*domain.Course{{ID: "c1", Active: false}}},
		Statuses: &stubStatusRepo{statuses: []*domain.LeadStatus{{ID: "s1"}}},
		CSV:      f.csv,
		Excel:    f.excel,
		Backup:   f.book,
		Audit:    f.audit,
	}
	return f
}

func TestReportService_ExportFormats(t *testing.T) {
	f := newReportFixture()
	svc := NewReportService(f.deps, zerolog.Nop())

	csv, err := svc.ExportLeads(context.Background(), coordinator, FormatCSV, domain.LeadFilter{Course: "Direito"})
	if err != nil {
		t.Fatalf("csv export failed: %v", err)
	}
	if csv.Filename != "leads.csv" || string(csv.Body) != "csv" {
		t.Fatalf("unexpected csv report: %+v", csv)
	}
	if len(f.csv.leads) != 1 {
		t.Fatalf("expected filtered leads, got %d", len(f.csv.leads))
	}

	xlsx, err := svc.ExportLeads(context.Background(), admin, FormatExcel, domain.LeadFilter{})
	if err != nil {
		t.Fatalf("excel export failed: %v", err)
	}
	if xlsx.Filename != "leads.xlsx" || xlsx.ContentType != contentTypeXLSX {
		t.Fatalf("unexpected excel report: %+v", xlsx)
	}
}

func TestReportService_ExportErrors(t *testing.T) {
	f := newReportFixture()
	svc := NewReportService(f.deps, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.ExportLeads(ctx, admin, "pdf", domain.LeadFilter{}); !errors.Is(err, domain.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := svc.ExportLeads(ctx, admin, FormatCSV, domain.LeadFilter{Course: "Nenhum"}); err != domain.ErrNoLeads {
		t.Fatalf("expected ErrNoLeads, got %v", err)
	}
	if _, err := svc.ExportLeads(ctx, seller, FormatCSV, domain.LeadFilter{}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReportService_Backup(t *testing.T) {
	f := newReportFixture()
	svc := NewReportService(f.deps, zerolog.Nop())

	r, err := svc.Backup(context.Background(), admin)
	if err != nil {
		t.Fatalf("backup failed: %v", err)
	}
	if r.Filename != "backup_uninorte.xlsx" || string(r.Body) != "backup" {
		t.Fatalf("unexpected report: %+v", r)
	}
	b := f.book.backup
	if b == nil || len(b.Users) != 1 || len(b.Leads) != 2 || len(b.Courses) != 1 || len(b.Statuses) != 1 {
		t.Fatalf("unexpected backup contents: %+v", b)
	}
	entry, ok := f.audit.last()
	if !ok || entry.Action != domain.AuditBackup || entry.Entity != domain.EntitySystem || entry.EntityID != "full" {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
}

func TestReportService_Backup_FailureIsNotAudited(t *testing.T) {
	f := newReportFixture()
	f.leads.err = errStub
	svc := NewReportService(f.deps, zerolog.Nop())

	if _, err := svc.Backup(context.Background(), admin); !errors.Is(err, errStub) {
		t.Fatalf("expected stub error, got %v", err)
	}
	if _, ok := f.audit.last(); ok {
		t.Fatalf("failed backup must not be audited")
	}
	if _, err := svc.Backup(context.Background(), coordinator); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
