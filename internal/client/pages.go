package client

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
)

const dashboardAuditEntries = 10

// pages fetches and prints each screen. Every page waits for all of its
// fetches before printing anything, and prints nothing once ctx is done.
type pages struct {
	api *API
	out io.Writer
}

func (p *pages) dashboard(ctx context.Context, v access.Variant) error {
	switch v {
	case access.VariantSeller:
		return p.sellerDashboard(ctx)
	case access.VariantCoordinator:
		return p.overview(ctx, false)
	case access.VariantAdministrator:
		return p.overview(ctx, true)
	case access.VariantNone:
		// Unmatched role: the root renders an empty body.
	}
	return nil
}

func (p *pages) sellerDashboard(ctx context.Context) error {
	var (
		stats *domain.LeadStats
		leads []*domain.Lead
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats, err = p.api.MyStats(gctx)
		return err
	})
	g.Go(func() (err error) {
		leads, err = p.api.MyLeads(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "== Meu painel ==\nTotal leads: %d\n\n", stats.Total)
	p.buckets("MONTH", stats.Monthly)
	fmt.Fprintln(p.out)
	p.leadTable(leads)
	return nil
}

func (p *pages) overview(ctx context.Context, withAudit bool) error {
	var (
		dash *domain.Dashboard
		logs []*domain.AuditLog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash, err = p.api.Dashboard(gctx)
		return err
	})
	if withAudit {
		g.Go(func() (err error) {
			logs, err = p.api.AuditLogs(gctx, dashboardAuditEntries)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	title := "Painel do coordenador"
	if withAudit {
		title = "Painel do administrador"
	}
	fmt.Fprintf(p.out, "== %s ==\nTotal leads: %d\nConversion: %.1f%%\n\n", title, dash.TotalLeads, dash.ConversionRate)
	p.buckets("STATUS", dash.StatusDistribution)
	fmt.Fprintln(p.out)
	p.buckets("COURSE", dash.CourseDistribution)
	fmt.Fprintln(p.out)

	tw := p.table("SELLER\tLEADS\tENROLLED\tCONVERSION")
	for _, r := range dash.SellerRanking {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.1f%%\n", r.SellerName, r.TotalLeads, r.Enrolled, domain.Percentage(r.Enrolled, r.TotalLeads))
	}
	_ = tw.Flush()
	fmt.Fprintln(p.out)
	p.buckets("MONTH", dash.MonthlyLeads)

	if withAudit {
		fmt.Fprintln(p.out)
		p.auditTable(logs)
	}
	return nil
}

func (p *pages) leads(ctx context.Context) error {
	var (
		leads    []*domain.Lead
		courses  []*domain.Course
		statuses []*domain.LeadStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		leads, err = p.api.Leads(gctx, domain.LeadFilter{})
		return err
	})
	g.Go(func() (err error) {
		courses, err = p.api.Courses(gctx)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = p.api.Statuses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "== Leads (%d) ==\n", len(leads))
	p.leadTable(leads)
	fmt.Fprintf(p.out, "\nCourses: %s\nStatuses: %s\n", courseNames(courses), statusNames(statuses))
	return nil
}

func (p *pages) users(ctx context.Context) error {
	users, err := p.api.Users(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "== Usuários (%d) ==\n", len(users))
	tw := p.table("NAME\tEMAIL\tROLE\tACTIVE")
	for _, u := range users {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", u.Name, u.Email, u.Role, u.Active)
	}
	return tw.Flush()
}

func (p *pages) config(ctx context.Context) error {
	var (
		courses  []*domain.Course
		statuses []*domain.LeadStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		courses, err = p.api.Courses(gctx)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = p.api.Statuses(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintln(p.out, "== Configurações ==")
	tw := p.table("COURSE\tACTIVE")
	for _, c := range courses {
		fmt.Fprintf(tw, "%s\t%t\n", c.Name, c.Active)
	}
	_ = tw.Flush()
	fmt.Fprintln(p.out)

	tw = p.table("STATUS\tCOLOR")
	for _, s := range statuses {
		fmt.Fprintf(tw, "%s\t%s\n", s.Name, s.Color)
	}
	return tw.Flush()
}

func (p *pages) audit(ctx context.Context) error {
	logs, err := p.api.AuditLogs(ctx, 0)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	fmt.Fprintf(p.out, "== Auditoria (%d) ==\n", len(logs))
	p.auditTable(logs)
	return nil
}

func (p *pages) table(header string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	return tw
}

func (p *pages) buckets(label string, bs []domain.CountBucket) {
	tw := p.table(label + "\tLEADS")
	for _, b := range bs {
		fmt.Fprintf(tw, "%s\t%d\n", b.Key, b.Count)
	}
	_ = tw.Flush()
}

func (p *pages) leadTable(leads []*domain.Lead) {
	tw := p.table("NAME\tPHONE\tCOURSE\tSTATUS\tSELLER\tCREATED")
	for _, l := range leads {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			l.FullName, l.Phone, l.Course, l.Status, l.SellerName, l.CreatedAt.Format("2006-01-02"))
	}
	_ = tw.Flush()
}

func (p *pages) auditTable(logs []*domain.AuditLog) {
	tw := p.table("WHEN\tUSER\tACTION\tENTITY\tDETAILS")
	for _, l := range logs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			l.CreatedAt.Format("2006-01-02 15:04"), l.UserName, l.Action, l.Entity, l.Details)
	}
	_ = tw.Flush()
}

func courseNames(cs []*domain.Course) string {
	names := make([]string, 0, len(cs))
	for _, c := range cs {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func statusNames(ss []*domain.LeadStatus) string {
	names := make([]string, 0, len(ss))
	for _, s := range ss {
		names = append(names, s.Name)
	}
	return strings.Join(names, ", ")
}
