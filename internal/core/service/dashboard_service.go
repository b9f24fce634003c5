package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/uninorte/lead-system/internal/core/access"
	"github.com/uninorte/lead-system/internal/core/domain"
	"github.com/uninorte/lead-system/internal/core/ports"
)

const topCourses = 5

type dashboardService struct {
	leads ports.LeadRepository
}

// NewDashboardService returns a DashboardService implementation.
func NewDashboardService(leads ports.LeadRepository) ports.DashboardService {
	return &dashboardService{leads: leads}
}

// Dashboard runs the independent aggregations concurrently and derives the
// conversion rate from the enrolled bucket.
func (s *dashboardService) Dashboard(ctx context.Context, p *domain.Principal) (*domain.Dashboard, error) {
	if err := authorize(p, access.ActionViewDashboard); err != nil {
		return nil, err
	}

	var d domain.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.TotalLeads, err = s.leads.Count(gctx, domain.LeadFilter{})
		return err
	})
	g.Go(func() (err error) {
		d.StatusDistribution, err = s.leads.CountByStatus(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.CourseDistribution, err = s.leads.TopCourses(gctx, topCourses)
		return err
	})
	g.Go(func() (err error) {
		d.SellerRanking, err = s.leads.SellerRanking(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.MonthlyLeads, err = s.leads.Monthly(gctx, "", false, maxMonthlyBuckets)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	d.StatusDistribution = nonNilBuckets(d.StatusDistribution)
	d.CourseDistribution = nonNilBuckets(d.CourseDistribution)
	d.MonthlyLeads = nonNilBuckets(d.MonthlyLeads)
	if d.SellerRanking == nil {
		d.SellerRanking = []domain.SellerRank{}
	}

	var enrolled int64
	for _, b := range d.StatusDistribution {
		if b.Key == domain.EnrolledStatus {
			enrolled = b.Count
		}
	}
	d.ConversionRate = domain.Percentage(enrolled, d.TotalLeads)
	return &d, nil
}
