// Package services – DashboardService
//
// This file implements DashboardService, which assembles the read-only
// aggregate views: the home dashboard (inventory plus recent board posts)
// and the doctor dashboard (counters plus the pending work queues).
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
)

// HomeDashboard is the landing view shown to every authenticated user.
type HomeDashboard struct {
	Inventory      []StockLevel             `json:"inventory"`
	CriticalGroups []string                 `json:"critical_groups"`
	RecentPosts    []domain.InformationPost `json:"recent_posts"`
}

// DoctorDashboard is the staff overview: counters plus actionable queues.
type DoctorDashboard struct {
	Stats                repo.DoctorStats      `json:"stats"`
	UnprocessedDonations []domain.Donation     `json:"unprocessed_donations"`
	UnfulfilledRequests  []domain.BloodRequest `json:"unfulfilled_requests"`
	PendingAppointments  []domain.Appointment  `json:"pending_appointments"`
}

// homeRecentPosts caps the board teaser on the home dashboard.
const homeRecentPosts = 3

// DashboardService assembles aggregate views from the other domains.
type DashboardService struct {
	DB *gorm.DB
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

// Home builds the home dashboard: full inventory with critical groups called
// out, and the newest published board posts.
func (s *DashboardService) Home(ctx context.Context) (*HomeDashboard, error) {
	rows, err := repo.ListInventory(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	levels := make([]StockLevel, 0, len(rows))
	var critical []string
	for _, r := range rows {
		crit := r.IsCritical()
		levels = append(levels, StockLevel{InventoryRecord: r, Critical: crit})
		if crit {
			critical = append(critical, r.BloodGroup)
		}
	}

	posts, err := repo.ListRecentPublishedPosts(ctx, s.DB, homeRecentPosts)
	if err != nil {
		return nil, err
	}

	return &HomeDashboard{
		Inventory:      levels,
		CriticalGroups: critical,
		RecentPosts:    posts,
	}, nil
}

// Doctor builds the doctor dashboard: aggregate counters and the three work
// queues in their processing order.
func (s *DashboardService) Doctor(ctx context.Context) (*DoctorDashboard, error) {
	stats, err := repo.CollectDoctorStats(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	donations, err := repo.ListUnprocessedDonations(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	requests, err := repo.ListUnfulfilledRequests(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	appts, err := repo.ListAppointmentsByStatus(ctx, s.DB, domain.AppointmentPending)
	if err != nil {
		return nil, err
	}

	return &DoctorDashboard{
		Stats:                stats,
		UnprocessedDonations: donations,
		UnfulfilledRequests:  requests,
		PendingAppointments:  appts,
	}, nil
}
