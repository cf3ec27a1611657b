// Package services – DonationService
//
// This file implements DonationService, which records donations for donors,
// computes the donor-facing history summary (lifetime volume, next eligible
// date), and performs the doctor-side processing action. Processing is
// idempotent: repeating it on an already-processed donation succeeds without
// changing anything.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// DonationInput carries the fields accepted when recording a donation.
type DonationInput struct {
	DonationDate    string  `json:"donation_date"`
	BloodGroup      string  `json:"blood_group"`
	QuantityML      int     `json:"quantity_ml"`
	HemoglobinLevel float64 `json:"hemoglobin_level"`
	BloodPressure   string  `json:"blood_pressure"`
	Notes           string  `json:"notes"`
}

// DonationSummary aggregates a donor's history for the donor dashboard.
type DonationSummary struct {
	Count        int64      `json:"count"`
	TotalML      int        `json:"total_ml"`
	LastDonation *time.Time `json:"last_donation,omitempty"`
	NextEligible *time.Time `json:"next_eligible,omitempty"`
}

// DonationService provides donation lifecycle operations.
type DonationService struct {
	DB *gorm.DB

	// EligibilityInterval is the minimum gap between whole-blood donations.
	EligibilityInterval time.Duration
}

// NewDonationService constructs a DonationService with the standard 56-day
// whole-blood deferral interval.
func NewDonationService(db *gorm.DB) *DonationService {
	return &DonationService{DB: db, EligibilityInterval: 56 * 24 * time.Hour}
}

// Record stores a new donation for donorID.
func (s *DonationService) Record(ctx context.Context, donorID string, in DonationInput) (*domain.Donation, error) {
	if err := requireNonBlank(field{"blood_group", in.BloodGroup}, field{"donation_date", in.DonationDate}); err != nil {
		return nil, err
	}
	if in.QuantityML <= 0 {
		return nil, fmt.Errorf("%w: quantity_ml must be positive", ErrValidation)
	}
	when, err := parseDate(in.DonationDate)
	if err != nil {
		return nil, err
	}

	return repo.CreateDonation(ctx, s.DB, &domain.Donation{
		DonorID:         donorID,
		DonationDate:    when,
		BloodGroup:      in.BloodGroup,
		QuantityML:      in.QuantityML,
		HemoglobinLevel: in.HemoglobinLevel,
		BloodPressure:   in.BloodPressure,
		Notes:           in.Notes,
	})
}

// History returns a donor's donations, newest first, along with the summary
// shown on the donor dashboard.
func (s *DonationService) History(ctx context.Context, donorID string) ([]domain.Donation, DonationSummary, error) {
	list, err := repo.ListDonationsByDonor(ctx, s.DB, donorID)
	if err != nil {
		return nil, DonationSummary{}, err
	}

	sum := DonationSummary{Count: int64(len(list))}
	for _, d := range list {
		sum.TotalML += d.QuantityML
	}
	if len(list) > 0 {
		last := list[0].DonationDate
		next := last.Add(s.EligibilityInterval)
		sum.LastDonation = &last
		sum.NextEligible = &next
	}
	return list, sum, nil
}

// Process marks a donation processed on behalf of a doctor. The flag is
// one-way; calling Process on an already-processed donation is a no-op that
// still succeeds, and the original processed timestamp is preserved.
func (s *DonationService) Process(ctx context.Context, donationID string) (*domain.Donation, error) {
	tr := otel.Tracer("services/DonationService")
	ctx, span := tr.Start(ctx, "Process",
		trace.WithAttributes(attribute.String("donation.id", donationID)),
	)
	defer span.End()

	if _, err := repo.GetDonation(ctx, s.DB, donationID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	if _, err := repo.MarkDonationProcessed(ctx, s.DB, donationID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return repo.GetDonation(ctx, s.DB, donationID)
}

// Queue lists unprocessed donations, oldest first, for the doctor work queue.
func (s *DonationService) Queue(ctx context.Context) ([]domain.Donation, error) {
	return repo.ListUnprocessedDonations(ctx, s.DB)
}
