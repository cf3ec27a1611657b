// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Donation
// model, including the one-way "process" transition applied by doctors.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// CreateDonation inserts a new donation row owned by the given donor.
func CreateDonation(ctx context.Context, db *gorm.DB, d *domain.Donation) (*domain.Donation, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// GetDonation fetches a donation by ID, or ErrNotFound if missing.
func GetDonation(ctx context.Context, db *gorm.DB, id string) (*domain.Donation, error) {
	var d domain.Donation
	if err := db.WithContext(ctx).Where("id = ?", id).First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDonationsByDonor returns a donor's donations ordered by donation date
// descending (most recent first).
func ListDonationsByDonor(ctx context.Context, db *gorm.DB, donorID string) ([]domain.Donation, error) {
	var out []domain.Donation
	err := db.WithContext(ctx).
		Where("donor_id = ?", donorID).
		Order("donation_date desc").
		Find(&out).Error
	return out, err
}

// ListUnprocessedDonations returns donations awaiting doctor processing,
// oldest first so the queue drains in arrival order.
func ListUnprocessedDonations(ctx context.Context, db *gorm.DB) ([]domain.Donation, error) {
	var out []domain.Donation
	err := db.WithContext(ctx).
		Where("is_processed = ?", false).
		Order("donation_date asc").
		Find(&out).Error
	return out, err
}

// CountDonationsByDonor returns the total number of donations for a donor.
func CountDonationsByDonor(ctx context.Context, db *gorm.DB, donorID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Donation{}).
		Where("donor_id = ?", donorID).
		Count(&total).Error
	return total, err
}

// MarkDonationProcessed flips the processed flag on an unprocessed donation
// and stamps the processing time. The WHERE clause restricts the update to
// unprocessed rows, so a repeat call affects zero rows and the transition
// stays one-way. Callers distinguish "already processed" from "missing" by
// fetching the row first.
func MarkDonationProcessed(ctx context.Context, db *gorm.DB, id string, at time.Time) (bool, error) {
	res := db.WithContext(ctx).
		Model(&domain.Donation{}).
		Where("id = ? AND is_processed = ?", id, false).
		Updates(map[string]any{"is_processed": true, "processed_date": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
