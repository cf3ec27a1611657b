// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation on chat history) and for the
// home and doctor dashboards. Each function is context-aware and safe to
// call from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// RoomMessagesStats returns aggregate metadata for messages within a room:
// the total number of rows and the maximum Timestamp among those rows.
//
// When the room has no messages, the returned count is 0 and maxTimestamp
// is nil.
func RoomMessagesStats(ctx context.Context, db *gorm.DB, roomID string) (count int64, maxTimestamp *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Message{}).Where("room_id = ?", roomID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest timestamp (avoid MAX() -> TEXT in SQLite)
	var row struct {
		Timestamp time.Time
	}
	if err = q.Select("timestamp").Order("timestamp DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.Timestamp, nil
}

// DoctorStats carries the aggregate counters shown on the doctor dashboard.
type DoctorStats struct {
	TotalDonations        int64 `json:"total_donations"`
	UnprocessedDonations  int64 `json:"unprocessed_donations"`
	TotalRequests         int64 `json:"total_requests"`
	UnfulfilledRequests   int64 `json:"unfulfilled_requests"`
	TotalAppointments     int64 `json:"total_appointments"`
	PendingAppointments   int64 `json:"pending_appointments"`
	ConfirmedAppointments int64 `json:"confirmed_appointments"`
}

// CollectDoctorStats gathers record counts across donations, requests, and
// appointments in a handful of indexed COUNT queries.
func CollectDoctorStats(ctx context.Context, db *gorm.DB) (DoctorStats, error) {
	var s DoctorStats
	steps := []struct {
		dst *int64
		q   *gorm.DB
	}{
		{&s.TotalDonations, db.WithContext(ctx).Model(&domain.Donation{})},
		{&s.UnprocessedDonations, db.WithContext(ctx).Model(&domain.Donation{}).Where("is_processed = ?", false)},
		{&s.TotalRequests, db.WithContext(ctx).Model(&domain.BloodRequest{})},
		{&s.UnfulfilledRequests, db.WithContext(ctx).Model(&domain.BloodRequest{}).Where("is_fulfilled = ?", false)},
		{&s.TotalAppointments, db.WithContext(ctx).Model(&domain.Appointment{})},
		{&s.PendingAppointments, db.WithContext(ctx).Model(&domain.Appointment{}).Where("status = ?", domain.AppointmentPending)},
		{&s.ConfirmedAppointments, db.WithContext(ctx).Model(&domain.Appointment{}).Where("status = ?", domain.AppointmentConfirmed)},
	}
	for _, st := range steps {
		if err := st.q.Count(st.dst).Error; err != nil {
			return DoctorStats{}, err
		}
	}
	return s, nil
}
