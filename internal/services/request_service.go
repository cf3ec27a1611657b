// Package services – RequestService
//
// This file implements RequestService, which records blood requests for
// recipients and performs the doctor-side fulfill action. Fulfillment is
// idempotent in the same way donation processing is.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
)

// RequestInput carries the fields accepted when filing a blood request.
type RequestInput struct {
	BloodGroup       string `json:"blood_group"`
	UnitsRequired    int    `json:"units_required"`
	Urgency          string `json:"urgency"`
	HospitalName     string `json:"hospital_name"`
	HospitalAddress  string `json:"hospital_address"`
	RequiredDate     string `json:"required_date"`
	PatientName      string `json:"patient_name"`
	PatientAge       int    `json:"patient_age"`
	MedicalCondition string `json:"medical_condition"`
}

// RequestSummary aggregates a recipient's requests for their dashboard.
type RequestSummary struct {
	Total     int64 `json:"total"`
	Fulfilled int64 `json:"fulfilled"`
	Open      int64 `json:"open"`
}

// RequestService provides blood-request lifecycle operations.
type RequestService struct {
	DB *gorm.DB
}

// NewRequestService constructs a RequestService.
func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{DB: db}
}

// Create files a new blood request for recipientID.
func (s *RequestService) Create(ctx context.Context, recipientID string, in RequestInput) (*domain.BloodRequest, error) {
	if err := requireNonBlank(
		field{"blood_group", in.BloodGroup},
		field{"hospital_name", in.HospitalName},
		field{"required_date", in.RequiredDate},
		field{"patient_name", in.PatientName},
	); err != nil {
		return nil, err
	}
	if !domain.ValidUrgency(in.Urgency) {
		return nil, ErrInvalidUrgency
	}
	if in.UnitsRequired <= 0 {
		return nil, fmt.Errorf("%w: units_required must be positive", ErrValidation)
	}
	if in.PatientAge <= 0 {
		return nil, fmt.Errorf("%w: patient_age must be positive", ErrValidation)
	}
	when, err := parseDate(in.RequiredDate)
	if err != nil {
		return nil, err
	}

	return repo.CreateBloodRequest(ctx, s.DB, &domain.BloodRequest{
		RecipientID:      recipientID,
		BloodGroup:       in.BloodGroup,
		UnitsRequired:    in.UnitsRequired,
		Urgency:          in.Urgency,
		HospitalName:     in.HospitalName,
		HospitalAddress:  in.HospitalAddress,
		RequiredDate:     when,
		PatientName:      in.PatientName,
		PatientAge:       in.PatientAge,
		MedicalCondition: in.MedicalCondition,
	})
}

// History returns a recipient's requests, newest first, plus summary counts.
func (s *RequestService) History(ctx context.Context, recipientID string) ([]domain.BloodRequest, RequestSummary, error) {
	list, err := repo.ListRequestsByRecipient(ctx, s.DB, recipientID)
	if err != nil {
		return nil, RequestSummary{}, err
	}
	total, fulfilled, err := repo.CountRequestsByRecipient(ctx, s.DB, recipientID)
	if err != nil {
		return nil, RequestSummary{}, err
	}
	return list, RequestSummary{Total: total, Fulfilled: fulfilled, Open: total - fulfilled}, nil
}

// Fulfill marks a request fulfilled on behalf of a doctor. Repeating the
// action on an already-fulfilled request succeeds without moving the
// fulfillment timestamp.
func (s *RequestService) Fulfill(ctx context.Context, requestID string) (*domain.BloodRequest, error) {
	if _, err := repo.GetBloodRequest(ctx, s.DB, requestID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if _, err := repo.MarkRequestFulfilled(ctx, s.DB, requestID, time.Now().UTC()); err != nil {
		return nil, err
	}
	return repo.GetBloodRequest(ctx, s.DB, requestID)
}

// Queue lists unfulfilled requests ordered by how soon they are needed.
func (s *RequestService) Queue(ctx context.Context) ([]domain.BloodRequest, error) {
	return repo.ListUnfulfilledRequests(ctx, s.DB)
}
