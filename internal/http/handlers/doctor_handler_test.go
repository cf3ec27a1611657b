package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
)

func TestProcessDonation_OKAndNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ok", func(t *testing.T) {
		don := stubDonationSvc{process: func(ctx context.Context, id string) (*domain.Donation, error) {
			if id != "don-1" {
				t.Fatalf("id=%q", id)
			}
			return &domain.Donation{ID: id, IsProcessed: true}, nil
		}}
		h := newTestHandlers(testDeps{don: don})

		r := gin.New()
		r.POST("/donations/:id/process", h.ProcessDonation)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/donations/don-1/process", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d", w.Code)
		}
		var d domain.Donation
		if err := json.Unmarshal(w.Body.Bytes(), &d); err != nil {
			t.Fatalf("json: %v", err)
		}
		if !d.IsProcessed {
			t.Fatalf("expected processed donation")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		don := stubDonationSvc{process: func(context.Context, string) (*domain.Donation, error) {
			return nil, services.ErrDonationNotFound
		}}
		h := newTestHandlers(testDeps{don: don})

		r := gin.New()
		r.POST("/donations/:id/process", h.ProcessDonation)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/donations/nope/process", nil))

		if w.Code != http.StatusNotFound {
			t.Fatalf("status=%d, want 404", w.Code)
		}
	})
}

func TestFulfillRequest_NotFound404(t *testing.T) {
	gin.SetMode(gin.TestMode)

	req := stubRequestSvc{fulfill: func(context.Context, string) (*domain.BloodRequest, error) {
		return nil, services.ErrRequestNotFound
	}}
	h := newTestHandlers(testDeps{req: req})

	r := gin.New()
	r.POST("/requests/:id/fulfill", h.FulfillRequest)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/requests/nope/fulfill", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
}

func TestSetAppointmentStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ok", func(t *testing.T) {
		appt := stubAppointmentSvc{setStatus: func(ctx context.Context, id, status string) (*domain.Appointment, error) {
			if id != "a-1" || status != "confirmed" {
				t.Fatalf("args: %s %s", id, status)
			}
			return &domain.Appointment{ID: id, Status: status}, nil
		}}
		h := newTestHandlers(testDeps{appt: appt})

		r := gin.New()
		r.PUT("/appointments/:id/status", h.SetAppointmentStatus)

		body := bytes.NewBufferString(`{"status":"confirmed"}`)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/appointments/a-1/status", body))

		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid_status", func(t *testing.T) {
		appt := stubAppointmentSvc{setStatus: func(context.Context, string, string) (*domain.Appointment, error) {
			return nil, services.ErrInvalidStatus
		}}
		h := newTestHandlers(testDeps{appt: appt})

		r := gin.New()
		r.PUT("/appointments/:id/status", h.SetAppointmentStatus)

		body := bytes.NewBufferString(`{"status":"vanished"}`)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/appointments/a-1/status", body))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", w.Code)
		}
	})

	t.Run("missing_body", func(t *testing.T) {
		appt := stubAppointmentSvc{setStatus: func(context.Context, string, string) (*domain.Appointment, error) {
			t.Fatalf("service should not be called on binding error")
			return nil, nil
		}}
		h := newTestHandlers(testDeps{appt: appt})

		r := gin.New()
		r.PUT("/appointments/:id/status", h.SetAppointmentStatus)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/appointments/a-1/status", bytes.NewBufferString(`{}`)))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("status=%d, want 400", w.Code)
		}
	})
}

func TestDoctorDashboard_Payload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dash := stubDashboardSvc{doctor: func(ctx context.Context) (*services.DoctorDashboard, error) {
		return &services.DoctorDashboard{
			Stats:                repo.DoctorStats{TotalDonations: 4, UnprocessedDonations: 2},
			UnprocessedDonations: []domain.Donation{{ID: "don-1"}, {ID: "don-2"}},
		}, nil
	}}
	h := newTestHandlers(testDeps{dash: dash})

	r := gin.New()
	r.GET("/dashboard/doctor", h.DoctorDashboard)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard/doctor", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var resp services.DoctorDashboard
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json: %v", err)
	}
	if resp.Stats.TotalDonations != 4 || len(resp.UnprocessedDonations) != 2 {
		t.Fatalf("unexpected dashboard: %+v", resp)
	}
}
