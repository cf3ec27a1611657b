// Donation, blood-request, and appointment HTTP handlers.
//
// This file exposes the record-keeping endpoints used by donors and
// recipients:
//   - POST /donations      (donor records a donation)
//   - GET  /donations      (donor history + summary)
//   - POST /requests       (recipient files a blood request)
//   - GET  /requests       (recipient history + counts)
//   - POST /appointments   (book an appointment)
//   - GET  /appointments   (own appointments)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
)

// DonationHistoryResponse wraps a donor's donations with the dashboard summary.
type DonationHistoryResponse struct {
	Donations []domain.Donation        `json:"donations"`
	Summary   services.DonationSummary `json:"summary"`
}

// RequestHistoryResponse wraps a recipient's requests with summary counts.
type RequestHistoryResponse struct {
	Requests []domain.BloodRequest   `json:"requests"`
	Summary  services.RequestSummary `json:"summary"`
}

// RecordDonation godoc
// @ID          recordDonation
// @Summary     Record a donation
// @Tags        Donations
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Donor account ID"
// @Param       body  body  services.DonationInput  true  "Donation payload"
// @Success     201  {object}  domain.Donation
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /donations [post]
func (h *Handlers) RecordDonation(c *gin.Context) {
	var in services.DonationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	d, err := h.donSvc.Record(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, d)
}

// DonationHistory godoc
// @ID          donationHistory
// @Summary     List own donations
// @Description Returns the caller's donations newest first, with lifetime
// @Description volume and the next eligible donation date.
// @Tags        Donations
// @Produce     json
// @Param       X-User-ID  header  string  true  "Donor account ID"
// @Success     200  {object}  handlers.DonationHistoryResponse
// @Router      /donations [get]
func (h *Handlers) DonationHistory(c *gin.Context) {
	list, sum, err := h.donSvc.History(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, DonationHistoryResponse{Donations: list, Summary: sum})
}

// CreateRequest godoc
// @ID          createBloodRequest
// @Summary     File a blood request
// @Tags        Requests
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Recipient account ID"
// @Param       body  body  services.RequestInput  true  "Request payload"
// @Success     201  {object}  domain.BloodRequest
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /requests [post]
func (h *Handlers) CreateRequest(c *gin.Context) {
	var in services.RequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	r, err := h.reqSvc.Create(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, r)
}

// RequestHistory godoc
// @ID          requestHistory
// @Summary     List own blood requests
// @Tags        Requests
// @Produce     json
// @Param       X-User-ID  header  string  true  "Recipient account ID"
// @Success     200  {object}  handlers.RequestHistoryResponse
// @Router      /requests [get]
func (h *Handlers) RequestHistory(c *gin.Context) {
	list, sum, err := h.reqSvc.History(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, RequestHistoryResponse{Requests: list, Summary: sum})
}

// BookAppointment godoc
// @ID          bookAppointment
// @Summary     Book an appointment
// @Description New appointments always start in the pending status.
// @Tags        Appointments
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Param       body  body  services.AppointmentInput  true  "Appointment payload"
// @Success     201  {object}  domain.Appointment
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /appointments [post]
func (h *Handlers) BookAppointment(c *gin.Context) {
	var in services.AppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	a, err := h.apptSvc.Schedule(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, a)
}

// MyAppointments godoc
// @ID          myAppointments
// @Summary     List own appointments
// @Tags        Appointments
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Success     200  {array}  domain.Appointment
// @Router      /appointments [get]
func (h *Handlers) MyAppointments(c *gin.Context) {
	list, err := h.apptSvc.Mine(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}
