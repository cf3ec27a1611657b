// Doctor HTTP handlers.
//
// This file exposes the staff-side record actions and the doctor dashboard:
//   - POST /donations/{id}/process     (mark a donation processed)
//   - POST /requests/{id}/fulfill      (mark a request fulfilled)
//   - PUT  /appointments/{id}/status   (move an appointment between statuses)
//   - GET  /dashboard/doctor           (counters + work queues)
//
// The processed and fulfilled flags are one-way: repeating the action on an
// already-flagged record responds 200 with the unchanged record.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetStatusRequest is the JSON payload for an appointment status change.
type SetStatusRequest struct {
	// Status must be one of pending, confirmed, completed, cancelled.
	Status string `json:"status" binding:"required" example:"confirmed"`
}

// ProcessDonation godoc
// @ID          processDonation
// @Summary     Mark a donation processed
// @Tags        Doctor
// @Produce     json
// @Param       X-User-ID  header  string  true  "Doctor account ID"
// @Param       id  path  string  true  "Donation ID"
// @Success     200  {object}  domain.Donation
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /donations/{id}/process [post]
func (h *Handlers) ProcessDonation(c *gin.Context) {
	d, err := h.donSvc.Process(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, d)
}

// FulfillRequest godoc
// @ID          fulfillRequest
// @Summary     Mark a blood request fulfilled
// @Tags        Doctor
// @Produce     json
// @Param       X-User-ID  header  string  true  "Doctor account ID"
// @Param       id  path  string  true  "Request ID"
// @Success     200  {object}  domain.BloodRequest
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /requests/{id}/fulfill [post]
func (h *Handlers) FulfillRequest(c *gin.Context) {
	r, err := h.reqSvc.Fulfill(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, r)
}

// SetAppointmentStatus godoc
// @ID          setAppointmentStatus
// @Summary     Change an appointment's status
// @Description Any legal status may replace any other; values outside the
// @Description closed set are rejected.
// @Tags        Doctor
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Doctor account ID"
// @Param       id    path  string  true  "Appointment ID"
// @Param       body  body  handlers.SetStatusRequest  true  "Target status"
// @Success     200  {object}  domain.Appointment
// @Failure     400  {object}  handlers.ErrorResponse "Invalid status"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /appointments/{id}/status [put]
func (h *Handlers) SetAppointmentStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "status required")
		return
	}

	a, err := h.apptSvc.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, a)
}

// DonationQueue godoc
// @ID          donationQueue
// @Summary     List unprocessed donations
// @Tags        Doctor
// @Produce     json
// @Param       X-User-ID  header  string  true  "Doctor account ID"
// @Success     200  {array}  domain.Donation
// @Router      /donations/queue [get]
func (h *Handlers) DonationQueue(c *gin.Context) {
	list, err := h.donSvc.Queue(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}

// RequestQueue godoc
// @ID          requestQueue
// @Summary     List unfulfilled blood requests
// @Description Ordered most urgent first, oldest first within an urgency.
// @Tags        Doctor
// @Produce     json
// @Param       X-User-ID  header  string  true  "Doctor account ID"
// @Success     200  {array}  domain.BloodRequest
// @Router      /requests/queue [get]
func (h *Handlers) RequestQueue(c *gin.Context) {
	list, err := h.reqSvc.Queue(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}

// AppointmentsByStatus godoc
// @ID          appointmentsByStatus
// @Summary     List appointments in a status
// @Tags        Doctor
// @Produce     json
// @Param       X-User-ID  header  string  true  "Doctor account ID"
// @Param       status  query  string  true  "Appointment status"
// @Success     200  {array}  domain.Appointment
// @Failure     400  {object}  handlers.ErrorResponse "Invalid status"
// @Router      /appointments/queue [get]
func (h *Handlers) AppointmentsByStatus(c *gin.Context) {
	list, err := h.apptSvc.ByStatus(c.Request.Context(), c.Query("status"))
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, list)
}

// DoctorDashboard godoc
// @ID          doctorDashboard
// @Summary     Doctor dashboard
// @Description Aggregate counters plus the unprocessed-donation,
// @Description unfulfilled-request, and pending-appointment queues.
// @Tags        Doctor
// @Produce     json
// @Param       X-User-ID  header  string  true  "Doctor account ID"
// @Success     200  {object}  services.DoctorDashboard
// @Router      /dashboard/doctor [get]
func (h *Handlers) DoctorDashboard(c *gin.Context) {
	dash, err := h.dashSvc.Doctor(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, dash)
}
