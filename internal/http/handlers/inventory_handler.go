// Inventory and home-dashboard HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
)

// HomeDashboardResponse extends the shared landing view with counts for the
// caller's own records when the request carries an identity.
type HomeDashboardResponse struct {
	*services.HomeDashboard
	DonorSummary     *services.DonationSummary `json:"donor_summary,omitempty"`
	RecipientSummary *services.RequestSummary  `json:"recipient_summary,omitempty"`
}

// ListInventory godoc
// @ID          listInventory
// @Summary     List blood stock by group
// @Description Returns one row per blood group, ordered by group, each
// @Description flagged when stock sits at or below its critical level.
// @Tags        Inventory
// @Produce     json
// @Success     200  {array}  services.StockLevel
// @Router      /inventory [get]
func (h *Handlers) ListInventory(c *gin.Context) {
	levels, err := h.invSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, levels)
}

// SetInventory godoc
// @ID          setInventory
// @Summary     Set stock for a blood group
// @Description Creates the group's row on first write, replaces it afterwards.
// @Tags        Inventory
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Staff account ID"
// @Param       body  body  services.InventoryInput  true  "Stock payload"
// @Success     200  {object}  services.StockLevel
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /inventory [put]
func (h *Handlers) SetInventory(c *gin.Context) {
	var in services.InventoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	lvl, err := h.invSvc.Set(c.Request.Context(), in)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, lvl)
}

// HomeDashboard godoc
// @ID          homeDashboard
// @Summary     Public landing dashboard
// @Description Current stock levels, the groups running critical, and the
// @Description most recent board posts. When the request carries a known
// @Description X-User-ID, the caller's own donation or request counts are
// @Description included for their role.
// @Tags        Dashboard
// @Produce     json
// @Param       X-User-ID  header  string  false  "Caller account ID"
// @Success     200  {object}  handlers.HomeDashboardResponse
// @Router      /dashboard/home [get]
func (h *Handlers) HomeDashboard(c *gin.Context) {
	dash, err := h.dashSvc.Home(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}

	resp := HomeDashboardResponse{HomeDashboard: dash}
	if u := currentUser(c); u != nil {
		switch u.Role {
		case domain.RoleDonor:
			if _, sum, err := h.donSvc.History(c.Request.Context(), u.ID); err == nil {
				resp.DonorSummary = &sum
			}
		case domain.RoleRecipient:
			if _, sum, err := h.reqSvc.History(c.Request.Context(), u.ID); err == nil {
				resp.RecipientSummary = &sum
			}
		}
	}
	ok(c, http.StatusOK, resp)
}
