// User HTTP handlers.
//
// This file exposes REST endpoints for accounts:
//   - POST /users            (register)
//   - GET  /users            (directory, for the chat dashboard)
//   - GET  /users/me         (own profile)
//   - PUT  /users/me         (edit own profile)
//   - POST /users/{id}/verify (administrator verification)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
)

// Register godoc
// @ID          registerUser
// @Summary     Register an account
// @Description Creates a new account with one of the four roles
// @Description (donor, recipient, doctor, admin). Usernames are unique.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body  services.RegisterInput  true  "Account payload"
// @Success     201  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Failure     409  {object}  handlers.ErrorResponse "Username taken"
// @Router      /users [post]
func (h *Handlers) Register(c *gin.Context) {
	var in services.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.Register(c.Request.Context(), in)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, u)
}

// Me godoc
// @ID          getProfile
// @Summary     Get own profile
// @Tags        Users
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Success     200  {object}  domain.User
// @Failure     401  {object}  handlers.ErrorResponse
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	ok(c, http.StatusOK, currentUser(c))
}

// UpdateMe godoc
// @ID          updateProfile
// @Summary     Edit own profile
// @Description Replaces the editable profile attributes. Username and role
// @Description are immutable.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Param       body  body  services.ProfileInput  true  "Profile payload"
// @Success     200  {object}  domain.User
// @Failure     400  {object}  handlers.ErrorResponse
// @Router      /users/me [put]
func (h *Handlers) UpdateMe(c *gin.Context) {
	var in services.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	u, err := h.userSvc.UpdateProfile(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, u)
}

// VerifyUser godoc
// @ID          verifyUser
// @Summary     Mark an account as verified
// @Tags        Users
// @Produce     json
// @Param       X-User-ID  header  string  true  "Administrator account ID"
// @Param       id  path  string  true  "Account ID"
// @Success     200  {object}  domain.User
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /users/{id}/verify [post]
func (h *Handlers) VerifyUser(c *gin.Context) {
	u, err := h.userSvc.Verify(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, u)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List other accounts
// @Description Returns every account except the caller, ordered by username.
// @Description Used by the chat dashboard to offer conversation targets.
// @Tags        Users
// @Produce     json
// @Param       X-User-ID  header  string  true  "Caller account ID"
// @Success     200  {array}  domain.User
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	list, err := h.userSvc.Directory(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, list)
}
