// Information-board HTTP handlers.
//
// Public read side (list, detail) plus the staff-only write side
// (create, update, delete). Listing supports free-text search, category
// filtering, and fixed-size pagination.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openbloodbank/go-bloodbank-backend/internal/services"
	"github.com/openbloodbank/go-bloodbank-backend/internal/utils"
)

// ListPosts godoc
// @ID          listPosts
// @Summary     Browse the information board
// @Description Returns one page of published posts, newest first, with the
// @Description per-category counts for the sidebar. Search matches title,
// @Description content, and author username.
// @Tags        Board
// @Produce     json
// @Param       search    query  string  false  "Free-text filter"
// @Param       category  query  string  false  "Category filter"
// @Param       page      query  int     false  "1-based page number"
// @Success     200  {object}  services.BoardPage
// @Failure     400  {object}  handlers.ErrorResponse "Unknown category"
// @Router      /posts [get]
func (h *Handlers) ListPosts(c *gin.Context) {
	page := utils.AtoiDefault(c.Query("page"), 1)

	bp, err := h.postSvc.List(c.Request.Context(), c.Query("search"), c.Query("category"), page)
	if err != nil {
		failErr(c, err, ErrCodeListFailed)
		return
	}
	ok(c, http.StatusOK, bp)
}

// GetPost godoc
// @ID          getPost
// @Summary     Read a post
// @Description Unpublished posts are indistinguishable from missing ones.
// @Tags        Board
// @Produce     json
// @Param       id  path  string  true  "Post ID"
// @Success     200  {object}  domain.InformationPost
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /posts/{id} [get]
func (h *Handlers) GetPost(c *gin.Context) {
	p, err := h.postSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// CreatePost godoc
// @ID          createPost
// @Summary     Publish a post
// @Tags        Board
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Staff account ID"
// @Param       body  body  services.PostInput  true  "Post payload"
// @Success     201  {object}  domain.InformationPost
// @Failure     400  {object}  handlers.ErrorResponse "Validation failed"
// @Router      /posts [post]
func (h *Handlers) CreatePost(c *gin.Context) {
	var in services.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.postSvc.Create(c.Request.Context(), currentUser(c).ID, in)
	if err != nil {
		failErr(c, err, ErrCodeCreateFailed)
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdatePost godoc
// @ID          updatePost
// @Summary     Edit a post
// @Tags        Board
// @Accept      json
// @Produce     json
// @Param       X-User-ID  header  string  true  "Staff account ID"
// @Param       id    path  string  true  "Post ID"
// @Param       body  body  services.PostInput  true  "Post payload"
// @Success     200  {object}  domain.InformationPost
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /posts/{id} [put]
func (h *Handlers) UpdatePost(c *gin.Context) {
	var in services.PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	p, err := h.postSvc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	ok(c, http.StatusOK, p)
}

// DeletePost godoc
// @ID          deletePost
// @Summary     Remove a post
// @Tags        Board
// @Param       X-User-ID  header  string  true  "Staff account ID"
// @Param       id  path  string  true  "Post ID"
// @Success     204  "Deleted"
// @Failure     404  {object}  handlers.ErrorResponse
// @Router      /posts/{id} [delete]
func (h *Handlers) DeletePost(c *gin.Context) {
	if err := h.postSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		failErr(c, err, ErrCodeInternal)
		return
	}
	noContent(c)
}
