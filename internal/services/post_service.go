// Package services – PostService
//
// This file implements PostService, which owns the public information board:
// paginated listing with search and category filters, post detail, and the
// staff-side create/update/delete operations.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
	"github.com/openbloodbank/go-bloodbank-backend/internal/repo"
)

// PostInput carries the fields accepted when creating or editing a post.
type PostInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Category    string `json:"category"`
	IsPublished *bool  `json:"is_published,omitempty"`
	IsFeatured  *bool  `json:"is_featured,omitempty"`
}

// BoardPage is one page of the information board.
type BoardPage struct {
	Posts      []domain.InformationPost `json:"posts"`
	Total      int64                    `json:"total"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	TotalPages int                      `json:"total_pages"`
	Categories []repo.CategoryCount     `json:"categories"`
}

// PostService provides information-board operations.
type PostService struct {
	DB *gorm.DB

	// PageSize is the number of posts per board page.
	PageSize int
}

// NewPostService constructs a PostService with the board's page size.
func NewPostService(db *gorm.DB) *PostService {
	return &PostService{DB: db, PageSize: 6}
}

// List returns one page of published posts matching the optional search and
// category filters, together with per-category counts for the sidebar.
func (s *PostService) List(ctx context.Context, search, category string, page int) (*BoardPage, error) {
	if category != "" && !domain.ValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	if page < 1 {
		page = 1
	}
	size := s.PageSize
	if size <= 0 {
		size = 6
	}

	total, err := repo.CountPublishedPosts(ctx, s.DB, search, category)
	if err != nil {
		return nil, err
	}
	totalPages := int((total + int64(size) - 1) / int64(size))

	posts := []domain.InformationPost{}
	if total > 0 {
		posts, err = repo.ListPublishedPostsPage(ctx, s.DB, search, category, (page-1)*size, size)
		if err != nil {
			return nil, err
		}
	}

	cats, err := repo.CountPostsByCategory(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	return &BoardPage{
		Posts:      posts,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		Categories: cats,
	}, nil
}

// Get fetches a single published post. Unpublished or deleted posts are
// reported as not found to non-staff readers.
func (s *PostService) Get(ctx context.Context, id string) (*domain.InformationPost, error) {
	p, err := repo.GetPost(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if !p.IsPublished {
		return nil, ErrPostNotFound
	}
	return p, nil
}

// Create publishes a new post authored by authorID. Staff action.
func (s *PostService) Create(ctx context.Context, authorID string, in PostInput) (*domain.InformationPost, error) {
	if err := requireNonBlank(field{"title", in.Title}, field{"content", in.Content}); err != nil {
		return nil, err
	}
	if !domain.ValidCategory(in.Category) {
		return nil, ErrInvalidCategory
	}

	p := &domain.InformationPost{
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		Category:    in.Category,
		AuthorID:    authorID,
		IsPublished: true,
	}
	if in.IsPublished != nil {
		p.IsPublished = *in.IsPublished
	}
	if in.IsFeatured != nil {
		p.IsFeatured = *in.IsFeatured
	}
	return repo.CreatePost(ctx, s.DB, p)
}

// Update edits an existing post. Staff action.
func (s *PostService) Update(ctx context.Context, id string, in PostInput) (*domain.InformationPost, error) {
	if err := requireNonBlank(field{"title", in.Title}, field{"content", in.Content}); err != nil {
		return nil, err
	}
	if !domain.ValidCategory(in.Category) {
		return nil, ErrInvalidCategory
	}

	fields := map[string]any{
		"title":    strings.TrimSpace(in.Title),
		"content":  in.Content,
		"category": in.Category,
	}
	if in.IsPublished != nil {
		fields["is_published"] = *in.IsPublished
	}
	if in.IsFeatured != nil {
		fields["is_featured"] = *in.IsFeatured
	}

	if err := repo.UpdatePost(ctx, s.DB, id, fields); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return repo.GetPost(ctx, s.DB, id)
}

// Delete soft-deletes a post. Staff action.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := repo.DeletePost(ctx, s.DB, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	return nil
}
