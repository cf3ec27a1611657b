// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// InformationPost model: CRUD plus the search/category/pagination queries
// behind the public information board.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openbloodbank/go-bloodbank-backend/internal/domain"
)

// CategoryCount pairs a post category with the number of published posts in it.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// CreatePost inserts a new information post.
func CreatePost(ctx context.Context, db *gorm.DB, p *domain.InformationPost) (*domain.InformationPost, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetPost fetches a post by ID, or ErrNotFound if missing.
func GetPost(ctx context.Context, db *gorm.DB, id string) (*domain.InformationPost, error) {
	var p domain.InformationPost
	if err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// publishedPosts composes the base query for the public board: published
// rows, optionally narrowed by a free-text search across title, content and
// author username, and by category.
func publishedPosts(ctx context.Context, db *gorm.DB, search, category string) *gorm.DB {
	q := db.WithContext(ctx).
		Model(&domain.InformationPost{}).
		Where("information_posts.is_published = ?", true)
	if search != "" {
		like := "%" + search + "%"
		q = q.Joins("JOIN users ON users.id = information_posts.author_id").
			Where("information_posts.title LIKE ? OR information_posts.content LIKE ? OR users.username LIKE ?", like, like, like)
	}
	if category != "" {
		q = q.Where("information_posts.category = ?", category)
	}
	return q
}

// CountPublishedPosts returns the number of published posts matching the
// search and category filters.
func CountPublishedPosts(ctx context.Context, db *gorm.DB, search, category string) (int64, error) {
	var total int64
	err := publishedPosts(ctx, db, search, category).Count(&total).Error
	return total, err
}

// ListPublishedPostsPage returns a page of published posts matching the
// filters, newest first.
func ListPublishedPostsPage(ctx context.Context, db *gorm.DB, search, category string, offset, limit int) ([]domain.InformationPost, error) {
	var out []domain.InformationPost
	err := publishedPosts(ctx, db, search, category).
		Order("information_posts.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// ListRecentPublishedPosts returns the newest published posts up to limit.
// Used for the home dashboard teaser.
func ListRecentPublishedPosts(ctx context.Context, db *gorm.DB, limit int) ([]domain.InformationPost, error) {
	var out []domain.InformationPost
	err := db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// CountPostsByCategory returns per-category counts of published posts,
// ordered by category name.
func CountPostsByCategory(ctx context.Context, db *gorm.DB) ([]CategoryCount, error) {
	var out []CategoryCount
	err := db.WithContext(ctx).
		Model(&domain.InformationPost{}).
		Select("category, COUNT(*) as count").
		Where("is_published = ?", true).
		Group("category").
		Order("category asc").
		Scan(&out).Error
	return out, err
}

// UpdatePost applies the given field set to a post. Returns ErrNotFound when
// no row matches.
func UpdatePost(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.InformationPost{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeletePost soft-deletes a post. Returns ErrNotFound when no row matches.
func DeletePost(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Delete(&domain.InformationPost{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
