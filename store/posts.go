package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petmeet/petmeet/models"
)

// CreatePost inserts p. Loaded associations are not written.
func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// GetPost returns the post with its author.
func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := first(s.conn(ctx).Preload("User"), &p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePost overwrites the mutable columns of p.
func (s *Store) UpdatePost(ctx context.Context, p *models.Post) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("update post %d: %w", p.ID, err)
	}
	return nil
}

// DeletePost removes the post and its comments.
func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListGroupPosts returns a page of the group's posts with their authors.
func (s *Store) ListGroupPosts(ctx context.Context, groupID uint, page Page) ([]models.Post, int64, error) {
	var posts []models.Post
	scope := func(db *gorm.DB) *gorm.DB { return db.Where("group_id = ?", groupID) }
	total, err := s.list(ctx, &posts, page, scope, "User")
	if err != nil {
		return nil, 0, fmt.Errorf("list posts of group %d: %w", groupID, err)
	}
	return posts, total, nil
}

// LoadPostDetail returns the post with author, group and comments.
func (s *Store) LoadPostDetail(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	q := s.conn(ctx).
		Preload("User").
		Preload("Group").
		Preload("Group.Creator").
		Preload("Comments", orderedPreload).
		Preload("Comments.User")
	if err := first(q, &p, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// deletePosts removes the given posts and every comment on them.
func deletePosts(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("post_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Post{}).Error
}
