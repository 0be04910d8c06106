package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petmeet/petmeet/models"
)

// CreateComment inserts c. Loaded associations are not written.
func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(c).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetComment returns the comment with its author.
func (s *Store) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	if err := first(s.conn(ctx).Preload("User"), &c, id); err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateComment overwrites the mutable columns of c.
func (s *Store) UpdateComment(ctx context.Context, c *models.Comment) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(c).Error; err != nil {
		return fmt.Errorf("update comment %d: %w", c.ID, err)
	}
	return nil
}

// DeleteComment removes a single comment.
func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	res := s.conn(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete comment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPostComments returns a page of the post's comments with their authors.
func (s *Store) ListPostComments(ctx context.Context, postID uint, page Page) ([]models.Comment, int64, error) {
	var comments []models.Comment
	scope := func(db *gorm.DB) *gorm.DB { return db.Where("post_id = ?", postID) }
	total, err := s.list(ctx, &comments, page, scope, "User")
	if err != nil {
		return nil, 0, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, total, nil
}

// LoadCommentDetail returns the comment with author and post.
func (s *Store) LoadCommentDetail(ctx context.Context, id uint) (*models.Comment, error) {
	var c models.Comment
	q := s.conn(ctx).
		Preload("User").
		Preload("Post").
		Preload("Post.User")
	if err := first(q, &c, id); err != nil {
		return nil, err
	}
	return &c, nil
}
