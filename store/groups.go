package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petmeet/petmeet/models"
)

// CreateGroup inserts g. Loaded associations are not written.
func (s *Store) CreateGroup(ctx context.Context, g *models.Group) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(g).Error; err != nil {
		return fmt.Errorf("create group: %w", err)
	}
	return nil
}

// GetGroup returns the group with its creator.
func (s *Store) GetGroup(ctx context.Context, id uint) (*models.Group, error) {
	var g models.Group
	if err := first(s.conn(ctx).Preload("Creator"), &g, id); err != nil {
		return nil, err
	}
	return &g, nil
}

// UpdateGroup overwrites the mutable columns of g.
func (s *Store) UpdateGroup(ctx context.Context, g *models.Group) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(g).Error; err != nil {
		return fmt.Errorf("update group %d: %w", g.ID, err)
	}
	return nil
}

// DeleteGroup removes the group, its posts (with their comments) and its
// meetings (with their attendance rows).
func (s *Store) DeleteGroup(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		postIDs, err := pluckIDs(tx, &models.Post{}, "group_id = ?", id)
		if err != nil {
			return err
		}
		if err := deletePosts(tx, postIDs); err != nil {
			return err
		}
		meetingIDs, err := pluckIDs(tx, &models.Meeting{}, "group_id = ?", id)
		if err != nil {
			return err
		}
		if err := deleteMeetings(tx, meetingIDs); err != nil {
			return err
		}

		res := tx.Delete(&models.Group{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListGroups returns a page of groups, optionally restricted to one city.
func (s *Store) ListGroups(ctx context.Context, city *string, page Page) ([]models.Group, int64, error) {
	var groups []models.Group
	scope := func(db *gorm.DB) *gorm.DB {
		if city != nil {
			return db.Where("city = ?", *city)
		}
		return db
	}
	total, err := s.list(ctx, &groups, page, scope, "Creator")
	if err != nil {
		return nil, 0, fmt.Errorf("list groups: %w", err)
	}
	return groups, total, nil
}

// LoadGroupDetail returns the group with creator, posts and meetings.
func (s *Store) LoadGroupDetail(ctx context.Context, id uint) (*models.Group, error) {
	var g models.Group
	q := s.conn(ctx).
		Preload("Creator").
		Preload("Posts", orderedPreload).
		Preload("Posts.User").
		Preload("Meetings", orderedPreload).
		Preload("Meetings.Creator")
	if err := first(q, &g, id); err != nil {
		return nil, err
	}
	return &g, nil
}
