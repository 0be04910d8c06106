package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petmeet/petmeet/models"
)

// CreateUser inserts u. The email unique index decides races between
// concurrent sign-ups; a violation is reported as ErrDuplicateEmail.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(u).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser returns the user with the given id.
func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := first(s.conn(ctx), &u, id); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail looks a user up by normalised email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.conn(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateUser overwrites every column of u.
func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(u).Error; err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return nil
}

// DeleteUser removes the user together with everything that depends on it:
// created groups (and their posts, meetings and comments), the user's own
// posts, meetings, comments, animals and attendance rows.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		groupIDs, err := pluckIDs(tx, &models.Group{}, "creator_id = ?", id)
		if err != nil {
			return err
		}

		postQuery, meetingQuery := "user_id = ?", "creator_id = ?"
		postArgs, meetingArgs := []interface{}{id}, []interface{}{id}
		if len(groupIDs) > 0 {
			postQuery += " OR group_id IN ?"
			postArgs = append(postArgs, groupIDs)
			meetingQuery += " OR group_id IN ?"
			meetingArgs = append(meetingArgs, groupIDs)
		}

		meetingIDs, err := pluckIDs(tx, &models.Meeting{}, meetingQuery, meetingArgs...)
		if err != nil {
			return err
		}
		if err := deleteMeetings(tx, meetingIDs); err != nil {
			return err
		}
		postIDs, err := pluckIDs(tx, &models.Post{}, postQuery, postArgs...)
		if err != nil {
			return err
		}
		if err := deletePosts(tx, postIDs); err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.MeetingAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Animal{}).Error; err != nil {
			return err
		}
		if len(groupIDs) > 0 {
			if err := tx.Where("id IN ?", groupIDs).Delete(&models.Group{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListUsers returns a page of users in creation order.
func (s *Store) ListUsers(ctx context.Context, page Page) ([]models.User, int64, error) {
	var users []models.User
	total, err := s.list(ctx, &users, page, func(db *gorm.DB) *gorm.DB { return db })
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// LoadUserDetail returns the user with animals, created groups and attended
// meetings loaded one level deep.
func (s *Store) LoadUserDetail(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	q := s.conn(ctx).
		Preload("Animals", orderedPreload).
		Preload("CreatedGroups", orderedPreload).
		Preload("CreatedGroups.Creator").
		Preload("AttendingMeetings", orderedPreload).
		Preload("AttendingMeetings.Creator")
	if err := first(q, &u, id); err != nil {
		return nil, err
	}
	return &u, nil
}
