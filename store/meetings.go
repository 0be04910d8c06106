package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/petmeet/petmeet/models"
)

// CreateMeeting inserts m. Loaded associations are not written.
func (s *Store) CreateMeeting(ctx context.Context, m *models.Meeting) error {
	if err := s.conn(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return fmt.Errorf("create meeting: %w", err)
	}
	return nil
}

// GetMeeting returns the meeting with its creator.
func (s *Store) GetMeeting(ctx context.Context, id uint) (*models.Meeting, error) {
	var m models.Meeting
	if err := first(s.conn(ctx).Preload("Creator"), &m, id); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMeeting overwrites the mutable columns of m. Attendance is untouched.
func (s *Store) UpdateMeeting(ctx context.Context, m *models.Meeting) error {
	if err := s.conn(ctx).Omit(clause.Associations).Save(m).Error; err != nil {
		return fmt.Errorf("update meeting %d: %w", m.ID, err)
	}
	return nil
}

// DeleteMeeting removes the meeting and its attendance rows.
func (s *Store) DeleteMeeting(ctx context.Context, id uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("meeting_id = ?", id).Delete(&models.MeetingAttendee{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Meeting{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ListGroupMeetings returns a page of the group's meetings with their creators.
func (s *Store) ListGroupMeetings(ctx context.Context, groupID uint, page Page) ([]models.Meeting, int64, error) {
	var meetings []models.Meeting
	scope := func(db *gorm.DB) *gorm.DB { return db.Where("group_id = ?", groupID) }
	total, err := s.list(ctx, &meetings, page, scope, "Creator")
	if err != nil {
		return nil, 0, fmt.Errorf("list meetings of group %d: %w", groupID, err)
	}
	return meetings, total, nil
}

// LoadMeetingDetail returns the meeting with group, creator and attendees.
func (s *Store) LoadMeetingDetail(ctx context.Context, id uint) (*models.Meeting, error) {
	var m models.Meeting
	q := s.conn(ctx).
		Preload("Group").
		Preload("Group.Creator").
		Preload("Creator").
		Preload("Attendees", orderedPreload)
	if err := first(q, &m, id); err != nil {
		return nil, err
	}
	return &m, nil
}

// AddAttendee records userID as attending meetingID. A second call for the
// same pair returns ErrAlreadyAttending and changes nothing.
func (s *Store) AddAttendee(ctx context.Context, meetingID, userID uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		row := models.MeetingAttendee{MeetingID: meetingID, UserID: userID}
		if err := tx.Create(&row).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrAlreadyAttending
			}
			return fmt.Errorf("add attendee %d to meeting %d: %w", userID, meetingID, err)
		}
		return touchMeeting(tx, meetingID)
	})
}

// RemoveAttendee drops userID from meetingID. Returns ErrNotAttending when
// there was nothing to remove.
func (s *Store) RemoveAttendee(ctx context.Context, meetingID, userID uint) error {
	return s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("meeting_id = ? AND user_id = ?", meetingID, userID).Delete(&models.MeetingAttendee{})
		if res.Error != nil {
			return fmt.Errorf("remove attendee %d from meeting %d: %w", userID, meetingID, res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotAttending
		}
		return touchMeeting(tx, meetingID)
	})
}

func touchMeeting(tx *gorm.DB, id uint) error {
	return tx.Model(&models.Meeting{}).Where("id = ?", id).UpdateColumn("updated_at", time.Now()).Error
}

// deleteMeetings removes the given meetings and their attendance rows.
func deleteMeetings(tx *gorm.DB, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("meeting_id IN ?", ids).Delete(&models.MeetingAttendee{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Meeting{}).Error
}
