package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{&User{}, &Group{}, &Meeting{}, &MeetingAttendee{}, &Post{}, &Comment{}, &Animal{}}
}

// AutoMigrate registers the attendance join model and creates or updates the schema.
func AutoMigrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&Meeting{}, "Attendees", &MeetingAttendee{}); err != nil {
		return fmt.Errorf("setup meeting attendees join table: %w", err)
	}
	if err := db.SetupJoinTable(&User{}, "AttendingMeetings", &MeetingAttendee{}); err != nil {
		return fmt.Errorf("setup attending meetings join table: %w", err)
	}
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
