package models

import "time"

// Meeting is a scheduled get-together inside a group.
type Meeting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:80;not null" json:"title"`
	Location  string    `gorm:"size:100;not null" json:"location"`
	Time      time.Time `gorm:"not null" json:"time"`
	GroupID   uint      `gorm:"index;not null" json:"group_id"`
	CreatorID uint      `gorm:"index;not null" json:"creator_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Group     *Group `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"group,omitempty"`
	Creator   *User  `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator,omitempty"`
	Attendees []User `gorm:"many2many:meeting_attendees;" json:"attendees,omitempty"`
}

// MeetingAttendee is the join row between meetings and attending users.
// The composite primary key makes a second attend for the same pair fail at
// the storage layer.
type MeetingAttendee struct {
	MeetingID uint `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time
}

func (MeetingAttendee) TableName() string {
	return "meeting_attendees"
}
