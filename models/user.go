package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is a registered member. Passwords are stored as bcrypt hashes only.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash   string    `gorm:"size:255;not null" json:"-"`
	FirstName      string    `gorm:"size:50;not null" json:"first_name"`
	LastName       string    `gorm:"size:60;not null" json:"last_name"`
	AddressStreet  *string   `gorm:"size:100" json:"address_street"`
	AddressCity    *string   `gorm:"size:100" json:"address_city"`
	AddressCountry *string   `gorm:"size:100" json:"address_country"`
	PhoneNumber    *string   `gorm:"size:32" json:"phone_number"`
	Bio            *string   `gorm:"type:text" json:"bio"`
	TokenVersion   int       `gorm:"not null;default:0" json:"-"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Animals           []Animal  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedGroups     []Group   `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AttendingMeetings []Meeting `gorm:"many2many:meeting_attendees;" json:"-"`
}

// BeforeSave normalises the email so the unique index compares like with like.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
