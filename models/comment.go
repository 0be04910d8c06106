package models

import "time"

// Ratings a comment may carry.
var Ratings = []string{"1", "2", "3", "4", "5"}

// Comment is a reply to a post. Both foreign keys are nullable; rows are still
// removed when the referenced post or user is deleted.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Rating    *string   `gorm:"size:1" json:"rating"`
	PostID    *uint     `gorm:"index" json:"post_id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Post *Post `gorm:"foreignKey:PostID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"post,omitempty"`
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}

// IsWrittenBy reports whether userID authored the comment.
func (c *Comment) IsWrittenBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID
}

// ValidRating reports whether r is one of the accepted rating literals.
func ValidRating(r string) bool {
	for _, v := range Ratings {
		if v == r {
			return true
		}
	}
	return false
}
