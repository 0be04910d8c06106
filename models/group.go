package models

import "time"

// Group is a city-bound community of pet owners.
type Group struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:80;not null" json:"name"`
	City      string    `gorm:"size:80;not null;index" json:"city"`
	CreatorID uint      `gorm:"index;not null" json:"creator_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Creator  *User     `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator,omitempty"`
	Posts    []Post    `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Meetings []Meeting `gorm:"foreignKey:GroupID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// IsCreatedBy reports whether userID created the group.
func (g *Group) IsCreatedBy(userID uint) bool {
	return g.CreatorID == userID
}
