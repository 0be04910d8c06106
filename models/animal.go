package models

import "time"

// Supported animal types.
const (
	AnimalTypeDog = "dog"
	AnimalTypeCat = "cat"
)

// Animal is a pet profile owned by a user.
type Animal struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null" json:"name"`
	Breed     *string   `gorm:"size:80" json:"breed"`
	Type      string    `gorm:"size:3;not null" json:"type"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user,omitempty"`
}

// ValidAnimalType reports whether t is a supported animal type.
func ValidAnimalType(t string) bool {
	return t == AnimalTypeDog || t == AnimalTypeCat
}
