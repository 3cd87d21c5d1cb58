package model

import "time"

// User represents a registered account owning todos and issued tokens.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Name         string    `json:"name" gorm:"size:50;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Todos           []Todo           `json:"-" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	AllowlistedJWTs []AllowlistedJWT `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
