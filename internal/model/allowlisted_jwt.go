package model

import "time"

// AllowlistedJWT records an issued token id. A token is only accepted while
// its row exists and Exp is in the future.
type AllowlistedJWT struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	JTI       string    `json:"jti" gorm:"column:jti;uniqueIndex;size:255;not null"`
	Aud       string    `json:"aud" gorm:"size:255"`
	Exp       time.Time `json:"exp" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name used by the allowlist migrations.
func (AllowlistedJWT) TableName() string {
	return "allowlisted_jwts"
}
