package model

import "time"

// User represents an account in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:50;not null;index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         string    `json:"role" gorm:"size:20;default:'user';index"`
	Confirmed    bool      `json:"confirmed" gorm:"default:false"`
	Banned       bool      `json:"banned" gorm:"default:false"`
	RefreshToken *string   `json:"-" gorm:"size:512"` // Current live refresh token; nil means revoked
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
