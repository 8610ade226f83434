package model

import "time"

// Comment is a user's comment on an image.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ImageID   uint      `json:"image_id" gorm:"not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Text      string    `json:"text" gorm:"size:1024;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
