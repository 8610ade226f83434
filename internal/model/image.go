package model

import "time"

// Image represents an uploaded photo's metadata. Binary storage lives in the
// external upload collaborator; only the resulting URL is kept here.
type Image struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	URL         string    `json:"url" gorm:"size:512;not null"`
	PublicName  string    `json:"public_name" gorm:"uniqueIndex;size:255;not null"`
	Description string    `json:"description" gorm:"size:1024"`
	Tags        []*Tag    `json:"tags,omitempty" gorm:"many2many:image_tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
