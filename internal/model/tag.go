package model

import "time"

// Tag is a globally unique, lower-cased label attachable to images.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;size:25;not null"`
	Images    []*Image  `json:"-" gorm:"many2many:image_tags"`
	CreatedAt time.Time `json:"created_at"`
}
