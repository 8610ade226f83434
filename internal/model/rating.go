package model

import "time"

// Rating is one user's star vote on one image. Exactly one of the five star
// flags is true; the pair (user, image) is unique.
type Rating struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	ImageID    uint      `json:"image_id" gorm:"not null;uniqueIndex:idx_rating_user_image"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_rating_user_image"`
	OneStar    bool      `json:"one_star" gorm:"default:false"`
	TwoStars   bool      `json:"two_stars" gorm:"default:false"`
	ThreeStars bool      `json:"three_stars" gorm:"default:false"`
	FourStars  bool      `json:"four_stars" gorm:"default:false"`
	FiveStars  bool      `json:"five_stars" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// StarValue maps the set flag to its 1..5 score, 0 when no flag is set.
func (r *Rating) StarValue() int {
	switch {
	case r.OneStar:
		return 1
	case r.TwoStars:
		return 2
	case r.ThreeStars:
		return 3
	case r.FourStars:
		return 4
	case r.FiveStars:
		return 5
	}
	return 0
}
