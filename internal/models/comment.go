package models

import (
	"time"
)

// Comment represents a comment on a post. PostID and CreatedBy are immutable
// after creation; the referenced post is validated to exist at creation time
// only. Votes follows the same tally discipline as Post.VoteCount.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	CreatedBy string    `gorm:"not null;index" json:"created_by"`
	Votes     int       `gorm:"not null;default:0" json:"votes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
