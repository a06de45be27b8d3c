// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Post represents a post in the Ember application.
//
// CreatedBy is the opaque subject id of the authenticated creator and is
// immutable after creation. VoteCount is only ever changed through the vote
// tally service.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Categories  []string  `gorm:"serializer:json" json:"categories"`
	CreatedBy   string    `gorm:"not null;index" json:"created_by"`
	VoteCount   int       `gorm:"not null;default:0" json:"vote_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
