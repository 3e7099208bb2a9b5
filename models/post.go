package models

import "time"

// Post is a published or draft article. The slug is the unique URL token the
// post is addressed by; tags are stored as a JSON array in a single column.
type Post struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Slug        string     `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"size:512" json:"excerpt"`
	CoverImage  string     `gorm:"size:512" json:"cover_image"`
	Tags        []string   `gorm:"type:text;serializer:json" json:"tags"`
	Published   bool       `gorm:"not null;default:false" json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	AuthorID    uint       `gorm:"index;not null" json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Author      User       `gorm:"foreignKey:AuthorID" json:"author"`
}
