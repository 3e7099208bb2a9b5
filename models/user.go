package models

import "time"

// Role is the closed set of authorization roles a user can hold.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleAuthor
}

// User represents a registered account. Passwords are stored as bcrypt hashes
// only and are never serialized into responses.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Bio          string    `gorm:"size:512" json:"bio"`
	Avatar       string    `gorm:"size:512" json:"avatar"`
	Role         Role      `gorm:"size:16;not null;default:'author'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
