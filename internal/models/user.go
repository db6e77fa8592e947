package models

import "github.com/google/uuid"

// User is a dashboard operator. Password holds the bcrypt hash.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"size:255;not null"`
	Email    string    `gorm:"not null;uniqueIndex"`
	Password string    `gorm:"not null"`
}
