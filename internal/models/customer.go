package models

import "github.com/google/uuid"

type Customer struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name     string    `gorm:"size:255;not null"`
	Email    string    `gorm:"size:255;not null"`
	ImageURL string    `gorm:"size:255;not null"`
}
