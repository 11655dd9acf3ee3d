package models

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a storefront hero image managed from the admin back-office.
type Banner struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string         `json:"title"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
