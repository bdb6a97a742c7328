package models

import "time"

type Product struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Code     string   `gorm:"size:100;uniqueIndex;not null" json:"code"`
	Name     string   `gorm:"size:255;not null" json:"name"`
	Brand    string   `gorm:"size:100" json:"brand"`
	Category string   `gorm:"size:100" json:"category"`
	Stock    int      `gorm:"default:0" json:"stock"`
	Price    *float64 `json:"price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
