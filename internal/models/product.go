package models

import "gorm.io/gorm"

// Product represents a product in the catalog.
type Product struct {
	ID              string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name            string  `json:"name" validate:"required,min=3,max=100"`
	Description     string  `json:"description" validate:"omitempty,max=500"`
	Price           float64 `json:"price" validate:"required,gt=0"`
	Image           string  `json:"image" validate:"omitempty,max=500"`
	DiscountPercent float64 `json:"discount_percent" validate:"gte=0,lte=100"`
	Category        string  `json:"category" validate:"omitempty,max=100"`
	Slug            string  `json:"slug" gorm:"uniqueIndex;type:varchar(150)" validate:"omitempty,max=150"`
	Inventory       int     `json:"inventory" validate:"gte=0"`
	gorm.Model              // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
