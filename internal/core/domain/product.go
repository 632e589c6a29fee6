package domain

import "time"

// Product is a catalog item of the "baby accessories" collection.
type Product struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Image       string    `json:"image"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	PrevPrice   float64   `json:"prevPrice,omitempty"`
	IsFlashSale bool      `json:"isFlashSale"`
	Rating      float64   `json:"rating,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category groups products for navigation.
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Description string `json:"description,omitempty"`
}
