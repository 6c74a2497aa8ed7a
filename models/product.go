package models

import "time"

// Notes groups the scent descriptors of a perfume by layer
type Notes struct {
	Top   []string `json:"top" bson:"top"`
	Heart []string `json:"heart" bson:"heart"`
	Base  []string `json:"base" bson:"base"`
}

// Product is the payload sent to the storefront's product creation endpoint
type Product struct {
	ID          string   `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string   `json:"name" bson:"name"`
	Brand       string   `json:"brand" bson:"brand"`
	Price       int      `json:"price" bson:"price"`
	OldPrice    *int     `json:"old_price" bson:"old_price"` // Price before discount, null when not discounted
	Category    string   `json:"category" bson:"category"`   // Category slug
	Type        string   `json:"type" bson:"type"`
	Size        string   `json:"size" bson:"size"`
	Description string   `json:"description" bson:"description"`
	Notes       Notes    `json:"notes" bson:"notes"`
	ImageURLs   []string `json:"image_urls" bson:"image_urls"`
	Stock       int      `json:"stock" bson:"stock"`
	Rating      float64  `json:"rating" bson:"rating"`
	ReviewCount int      `json:"reviewCount" bson:"review_count"`
	BestSelling bool     `json:"best_selling" bson:"best_selling"`

	CreatedAt *time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"` // Set by the storefront
}

// HasDiscount reports whether the product carries a discounted-from price
func (p *Product) HasDiscount() bool {
	return p.OldPrice != nil
}
