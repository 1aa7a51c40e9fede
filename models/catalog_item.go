package models

import "gorm.io/gorm"

// CatalogItem is an admin-managed content row rendered on the maintenance
// packages and home pages.
type CatalogItem struct {
	gorm.Model

	CategoryKey string `gorm:"not null;index" json:"category_key"`
	SortOrder   int    `gorm:"default:0" json:"sort_order"`
	// No column default here: a default tag would make gorm omit false
	// from the INSERT and the item would land active. New items default
	// to active in the create handler instead.
	IsActive bool `json:"is_active"`

	Title       string `gorm:"not null" json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `gorm:"type:text" json:"description"`
	CTALabel    string `json:"cta_label"`
	CTAHref     string `json:"cta_href"`
	ImageURL    string `json:"image_url"`
	Tag         string `json:"tag"`
}

func (CatalogItem) TableName() string {
	return "catalog_items"
}
