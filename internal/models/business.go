package models

import "time"

type BusinessCategory string

const (
	CategoryFarmProduce  BusinessCategory = "farm_produce"
	CategoryAgritourism  BusinessCategory = "agritourism"
	CategoryFarmSupplies BusinessCategory = "farm_supplies"
	CategoryServices     BusinessCategory = "services"
)

func (c BusinessCategory) Valid() bool {
	switch c {
	case CategoryFarmProduce, CategoryAgritourism, CategoryFarmSupplies, CategoryServices:
		return true
	}
	return false
}

type Business struct {
	ID               int64            `json:"id" db:"id"`
	FarmerID         int64            `json:"farmer_id" db:"farmer_id"`
	Name             string           `json:"name" db:"name"`
	Description      string           `json:"description" db:"description"`
	ContactInfo      string           `json:"contact_info" db:"contact_info"`
	Category         BusinessCategory `json:"category" db:"category"`
	ProductsServices string           `json:"products_services" db:"products_services"`
	ImageURL         *string          `json:"image_url" db:"image_url"`
}

// BusinessSummary is the read shape for the business search endpoint, joined
// with the owning farmer's name and the average review rating.
type BusinessSummary struct {
	Name             string           `json:"name" db:"name"`
	Description      string           `json:"description" db:"description"`
	ContactInfo      string           `json:"contact_info" db:"contact_info"`
	Category         BusinessCategory `json:"category" db:"category"`
	ProductsServices string           `json:"products_services" db:"products_services"`
	ImageURL         *string          `json:"image_url" db:"image_url"`
	Farmer           string           `json:"farmer" db:"farmer"`
	AverageRating    *float64         `json:"average_rating" db:"average_rating"`
}

type Product struct {
	ID           int64   `json:"id" db:"id"`
	BusinessID   int64   `json:"business_id" db:"business_id"`
	Name         string  `json:"name" db:"name"`
	Description  string  `json:"description" db:"description"`
	Price        float64 `json:"price" db:"price"`
	Availability bool    `json:"availability" db:"availability"`
}

type Review struct {
	ID         int64     `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	BusinessID int64     `json:"business_id" db:"business_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment" db:"comment"`
	Date       time.Time `json:"date" db:"date"`
}

// Pagination mirrors the search endpoints' page metadata.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	HasPrevious bool `json:"has_previous"`
	HasNext     bool `json:"has_next"`
}

type BusinessSearchResult struct {
	Businesses []BusinessSummary `json:"businesses"`
	Pagination Pagination        `json:"pagination"`
}

type BusinessReviews struct {
	BusinessID    int64    `json:"business_id"`
	Reviews       []Review `json:"reviews"`
	AverageRating *float64 `json:"average_rating"`
}

type CollaborationFarmersResult struct {
	Farmers    []CollaborationMember `json:"farmers"`
	Pagination Pagination            `json:"pagination"`
}
