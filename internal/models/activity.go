package models

import "time"

type ActivityCategory string

const (
	CategoryPlanting            ActivityCategory = "planting"
	CategoryHarvesting          ActivityCategory = "harvesting"
	CategoryLivestockManagement ActivityCategory = "livestock_management"
	CategorySoilPreparation     ActivityCategory = "soil_preparation"
)

func (c ActivityCategory) Valid() bool {
	switch c {
	case CategoryPlanting, CategoryHarvesting, CategoryLivestockManagement, CategorySoilPreparation:
		return true
	}
	return false
}

type FarmingActivity struct {
	ID                int64            `json:"id" db:"id"`
	FarmerID          int64            `json:"farmer_id" db:"farmer_id"`
	Practice          string           `json:"practice" db:"practice"`
	Category          ActivityCategory `json:"category" db:"category"`
	Details           string           `json:"details" db:"details"`
	InputQuantity     string           `json:"input_quantity" db:"input_quantity"`
	OutputQuantity    string           `json:"output_quantity" db:"output_quantity"`
	WeatherConditions string           `json:"weather_conditions" db:"weather_conditions"`
	ImageURL          *string          `json:"image_url" db:"image_url"`
	VideoURL          *string          `json:"video_url" db:"video_url"`
	Date              time.Time        `json:"date" db:"date"`
	BlockHash         string           `json:"block_hash" db:"block_hash"`
}

// ActivitySummary is the read shape for the activity search endpoint, joined
// with the owning farmer's name.
type ActivitySummary struct {
	Farmer            string           `json:"farmer" db:"farmer"`
	Practice          string           `json:"practice" db:"practice"`
	Category          ActivityCategory `json:"category" db:"category"`
	Details           string           `json:"details" db:"details"`
	InputQuantity     string           `json:"input_quantity" db:"input_quantity"`
	OutputQuantity    string           `json:"output_quantity" db:"output_quantity"`
	WeatherConditions string           `json:"weather_conditions" db:"weather_conditions"`
	ImageURL          *string          `json:"image_url" db:"image_url"`
	VideoURL          *string          `json:"video_url" db:"video_url"`
	Date              time.Time        `json:"date" db:"date"`
	BlockHash         string           `json:"block_hash" db:"block_hash"`
}

type Collaboration struct {
	ID         int64  `json:"id" db:"id"`
	ActivityID int64  `json:"activity_id" db:"activity_id"`
	Notes      string `json:"notes" db:"notes"`
	BlockHash  string `json:"block_hash" db:"block_hash"`
}

type CollaborationFarmer struct {
	ID              int64  `json:"id" db:"id"`
	FarmerID        int64  `json:"farmer_id" db:"farmer_id"`
	CollaborationID int64  `json:"collaboration_id" db:"collaboration_id"`
	Role            string `json:"role" db:"role"`
}

// CollaborationMember is the read shape for the collaboration farmer lookup.
type CollaborationMember struct {
	FarmerID   int64  `json:"farmer_id" db:"farmer_id"`
	FarmerName string `json:"farmer_name" db:"farmer_name"`
	Role       string `json:"role" db:"role"`
}
