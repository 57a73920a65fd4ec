package models

type Tier struct {
	ID           int64  `json:"id" db:"id"`
	Name         string `json:"name" db:"name"`
	Description  string `json:"description" db:"description"`
	Benefits     string `json:"benefits" db:"benefits"`
	Requirements string `json:"requirements" db:"requirements"`
}

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
)

type FarmType string

const (
	FarmTypeArable  FarmType = "arable"
	FarmTypePasture FarmType = "pasture"
	FarmTypeMixed   FarmType = "mixed"
)

type Farmer struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name"`
	Location        string          `json:"location" db:"location"`
	ContactDetails  string          `json:"contact_details" db:"contact_details"`
	ExperienceLevel ExperienceLevel `json:"experience_level" db:"experience_level"`
	Specialization  string          `json:"specialization" db:"specialization"`
	FarmSize        float64         `json:"farm_size" db:"farm_size"`
	FarmType        FarmType        `json:"farm_type" db:"farm_type"`
	Equipment       string          `json:"equipment" db:"equipment"`
	Certifications  string          `json:"certifications" db:"certifications"`
	TierID          *int64          `json:"tier_id" db:"tier_id"`
}

type Farm struct {
	ID       int64   `json:"id" db:"id"`
	Name     string  `json:"name" db:"name"`
	Location string  `json:"location" db:"location"`
	Size     float64 `json:"size" db:"size"`
	FarmerID int64   `json:"farmer_id" db:"farmer_id"`
}

type Incentive struct {
	ID       int64 `json:"id" db:"id"`
	FarmerID int64 `json:"farmer_id" db:"farmer_id"`
	Points   int   `json:"points" db:"points"`
	Redeemed bool  `json:"redeemed" db:"redeemed"`
}
