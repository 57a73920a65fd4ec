package models

// Authentication DTOs
type RegisterRequest struct {
	Username        string `json:"username" form:"username"`
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm"`
	UserType        string `json:"user_type" form:"user_type"`
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh"`
}

// Marketplace DTOs
type CreateBusinessRequest struct {
	FarmerID         int64  `form:"farmer_id"`
	Name             string `form:"name"`
	Description      string `form:"description"`
	ContactInfo      string `form:"contact_info"`
	Category         string `form:"category"`
	ProductsServices string `form:"products_services"`
}

type AddReviewRequest struct {
	UserID     string `json:"user_id" form:"user_id"`
	BusinessID int64  `json:"business_id" form:"business_id"`
	Rating     int    `json:"rating" form:"rating"`
	Comment    string `json:"comment" form:"comment"`
}

type CreateProductRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Availability *bool   `json:"availability"`
}

type RedeemIncentivesRequest struct {
	FarmerID int64 `json:"farmer_id" form:"farmer_id"`
}

// Activity DTOs
type LogActivityRequest struct {
	FarmerID       int64  `form:"farmer_id"`
	Practice       string `form:"practice"`
	Category       string `form:"category"`
	Details        string `form:"details"`
	InputQuantity  string `form:"input_quantity"`
	OutputQuantity string `form:"output_quantity"`
	Location       string `form:"location"`
}

type CollaborationFarmerInput struct {
	FarmerID int64  `json:"farmer_id"`
	Role     string `json:"role"`
}

type CreateCollaborationRequest struct {
	ActivityID int64                      `json:"activity_id"`
	Notes      string                     `json:"notes"`
	Farmers    []CollaborationFarmerInput `json:"farmers"`
}

// Profile DTOs
type CreateFarmerRequest struct {
	Name            string  `json:"name"`
	Location        string  `json:"location"`
	ContactDetails  string  `json:"contact_details"`
	ExperienceLevel string  `json:"experience_level"`
	Specialization  string  `json:"specialization"`
	FarmSize        float64 `json:"farm_size"`
	FarmType        string  `json:"farm_type"`
	Equipment       string  `json:"equipment"`
	Certifications  string  `json:"certifications"`
	TierID          *int64  `json:"tier_id"`
}
