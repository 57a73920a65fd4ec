package repository

import (
	"database/sql"
	"farmbiz-service/internal/models"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type IFarmerRepository interface {
	CreateFarmer(farmer *models.Farmer) error
	GetFarmerByID(id int64) (*models.Farmer, error)
	CreateFarm(farm *models.Farm) error
	GetFarmsByFarmerID(farmerID int64) ([]models.Farm, error)
	GetTierByID(id int64) (*models.Tier, error)
}

type FarmerRepository struct {
	db *sqlx.DB
}

func NewFarmerRepository(db *sqlx.DB) IFarmerRepository {
	return &FarmerRepository{
		db: db,
	}
}

func (r *FarmerRepository) CreateFarmer(farmer *models.Farmer) error {
	query := `
		INSERT INTO farmers (name, location, contact_details, experience_level, specialization,
		                     farm_size, farm_type, equipment, certifications, tier_id)
		VALUES (:name, :location, :contact_details, :experience_level, :specialization,
		        :farm_size, :farm_type, :equipment, :certifications, :tier_id)
		RETURNING id
	`

	rows, err := r.db.NamedQuery(query, farmer)
	if err != nil {
		return fmt.Errorf("failed to create farmer: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&farmer.ID); err != nil {
			return fmt.Errorf("failed to scan farmer id: %w", err)
		}
	}

	return nil
}

func (r *FarmerRepository) GetFarmerByID(id int64) (*models.Farmer, error) {
	var farmer models.Farmer
	query := `SELECT * FROM farmers WHERE id = $1`

	err := r.db.Get(&farmer, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("farmer not found")
		}
		return nil, fmt.Errorf("failed to get farmer by ID: %w", err)
	}

	return &farmer, nil
}

func (r *FarmerRepository) CreateFarm(farm *models.Farm) error {
	query := `
		INSERT INTO farms (name, location, size, farmer_id)
		VALUES (:name, :location, :size, :farmer_id)
		RETURNING id
	`

	rows, err := r.db.NamedQuery(query, farm)
	if err != nil {
		return fmt.Errorf("failed to create farm: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&farm.ID); err != nil {
			return fmt.Errorf("failed to scan farm id: %w", err)
		}
	}

	return nil
}

func (r *FarmerRepository) GetFarmsByFarmerID(farmerID int64) ([]models.Farm, error) {
	var farms []models.Farm
	query := `SELECT * FROM farms WHERE farmer_id = $1 ORDER BY id`

	err := r.db.Select(&farms, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get farms: %w", err)
	}

	return farms, nil
}

func (r *FarmerRepository) GetTierByID(id int64) (*models.Tier, error) {
	var tier models.Tier
	query := `SELECT * FROM tiers WHERE id = $1`

	err := r.db.Get(&tier, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("tier not found")
		}
		return nil, fmt.Errorf("failed to get tier by ID: %w", err)
	}

	return &tier, nil
}
