package repository

import (
	"farmbiz-service/internal/models"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type IIncentiveRepository interface {
	CreateIncentive(incentive *models.Incentive) error
	RedeemFirstAvailable(farmerID int64) (bool, error)
	GetIncentivesByFarmerID(farmerID int64) ([]models.Incentive, error)
}

type IncentiveRepository struct {
	db *sqlx.DB
}

func NewIncentiveRepository(db *sqlx.DB) IIncentiveRepository {
	return &IncentiveRepository{
		db: db,
	}
}

func (r *IncentiveRepository) CreateIncentive(incentive *models.Incentive) error {
	query := `
		INSERT INTO incentives (farmer_id, points)
		VALUES (:farmer_id, :points)
		RETURNING id
	`

	rows, err := r.db.NamedQuery(query, incentive)
	if err != nil {
		return fmt.Errorf("failed to create incentive: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&incentive.ID); err != nil {
			return fmt.Errorf("failed to scan incentive id: %w", err)
		}
	}

	return nil
}

// RedeemFirstAvailable flips the oldest unredeemed incentive for the farmer.
// The redeemed = false guard lives in the UPDATE itself, so two concurrent
// redemption requests cannot both claim the same row; the loser sees zero
// rows affected. Redemption is one-way per row.
func (r *IncentiveRepository) RedeemFirstAvailable(farmerID int64) (bool, error) {
	query := `
		UPDATE incentives SET redeemed = true
		WHERE id = (
			SELECT id FROM incentives
			WHERE farmer_id = $1 AND redeemed = false
			ORDER BY id
			LIMIT 1
		) AND redeemed = false
	`

	result, err := r.db.Exec(query, farmerID)
	if err != nil {
		return false, fmt.Errorf("failed to redeem incentive: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *IncentiveRepository) GetIncentivesByFarmerID(farmerID int64) ([]models.Incentive, error) {
	incentives := []models.Incentive{}
	query := `SELECT * FROM incentives WHERE farmer_id = $1 ORDER BY id`

	err := r.db.Select(&incentives, query, farmerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get incentives: %w", err)
	}

	return incentives, nil
}
