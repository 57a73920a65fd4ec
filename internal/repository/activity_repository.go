package repository

import (
	"database/sql"
	"farmbiz-service/internal/hashchain"
	"farmbiz-service/internal/models"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type IActivityRepository interface {
	CreateActivity(activity *models.FarmingActivity) error
	GetActivityByID(id int64) (*models.FarmingActivity, error)
	SearchActivities(query string) ([]models.ActivitySummary, error)
	CreateCollaboration(collaboration *models.Collaboration, farmers []models.CollaborationFarmerInput) error
	GetCollaborationByID(id int64) (*models.Collaboration, error)
	GetCollaborationFarmers(collaborationID int64) ([]models.CollaborationMember, error)
}

type ActivityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) IActivityRepository {
	return &ActivityRepository{
		db: db,
	}
}

// CreateActivity inserts the activity, chaining its block hash to the most
// recently inserted row. The last-row read and the insert share one
// transaction; the caller serializes appends so two requests cannot chain
// against the same previous hash.
func (r *ActivityRepository) CreateActivity(activity *models.FarmingActivity) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if activity.BlockHash == "" {
		var prevHash string
		err = tx.Get(&prevHash, `SELECT block_hash FROM farming_activities ORDER BY id DESC LIMIT 1`)
		if err != nil {
			if err != sql.ErrNoRows {
				return fmt.Errorf("failed to get last activity hash: %w", err)
			}
			prevHash = hashchain.Sentinel
		}
		activity.Date = time.Now().UTC()
		activity.BlockHash = hashchain.BlockHash(prevHash, activity.Practice, activity.Date)
	}

	query := `
		INSERT INTO farming_activities (farmer_id, practice, category, details, input_quantity,
		                                output_quantity, weather_conditions, image_url, video_url,
		                                date, block_hash)
		VALUES (:farmer_id, :practice, :category, :details, :input_quantity,
		        :output_quantity, :weather_conditions, :image_url, :video_url,
		        :date, :block_hash)
		RETURNING id
	`

	rows, err := tx.NamedQuery(query, activity)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	if rows.Next() {
		if err := rows.Scan(&activity.ID); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan activity id: %w", err)
		}
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit activity: %w", err)
	}

	return nil
}

func (r *ActivityRepository) GetActivityByID(id int64) (*models.FarmingActivity, error) {
	var activity models.FarmingActivity
	query := `SELECT * FROM farming_activities WHERE id = $1`

	err := r.db.Get(&activity, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("activity not found")
		}
		return nil, fmt.Errorf("failed to get activity by ID: %w", err)
	}

	return &activity, nil
}

func (r *ActivityRepository) SearchActivities(query string) ([]models.ActivitySummary, error) {
	activities := []models.ActivitySummary{}

	sqlQuery := `
		SELECT f.name AS farmer, a.practice, a.category, a.details, a.input_quantity,
		       a.output_quantity, a.weather_conditions, a.image_url, a.video_url,
		       a.date, a.block_hash
		FROM farming_activities a
		JOIN farmers f ON f.id = a.farmer_id
	`
	var err error
	if query != "" {
		sqlQuery += ` WHERE a.practice ILIKE '%' || $1 || '%' OR a.category ILIKE '%' || $1 || '%' ORDER BY a.id`
		err = r.db.Select(&activities, sqlQuery, query)
	} else {
		sqlQuery += ` ORDER BY a.id`
		err = r.db.Select(&activities, sqlQuery)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search activities: %w", err)
	}

	return activities, nil
}

// CreateCollaboration inserts a collaboration plus its farmer join rows in one
// transaction. Collaborations form their own chain, independent from the
// activity chain, seeded by the activity's practice string.
func (r *ActivityRepository) CreateCollaboration(collaboration *models.Collaboration, farmers []models.CollaborationFarmerInput) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var practice string
	err = tx.Get(&practice, `SELECT practice FROM farming_activities WHERE id = $1`, collaboration.ActivityID)
	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("activity not found")
		}
		return fmt.Errorf("failed to get parent activity: %w", err)
	}

	if collaboration.BlockHash == "" {
		var prevHash string
		err = tx.Get(&prevHash, `SELECT block_hash FROM collaborations ORDER BY id DESC LIMIT 1`)
		if err != nil {
			if err != sql.ErrNoRows {
				return fmt.Errorf("failed to get last collaboration hash: %w", err)
			}
			prevHash = hashchain.Sentinel
		}
		collaboration.BlockHash = hashchain.BlockHash(prevHash, practice, time.Now().UTC())
	}

	err = tx.QueryRow(
		`INSERT INTO collaborations (activity_id, notes, block_hash) VALUES ($1, $2, $3) RETURNING id`,
		collaboration.ActivityID, collaboration.Notes, collaboration.BlockHash,
	).Scan(&collaboration.ID)
	if err != nil {
		return fmt.Errorf("failed to create collaboration: %w", err)
	}

	for _, f := range farmers {
		_, err = tx.Exec(
			`INSERT INTO collaboration_farmers (farmer_id, collaboration_id, role) VALUES ($1, $2, $3)`,
			f.FarmerID, collaboration.ID, f.Role,
		)
		if err != nil {
			return fmt.Errorf("failed to add collaboration farmer %d: %w", f.FarmerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit collaboration: %w", err)
	}

	return nil
}

func (r *ActivityRepository) GetCollaborationByID(id int64) (*models.Collaboration, error) {
	var collaboration models.Collaboration
	query := `SELECT * FROM collaborations WHERE id = $1`

	err := r.db.Get(&collaboration, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("collaboration not found")
		}
		return nil, fmt.Errorf("failed to get collaboration by ID: %w", err)
	}

	return &collaboration, nil
}

func (r *ActivityRepository) GetCollaborationFarmers(collaborationID int64) ([]models.CollaborationMember, error) {
	members := []models.CollaborationMember{}
	query := `
		SELECT cf.farmer_id, f.name AS farmer_name, cf.role
		FROM collaboration_farmers cf
		JOIN farmers f ON f.id = cf.farmer_id
		WHERE cf.collaboration_id = $1
		ORDER BY cf.id
	`

	err := r.db.Select(&members, query, collaborationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get collaboration farmers: %w", err)
	}

	return members, nil
}
