package repository

import (
	"database/sql"
	"farmbiz-service/internal/models"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type IBusinessRepository interface {
	CreateBusiness(business *models.Business) error
	GetBusinessByID(id int64) (*models.Business, error)
	CountBusinesses(query, category string) (int, error)
	SearchBusinesses(query, category string, limit, offset int) ([]models.BusinessSummary, error)
	CreateReview(review *models.Review) error
	GetBusinessReviews(businessID int64) ([]models.Review, error)
	GetAverageRating(businessID int64) (*float64, error)
	CreateProduct(product *models.Product) error
}

type BusinessRepository struct {
	db *sqlx.DB
}

func NewBusinessRepository(db *sqlx.DB) IBusinessRepository {
	return &BusinessRepository{
		db: db,
	}
}

func (r *BusinessRepository) CreateBusiness(business *models.Business) error {
	query := `
		INSERT INTO businesses (farmer_id, name, description, contact_info, category, products_services, image_url)
		VALUES (:farmer_id, :name, :description, :contact_info, :category, :products_services, :image_url)
		RETURNING id
	`

	rows, err := r.db.NamedQuery(query, business)
	if err != nil {
		// Name uniqueness is enforced by the storage layer.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("business name already exists")
		}
		return fmt.Errorf("failed to create business: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&business.ID); err != nil {
			return fmt.Errorf("failed to scan business id: %w", err)
		}
	}

	return nil
}

func (r *BusinessRepository) GetBusinessByID(id int64) (*models.Business, error) {
	var business models.Business
	query := `SELECT * FROM businesses WHERE id = $1`

	err := r.db.Get(&business, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("business not found")
		}
		return nil, fmt.Errorf("failed to get business by ID: %w", err)
	}

	return &business, nil
}

func (r *BusinessRepository) CountBusinesses(query, category string) (int, error) {
	var count int
	sqlQuery := `SELECT COUNT(*) FROM businesses b WHERE 1=1`
	args := []any{}

	if query != "" {
		args = append(args, query)
		sqlQuery += fmt.Sprintf(` AND (b.name ILIKE '%%' || $%d || '%%' OR b.description ILIKE '%%' || $%d || '%%' OR b.category ILIKE '%%' || $%d || '%%')`, len(args), len(args), len(args))
	}
	if category != "" {
		args = append(args, category)
		sqlQuery += fmt.Sprintf(` AND b.category = $%d`, len(args))
	}

	err := r.db.Get(&count, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to count businesses: %w", err)
	}

	return count, nil
}

func (r *BusinessRepository) SearchBusinesses(query, category string, limit, offset int) ([]models.BusinessSummary, error) {
	businesses := []models.BusinessSummary{}
	sqlQuery := `
		SELECT b.name, b.description, b.contact_info, b.category, b.products_services,
		       b.image_url, f.name AS farmer, AVG(r.rating) AS average_rating
		FROM businesses b
		JOIN farmers f ON f.id = b.farmer_id
		LEFT JOIN reviews r ON r.business_id = b.id
		WHERE 1=1
	`
	args := []any{}

	if query != "" {
		args = append(args, query)
		sqlQuery += fmt.Sprintf(` AND (b.name ILIKE '%%' || $%d || '%%' OR b.description ILIKE '%%' || $%d || '%%' OR b.category ILIKE '%%' || $%d || '%%')`, len(args), len(args), len(args))
	}
	if category != "" {
		args = append(args, category)
		sqlQuery += fmt.Sprintf(` AND b.category = $%d`, len(args))
	}

	args = append(args, limit)
	sqlQuery += fmt.Sprintf(` GROUP BY b.id, f.name ORDER BY b.id LIMIT $%d`, len(args))
	args = append(args, offset)
	sqlQuery += fmt.Sprintf(` OFFSET $%d`, len(args))

	err := r.db.Select(&businesses, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search businesses: %w", err)
	}

	return businesses, nil
}

func (r *BusinessRepository) CreateReview(review *models.Review) error {
	query := `
		INSERT INTO reviews (user_id, business_id, rating, comment)
		VALUES (:user_id, :business_id, :rating, :comment)
		RETURNING id, date
	`

	rows, err := r.db.NamedQuery(query, review)
	if err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&review.ID, &review.Date); err != nil {
			return fmt.Errorf("failed to scan review: %w", err)
		}
	}

	return nil
}

func (r *BusinessRepository) GetBusinessReviews(businessID int64) ([]models.Review, error) {
	reviews := []models.Review{}
	query := `SELECT * FROM reviews WHERE business_id = $1 ORDER BY date DESC`

	err := r.db.Select(&reviews, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get business reviews: %w", err)
	}

	return reviews, nil
}

func (r *BusinessRepository) GetAverageRating(businessID int64) (*float64, error) {
	var avg *float64
	query := `SELECT AVG(rating) FROM reviews WHERE business_id = $1`

	err := r.db.Get(&avg, query, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to get average rating: %w", err)
	}

	return avg, nil
}

func (r *BusinessRepository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (business_id, name, description, price, availability)
		VALUES (:business_id, :name, :description, :price, :availability)
		RETURNING id
	`

	rows, err := r.db.NamedQuery(query, product)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&product.ID); err != nil {
			return fmt.Errorf("failed to scan product id: %w", err)
		}
	}

	return nil
}
