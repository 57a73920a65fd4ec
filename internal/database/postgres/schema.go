package postgres

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schemaStatements is the idempotent deployment-time schema. Each statement is
// safe to re-run; InitSchema is invoked from main on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS tiers (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		benefits TEXT NOT NULL DEFAULT '',
		requirements TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS farmers (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		contact_details VARCHAR(255) NOT NULL DEFAULT 'Not provided',
		experience_level VARCHAR(50) NOT NULL DEFAULT 'beginner',
		specialization VARCHAR(255) NOT NULL DEFAULT 'General',
		farm_size DOUBLE PRECISION NOT NULL DEFAULT 1.0 CHECK (farm_size > 0),
		farm_type VARCHAR(50) NOT NULL DEFAULT 'arable',
		equipment TEXT NOT NULL DEFAULT 'Not specified',
		certifications TEXT NOT NULL DEFAULT 'None',
		tier_id BIGINT REFERENCES tiers(id) ON DELETE SET NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_farmers_location ON farmers(location)`,
	`CREATE TABLE IF NOT EXISTS farms (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		location VARCHAR(255) NOT NULL,
		size DOUBLE PRECISION NOT NULL CHECK (size > 0),
		farmer_id BIGINT NOT NULL REFERENCES farmers(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS farming_activities (
		id BIGSERIAL PRIMARY KEY,
		farmer_id BIGINT NOT NULL REFERENCES farmers(id) ON DELETE CASCADE,
		practice VARCHAR(255) NOT NULL,
		category VARCHAR(50) NOT NULL DEFAULT 'planting',
		details TEXT NOT NULL DEFAULT '',
		input_quantity VARCHAR(255) NOT NULL DEFAULT '',
		output_quantity VARCHAR(255) NOT NULL DEFAULT '',
		weather_conditions VARCHAR(255) NOT NULL DEFAULT '',
		image_url TEXT,
		video_url TEXT,
		date TIMESTAMPTZ NOT NULL DEFAULT now(),
		block_hash CHAR(64) NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_practice ON farming_activities(practice)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_category ON farming_activities(category)`,
	`CREATE TABLE IF NOT EXISTS collaborations (
		id BIGSERIAL PRIMARY KEY,
		activity_id BIGINT NOT NULL REFERENCES farming_activities(id) ON DELETE CASCADE,
		notes TEXT NOT NULL DEFAULT '',
		block_hash CHAR(64) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS collaboration_farmers (
		id BIGSERIAL PRIMARY KEY,
		farmer_id BIGINT NOT NULL REFERENCES farmers(id) ON DELETE CASCADE,
		collaboration_id BIGINT NOT NULL REFERENCES collaborations(id) ON DELETE CASCADE,
		role VARCHAR(255) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS businesses (
		id BIGSERIAL PRIMARY KEY,
		farmer_id BIGINT NOT NULL REFERENCES farmers(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL UNIQUE,
		description TEXT NOT NULL DEFAULT '',
		contact_info VARCHAR(255) NOT NULL DEFAULT 'Not provided',
		category VARCHAR(50) NOT NULL DEFAULT 'farm_produce',
		products_services TEXT NOT NULL DEFAULT '',
		image_url TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_businesses_category ON businesses(category)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		business_id BIGINT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price NUMERIC(10,2) NOT NULL CHECK (price > 0),
		availability BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(36) PRIMARY KEY,
		username VARCHAR(150) NOT NULL UNIQUE,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		user_type VARCHAR(50) NOT NULL DEFAULT 'farmer',
		is_active BOOLEAN NOT NULL DEFAULT true,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id BIGSERIAL PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		business_id BIGINT NOT NULL REFERENCES businesses(id) ON DELETE CASCADE,
		rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
		comment TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS incentives (
		id BIGSERIAL PRIMARY KEY,
		farmer_id BIGINT NOT NULL REFERENCES farmers(id) ON DELETE CASCADE,
		points INTEGER NOT NULL DEFAULT 0 CHECK (points >= 0),
		redeemed BOOLEAN NOT NULL DEFAULT false
	)`,
	`CREATE TABLE IF NOT EXISTS roles (
		id SERIAL PRIMARY KEY,
		name VARCHAR(150) NOT NULL UNIQUE,
		permissions TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS user_roles (
		id SERIAL PRIMARY KEY,
		user_id VARCHAR(36) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role_id INTEGER NOT NULL REFERENCES roles(id) ON DELETE CASCADE,
		UNIQUE (user_id, role_id)
	)`,
}

func InitSchema(db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
