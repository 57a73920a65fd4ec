package repository

import (
	"database/sql"
	"farmbiz-service/internal/models"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// RoleRepository handles role-group database operations
type RoleRepository interface {
	EnsureRole(name, permissions string) (*models.Role, error)
	GetRoleByName(name string) (*models.Role, error)
	AssignRoleToUser(userID string, roleID int) error
	GetUserRoles(userID string) ([]models.Role, error)
}

type roleRepository struct {
	db *sqlx.DB
}

func NewRoleRepository(db *sqlx.DB) RoleRepository {
	return &roleRepository{db: db}
}

// EnsureRole creates the role if it does not exist yet. Safe to re-run; the
// deployment-time bootstrap calls this for every default group on start.
func (r *roleRepository) EnsureRole(name, permissions string) (*models.Role, error) {
	query := `
		INSERT INTO roles (name, permissions)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET permissions = EXCLUDED.permissions
		RETURNING id, name, permissions, created_at`

	role := &models.Role{}
	err := r.db.Get(role, query, name, permissions)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure role '%s': %w", name, err)
	}

	return role, nil
}

func (r *roleRepository) GetRoleByName(name string) (*models.Role, error) {
	role := &models.Role{}
	query := `SELECT id, name, permissions, created_at FROM roles WHERE name = $1`

	err := r.db.Get(role, query, name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("role with name '%s' not found", name)
		}
		return nil, fmt.Errorf("failed to get role by name: %w", err)
	}

	return role, nil
}

func (r *roleRepository) AssignRoleToUser(userID string, roleID int) error {
	query := `
		INSERT INTO user_roles (user_id, role_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role_id) DO NOTHING`

	_, err := r.db.Exec(query, userID, roleID)
	if err != nil {
		return fmt.Errorf("failed to assign role %d to user %s: %w", roleID, userID, err)
	}

	return nil
}

func (r *roleRepository) GetUserRoles(userID string) ([]models.Role, error) {
	roles := []models.Role{}
	query := `
		SELECT r.id, r.name, r.permissions, r.created_at
		FROM roles r
		JOIN user_roles ur ON ur.role_id = r.id
		WHERE ur.user_id = $1
		ORDER BY r.id`

	err := r.db.Select(&roles, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	return roles, nil
}
