package services

import (
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/repository"
	"fmt"
	"log/slog"
)

const (
	GroupFarmers        = "Farmers"
	GroupBusinessOwners = "Business Owners"
	GroupAdmins         = "Admins"
)

var defaultGroups = []struct {
	name        string
	permissions string
}{
	{GroupFarmers, "log_activity,create_collaboration,redeem_incentives"},
	{GroupBusinessOwners, "create_business,add_product"},
	{GroupAdmins, "manage_users,manage_groups"},
}

// GroupForUserType maps a registering user's declared type to its role group.
// Anything unrecognized lands in Farmers.
func GroupForUserType(userType models.UserType) string {
	switch userType {
	case models.UserTypeBusinessOwner:
		return GroupBusinessOwners
	case models.UserTypeFarmer:
		return GroupFarmers
	default:
		return GroupFarmers
	}
}

type RoleService struct {
	roleRepo repository.RoleRepository
}

func NewRoleService(roleRepo repository.RoleRepository) *RoleService {
	return &RoleService{roleRepo: roleRepo}
}

// EnsureDefaultGroups creates the role groups on startup. Idempotent; safe
// to run on every boot.
func (s *RoleService) EnsureDefaultGroups() error {
	for _, g := range defaultGroups {
		if _, err := s.roleRepo.EnsureRole(g.name, g.permissions); err != nil {
			return fmt.Errorf("failed to ensure role group %s: %w", g.name, err)
		}
	}
	slog.Info("Default role groups ensured", "count", len(defaultGroups))
	return nil
}

func (s *RoleService) AssignGroup(userID string, groupName string) error {
	role, err := s.roleRepo.GetRoleByName(groupName)
	if err != nil {
		return err
	}
	return s.roleRepo.AssignRoleToUser(userID, role.ID)
}

func (s *RoleService) GetUserGroups(userID string) ([]models.Role, error) {
	return s.roleRepo.GetUserRoles(userID)
}
