package services

import (
	"context"
	"encoding/json"
	"farmbiz-service/internal/models"
	"fmt"
	"time"
)

// stubCache is an in-memory cache.Store that counts hits and evictions.
type stubCache struct {
	data    map[string][]byte
	sets    []string
	deletes []string
}

func newStubCache() *stubCache {
	return &stubCache{data: map[string][]byte{}}
}

func (s *stubCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *stubCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	s.sets = append(s.sets, key)
	return nil
}

func (s *stubCache) Delete(ctx context.Context, key string) error {
	delete(s.data, key)
	s.deletes = append(s.deletes, key)
	return nil
}

type stubFarmerRepo struct {
	farmers map[int64]*models.Farmer
	tiers   map[int64]*models.Tier
	farms   []models.Farm
}

func newStubFarmerRepo(ids ...int64) *stubFarmerRepo {
	repo := &stubFarmerRepo{
		farmers: map[int64]*models.Farmer{},
		tiers:   map[int64]*models.Tier{},
	}
	for _, id := range ids {
		repo.farmers[id] = &models.Farmer{ID: id, Name: fmt.Sprintf("farmer-%d", id), FarmSize: 2.5}
	}
	return repo
}

func (r *stubFarmerRepo) CreateFarmer(farmer *models.Farmer) error {
	farmer.ID = int64(len(r.farmers) + 1)
	r.farmers[farmer.ID] = farmer
	return nil
}

func (r *stubFarmerRepo) GetFarmerByID(id int64) (*models.Farmer, error) {
	farmer, ok := r.farmers[id]
	if !ok {
		return nil, fmt.Errorf("farmer not found")
	}
	return farmer, nil
}

func (r *stubFarmerRepo) CreateFarm(farm *models.Farm) error {
	farm.ID = int64(len(r.farms) + 1)
	r.farms = append(r.farms, *farm)
	return nil
}

func (r *stubFarmerRepo) GetFarmsByFarmerID(farmerID int64) ([]models.Farm, error) {
	var out []models.Farm
	for _, f := range r.farms {
		if f.FarmerID == farmerID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *stubFarmerRepo) GetTierByID(id int64) (*models.Tier, error) {
	tier, ok := r.tiers[id]
	if !ok {
		return nil, fmt.Errorf("tier not found")
	}
	return tier, nil
}

type stubUserRepo struct {
	users map[string]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*models.User{}}
}

func (r *stubUserRepo) CreateUser(user *models.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return fmt.Errorf("username already exists")
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetUserByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	return user, nil
}

func (r *stubUserRepo) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *stubUserRepo) CheckPasswordHash(password, hash string) bool {
	// The stub stores plaintext.
	return password == hash
}

type stubRoleRepo struct {
	roles       map[string]*models.Role
	assignments map[string][]int
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{
		roles:       map[string]*models.Role{},
		assignments: map[string][]int{},
	}
}

func (r *stubRoleRepo) EnsureRole(name, permissions string) (*models.Role, error) {
	if role, ok := r.roles[name]; ok {
		role.Permissions = permissions
		return role, nil
	}
	role := &models.Role{ID: len(r.roles) + 1, Name: name, Permissions: permissions}
	r.roles[name] = role
	return role, nil
}

func (r *stubRoleRepo) GetRoleByName(name string) (*models.Role, error) {
	role, ok := r.roles[name]
	if !ok {
		return nil, fmt.Errorf("role not found")
	}
	return role, nil
}

func (r *stubRoleRepo) AssignRoleToUser(userID string, roleID int) error {
	r.assignments[userID] = append(r.assignments[userID], roleID)
	return nil
}

func (r *stubRoleRepo) GetUserRoles(userID string) ([]models.Role, error) {
	var out []models.Role
	for _, roleID := range r.assignments[userID] {
		for _, role := range r.roles {
			if role.ID == roleID {
				out = append(out, *role)
			}
		}
	}
	return out, nil
}

type stubSessionRepo struct {
	sessions map[string]*models.UserSession
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: map[string]*models.UserSession{}}
}

func (r *stubSessionRepo) CreateSession(ctx context.Context, session *models.UserSession) error {
	session.ExpiresAt = time.Now().Add(time.Hour)
	session.IsActive = true
	r.sessions[session.ID] = session
	return nil
}

func (r *stubSessionRepo) GetSession(ctx context.Context, sessionID string) (*models.UserSession, error) {
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found")
	}
	return session, nil
}

func (r *stubSessionRepo) DeleteSession(ctx context.Context, sessionID string) error {
	delete(r.sessions, sessionID)
	return nil
}

func (r *stubSessionRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *stubSessionRepo) GetUserSessions(ctx context.Context, userID string) ([]*models.UserSession, error) {
	var out []*models.UserSession
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}
