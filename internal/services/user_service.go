package services

import (
	"context"
	"errors"
	"farmbiz-service/internal/models"
	"farmbiz-service/internal/repository"
	"fmt"
	"log"
	"strings"

	"farmbiz-service/utils"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// LoginResult is the login response body shape.
type LoginResult struct {
	Refresh  string          `json:"refresh"`
	Access   string          `json:"access"`
	User     *models.User    `json:"user"`
	UserType models.UserType `json:"user_type"`
}

type IUserService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, *models.TokenPair, error)
	Authenticate(ctx context.Context, req models.LoginRequest) (*LoginResult, error)
	Login(ctx context.Context, req models.LoginRequest, deviceInfo, ipAddress *string) (*LoginResult, error)
	Logout(ctx context.Context, userID string) error
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

type UserService struct {
	userRepo repository.IUserRepository
	roles    *RoleService
	sessions *SessionService
	jwt      *JWTService
}

func NewUserService(
	userRepo repository.IUserRepository,
	roles *RoleService,
	sessions *SessionService,
	jwtService *JWTService,
) IUserService {
	return &UserService{
		userRepo: userRepo,
		roles:    roles,
		sessions: sessions,
		jwt:      jwtService,
	}
}

// Register creates the account, stores the declared user type on the row,
// places the user in the matching role group and returns a token pair so the
// client is signed in immediately.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, *models.TokenPair, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, nil, fmt.Errorf("username is required")
	}
	if ok, _ := utils.ValidateEmail(req.Email); !ok {
		return nil, nil, fmt.Errorf("invalid email address")
	}
	if req.Password == "" {
		return nil, nil, fmt.Errorf("password is required")
	}
	if req.Password != req.PasswordConfirm {
		return nil, nil, fmt.Errorf("passwords do not match")
	}

	userType := models.UserType(req.UserType)
	if userType != models.UserTypeFarmer && userType != models.UserTypeBusinessOwner {
		// Unrecognized types register as farmers rather than failing.
		userType = models.UserTypeFarmer
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: req.Password,
		UserType:     userType,
		IsActive:     true,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, nil, err
	}

	if err := s.roles.AssignGroup(user.ID, GroupForUserType(userType)); err != nil {
		// The account exists; a missing group assignment is repairable and
		// must not fail registration.
		log.Printf("failed to assign role group for user %s: %v", user.Username, err)
	}

	tokens, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, tokens, nil
}

// Authenticate checks credentials and issues a token pair without creating a
// session. The bare token endpoint uses this path.
func (s *UserService) Authenticate(ctx context.Context, req models.LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetUserByUsername(req.Username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, fmt.Errorf("account is disabled")
	}
	if !s.userRepo.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	tokens, err := s.jwt.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Refresh:  tokens.Refresh,
		Access:   tokens.Access,
		User:     user,
		UserType: user.UserType,
	}, nil
}

func (s *UserService) Login(ctx context.Context, req models.LoginRequest, deviceInfo, ipAddress *string) (*LoginResult, error) {
	result, err := s.Authenticate(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessions.CreateSession(ctx, result.User.ID, deviceInfo, ipAddress); err != nil {
		log.Printf("failed to create session for user %s: %v", result.User.Username, err)
	}

	return result, nil
}

// Logout revokes the user's sessions. Previously issued tokens keep
// validating until their expiry.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.sessions.InvalidateUserSessions(ctx, userID)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetUserByID(userID)
}
