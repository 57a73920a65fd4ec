package services

import (
	"context"
	"farmbiz-service/internal/config"
	"farmbiz-service/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:         "test-secret",
		AccessTTLMinutes:  60,
		RefreshTTLMinutes: 7 * 24 * 60,
	}
}

func newUserServiceForTest() (IUserService, *stubUserRepo, *stubRoleRepo, *stubSessionRepo) {
	userRepo := newStubUserRepo()
	roleRepo := newStubRoleRepo()
	sessionRepo := newStubSessionRepo()

	roles := NewRoleService(roleRepo)
	if err := roles.EnsureDefaultGroups(); err != nil {
		panic(err)
	}

	svc := NewUserService(userRepo, roles, NewSessionService(sessionRepo), NewJWTService(testAuthConfig()))
	return svc, userRepo, roleRepo, sessionRepo
}

func registerRequest(userType string) models.RegisterRequest {
	return models.RegisterRequest{
		Username:        "wanjiku",
		Email:           "wanjiku@example.com",
		Password:        "s3cret-pass",
		PasswordConfirm: "s3cret-pass",
		UserType:        userType,
	}
}

func TestRegisterRejectsPasswordMismatch(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()

	req := registerRequest("farmer")
	req.PasswordConfirm = "different"

	_, _, err := svc.Register(context.Background(), req)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")
}

func TestRegisterAssignsGroupByUserType(t *testing.T) {
	tests := []struct {
		name      string
		userType  string
		wantGroup string
		wantType  models.UserType
	}{
		{"farmer", "farmer", GroupFarmers, models.UserTypeFarmer},
		{"business owner", "business_owner", GroupBusinessOwners, models.UserTypeBusinessOwner},
		{"unrecognized falls back to farmers", "astronaut", GroupFarmers, models.UserTypeFarmer},
		{"empty falls back to farmers", "", GroupFarmers, models.UserTypeFarmer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, roleRepo, _ := newUserServiceForTest()

			user, tokens, err := svc.Register(context.Background(), registerRequest(tt.userType))
			require.NoError(t, err)
			require.NotNil(t, tokens)
			assert.NotEmpty(t, tokens.Access)
			assert.NotEmpty(t, tokens.Refresh)
			assert.Equal(t, tt.wantType, user.UserType)

			wantRole := roleRepo.roles[tt.wantGroup]
			require.NotNil(t, wantRole)
			assert.Equal(t, []int{wantRole.ID}, roleRepo.assignments[user.ID])
		})
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	svc, _, _, _ := newUserServiceForTest()

	_, _, err := svc.Register(context.Background(), registerRequest("farmer"))
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), registerRequest("farmer"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestLoginReturnsTokensUserAndSession(t *testing.T) {
	svc, userRepo, _, sessionRepo := newUserServiceForTest()

	registered, _, err := svc.Register(context.Background(), registerRequest("business_owner"))
	require.NoError(t, err)

	// The stub stores plaintext passwords.
	userRepo.users[registered.ID].PasswordHash = "s3cret-pass"

	device := "test-agent"
	ip := "10.0.0.1"
	result, err := svc.Login(context.Background(), models.LoginRequest{
		Username: "wanjiku", Password: "s3cret-pass",
	}, &device, &ip)
	require.NoError(t, err)

	assert.NotEmpty(t, result.Access)
	assert.NotEmpty(t, result.Refresh)
	assert.Equal(t, models.UserTypeBusinessOwner, result.UserType)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.Len(t, sessionRepo.sessions, 1)
}

func TestAuthenticateIssuesTokensWithoutSession(t *testing.T) {
	svc, userRepo, _, sessionRepo := newUserServiceForTest()

	registered, _, err := svc.Register(context.Background(), registerRequest("farmer"))
	require.NoError(t, err)
	userRepo.users[registered.ID].PasswordHash = "s3cret-pass"

	result, err := svc.Authenticate(context.Background(), models.LoginRequest{
		Username: "wanjiku", Password: "s3cret-pass",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Access)
	assert.NotEmpty(t, result.Refresh)
	assert.Empty(t, sessionRepo.sessions, "bare token issuance must not create a session")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, userRepo, _, _ := newUserServiceForTest()

	registered, _, err := svc.Register(context.Background(), registerRequest("farmer"))
	require.NoError(t, err)
	userRepo.users[registered.ID].PasswordHash = "s3cret-pass"

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "wanjiku", Password: "wrong"}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "s3cret-pass"}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutDropsSessionsButTokensStayValid(t *testing.T) {
	svc, userRepo, _, sessionRepo := newUserServiceForTest()
	jwtService := NewJWTService(testAuthConfig())

	registered, _, err := svc.Register(context.Background(), registerRequest("farmer"))
	require.NoError(t, err)
	userRepo.users[registered.ID].PasswordHash = "s3cret-pass"

	result, err := svc.Login(context.Background(), models.LoginRequest{Username: "wanjiku", Password: "s3cret-pass"}, nil, nil)
	require.NoError(t, err)
	require.Len(t, sessionRepo.sessions, 1)

	require.NoError(t, svc.Logout(context.Background(), registered.ID))
	assert.Empty(t, sessionRepo.sessions)

	// The issued access token still verifies after logout.
	claims, err := jwtService.VerifyAccessToken(result.Access)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
}
