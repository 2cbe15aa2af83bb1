package service_test

import (
	"testing"
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"github.com/AmineGaf/fraud-detection-system/internal/service"
	"github.com/AmineGaf/fraud-detection-system/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, role model.RoleID) *model.User {
	t.Helper()

	user := &model.User{
		Email:    email,
		FullName: "Test User",
		IsActive: true,
		RoleID:   role,
	}
	if password != "" {
		hash, err := service.HashPassword(password)
		require.NoError(t, err)
		user.PasswordHash = &hash
	}
	require.NoError(t, repo.Create(t.Context(), user))
	return user
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "admin@example.com", "secret-pass", model.RoleAdmin)

	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)

	res, err := auth.Login(t.Context(), dto.LoginInput{
		Email:    "admin@example.com",
		Password: "secret-pass",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, "admin@example.com", res.UserEmail)
	assert.Equal(t, model.RoleAdmin, res.UserRoleID)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "admin@example.com", "secret-pass", model.RoleAdmin)

	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)

	_, err := auth.Login(t.Context(), dto.LoginInput{
		Email:    "admin@example.com",
		Password: "wrong",
	})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_UnknownEmail(t *testing.T) {
	auth := service.NewAuthService(newFakeUserRepo(), testSecret, 30*time.Minute)

	_, err := auth.Login(t.Context(), dto.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

// A student account with no stored hash authenticates with any password.
// This is the passwordless first-login flow for admin-created students; if
// product ever reverses that decision, this test is the one to flip.
func TestLogin_PasswordlessStudent(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "student@example.com", "", model.RoleStudent)

	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)

	for _, password := range []string{"anything", "x", "hunter2"} {
		res, err := auth.Login(t.Context(), dto.LoginInput{
			Email:    "student@example.com",
			Password: password,
		})
		require.NoError(t, err, "password %q", password)
		assert.Equal(t, model.RoleStudent, res.UserRoleID)
	}
}

// The passwordless special case is strictly scoped to students: any other
// role with no stored hash is denied.
func TestLogin_PasswordlessSupervisorDenied(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "supervisor@example.com", "", model.RoleSupervisor)

	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)

	_, err := auth.Login(t.Context(), dto.LoginInput{
		Email:    "supervisor@example.com",
		Password: "anything",
	})

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestResolveUser_RoundTrip(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := seedUser(t, repo, "admin@example.com", "secret-pass", model.RoleAdmin)

	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)

	res, err := auth.Login(t.Context(), dto.LoginInput{
		Email:    "admin@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	user, err := auth.ResolveUser(t.Context(), res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, user.ID)
	assert.Equal(t, seeded.Email, user.Email)
}

func TestResolveUser_InvalidToken(t *testing.T) {
	auth := service.NewAuthService(newFakeUserRepo(), testSecret, 30*time.Minute)

	_, err := auth.ResolveUser(t.Context(), "not-a-token")

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestResolveUser_ExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "admin@example.com", "secret-pass", model.RoleAdmin)

	// Negative TTL mints tokens that are already expired.
	expired := service.NewAuthService(repo, testSecret, -1*time.Minute)
	res, err := expired.Login(t.Context(), dto.LoginInput{
		Email:    "admin@example.com",
		Password: "secret-pass",
	})
	require.NoError(t, err)

	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)
	_, err = auth.ResolveUser(t.Context(), res.AccessToken)

	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestSignup_DefaultsToStudent(t *testing.T) {
	repo := newFakeUserRepo()
	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)

	user, err := auth.Signup(t.Context(), dto.SignupInput{
		Email:    "new@example.com",
		Password: "password123",
		FullName: "New Student",
	})

	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.RoleID)
	assert.True(t, user.IsActive)
}

func TestSignup_PrivilegedRoleRejected(t *testing.T) {
	auth := service.NewAuthService(newFakeUserRepo(), testSecret, 30*time.Minute)

	for _, role := range []model.RoleID{model.RoleSupervisor, model.RoleAdmin} {
		roleID := role
		_, err := auth.Signup(t.Context(), dto.SignupInput{
			Email:    "sneaky@example.com",
			Password: "password123",
			FullName: "Sneaky",
			RoleID:   &roleID,
		})
		assert.ErrorIs(t, err, apperror.ErrForbidden, "role %s", role)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "taken@example.com", "secret-pass", model.RoleStudent)

	auth := service.NewAuthService(repo, testSecret, 30*time.Minute)

	_, err := auth.Signup(t.Context(), dto.SignupInput{
		Email:    "taken@example.com",
		Password: "password123",
		FullName: "Dup",
	})

	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestHashPassword(t *testing.T) {
	_, err := service.HashPassword("")
	assert.ErrorIs(t, err, apperror.ErrBadRequest)

	hash, err := service.HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, service.VerifyPassword("correct horse", hash))
	assert.False(t, service.VerifyPassword("wrong horse", hash))
}

func TestRequireRole(t *testing.T) {
	admin := &model.User{RoleID: model.RoleAdmin}
	student := &model.User{RoleID: model.RoleStudent}

	assert.NoError(t, service.RequireRole(admin, model.RoleAdmin))
	assert.NoError(t, service.RequireRole(admin, model.RoleSupervisor, model.RoleAdmin))
	assert.ErrorIs(t, service.RequireRole(student, model.RoleAdmin), apperror.ErrForbidden)
	assert.ErrorIs(t, service.RequireRole(student, model.RoleSupervisor, model.RoleAdmin), apperror.ErrForbidden)
}
