package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/dto"
	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"github.com/AmineGaf/fraud-detection-system/internal/repository"
	"github.com/AmineGaf/fraud-detection-system/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccessClaims is the signed token payload: subject email plus the role id.
type AccessClaims struct {
	RoleID model.RoleID `json:"role_id"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error)
	Signup(ctx context.Context, input dto.SignupInput) (*model.User, error)
	// ResolveUser verifies a bearer token and loads the subject user.
	ResolveUser(ctx context.Context, token string) (*model.User, error)
}

type authService struct {
	users    repository.UserRepository
	secret   string
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		users:    users,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	user, err := s.authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserEmail:   user.Email,
		UserRoleID:  user.RoleID,
	}, nil
}

// authenticate looks the user up by email and checks the password. A student
// account with no stored hash authenticates with any password: that is the
// passwordless first-login flow for admin-created student accounts, covered
// by TestLogin_PasswordlessStudent.
func (s *authService) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(401, "incorrect email or password", apperror.ErrUnauthorized)
		}
		return nil, err
	}

	if user.RoleID == model.RoleStudent && !user.HasPassword() {
		return user, nil
	}

	if !user.HasPassword() {
		return nil, apperror.New(401, "incorrect email or password", apperror.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, apperror.New(401, "incorrect email or password", apperror.ErrUnauthorized)
	}

	return user, nil
}

func (s *authService) Signup(ctx context.Context, input dto.SignupInput) (*model.User, error) {
	roleID := model.RoleStudent
	if input.RoleID != nil {
		roleID = *input.RoleID
	}

	// Self-service signup may only create student accounts.
	if roleID != model.RoleStudent {
		return nil, apperror.Forbidden("cannot self-assign a privileged role")
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Conflict("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: &hash,
		FullName:     input.FullName,
		IsActive:     true,
		RoleID:       roleID,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.users.FindByID(ctx, user.ID)
}

func (s *authService) ResolveUser(ctx context.Context, tokenString string) (*model.User, error) {
	claims := &AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.New(401, "invalid or expired token", apperror.ErrUnauthorized)
	}

	user, err := s.users.FindByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, apperror.New(401, "could not validate credentials", apperror.ErrUnauthorized)
	}

	return user, nil
}

func (s *authService) generateToken(user *model.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		RoleID: user.RoleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// RequireRole gates an operation on membership in the allowed role set.
func RequireRole(user *model.User, allowed ...model.RoleID) error {
	for _, role := range allowed {
		if user.RoleID == role {
			return nil
		}
	}
	return apperror.Forbidden(fmt.Sprintf("%s privileges required", allowed[0]))
}

// HashPassword hashes a password with bcrypt. Empty passwords are rejected.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperror.BadRequest("password cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether the password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
