package service

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"math/big"
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"github.com/AmineGaf/fraud-detection-system/internal/repository"
	"github.com/AmineGaf/fraud-detection-system/pkg/apperror"
	"github.com/AmineGaf/fraud-detection-system/pkg/mail"
	"gorm.io/gorm"
)

const (
	resetTokenLength   = 32
	resetTokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

type PasswordResetService interface {
	// RequestReset issues a token and mails the reset link. It reports
	// success whether or not the email exists so callers cannot probe for
	// accounts.
	RequestReset(ctx context.Context, email string) error
	// ResetPassword consumes a valid token and replaces the user's password.
	// The token is marked used only after the password update succeeds.
	ResetPassword(ctx context.Context, token, newPassword string) error
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type passwordResetService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	mailer mail.Mailer
	ttl    time.Duration
}

func NewPasswordResetService(
	users repository.UserRepository,
	tokens repository.TokenRepository,
	mailer mail.Mailer,
	ttl time.Duration,
) PasswordResetService {
	return &passwordResetService{
		users:  users,
		tokens: tokens,
		mailer: mailer,
		ttl:    ttl,
	}
}

func (s *passwordResetService) RequestReset(ctx context.Context, email string) error {
	// Opportunistic cleanup before issuing a fresh token.
	if _, err := s.tokens.PurgeExpired(ctx, time.Now()); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordReset(user.Email, token); err != nil {
		// The token stays valid; delivery failure must not reveal anything
		// to the caller either.
		log.Printf("failed to send reset email: %v", err)
	}

	return nil
}

// issueToken invalidates all prior tokens for the user and persists a fresh
// one. At most one active token exists per user.
func (s *passwordResetService) issueToken(ctx context.Context, userID uint) (string, error) {
	if err := s.tokens.DeleteByUser(ctx, userID); err != nil {
		return "", err
	}

	token, err := generateResetToken()
	if err != nil {
		return "", err
	}

	resetToken := &model.PasswordResetToken{
		Token:     token,
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.ttl),
	}

	if err := s.tokens.Create(ctx, resetToken); err != nil {
		return "", err
	}

	return token, nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.tokens.FindValid(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.BadRequest("invalid or expired token")
		}
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user := resetToken.User
	user.PasswordHash = &hash
	if err := s.users.Update(ctx, &user); err != nil {
		return err
	}

	// Burn the token only now that the password change stuck.
	return s.tokens.MarkUsed(ctx, token)
}

func (s *passwordResetService) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return s.tokens.PurgeExpired(ctx, time.Now())
}

func generateResetToken() (string, error) {
	token := make([]byte, resetTokenLength)
	max := big.NewInt(int64(len(resetTokenAlphabet)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		token[i] = resetTokenAlphabet[n.Int64()]
	}
	return string(token), nil
}
