package repository

import (
	"context"
	"time"

	"github.com/AmineGaf/fraud-detection-system/internal/model"
	"gorm.io/gorm"
)

type TokenRepository interface {
	Create(ctx context.Context, token *model.PasswordResetToken) error
	DeleteByUser(ctx context.Context, userID uint) error
	// FindValid returns the token only when it is unexpired and unused.
	FindValid(ctx context.Context, token string, now time.Time) (*model.PasswordResetToken, error)
	MarkUsed(ctx context.Context, token string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(ctx context.Context, token *model.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *tokenRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordResetToken{}).Error
}

func (r *tokenRepository) FindValid(ctx context.Context, token string, now time.Time) (*model.PasswordResetToken, error) {
	var resetToken model.PasswordResetToken
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Role").
		Where("token = ? AND expires_at >= ? AND is_used = ?", token, now, false).
		First(&resetToken).Error; err != nil {
		return nil, err
	}
	return &resetToken, nil
}

func (r *tokenRepository) MarkUsed(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).
		Model(&model.PasswordResetToken{}).
		Where("token = ?", token).
		Update("is_used", true).Error
}

func (r *tokenRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
