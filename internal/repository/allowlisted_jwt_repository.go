package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"todolist/internal/model"
)

// AllowlistedJWTRepository defines token allowlist persistence operations.
type AllowlistedJWTRepository interface {
	Create(ctx context.Context, entry *model.AllowlistedJWT) error
	FindByJTI(ctx context.Context, jti, aud string) (*model.AllowlistedJWT, error)
	// Delete removes the entry matching jti, aud and user. It reports how
	// many rows were removed.
	Delete(ctx context.Context, jti, aud string, userID uint) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

type allowlistedJWTRepository struct {
	db *gorm.DB
}

// NewAllowlistedJWTRepository creates a new allowlist repository.
func NewAllowlistedJWTRepository(db *gorm.DB) AllowlistedJWTRepository {
	return &allowlistedJWTRepository{db: db}
}

func (r *allowlistedJWTRepository) Create(ctx context.Context, entry *model.AllowlistedJWT) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *allowlistedJWTRepository) FindByJTI(ctx context.Context, jti, aud string) (*model.AllowlistedJWT, error) {
	var entry model.AllowlistedJWT
	if err := r.db.WithContext(ctx).
		Where("jti = ? AND aud = ?", jti, aud).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *allowlistedJWTRepository) Delete(ctx context.Context, jti, aud string, userID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("jti = ? AND aud = ? AND user_id = ?", jti, aud, userID).
		Delete(&model.AllowlistedJWT{})
	return res.RowsAffected, res.Error
}

func (r *allowlistedJWTRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("exp <= ?", now).
		Delete(&model.AllowlistedJWT{})
	return res.RowsAffected, res.Error
}

func (r *allowlistedJWTRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.AllowlistedJWT{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
