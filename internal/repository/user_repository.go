package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vxtzo/telegram-construction-bot/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Raw(`
		SELECT *
		FROM users
		WHERE telegram_id = ?
		LIMIT 1
	`, telegramID).Scan(&user).Error; err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO users (id, telegram_id, username, full_name, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, NOW())
	`, user.ID, user.TelegramID, user.Username, user.FullName, user.Role, user.IsActive).Error
}

func (r *UserRepository) SetActive(ctx context.Context, telegramID int64, isActive bool) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE users
		SET is_active = ?
		WHERE telegram_id = ?
	`, isActive, telegramID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
