package store

import (
	"context"
	"errors"
	"fmt"

	"coursebot/models"

	"gorm.io/gorm"
)

// UpsertUser creates a user for the given Telegram ID, or updates the name
// of the existing one when it differs. Calling it twice with the same
// arguments leaves a single unchanged row. It never fails on "already
// exists": losing the insert race against a concurrent first upsert lands
// on the winner's row.
func (s *Store) UpsertUser(ctx context.Context, telegramID int64, name string) (models.User, error) {
	user, err := s.upsertUser(ctx, telegramID, name)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent upsert created the row after our lookup missed it;
		// retrying resolves to the update path.
		user, err = s.upsertUser(ctx, telegramID, name)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("upsert user %d: %w", telegramID, err)
	}
	return user, nil
}

func (s *Store) upsertUser(ctx context.Context, telegramID int64, name string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("telegram_id = ?", telegramID).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{TelegramID: telegramID, Name: name}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}
		if user.Name != name {
			user.Name = name
			return tx.Model(&user).Update("name", name).Error
		}
		return nil
	})
	if err != nil {
		return models.User{}, err
	}
	return user, nil
}

// ListUsers returns all users.
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUserByTelegramID returns the user with the given Telegram ID, or
// ErrNotFound. Absence is a normal outcome the caller branches on.
func (s *Store) GetUserByTelegramID(ctx context.Context, telegramID int64) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("get user by telegram id %d: %w", telegramID, err)
	}
	return user, nil
}

// DeleteUser removes a user. Rejected with ErrEnrollmentsExist while
// enrollments still reference the user; the foreign key backs this up.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var count int64
		if err := tx.Model(&models.Enrollment{}).Where("user_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEnrollmentsExist
		}
		// Hard delete so the unique index on telegram_id stays free for a
		// later re-registration of the same Telegram account.
		return tx.Unscoped().Delete(&user).Error
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrEnrollmentsExist) {
			return err
		}
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}
