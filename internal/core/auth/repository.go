package auth

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new auth repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user
func (r *Repository) CreateUser(user *User) error {
	return r.db.Create(user).Error
}

// GetUserByEmail retrieves user by email
func (r *Repository) GetUserByEmail(email string) (*User, error) {
	var user User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByID retrieves user by ID
func (r *Repository) GetUserByID(id string) (*User, error) {
	var user User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailExists checks whether a user with the given email already exists
func (r *Repository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.Model(&User{}).Where("email = ?", email).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserByRefreshToken retrieves user by refresh token
func (r *Repository) GetUserByRefreshToken(refreshToken string) (*User, error) {
	var user User
	err := r.db.Where("refresh_token = ?", refreshToken).First(&user).Error
	if err != nil {
		return nil, err
	}

	// Check if refresh token is expired
	if user.RefreshTokenExpiresAt != nil && user.RefreshTokenExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("refresh token expired")
	}

	return &user, nil
}

// UpdateRefreshToken updates user's refresh token
func (r *Repository) UpdateRefreshToken(userID string, refreshToken string, expiresAt time.Time) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            refreshToken,
			"refresh_token_expires_at": expiresAt,
		}).Error
}

// RevokeRefreshToken clears user's refresh token
func (r *Repository) RevokeRefreshToken(userID string) error {
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            nil,
			"refresh_token_expires_at": nil,
		}).Error
}

// UpdateLastLogin stamps the user's last login time
func (r *Repository) UpdateLastLogin(userID string) error {
	now := time.Now()
	return r.db.Model(&User{}).
		Where("id = ?", userID).
		Update("last_login_at", now).Error
}
