package users

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
)

// Repository looks up and mutates staff accounts.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a staff account. The email is stored lowercased so logins
// and uniqueness checks stay case-insensitive.
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByEmail resolves a staff account by its lowercased email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID resolves a staff account by primary key.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateLanguage stores the staff member's preferred portal language.
func (r *Repository) UpdateLanguage(ctx context.Context, id uint, language string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("language", language).Error
}
