package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/margauxcellars/cellar-backend/pkg/db/models"
	pkgerrors "github.com/margauxcellars/cellar-backend/pkg/errors"
)

type repository interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	UpdateLanguage(ctx context.Context, id uint, language string) error
}

// Service exposes the staff profile surface.
type Service interface {
	GetProfile(ctx context.Context, id uint) (Profile, error)
	SetLanguage(ctx context.Context, id uint, language string) (Profile, error)
}

type service struct {
	repo repository
}

// NewService builds the users service.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) GetProfile(ctx context.Context, id uint) (Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Profile{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}
	return FromModel(user), nil
}

// SetLanguage persists the staff member's preferred language and returns the
// updated profile.
func (s *service) SetLanguage(ctx context.Context, id uint, language string) (Profile, error) {
	if err := s.repo.UpdateLanguage(ctx, id, language); err != nil {
		return Profile{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update language")
	}
	return s.GetProfile(ctx, id)
}
