package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/softdesk/internal/access"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/dto"
	"github.com/ahmetcoskunkizilkaya/softdesk/internal/models"
	"gorm.io/gorm"
)

// UserService manages the acting user's own profile.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Profile(ctx context.Context, actor *models.User) (*models.User, error) {
	if actor == nil {
		return nil, access.ErrNotAuthenticated
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", actor.ID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, access.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.Profile(ctx, actor)
	if err != nil {
		return nil, err
	}

	if req.Age != nil {
		user.Age = *req.Age
	}
	if req.CanBeContacted != nil {
		user.CanBeContacted = *req.CanBeContacted
	}
	if req.CanDataBeShared != nil {
		user.CanDataBeShared = *req.CanDataBeShared
	}
	if err := validateProfile(user); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(user).
		Select("Age", "CanBeContacted", "CanDataBeShared", "UpdatedAt").
		Updates(user).Error
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func validateProfile(u *models.User) error {
	if u.Age <= 0 || u.Age > 150 {
		return invalid("age must be between 1 and 150")
	}
	if !u.ConsentAllowed() {
		return invalid("you must be at least %d years old to share your data", models.MinDataSharingAge)
	}
	return nil
}
