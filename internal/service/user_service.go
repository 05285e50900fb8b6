package service

import (
	"context"

	"vicharak/internal/models"
	"vicharak/internal/repository"
	"vicharak/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// UserService manages user profiles and credentials.
type UserService struct {
	userRepo repository.UserRepository
}

type UpdateProfileInput struct {
	UserID   uint
	Username *string
	Email    *string
	Name     *string
}

type UpdatePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) Get(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.User, len(users))
	for i := range users {
		profiles[i] = users[i].PublicProfile()
	}
	return profiles, nil
}

// UpdateProfile applies a partial update to username, email, or display name,
// enforcing uniqueness on the first two.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil && *in.Username != user.Username {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, *in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = *in.Username
	}

	if in.Email != nil && (user.Email == nil || *in.Email != *user.Email) {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByEmail(ctx, *in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewConflictError("Email already taken")
		}
		user.Email = in.Email
	}

	if in.Name != nil {
		if len(*in.Name) > 100 {
			return nil, models.NewValidationError("Name too long (max 100 characters)")
		}
		user.Name = *in.Name
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword verifies the current password before setting the new one.
func (s *UserService) UpdatePassword(ctx context.Context, in UpdatePasswordInput) error {
	if in.NewPassword != in.ConfirmPassword {
		return models.NewValidationError("New password and confirmation do not match")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)); err != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}

	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// Delete removes the user's account.
func (s *UserService) Delete(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
