package service

import (
	"alcyxob/fitness-tracker/internal/domain"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/storage"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyProfileUpdate = errors.New("profile update contains no fields")

// ProfileUpdate carries a partial profile change; nil fields stay as-is.
type ProfileUpdate struct {
	Name     *string
	Email    *string
	Password *string
}

// AvatarUpload is the result of requesting an avatar upload slot.
type AvatarUpload struct {
	UploadURL string
	ObjectKey string
}

// UserService covers the account-scoped operations: profile read, partial
// update, deletion (cascade-deletes the user's workouts), weekly schedule
// assignment, and avatar upload.
type UserService interface {
	// GetProfile returns the user plus a presigned avatar download URL when
	// an avatar has been uploaded.
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, string, error)
	UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error)
	// DeleteAccount removes the user, every workout they own, and their
	// avatar object. Workouts are cascade-deleted because they are only
	// reachable through their owner.
	DeleteAccount(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	// AssignWeekday sets (or clears, when workoutID is nil) a weekly
	// schedule slot. A non-nil workout must pass the ownership gate.
	AssignWeekday(ctx context.Context, userID primitive.ObjectID, day domain.Weekday, workoutID *primitive.ObjectID) (*domain.User, error)
	RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error)
}

type userService struct {
	userRepo    repository.UserRepository
	workoutRepo repository.WorkoutRepository
	ownership   OwnershipService
	fileStorage storage.FileStorage
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, workoutRepo repository.WorkoutRepository, ownership OwnershipService, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		workoutRepo: workoutRepo,
		ownership:   ownership,
		fileStorage: fileStorage,
	}
}

// GetProfile fetches the user and presigns an avatar download URL if one
// has been uploaded.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, string, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", err
	}

	avatarURL := ""
	if user.AvatarKey != "" {
		avatarURL, err = s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			return nil, "", fmt.Errorf("presigning avatar download: %w", err)
		}
	}

	user.PasswordHash = ""
	return user, avatarURL, nil
}

// UpdateProfile applies a partial update. A provided password is re-hashed
// before it reaches the store; a provided email is lowercased and subject
// to the same uniqueness rule as registration.
func (s *userService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, update ProfileUpdate) (*domain.User, error) {
	if update.Name == nil && update.Email == nil && update.Password == nil {
		return nil, ErrEmptyProfileUpdate
	}

	repoUpdate := repository.UserUpdate{Name: update.Name}
	if update.Email != nil {
		email := strings.ToLower(*update.Email)
		repoUpdate.Email = &email
	}
	if update.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, ErrHashingFailed
		}
		hashedStr := string(hashed)
		repoUpdate.PasswordHash = &hashedStr
	}

	user, err := s.userRepo.Update(ctx, userID, repoUpdate)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateKey):
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// DeleteAccount removes the user's workouts, avatar object, and document,
// in that order. The workout cascade runs first so that a failure halfway
// cannot leave workouts whose owner no longer exists.
func (s *userService) DeleteAccount(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if _, err := s.workoutRepo.DeleteByOwner(ctx, userID); err != nil {
		return nil, fmt.Errorf("cascade-deleting workouts: %w", err)
	}

	if user.AvatarKey != "" {
		// Best effort; a leftover object costs storage, not correctness.
		_ = s.fileStorage.DeleteObject(ctx, user.AvatarKey)
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// AssignWeekday sets or clears one weekday slot. The ownership gate runs
// for non-nil workout ids, so a slot can never point at a foreign or
// missing workout.
func (s *userService) AssignWeekday(ctx context.Context, userID primitive.ObjectID, day domain.Weekday, workoutID *primitive.ObjectID) (*domain.User, error) {
	if !day.IsValid() {
		return nil, errors.New("unknown weekday: " + string(day))
	}

	if workoutID != nil {
		if _, err := s.ownership.AuthorizeWorkout(ctx, *workoutID, userID); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.SetWeekSlot(ctx, userID, day, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// RequestAvatarUpload presigns a PUT URL under a fresh uuid-based key and
// records the key on the user. Any previous avatar object is deleted
// best-effort.
func (s *userService) RequestAvatarUpload(ctx context.Context, userID primitive.ObjectID, contentType string) (*AvatarUpload, error) {
	if contentType == "" {
		return nil, errors.New("content type is required for avatar upload")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	objectKey := fmt.Sprintf("avatars/%s/%s", userID.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presigning avatar upload: %w", err)
	}

	if err := s.userRepo.SetAvatarKey(ctx, userID, objectKey); err != nil {
		return nil, err
	}

	if user.AvatarKey != "" {
		_ = s.fileStorage.DeleteObject(ctx, user.AvatarKey)
	}

	return &AvatarUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}
