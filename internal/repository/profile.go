package repository

import (
	"context"
	"time"

	"satellite/internal/models"
	"satellite/internal/observability"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for profile record operations.
// Lookups that find nothing return a NOT_FOUND error; Create returns a
// CONFLICT error when the email or handle is already taken.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, id string, fields map[string]interface{}) error
}

// profileRepository implements ProfileRepository
type profileRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db:  db,
		log: observability.NewRepoLogger("profiles"),
	}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	defer observability.ObserveStoreOp("get_by_id", "profiles", time.Now())
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, translateError(err, "profiles", id)
	}
	return &profile, nil
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	defer observability.ObserveStoreOp("get_by_email", "profiles", time.Now())
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, translateError(err, "profiles", email)
	}
	return &profile, nil
}

func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	defer observability.ObserveStoreOp("get_by_handle", "profiles", time.Now())
	var profile models.Profile
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&profile).Error; err != nil {
		return nil, translateError(err, "profiles", handle)
	}
	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	defer observability.ObserveStoreOp("create", "profiles", time.Now())
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		translated := translateError(err, "profiles", profile.ID)
		r.log.LogError(ctx, translated, "create")
		return translated
	}
	r.log.LogOp(ctx, "create", map[string]interface{}{
		"id":     profile.ID,
		"handle": profile.Handle,
	})
	return nil
}

func (r *profileRepository) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	defer observability.ObserveStoreOp("update", "profiles", time.Now())
	res := r.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		translated := translateError(res.Error, "profiles", id)
		r.log.LogError(ctx, translated, "update")
		return translated
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("profiles", id)
	}
	r.log.LogOp(ctx, "update", map[string]interface{}{"id": id})
	return nil
}
