package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"global-healthops/nexus/internal/models/dtos"
	gormModels "global-healthops/nexus/internal/models/gorm"

	"gorm.io/gorm"
)

// ErrMissingCredential is returned when a user would be stored without a
// password hash.
var ErrMissingCredential = errors.New("user has no credential")

type UserRepositoryGORM struct {
	*Repository[gormModels.User, *dtos.UserCreate, *dtos.UserUpdate]
	db *gorm.DB
}

// NewUserRepositoryGORM creates a new GORM-based user repository
func NewUserRepositoryGORM(db *gorm.DB, opts ...Option) *UserRepositoryGORM {
	return &UserRepositoryGORM{
		Repository: NewRepository[gormModels.User, *dtos.UserCreate, *dtos.UserUpdate](db, "user", opts...),
		db:         db,
	}
}

// Create is not supported for users: a UserCreate carries the plain password,
// which the repository never hashes. Build the row with ToModel, set its
// credential and call Insert.
func (r *UserRepositoryGORM) Create(_ context.Context, _ *dtos.UserCreate) (*gormModels.User, error) {
	return nil, ErrMissingCredential
}

// Insert persists a user whose credential has already been set.
func (r *UserRepositoryGORM) Insert(ctx context.Context, user *gormModels.User) (*gormModels.User, error) {
	if user.HashedPassword == "" {
		return nil, ErrMissingCredential
	}
	return r.Repository.Insert(ctx, user)
}

// GetByEmail retrieves a user by exact email without relationships. A missing
// user returns (nil, nil).
func (r *UserRepositoryGORM) GetByEmail(ctx context.Context, email string) (_ *gormModels.User, err error) {
	defer r.track("get_by_email")(&err)

	var user gormModels.User
	err = r.db.WithContext(ctx).
		Where("email = ?", strings.TrimSpace(email)).
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return &user, nil
}

// TouchLastLogin stamps the user's last successful login.
func (r *UserRepositoryGORM) TouchLastLogin(ctx context.Context, user *gormModels.User, at time.Time) (*gormModels.User, error) {
	at = at.UTC()
	return r.Update(ctx, user, &dtos.UserUpdate{LastLogin: &at})
}
