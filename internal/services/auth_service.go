package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"global-healthops/nexus/internal/auth"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/db/repositories"
	"global-healthops/nexus/internal/logging"
	"global-healthops/nexus/internal/metrics"
	"global-healthops/nexus/internal/models/dtos"
	gormModels "global-healthops/nexus/internal/models/gorm"
)

// AuthService handles account registration, login, logout and bearer token
// resolution.
type AuthService struct {
	users    *repositories.UserRepositoryGORM
	hasher   gormModels.CredentialHasher
	tokens   *auth.TokenManager
	denylist auth.Denylist
	metrics  *metrics.MetricsRegistry
	now      func() time.Time
}

// NewAuthService creates a new auth service. m may be nil.
func NewAuthService(
	users *repositories.UserRepositoryGORM,
	hasher gormModels.CredentialHasher,
	tokens *auth.TokenManager,
	denylist auth.Denylist,
	m *metrics.MetricsRegistry,
) *AuthService {
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		metrics:  m,
		now:      time.Now,
	}
}

// Register creates an active account. An email already in use returns
// constants.ErrConflict.
func (svc *AuthService) Register(ctx context.Context, in *dtos.UserCreate) (*gormModels.User, error) {
	existing, err := svc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("email %s: %w", in.Email, constants.ErrConflict)
	}

	user := in.ToModel()
	if err := user.SetCredential(svc.hasher, in.Password); err != nil {
		return nil, err
	}

	created, err := svc.users.Insert(ctx, user)
	if err != nil {
		return nil, err
	}

	logging.Info("User registered", "user_id", created.ID, "email", created.Email)
	return created, nil
}

// Authenticate verifies credentials, stamps last_login and issues an access
// token. Unknown email and wrong password both return constants.ErrUnauthorized.
func (svc *AuthService) Authenticate(ctx context.Context, email, password string) (*dtos.Token, error) {
	user, err := svc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.VerifyCredential(svc.hasher, password) {
		svc.countLogin("failure")
		logging.Warn("Login failed", "email", email)
		return nil, constants.ErrUnauthorized
	}
	if !user.IsActive {
		svc.countLogin("inactive")
		return nil, constants.ErrInactiveUser
	}

	if _, err := svc.users.TouchLastLogin(ctx, user, svc.now()); err != nil {
		return nil, err
	}

	token, err := svc.tokens.IssueToken(user.Email, 0)
	if err != nil {
		return nil, err
	}

	svc.countLogin("success")
	logging.Info("Login succeeded", "user_id", user.ID)
	return &dtos.Token{AccessToken: token, TokenType: constants.TokenTypeBearer}, nil
}

// Resolve maps a bearer token to its active account.
func (svc *AuthService) Resolve(ctx context.Context, token string) (*gormModels.User, *auth.Claims, error) {
	claims, err := svc.tokens.ParseToken(token)
	if err != nil {
		return nil, nil, err
	}

	revoked, err := svc.denylist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to check token revocation: %w", err)
	}
	if revoked {
		return nil, nil, constants.ErrTokenRevoked
	}

	user, err := svc.users.GetByEmail(ctx, claims.Subject)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, fmt.Errorf("%w: unknown subject", constants.ErrTokenInvalid)
	}
	if !user.IsActive {
		return nil, nil, constants.ErrInactiveUser
	}

	return user, claims, nil
}

// Logout revokes the presented token until it would expire.
func (svc *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return errors.New("no token to revoke")
	}
	if err := svc.denylist.Revoke(ctx, claims.ID, claims.ExpiresAtTime()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	logging.Info("Token revoked", "subject", claims.Subject)
	return nil
}

func (svc *AuthService) countLogin(result string) {
	if svc.metrics != nil {
		svc.metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
	}
}

// EnsureSuperuser creates an active superuser with the given credentials
// unless an account with that email already exists. It reports whether an
// account was created.
func (svc *AuthService) EnsureSuperuser(ctx context.Context, in *dtos.UserCreate) (bool, error) {
	if err := in.Validate(); err != nil {
		return false, err
	}

	existing, err := svc.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		logging.Debug("Superuser already present", "email", existing.Email)
		return false, nil
	}

	user := in.ToModel()
	user.IsSuperuser = true
	if err := user.SetCredential(svc.hasher, in.Password); err != nil {
		return false, err
	}
	if _, err := svc.users.Insert(ctx, user); err != nil {
		return false, err
	}

	logging.Info("Created initial superuser", "email", user.Email)
	return true, nil
}
