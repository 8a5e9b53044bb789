package dtos

import (
	"strings"
	"time"

	gormModels "global-healthops/nexus/internal/models/gorm"
)

type UserCreate struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

func (u *UserCreate) Validate() error {
	u.Email = strings.TrimSpace(u.Email)
	if err := checkEmail("email", u.Email); err != nil {
		return err
	}
	if err := checkLength("full_name", u.FullName, 1, 255); err != nil {
		return err
	}
	if err := checkLength("password", u.Password, 8, 0); err != nil {
		return err
	}
	// bcrypt only looks at the first 72 bytes.
	if len(u.Password) > 72 {
		return invalid("password", "must be at most 72 bytes")
	}
	return nil
}

// ToModel builds the row without a credential; callers hash the password with
// User.SetCredential.
func (u *UserCreate) ToModel() *gormModels.User {
	return &gormModels.User{
		Email:    u.Email,
		FullName: u.FullName,
		IsActive: true,
	}
}

// UserUpdate is a partial update of an account.
type UserUpdate struct {
	FullName    *string    `json:"full_name,omitempty"`
	IsActive    *bool      `json:"is_active,omitempty"`
	IsSuperuser *bool      `json:"-"`
	LastLogin   *time.Time `json:"-"`
}

func (u *UserUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if u.FullName != nil {
		changes["full_name"] = *u.FullName
	}
	if u.IsActive != nil {
		changes["is_active"] = *u.IsActive
	}
	if u.IsSuperuser != nil {
		changes["is_superuser"] = *u.IsSuperuser
	}
	if u.LastLogin != nil {
		changes["last_login"] = *u.LastLogin
	}
	return changes
}

type UserResponse struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	FullName  string     `json:"full_name"`
	IsActive  bool       `json:"is_active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewUserResponse(u *gormModels.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
