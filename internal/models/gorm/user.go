package gorm

import (
	"time"
)

// CredentialHasher is the slice of the credential manager a User needs.
type CredentialHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

// User is an account allowed to use the API. Only the one-way hash of the
// password is persisted and it is never serialized.
type User struct {
	ID             uint       `gorm:"column:id;primaryKey"`
	Email          string     `gorm:"column:email;size:255;uniqueIndex;not null"`
	HashedPassword string     `gorm:"column:hashed_password;size:255;not null" json:"-"`
	FullName       string     `gorm:"column:full_name;size:255"`
	IsActive       bool       `gorm:"column:is_active;default:true"`
	IsSuperuser    bool       `gorm:"column:is_superuser;default:false"`
	LastLogin      *time.Time `gorm:"column:last_login"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// SetCredential hashes secret and stores only the hash.
func (u *User) SetCredential(h CredentialHasher, secret string) error {
	hash, err := h.Hash(secret)
	if err != nil {
		return err
	}
	u.HashedPassword = hash
	return nil
}

// VerifyCredential reports whether secret matches the stored hash.
func (u *User) VerifyCredential(h CredentialHasher, secret string) bool {
	if u.HashedPassword == "" {
		return false
	}
	return h.Verify(secret, u.HashedPassword)
}
