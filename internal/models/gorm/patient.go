package gorm

import (
	"time"

	"global-healthops/nexus/internal/constants"
)

type Patient struct {
	ID            uint             `gorm:"column:id;primaryKey" json:"id"`
	FirstName     string           `gorm:"column:first_name;size:100;not null" json:"first_name"`
	LastName      string           `gorm:"column:last_name;size:100;not null" json:"last_name"`
	DateOfBirth   Date             `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	Gender        constants.Gender `gorm:"column:gender;size:20;not null" json:"gender"`
	ContactNumber *string          `gorm:"column:contact_number;size:20" json:"contact_number"`
	Email         *string          `gorm:"column:email;size:255;uniqueIndex" json:"email"`
	Address       *string          `gorm:"column:address;size:500" json:"address"`
	IsActive      bool             `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	HealthRecords []HealthRecord `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for GORM
func (Patient) TableName() string {
	return "patients"
}
