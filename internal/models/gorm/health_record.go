package gorm

import (
	"time"

	"global-healthops/nexus/internal/constants"
)

type HealthRecord struct {
	ID           uint                 `gorm:"column:id;primaryKey" json:"id"`
	PatientID    uint                 `gorm:"column:patient_id;not null;index" json:"patient_id"`
	RecordType   constants.RecordType `gorm:"column:record_type;size:20;not null" json:"record_type"`
	Title        string               `gorm:"column:title;size:200;not null" json:"title"`
	Description  string               `gorm:"column:description;type:text" json:"description"`
	DateOfRecord time.Time            `gorm:"column:date_of_record;not null" json:"date_of_record"`
	ProviderName *string              `gorm:"column:provider_name;size:200" json:"provider_name"`
	Notes        *string              `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	// Relationships
	Treatments []Treatment `gorm:"foreignKey:HealthRecordID;constraint:OnDelete:CASCADE" json:"treatments"`
}

// TableName specifies the table name for GORM
func (HealthRecord) TableName() string {
	return "health_records"
}
