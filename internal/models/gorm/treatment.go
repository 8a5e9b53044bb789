package gorm

import (
	"time"

	"global-healthops/nexus/internal/constants"
)

type Treatment struct {
	ID             uint                      `gorm:"column:id;primaryKey" json:"id"`
	HealthRecordID uint                      `gorm:"column:health_record_id;not null;index" json:"health_record_id"`
	Name           string                    `gorm:"column:name;size:200;not null" json:"name"`
	Description    string                    `gorm:"column:description;type:text" json:"description"`
	Status         constants.TreatmentStatus `gorm:"column:status;size:20;not null" json:"status"`
	StartDate      time.Time                 `gorm:"column:start_date;not null" json:"start_date"`
	EndDate        *time.Time                `gorm:"column:end_date" json:"end_date"`
	ProviderName   string                    `gorm:"column:provider_name;size:200;not null" json:"provider_name"`
	Notes          *string                   `gorm:"column:notes;type:text" json:"notes"`
	CreatedAt      time.Time                 `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time                 `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Treatment) TableName() string {
	return "treatments"
}
