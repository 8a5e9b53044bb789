package dtos

import (
	"fmt"
	"time"

	"global-healthops/nexus/internal/constants"
	gormModels "global-healthops/nexus/internal/models/gorm"
)

type TreatmentCreate struct {
	Name         string                    `json:"name"`
	Description  string                    `json:"description"`
	Status       constants.TreatmentStatus `json:"status,omitempty"`
	ProviderName string                    `json:"provider_name"`
	StartDate    time.Time                 `json:"start_date"`
	EndDate      *time.Time                `json:"end_date,omitempty"`
	Notes        *string                   `json:"notes,omitempty"`
}

func (t *TreatmentCreate) validate(prefix string) error {
	if err := checkLength(prefix+"name", t.Name, 1, 200); err != nil {
		return err
	}
	if err := checkLength(prefix+"provider_name", t.ProviderName, 1, 200); err != nil {
		return err
	}
	if t.StartDate.IsZero() {
		return invalid(prefix+"start_date", "field required")
	}
	if t.EndDate != nil && t.EndDate.Before(t.StartDate) {
		return invalid(prefix+"end_date", "must not be before start_date")
	}
	if t.Status != "" && !t.Status.IsValid() {
		return invalid(prefix+"status", "must be one of planned, in_progress, completed, cancelled")
	}
	return nil
}

// ToModel builds the treatment row linked to recordID. Status defaults to planned.
func (t *TreatmentCreate) ToModel(recordID uint) *gormModels.Treatment {
	status := t.Status
	if status == "" {
		status = constants.TreatmentPlanned
	}
	return &gormModels.Treatment{
		HealthRecordID: recordID,
		Name:           t.Name,
		Description:    t.Description,
		Status:         status,
		StartDate:      t.StartDate,
		EndDate:        t.EndDate,
		ProviderName:   t.ProviderName,
		Notes:          t.Notes,
	}
}

type HealthRecordCreate struct {
	RecordType   constants.RecordType `json:"record_type"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	DateOfRecord time.Time            `json:"date_of_record"`
	ProviderName *string              `json:"provider_name,omitempty"`
	Notes        *string              `json:"notes,omitempty"`
	Treatments   []TreatmentCreate    `json:"treatments,omitempty"`
}

func (h *HealthRecordCreate) Validate() error {
	if !h.RecordType.IsValid() {
		return invalid("record_type", "must be one of general, diagnosis, treatment, lab_result, prescription")
	}
	if err := checkLength("title", h.Title, 1, 200); err != nil {
		return err
	}
	if h.DateOfRecord.IsZero() {
		return invalid("date_of_record", "field required")
	}
	if err := checkOptionalLength("provider_name", h.ProviderName, 200); err != nil {
		return err
	}
	for i := range h.Treatments {
		if err := h.Treatments[i].validate(fmt.Sprintf("treatments[%d].", i)); err != nil {
			return err
		}
	}
	return nil
}

// ToModel builds the record row without its treatments; the caller sets PatientID.
func (h *HealthRecordCreate) ToModel() *gormModels.HealthRecord {
	return &gormModels.HealthRecord{
		RecordType:   h.RecordType,
		Title:        h.Title,
		Description:  h.Description,
		DateOfRecord: h.DateOfRecord,
		ProviderName: h.ProviderName,
		Notes:        h.Notes,
	}
}

type HealthRecordUpdate struct {
	RecordType   *constants.RecordType `json:"record_type,omitempty"`
	Title        *string               `json:"title,omitempty"`
	Description  *string               `json:"description,omitempty"`
	DateOfRecord *time.Time            `json:"date_of_record,omitempty"`
	ProviderName *string               `json:"provider_name,omitempty"`
	Notes        *string               `json:"notes,omitempty"`
}

func (h *HealthRecordUpdate) Validate() error {
	if h.RecordType != nil && !h.RecordType.IsValid() {
		return invalid("record_type", "must be one of general, diagnosis, treatment, lab_result, prescription")
	}
	if h.Title != nil {
		if err := checkLength("title", *h.Title, 1, 200); err != nil {
			return err
		}
	}
	if h.DateOfRecord != nil && h.DateOfRecord.IsZero() {
		return invalid("date_of_record", "invalid datetime")
	}
	return checkOptionalLength("provider_name", h.ProviderName, 200)
}

func (h *HealthRecordUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if h.RecordType != nil {
		changes["record_type"] = *h.RecordType
	}
	if h.Title != nil {
		changes["title"] = *h.Title
	}
	if h.Description != nil {
		changes["description"] = *h.Description
	}
	if h.DateOfRecord != nil {
		changes["date_of_record"] = *h.DateOfRecord
	}
	if h.ProviderName != nil {
		changes["provider_name"] = *h.ProviderName
	}
	if h.Notes != nil {
		changes["notes"] = *h.Notes
	}
	return changes
}
