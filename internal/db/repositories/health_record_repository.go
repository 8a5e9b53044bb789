package repositories

import (
	"context"
	"errors"
	"fmt"

	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/models/dtos"
	gormModels "global-healthops/nexus/internal/models/gorm"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HealthRecordRepository handles health_records table operations using GORM.
// Every read eagerly loads the record's treatments with one extra query per
// page (no N+1).
type HealthRecordRepository struct {
	*Repository[gormModels.HealthRecord, *dtos.HealthRecordCreate, *dtos.HealthRecordUpdate]
	db *gorm.DB
}

func NewHealthRecordRepository(db *gorm.DB, opts ...Option) *HealthRecordRepository {
	opts = append([]Option{WithOrderedPreload("Treatments", "id ASC"), WithCascade(cascadeHealthRecord)}, opts...)
	return &HealthRecordRepository{
		Repository: NewRepository[gormModels.HealthRecord, *dtos.HealthRecordCreate, *dtos.HealthRecordUpdate](db, "health_record", opts...),
		db:         db,
	}
}

func cascadeHealthRecord(tx *gorm.DB, recordID uint) error {
	if err := tx.Where("health_record_id = ?", recordID).Delete(&gormModels.Treatment{}).Error; err != nil {
		return fmt.Errorf("failed to delete treatments of health record %d: %w", recordID, err)
	}
	return nil
}

// GetByPatient lists a patient's health records with their treatments.
func (r *HealthRecordRepository) GetByPatient(ctx context.Context, patientID uint, skip, limit int) (_ []gormModels.HealthRecord, err error) {
	defer r.track("get_by_patient")(&err)

	skip, limit, err = r.Pagination().Resolve(skip, limit)
	if err != nil {
		return nil, err
	}

	records := make([]gormModels.HealthRecord, 0)
	err = r.read(r.db.WithContext(ctx)).
		Where("patient_id = ?", patientID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&records).Error

	if err != nil {
		return nil, fmt.Errorf("failed to fetch health records of patient %d: %w", patientID, err)
	}

	return records, nil
}

// CreateWithTreatments inserts the record, then each treatment linked to the
// new record id, in one transaction. If any insert fails nothing is committed.
func (r *HealthRecordRepository) CreateWithTreatments(ctx context.Context, in *dtos.HealthRecordCreate, patientID uint) (_ *gormModels.HealthRecord, err error) {
	defer r.track("create_with_treatments")(&err)

	record := in.ToModel()
	record.PatientID = patientID

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var patient gormModels.Patient
		if err := tx.Select("id").First(&patient, patientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("patient %d: %w", patientID, constants.ErrNotFound)
			}
			return err
		}

		if err := tx.Omit(clause.Associations).Create(record).Error; err != nil {
			return err
		}

		for i := range in.Treatments {
			treatment := in.Treatments[i].ToModel(record.ID)
			if err := tx.Create(treatment).Error; err != nil {
				return fmt.Errorf("failed to create treatment %d: %w", i, err)
			}
		}

		return r.read(tx).First(record).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create health record: %w", err)
	}

	return record, nil
}
