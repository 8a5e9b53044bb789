package services

import (
	"context"
	"errors"
	"fmt"

	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/db/repositories"
	"global-healthops/nexus/internal/metrics"
	"global-healthops/nexus/internal/models/dtos"
	gormModels "global-healthops/nexus/internal/models/gorm"
)

// ErrPatientNotFound and ErrRecordNotFound tell the api layer which parent was
// missing. Both wrap constants.ErrNotFound.
var (
	ErrPatientNotFound = fmt.Errorf("patient %w", constants.ErrNotFound)
	ErrRecordNotFound  = fmt.Errorf("health record %w", constants.ErrNotFound)
)

// HealthRecordService manages health records nested under patients.
type HealthRecordService struct {
	patients *repositories.PatientRepository
	records  *repositories.HealthRecordRepository
	metrics  *metrics.MetricsRegistry
}

func NewHealthRecordService(
	patients *repositories.PatientRepository,
	records *repositories.HealthRecordRepository,
	m *metrics.MetricsRegistry,
) *HealthRecordService {
	return &HealthRecordService{patients: patients, records: records, metrics: m}
}

func (svc *HealthRecordService) ListForPatient(ctx context.Context, patientID uint, skip, limit int) ([]gormModels.HealthRecord, error) {
	patient, err := svc.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return svc.records.GetByPatient(ctx, patientID, skip, limit)
}

// Create stores the record and its treatments atomically.
func (svc *HealthRecordService) Create(ctx context.Context, patientID uint, in *dtos.HealthRecordCreate) (*gormModels.HealthRecord, error) {
	patient, err := svc.patients.Get(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	record, err := svc.records.CreateWithTreatments(ctx, in, patientID)
	if err != nil {
		return nil, err
	}
	if svc.metrics != nil {
		svc.metrics.HealthRecordsCreatedTotal.Inc()
	}
	return record, nil
}

func (svc *HealthRecordService) Get(ctx context.Context, id uint) (*gormModels.HealthRecord, error) {
	record, err := svc.records.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

func (svc *HealthRecordService) Update(ctx context.Context, id uint, in *dtos.HealthRecordUpdate) (*gormModels.HealthRecord, error) {
	record, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return svc.records.Update(ctx, record, in)
}

// Delete removes the record and its treatments.
func (svc *HealthRecordService) Delete(ctx context.Context, id uint) (*gormModels.HealthRecord, error) {
	record, err := svc.records.Remove(ctx, id)
	if err != nil {
		if errors.Is(err, constants.ErrNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}
