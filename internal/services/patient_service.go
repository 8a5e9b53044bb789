package services

import (
	"context"
	"fmt"
	"strings"

	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/db/repositories"
	"global-healthops/nexus/internal/metrics"
	"global-healthops/nexus/internal/models/dtos"
	gormModels "global-healthops/nexus/internal/models/gorm"
)

// PatientService applies patient rules on top of the repository.
type PatientService struct {
	patients        *repositories.PatientRepository
	searchMinLength int
	metrics         *metrics.MetricsRegistry
}

func NewPatientService(patients *repositories.PatientRepository, searchMinLength int, m *metrics.MetricsRegistry) *PatientService {
	return &PatientService{patients: patients, searchMinLength: searchMinLength, metrics: m}
}

// List pages through patients, or searches them when search is not empty.
func (svc *PatientService) List(ctx context.Context, search string, skip, limit int) ([]gormModels.Patient, error) {
	if search == "" {
		return svc.patients.GetMulti(ctx, skip, limit)
	}
	if len([]rune(search)) < svc.searchMinLength {
		return nil, &dtos.ValidationError{
			Field:   "search",
			Message: fmt.Sprintf("must be at least %d characters", svc.searchMinLength),
		}
	}
	return svc.patients.Search(ctx, search, skip, limit)
}

// Get returns the patient or an error wrapping constants.ErrNotFound.
func (svc *PatientService) Get(ctx context.Context, id uint) (*gormModels.Patient, error) {
	patient, err := svc.patients.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("patient %d: %w", id, constants.ErrNotFound)
	}
	return patient, nil
}

func (svc *PatientService) Create(ctx context.Context, in *dtos.PatientCreate) (*gormModels.Patient, error) {
	if in.Email != nil {
		if err := svc.ensureEmailFree(ctx, *in.Email, 0); err != nil {
			return nil, err
		}
	}

	patient, err := svc.patients.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	if svc.metrics != nil {
		svc.metrics.PatientsCreatedTotal.Inc()
	}
	return patient, nil
}

func (svc *PatientService) Update(ctx context.Context, id uint, in *dtos.PatientUpdate) (*gormModels.Patient, error) {
	patient, err := svc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil {
		if err := svc.ensureEmailFree(ctx, *in.Email, id); err != nil {
			return nil, err
		}
	}
	return svc.patients.Update(ctx, patient, in)
}

// Delete removes the patient with all health records and treatments.
func (svc *PatientService) Delete(ctx context.Context, id uint) (*gormModels.Patient, error) {
	return svc.patients.Remove(ctx, id)
}

// ensureEmailFree returns constants.ErrConflict when another patient than
// self already uses email. The unique index on patients.email backs this up
// for concurrent writers.
func (svc *PatientService) ensureEmailFree(ctx context.Context, email string, self uint) error {
	existing, err := svc.patients.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != self {
		return fmt.Errorf("patient email %s: %w", email, constants.ErrConflict)
	}
	return nil
}
