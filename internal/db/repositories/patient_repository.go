package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"global-healthops/nexus/internal/models/dtos"
	gormModels "global-healthops/nexus/internal/models/gorm"

	"gorm.io/gorm"
)

// PatientRepository handles patients table operations using GORM
type PatientRepository struct {
	*Repository[gormModels.Patient, *dtos.PatientCreate, *dtos.PatientUpdate]
	db *gorm.DB
}

// NewPatientRepository creates a patient repository. Deleting a patient also
// deletes its health records and their treatments.
func NewPatientRepository(db *gorm.DB, opts ...Option) *PatientRepository {
	opts = append([]Option{WithCascade(cascadePatient)}, opts...)
	return &PatientRepository{
		Repository: NewRepository[gormModels.Patient, *dtos.PatientCreate, *dtos.PatientUpdate](db, "patient", opts...),
		db:         db,
	}
}

func cascadePatient(tx *gorm.DB, patientID uint) error {
	records := tx.Model(&gormModels.HealthRecord{}).Select("id").Where("patient_id = ?", patientID)
	if err := tx.Where("health_record_id IN (?)", records).Delete(&gormModels.Treatment{}).Error; err != nil {
		return fmt.Errorf("failed to delete treatments of patient %d: %w", patientID, err)
	}
	if err := tx.Where("patient_id = ?", patientID).Delete(&gormModels.HealthRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete health records of patient %d: %w", patientID, err)
	}
	return nil
}

// GetByEmail retrieves a patient by exact email. A missing patient returns (nil, nil).
func (r *PatientRepository) GetByEmail(ctx context.Context, email string) (_ *gormModels.Patient, err error) {
	defer r.track("get_by_email")(&err)

	var patient gormModels.Patient
	err = r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("id ASC").
		First(&patient).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch patient by email: %w", err)
	}

	return &patient, nil
}

// Search returns patients whose first name, last name or email contains term,
// case-insensitively.
func (r *PatientRepository) Search(ctx context.Context, term string, skip, limit int) (_ []gormModels.Patient, err error) {
	defer r.track("search")(&err)

	skip, limit, err = r.Pagination().Resolve(skip, limit)
	if err != nil {
		return nil, err
	}

	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	patients := make([]gormModels.Patient, 0)
	err = r.db.WithContext(ctx).
		Where(`LOWER(first_name) LIKE ? ESCAPE '\' OR LOWER(last_name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&patients).Error

	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}

	return patients, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
