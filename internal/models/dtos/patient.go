package dtos

import (
	"strings"

	"global-healthops/nexus/internal/constants"
	gormModels "global-healthops/nexus/internal/models/gorm"
)

type PatientCreate struct {
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	DateOfBirth   gormModels.Date  `json:"date_of_birth"`
	Gender        constants.Gender `json:"gender"`
	ContactNumber *string          `json:"contact_number,omitempty"`
	Email         *string          `json:"email,omitempty"`
	Address       *string          `json:"address,omitempty"`
}

func (p *PatientCreate) Validate() error {
	p.Email = normalizeOptional(p.Email)
	if err := checkLength("first_name", p.FirstName, 1, 100); err != nil {
		return err
	}
	if err := checkLength("last_name", p.LastName, 1, 100); err != nil {
		return err
	}
	if p.DateOfBirth.IsZero() {
		return invalid("date_of_birth", "field required")
	}
	if !p.Gender.IsValid() {
		return invalid("gender", "must be one of male, female, other")
	}
	return validatePatientContact(p.ContactNumber, p.Email, p.Address)
}

// ToModel builds the row to insert.
func (p *PatientCreate) ToModel() *gormModels.Patient {
	return &gormModels.Patient{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		DateOfBirth:   p.DateOfBirth,
		Gender:        p.Gender,
		ContactNumber: p.ContactNumber,
		Email:         normalizeOptional(p.Email),
		Address:       p.Address,
		IsActive:      true,
	}
}

// PatientUpdate is a partial update: nil fields are left untouched.
type PatientUpdate struct {
	FirstName     *string           `json:"first_name,omitempty"`
	LastName      *string           `json:"last_name,omitempty"`
	DateOfBirth   *gormModels.Date  `json:"date_of_birth,omitempty"`
	Gender        *constants.Gender `json:"gender,omitempty"`
	ContactNumber *string           `json:"contact_number,omitempty"`
	Email         *string           `json:"email,omitempty"`
	Address       *string           `json:"address,omitempty"`
	IsActive      *bool             `json:"is_active,omitempty"`
}

func (p *PatientUpdate) Validate() error {
	p.Email = normalizeOptional(p.Email)
	if p.FirstName != nil {
		if err := checkLength("first_name", *p.FirstName, 1, 100); err != nil {
			return err
		}
	}
	if p.LastName != nil {
		if err := checkLength("last_name", *p.LastName, 1, 100); err != nil {
			return err
		}
	}
	if p.DateOfBirth != nil && p.DateOfBirth.IsZero() {
		return invalid("date_of_birth", "invalid date")
	}
	if p.Gender != nil && !p.Gender.IsValid() {
		return invalid("gender", "must be one of male, female, other")
	}
	return validatePatientContact(p.ContactNumber, p.Email, p.Address)
}

// Changes returns the column/value pairs present in the update.
func (p *PatientUpdate) Changes() map[string]interface{} {
	changes := make(map[string]interface{})
	if p.FirstName != nil {
		changes["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		changes["last_name"] = *p.LastName
	}
	if p.DateOfBirth != nil {
		changes["date_of_birth"] = *p.DateOfBirth
	}
	if p.Gender != nil {
		changes["gender"] = *p.Gender
	}
	if p.ContactNumber != nil {
		changes["contact_number"] = *p.ContactNumber
	}
	if p.Email != nil {
		changes["email"] = strings.TrimSpace(*p.Email)
	}
	if p.Address != nil {
		changes["address"] = *p.Address
	}
	if p.IsActive != nil {
		changes["is_active"] = *p.IsActive
	}
	return changes
}

func validatePatientContact(contact, email, address *string) error {
	if err := checkOptionalLength("contact_number", contact, 20); err != nil {
		return err
	}
	if email != nil {
		if err := checkEmail("email", strings.TrimSpace(*email)); err != nil {
			return err
		}
	}
	return checkOptionalLength("address", address, 500)
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
