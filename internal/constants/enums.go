package constants

import (
	"database/sql/driver"
	"fmt"
)

// RecordType tags what a health record documents.
type RecordType string

const (
	RecordTypeGeneral      RecordType = "general"
	RecordTypeDiagnosis    RecordType = "diagnosis"
	RecordTypeTreatment    RecordType = "treatment"
	RecordTypeLabResult    RecordType = "lab_result"
	RecordTypePrescription RecordType = "prescription"
)

func (t RecordType) String() string { return string(t) }

func (t RecordType) IsValid() bool {
	switch t {
	case RecordTypeGeneral, RecordTypeDiagnosis, RecordTypeTreatment, RecordTypeLabResult, RecordTypePrescription:
		return true
	}
	return false
}

// TreatmentStatus is the lifecycle state of a treatment.
type TreatmentStatus string

const (
	TreatmentPlanned    TreatmentStatus = "planned"
	TreatmentInProgress TreatmentStatus = "in_progress"
	TreatmentCompleted  TreatmentStatus = "completed"
	TreatmentCancelled  TreatmentStatus = "cancelled"
)

func (s TreatmentStatus) String() string { return string(s) }

func (s TreatmentStatus) IsValid() bool {
	switch s {
	case TreatmentPlanned, TreatmentInProgress, TreatmentCompleted, TreatmentCancelled:
		return true
	}
	return false
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) String() string { return string(g) }

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

/* ---------- DB adapters so GORM scans/values cleanly ---------- */

func scanString(name string, src interface{}) (string, error) {
	switch v := src.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("%s: cannot scan type %T", name, src)
	}
}

// Scan implements the sql.Scanner interface
func (t *RecordType) Scan(src interface{}) error {
	s, err := scanString("RecordType", src)
	*t = RecordType(s)
	return err
}

// Value implements the driver.Valuer interface
func (t RecordType) Value() (driver.Value, error) { return string(t), nil }

func (s *TreatmentStatus) Scan(src interface{}) error {
	v, err := scanString("TreatmentStatus", src)
	*s = TreatmentStatus(v)
	return err
}

func (s TreatmentStatus) Value() (driver.Value, error) { return string(s), nil }

func (g *Gender) Scan(src interface{}) error {
	v, err := scanString("Gender", src)
	*g = Gender(v)
	return err
}

func (g Gender) Value() (driver.Value, error) { return string(g), nil }
