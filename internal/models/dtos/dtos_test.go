package dtos

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"global-healthops/nexus/internal/constants"
	gormModels "global-healthops/nexus/internal/models/gorm"
)

func strPtr(s string) *string { return &s }

func validPatient() PatientCreate {
	return PatientCreate{
		FirstName:   "Jane",
		LastName:    "Doe",
		DateOfBirth: gormModels.NewDate(1990, time.January, 1),
		Gender:      constants.GenderFemale,
	}
}

func TestPatientCreate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *PatientCreate)
		field  string
	}{
		{name: "valid", mutate: func(p *PatientCreate) {}},
		{name: "missing first name", mutate: func(p *PatientCreate) { p.FirstName = "" }, field: "first_name"},
		{name: "long last name", mutate: func(p *PatientCreate) { p.LastName = strings.Repeat("x", 101) }, field: "last_name"},
		{name: "missing dob", mutate: func(p *PatientCreate) { p.DateOfBirth = gormModels.Date{} }, field: "date_of_birth"},
		{name: "bad gender", mutate: func(p *PatientCreate) { p.Gender = "unknown" }, field: "gender"},
		{name: "bad email", mutate: func(p *PatientCreate) { p.Email = strPtr("not-an-email") }, field: "email"},
		{name: "long contact", mutate: func(p *PatientCreate) { p.ContactNumber = strPtr(strings.Repeat("1", 21)) }, field: "contact_number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validPatient()
			tt.mutate(&p)
			err := p.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, constants.ErrValidation))
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestPatientUpdate_ChangesOnlyPresentFields(t *testing.T) {
	var upd PatientUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"last_name":"Smith","is_active":false}`), &upd))
	require.NoError(t, upd.Validate())

	assert.Equal(t, map[string]interface{}{
		"last_name": "Smith",
		"is_active": false,
	}, upd.Changes())

	var empty PatientUpdate
	assert.Empty(t, empty.Changes())
}

func TestHealthRecordCreate_Validate(t *testing.T) {
	rec := HealthRecordCreate{
		RecordType:   constants.RecordTypeDiagnosis,
		Title:        "Annual checkup",
		DateOfRecord: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		Treatments: []TreatmentCreate{
			{Name: "Rest", ProviderName: "Dr. House", StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	require.NoError(t, rec.Validate())

	rec.Treatments[0].Status = "paused"
	err := rec.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "treatments[0].status", verr.Field)

	rec.Treatments[0].Status = ""
	rec.RecordType = "x-ray"
	require.Error(t, rec.Validate())
}

func TestTreatmentCreate_DefaultStatus(t *testing.T) {
	tr := TreatmentCreate{Name: "Rest", ProviderName: "Dr. House", StartDate: time.Now()}
	m := tr.ToModel(7)
	assert.Equal(t, uint(7), m.HealthRecordID)
	assert.Equal(t, constants.TreatmentPlanned, m.Status)
}

func TestUserCreate_Validate(t *testing.T) {
	u := UserCreate{Email: " alice@example.com ", FullName: "Alice", Password: "password123"}
	require.NoError(t, u.Validate())
	assert.Equal(t, "alice@example.com", u.Email)

	u.Password = "short"
	require.Error(t, u.Validate())

	u = UserCreate{Email: "Alice <alice@example.com>", FullName: "Alice", Password: "password123"}
	require.Error(t, u.Validate())
}

func TestPatientValidate_TrimsEmail(t *testing.T) {
	create := validPatient()
	create.Email = strPtr("  jane@example.com ")
	require.NoError(t, create.Validate())
	assert.Equal(t, "jane@example.com", *create.Email)

	update := PatientUpdate{Email: strPtr(" jane@example.com")}
	require.NoError(t, update.Validate())
	assert.Equal(t, "jane@example.com", *update.Email)
	assert.Equal(t, "jane@example.com", update.Changes()["email"])
}
