package api

import (
	"net/http"

	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/models/dtos"
)

// ListPatients handles GET /patients/?skip&limit&search
func (h *Handlers) ListPatients() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip, limit, ok := pagination(w, r)
		if !ok {
			return
		}

		patients, err := h.deps.Services.Patient.List(r.Context(), r.URL.Query().Get("search"), skip, limit)
		if err != nil {
			respondServiceError(w, r, err, constants.MsgPatientNotFound, constants.MsgPatientEmailExists)
			return
		}

		common.RespondJSON(w, http.StatusOK, patients)
	}
}

func (h *Handlers) CreatePatient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dtos.PatientCreate
		if !decodeJSON(w, r, &req) {
			return
		}

		patient, err := h.deps.Services.Patient.Create(r.Context(), &req)
		if err != nil {
			respondServiceError(w, r, err, constants.MsgPatientNotFound, constants.MsgPatientEmailExists)
			return
		}

		common.RespondJSON(w, http.StatusOK, patient)
	}
}

func (h *Handlers) GetPatient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "patientID")
		if !ok {
			return
		}

		patient, err := h.deps.Services.Patient.Get(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, err, constants.MsgPatientNotFound, constants.MsgPatientEmailExists)
			return
		}

		common.RespondJSON(w, http.StatusOK, patient)
	}
}

// UpdatePatient handles PUT /patients/{patientID}. Only fields present in the
// body change.
func (h *Handlers) UpdatePatient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "patientID")
		if !ok {
			return
		}

		var req dtos.PatientUpdate
		if !decodeJSON(w, r, &req) {
			return
		}

		patient, err := h.deps.Services.Patient.Update(r.Context(), id, &req)
		if err != nil {
			respondServiceError(w, r, err, constants.MsgPatientNotFound, constants.MsgPatientEmailExists)
			return
		}

		common.RespondJSON(w, http.StatusOK, patient)
	}
}

// DeletePatient removes the patient with its records and returns the deleted row.
func (h *Handlers) DeletePatient() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "patientID")
		if !ok {
			return
		}

		patient, err := h.deps.Services.Patient.Delete(r.Context(), id)
		if err != nil {
			respondServiceError(w, r, err, constants.MsgPatientNotFound, constants.MsgPatientEmailExists)
			return
		}

		common.RespondJSON(w, http.StatusOK, patient)
	}
}
