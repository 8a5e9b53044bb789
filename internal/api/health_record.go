package api

import (
	"errors"
	"net/http"

	"global-healthops/nexus/internal/common"
	"global-healthops/nexus/internal/constants"
	"global-healthops/nexus/internal/models/dtos"
	"global-healthops/nexus/internal/services"
)

// recordError picks the 404 detail from which entity was missing.
func recordError(w http.ResponseWriter, r *http.Request, err error) {
	notFound := constants.MsgHealthRecordNotFound
	if errors.Is(err, services.ErrPatientNotFound) {
		notFound = constants.MsgPatientNotFound
	}
	respondServiceError(w, r, err, notFound, constants.MsgInternalServerError)
}

// ListPatientRecords handles GET /patients/{patientID}/records/
func (h *Handlers) ListPatientRecords() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := pathID(w, r, "patientID")
		if !ok {
			return
		}
		skip, limit, ok := pagination(w, r)
		if !ok {
			return
		}

		records, err := h.deps.Services.HealthRecord.ListForPatient(r.Context(), patientID, skip, limit)
		if err != nil {
			recordError(w, r, err)
			return
		}

		common.RespondJSON(w, http.StatusOK, records)
	}
}

// CreatePatientRecord handles POST /patients/{patientID}/records/. The record
// and its embedded treatments are stored together or not at all.
func (h *Handlers) CreatePatientRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patientID, ok := pathID(w, r, "patientID")
		if !ok {
			return
		}

		var req dtos.HealthRecordCreate
		if !decodeJSON(w, r, &req) {
			return
		}

		record, err := h.deps.Services.HealthRecord.Create(r.Context(), patientID, &req)
		if err != nil {
			recordError(w, r, err)
			return
		}

		common.RespondJSON(w, http.StatusOK, record)
	}
}

func (h *Handlers) GetRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}

		record, err := h.deps.Services.HealthRecord.Get(r.Context(), id)
		if err != nil {
			recordError(w, r, err)
			return
		}

		common.RespondJSON(w, http.StatusOK, record)
	}
}

func (h *Handlers) UpdateRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}

		var req dtos.HealthRecordUpdate
		if !decodeJSON(w, r, &req) {
			return
		}

		record, err := h.deps.Services.HealthRecord.Update(r.Context(), id, &req)
		if err != nil {
			recordError(w, r, err)
			return
		}

		common.RespondJSON(w, http.StatusOK, record)
	}
}

func (h *Handlers) DeleteRecord() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, "recordID")
		if !ok {
			return
		}

		record, err := h.deps.Services.HealthRecord.Delete(r.Context(), id)
		if err != nil {
			recordError(w, r, err)
			return
		}

		common.RespondJSON(w, http.StatusOK, record)
	}
}
