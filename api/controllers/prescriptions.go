package controllers

import (
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/balasre/pharmacare-backend/api/middleware"
	"github.com/balasre/pharmacare-backend/api/responses"
	"github.com/balasre/pharmacare-backend/api/validators"
	prescriptionsvc "github.com/balasre/pharmacare-backend/internal/prescriptions"
	pkgerrors "github.com/balasre/pharmacare-backend/pkg/errors"
	"github.com/balasre/pharmacare-backend/pkg/logger"
)

// maxPrescriptionUploadBytes bounds the multipart body for uploads.
const maxPrescriptionUploadBytes = 10 << 20

// UploadPrescription accepts a multipart form with a "file" part and an
// optional "doctor_name" field.
func UploadPrescription(svc prescriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "prescriptions service unavailable"))
			return
		}

		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxPrescriptionUploadBytes)
		if err := r.ParseMultipartForm(maxPrescriptionUploadBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "file part is required"))
			return
		}
		defer file.Close()

		input := prescriptionsvc.UploadInput{
			OriginalFilename: header.Filename,
			Content:          file,
		}
		if doctor := strings.TrimSpace(r.FormValue("doctor_name")); doctor != "" {
			input.DoctorName = &doctor
		}

		prescription, err := svc.Upload(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, prescription)
	}
}

// ListPrescriptions returns the caller's prescriptions.
func ListPrescriptions(svc prescriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		list, err := svc.ListForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// DownloadPrescription streams the caller's own prescription file.
func DownloadPrescription(svc prescriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		id, err := validators.ParsePathID(r, "prescriptionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		content, filename, err := svc.Download(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer content.Close()

		w.Header().Set("Content-Type", "application/octet-stream")
		w.Header().Set("Content-Disposition", `attachment; filename="`+path.Base(filename)+`"`)
		if _, err := io.Copy(w, content); err != nil && logg != nil {
			logg.Error(r.Context(), "streaming prescription file", err)
		}
	}
}

// ListPrescriptionArchives returns the caller's archived prescriptions.
func ListPrescriptionArchives(svc prescriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := middleware.UserIDFromContext(r.Context())
		if userID <= 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing"))
			return
		}

		archives, err := svc.ListArchivesForUser(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, archives)
	}
}

// AdminListPrescriptions returns every prescription for review.
func AdminListPrescriptions(svc prescriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// AdminSearchPrescriptions matches prescription numbers by substring.
func AdminSearchPrescriptions(svc prescriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type updatePrescriptionStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}

// AdminUpdatePrescriptionStatus moves a prescription through review states.
func AdminUpdatePrescriptionStatus(svc prescriptionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		prescriptionID, err := validators.ParsePathID(r, "prescriptionID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePrescriptionStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.UpdateStatus(r.Context(), prescriptionID, body.Status); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"prescription_id": prescriptionID, "status": body.Status})
	}
}
