package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/camden-git/personsbackend/apperrors"
)

const (
	CodeBadRequest         = "bad_request"
	CodePersonNotFound     = "person_not_found"
	CodeColorNotFound      = "color_not_found"
	CodeInvalidPersonData  = "invalid_person_data"
	CodeStorageUnavailable = "storage_unavailable"
	CodeStorageFailure     = "storage_failure"
	CodeRequestCancelled   = "request_cancelled"
)

// APIErrorDetail represents a single error in the standardized error response.
type APIErrorDetail struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse represents the standardized error response body.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// WriteAPIError writes a standardized error response with the given HTTP status, code, and detail.
func WriteAPIError(w http.ResponseWriter, httpStatus int, code string, detail string) {
	WriteAPIErrors(w, httpStatus, code, []string{detail})
}

// WriteAPIErrors writes one error entry per detail, all sharing status and code.
func WriteAPIErrors(w http.ResponseWriter, httpStatus int, code string, details []string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)

	resp := APIErrorResponse{Errors: make([]APIErrorDetail, 0, len(details))}
	for _, d := range details {
		resp.Errors = append(resp.Errors, APIErrorDetail{
			ID:     uuid.NewString(),
			Code:   code,
			Status: strconv.Itoa(httpStatus),
			Detail: d,
		})
	}

	_ = json.NewEncoder(w).Encode(resp)
}

// writeDomainError translates the error kinds returned by models and
// repositories into HTTP responses.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		notFound  *apperrors.PersonNotFoundError
		colorErr  *apperrors.ColorNotFoundError
		invalid   *apperrors.InvalidPersonDataError
		accessErr *apperrors.StorageAccessError
		opErr     *apperrors.StorageOperationError
	)

	switch {
	case errors.As(err, &notFound):
		WriteAPIError(w, http.StatusNotFound, CodePersonNotFound, notFound.Error())
	case errors.As(err, &colorErr):
		WriteAPIError(w, http.StatusNotFound, CodeColorNotFound,
			"Color '"+colorErr.Input+"' is not valid. Valid colors are: "+strings.Join(colorErr.ValidNames, ", "))
	case errors.As(err, &invalid):
		WriteAPIErrors(w, http.StatusBadRequest, CodeInvalidPersonData, invalid.Errors)
	case errors.As(err, &accessErr):
		log.Printf("Error accessing person storage (%s %s): %v", r.Method, r.URL.Path, err)
		WriteAPIError(w, http.StatusServiceUnavailable, CodeStorageUnavailable, "Person storage is not available")
	case errors.As(err, &opErr):
		log.Printf("Error during person storage %s (%s %s): %v", opErr.Operation, r.Method, r.URL.Path, err)
		WriteAPIError(w, http.StatusInternalServerError, CodeStorageFailure, "Person storage operation failed")
	case r.Context().Err() != nil:
		WriteAPIError(w, http.StatusServiceUnavailable, CodeRequestCancelled, "Request was cancelled")
	default:
		log.Printf("Unexpected error (%s %s): %v", r.Method, r.URL.Path, err)
		WriteAPIError(w, http.StatusInternalServerError, CodeStorageFailure, "Internal server error")
	}
}
