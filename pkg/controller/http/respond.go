package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/robofest-ru/robofest/pkg/domain/model"
	"github.com/robofest-ru/robofest/pkg/usecase"
	"github.com/robofest-ru/robofest/pkg/utils/errutil"
	"github.com/robofest-ru/robofest/pkg/utils/safe"
)

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		errutil.LogHTTP(r.Context(), err, http.StatusInternalServerError)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

type errorResponse struct {
	Error  string             `json:"error"`
	Fields []model.FieldError `json:"fields,omitempty"`
}

// respondError maps domain and use case sentinels onto HTTP status codes
// and writes a JSON error body. Validation failures carry their
// field-attributed details.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrValidation),
		errors.Is(err, model.ErrScheduleIncomplete),
		errors.Is(err, model.ErrScheduleNotFuture),
		errors.Is(err, model.ErrInvalidFieldName),
		errors.Is(err, model.ErrInvalidFieldType),
		errors.Is(err, model.ErrSelectWithoutOptions),
		errors.Is(err, usecase.ErrUnsupportedMedia):
		status = http.StatusBadRequest
	case errors.Is(err, usecase.ErrUploadTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, model.ErrRegistrationClosed),
		errors.Is(err, model.ErrCaptchaRequired),
		errors.Is(err, usecase.ErrPermissionDenied),
		errors.Is(err, usecase.ErrUserInactive):
		status = http.StatusForbidden
	case errors.Is(err, usecase.ErrInvalidCredentials),
		errors.Is(err, usecase.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrSubmissionInFlight),
		errors.Is(err, usecase.ErrSeasonYearTaken),
		errors.Is(err, usecase.ErrSeasonArchived),
		errors.Is(err, usecase.ErrDuplicateFieldName),
		errors.Is(err, usecase.ErrSlugTaken):
		status = http.StatusConflict
	case errors.Is(err, usecase.ErrVKNotConfigured),
		errors.Is(err, usecase.ErrCaptchaNotConfigured),
		errors.Is(err, usecase.ErrMediaNotConfigured):
		status = http.StatusPreconditionFailed
	}

	errutil.LogHTTP(r.Context(), err, status)

	body := errorResponse{Error: rootMessage(err)}
	var ge *goerr.Error
	if errors.As(err, &ge) {
		if fields, ok := ge.Values()[model.FieldErrorsKey].([]model.FieldError); ok {
			body.Fields = fields
		}
	}
	respondJSON(w, r, status, body)
}

// rootMessage returns the innermost sentinel message without the wrap
// chain, keeping internals out of client responses
func rootMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func decodeJSON(r *http.Request, out any) error {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		return goerr.Wrap(model.ErrValidation, "malformed request body")
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, goerr.Wrap(model.ErrValidation, "invalid id")
	}
	return id, nil
}
