package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"goldsite/internal/forms"

	"go.uber.org/zap"
)

const maxJSONBody = 1 << 20

func formName(path string) string {
	return strings.TrimPrefix(path, "/api/")
}

func (a *API) contact(w http.ResponseWriter, r *http.Request) {
	var c forms.Contact
	if !a.decodeForm(w, r, "contact", &c) {
		return
	}
	a.finishRelayed(w, "contact", a.deps.Forms.SubmitContact(r.Context(), c))
}

func (a *API) apply(w http.ResponseWriter, r *http.Request) {
	var app forms.Application
	if !a.decodeForm(w, r, "apply", &app) {
		return
	}
	a.finishRelayed(w, "apply", a.deps.Forms.SubmitApplication(r.Context(), app))
}

func (a *API) decodeForm(w http.ResponseWriter, r *http.Request, form string, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err := dec.Decode(v); err != nil {
		a.observeForm(form, "invalid")
		writeJSON(w, http.StatusBadRequest, formResponse{Message: "invalid request body"})
		return false
	}
	return true
}

func (a *API) finishRelayed(w http.ResponseWriter, form string, err error) {
	switch {
	case err == nil:
		a.observeForm(form, "ok")
		writeJSON(w, http.StatusOK, formResponse{Success: true})
	case errors.Is(err, forms.ErrInvalid):
		a.observeForm(form, "invalid")
		writeJSON(w, http.StatusBadRequest, formResponse{Message: err.Error()})
	default:
		a.observeForm(form, "error")
		a.logger.Error("form relay failed", zap.String("form", form), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, formResponse{Message: "submission failed, please try again"})
	}
}

// sendCV answers POST /api/send-cv (multipart: name, email, message, cv).
func (a *API) sendCV(w http.ResponseWriter, r *http.Request) {
	const form = "send-cv"

	r.Body = http.MaxBytesReader(w, r.Body, a.deps.MaxUploadBytes)
	if err := r.ParseMultipartForm(a.deps.MaxUploadBytes); err != nil {
		a.observeForm(form, "invalid")
		if errors.Is(err, http.ErrNotMultipart) {
			// A body that is not multipart cannot carry the cv part.
			writeError(w, http.StatusBadRequest, forms.ErrFileRequired.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("cv")
	if errors.Is(err, http.ErrMissingFile) {
		a.observeForm(form, "invalid")
		writeError(w, http.StatusBadRequest, forms.ErrFileRequired.Error())
		return
	}
	if err != nil {
		a.observeForm(form, "invalid")
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		a.observeForm(form, "invalid")
		writeError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	err = a.deps.Forms.SubmitCV(r.Context(), forms.CVSubmission{
		Name:     r.FormValue("name"),
		Email:    r.FormValue("email"),
		Message:  r.FormValue("message"),
		Filename: header.Filename,
		File:     content,
	})
	switch {
	case err == nil:
		a.observeForm(form, "ok")
		writeJSON(w, http.StatusOK, formResponse{Success: true})
	case errors.Is(err, forms.ErrFileRequired), errors.Is(err, forms.ErrInvalid):
		a.observeForm(form, "invalid")
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		a.observeForm(form, "error")
		a.logger.Error("failed to send cv", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to send email")
	}
}
