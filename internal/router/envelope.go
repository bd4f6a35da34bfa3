// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package router

import (
	"net/http"

	"github.com/MKhiriev/campus-ride/internal/apperr"
	"github.com/MKhiriev/campus-ride/internal/utils"
)

// genericInternalMessage is the only message a caller sees for internal
// failures.
const genericInternalMessage = "internal server error"

// SuccessEnvelope is the body of every successful response.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// ErrorEnvelope is the body of every failed response.
type ErrorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// WriteSuccess writes result as a success envelope.
func WriteSuccess(w http.ResponseWriter, result Result) error {
	for _, c := range result.Cookies {
		http.SetCookie(w, c)
	}

	status := result.Status
	if status == 0 {
		status = http.StatusOK
	}

	data := result.Data
	if data == nil {
		data = struct{}{}
	}

	_, err := utils.WriteJSON(w, SuccessEnvelope{Success: true, Message: result.Message, Data: data}, status)
	return err
}

// WriteError writes an error envelope with the given status.
func WriteError(w http.ResponseWriter, status int, message string, fields map[string]string) error {
	if fields == nil {
		fields = map[string]string{}
	}

	_, err := utils.WriteJSON(w, ErrorEnvelope{Success: false, Message: message, Errors: fields}, status)
	return err
}

// WriteAppError writes err as an error envelope. Errors without an
// *apperr.Error in their chain are answered with a generic 500.
func WriteAppError(w http.ResponseWriter, err error) error {
	appErr, ok := apperr.As(err)
	if !ok || appErr.Kind == apperr.KindInternal {
		return WriteError(w, http.StatusInternalServerError, genericInternalMessage, nil)
	}
	return WriteError(w, appErr.Status(), appErr.Message, appErr.Fields)
}
