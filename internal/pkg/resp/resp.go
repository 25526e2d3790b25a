/*
Package resp provides helper functions for constructing standardized HTTP JSON responses.

It defines a unified JSON response envelope with a business code, message, and
optional data, plus convenience wrappers for success and error responses.
*/
package resp

import (
	"encoding/json"
	"errors"
	"net/http"

	"letteram/internal/pkg/errs"
	"letteram/internal/pkg/logx"
)

// JSONResponse is the response envelope returned to clients.
type JSONResponse struct {
	// Code is the business status code (0 for success, see the errs package).
	Code int `json:"code"`

	// Message is the client-friendly status description or error message.
	Message string `json:"message"`

	// Data is the optional response payload.
	Data any `json:"data,omitempty"`
}

// RespondJSON sets the Content-Type and sends the JSON payload.
func RespondJSON(w http.ResponseWriter, r *http.Request, httpStatus int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")

	response, err := json.Marshal(payload)
	if err != nil {
		logx.Error(
			err,
			"Error encoding JSON response",
			"http_status", httpStatus,
		)

		http.Error(w, "Error encoding JSON response", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(httpStatus)
	w.Write(response)
}

// RespondSuccess sends a successful HTTP response (HTTP 200 OK).
func RespondSuccess(w http.ResponseWriter, r *http.Request, data any) {
	res := JSONResponse{
		Code:    0,
		Message: "success",
		Data:    data,
	}
	RespondJSON(w, r, http.StatusOK, res)
}

// RespondError sends an HTTP response carrying custom error information.
func RespondError(w http.ResponseWriter, r *http.Request, customErr *errs.CustomError) {
	if customErr == nil {
		customErr = errs.NewError(errs.ErrUnknown)
	}

	res := JSONResponse{
		Code:    customErr.Code,
		Message: customErr.Message,
		Data:    nil,
	}
	RespondJSON(w, r, customErr.Status, res)
}

// RespondServiceError translates an error returned by a service into the
// response envelope. Errors that are not CustomError values degrade to
// ErrUnknown with the original error logged.
func RespondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var customErr *errs.CustomError
	if errors.As(err, &customErr) {
		RespondError(w, r, customErr)
		return
	}

	RespondError(w, r, errs.NewError(errs.ErrUnknown, err))
}
