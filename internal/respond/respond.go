// Package respond writes the response envelope every endpoint uses. The
// semantic status code travels in the body for client compatibility and is
// mirrored onto the HTTP transport status.
package respond

import (
	"encoding/json"
	"net/http"
)

type Envelope struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data"`
}

func JSON(w http.ResponseWriter, code int, message string, data interface{}) {
	if data == nil {
		data = struct{}{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Envelope{
		StatusCode: code,
		Message:    message,
		Data:       data,
	})
}

func Internal(w http.ResponseWriter, err error) {
	JSON(w, http.StatusInternalServerError, err.Error(), nil)
}
