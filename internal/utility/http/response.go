package http

import (
	"encoding/json"
	"net/http"

	"centratutor/internal/logger"
)

type jsonResponse struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondSuccess(w http.ResponseWriter, data interface{}) {
	response := &jsonResponse{
		Success: true,
		Code:    http.StatusOK,
		Message: "Success",
		Data:    data,
	}
	sendJSONResponse(w, http.StatusOK, response)
}

// RespondCreated sends a 201 with the created resource.
func RespondCreated(w http.ResponseWriter, data interface{}) {
	response := &jsonResponse{
		Success: true,
		Code:    http.StatusCreated,
		Message: "Created",
		Data:    data,
	}
	sendJSONResponse(w, http.StatusCreated, response)
}

// RespondError sends an error JSON response.
func RespondError(w http.ResponseWriter, code int, message string, err error) {
	if err != nil {
		logger.Errorf("%s: %v", message, err)
	}
	response := &jsonResponse{
		Success: false,
		Code:    code,
		Message: message,
	}
	sendJSONResponse(w, code, response)
}

// RespondRaw writes an arbitrary payload without the standard envelope. Used
// by the export endpoint, which promises a bare document shape.
func RespondRaw(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
	}
}

func sendJSONResponse(w http.ResponseWriter, code int, response *jsonResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Errorf("Failed to encode response: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
