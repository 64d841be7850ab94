package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"call-insights/internal/models"
)

// maxRequestBody bounds JSON request bodies
const maxRequestBody = 1 << 20

// responder carries the JSON helpers shared by every handler
type responder struct {
	logger *log.Logger
}

func (h responder) sendJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Printf("Failed to encode JSON: %v", err)
	}
}

func (h responder) sendError(w http.ResponseWriter, status int, message string) {
	h.sendJSON(w, status, models.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Status:  status,
	})
}

// decodeJSON reads a bounded JSON body into dst, writing a 400 on failure
func (h responder) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.sendError(w, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// getIntQueryParam returns the non-negative integer query parameter key, or defaultValue when absent
func getIntQueryParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}
	intValue, err := strconv.Atoi(value)
	if err != nil || intValue < 0 {
		return 0, &paramError{key: key, value: value}
	}
	return intValue, nil
}

func getBoolQueryParam(r *http.Request, key string, defaultValue bool) (bool, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, &paramError{key: key, value: value}
	}
	return boolValue, nil
}

type paramError struct {
	key   string
	value string
}

func (e *paramError) Error() string {
	return "invalid value for " + e.key + ": " + strconv.Quote(e.value)
}
