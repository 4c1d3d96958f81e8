package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

// HandleError : пишет ошибку в формате { "detail": "..." }, который ожидает фронтенд
func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Detail string `json:"detail"`
	}{
		Detail: message,
	}

	json.NewEncoder(w).Encode(errorResponse)
}
