package handlers

import (
	"net/http"
	"os"
	"time"

	"centratutor/database"
	httpClient "centratutor/internal/utility/http"
)

var startedAt = time.Now()

// Health reports process uptime and whether the database answers a ping.
func Health(w http.ResponseWriter, r *http.Request) {
	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	httpClient.RespondSuccess(w, map[string]interface{}{
		"status":      "ok",
		"environment": environment,
		"uptime":      time.Since(startedAt).Round(time.Second).String(),
		"database":    database.Ping(),
		"timestamp":   time.Now().UTC(),
	})
}
