package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"go.mongodb.org/mongo-driver/bson"

	httpClient "centratutor/internal/utility/http"
)

var validate = validator.New()

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 30*time.Second)
}

// decodeBody parses the JSON request body into dst, answering a 400 itself
// when the payload is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	return true
}

// buildUpdate whitelists the fields of a partial-update body into a $set
// document. allowed maps json field names to their bson counterparts.
func buildUpdate(body map[string]interface{}, allowed map[string]string) bson.M {
	set := bson.M{}
	for jsonName, bsonName := range allowed {
		if value, ok := body[jsonName]; ok {
			set[bsonName] = value
		}
	}
	set["updated_at"] = time.Now().UTC()
	return set
}
