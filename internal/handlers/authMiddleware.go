package handlers

import (
	"context"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"centratutor/internal/models"
	"centratutor/internal/utility"
	httpClient "centratutor/internal/utility/http"
)

func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return header
	}
	return r.Header.Get("x-auth-token")
}

// Authentication validates the bearer token, loads the user document and
// attaches it to the request context.
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientToken := bearerToken(r)
		if clientToken == "" {
			httpClient.RespondError(w, http.StatusUnauthorized, utility.ErrNoToken, nil)
			return
		}

		claims, errMsg := utility.ValidateToken(clientToken)
		if errMsg != "" {
			httpClient.RespondError(w, http.StatusUnauthorized, errMsg, nil)
			return
		}

		ctx, cancel := requestContext(r)
		defer cancel()

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"user_id": claims.Uid}).Decode(&user)
		if err != nil {
			httpClient.RespondError(w, http.StatusUnauthorized, utility.ErrUserNotFound, nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), models.ContextUser, user)))
	})
}

// AdminOnly gates a route to users with the admin role. It must sit inside
// Authentication.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := r.Context().Value(models.ContextUser).(models.User)
		if !ok || user.Role != models.RoleAdmin {
			httpClient.RespondError(w, http.StatusForbidden, "Admin access required", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}
