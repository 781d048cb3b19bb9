package handlers

import (
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"centratutor/database"
	"centratutor/internal/models"
	"centratutor/internal/sweeper"
	httpClient "centratutor/internal/utility/http"
)

var subscriptionCollection *mongo.Collection = database.OpenCollection(database.Client, "subscriptions")

// MySubscription returns the calling user's active subscription.
func MySubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	var sub models.Subscription
	err := subscriptionCollection.FindOne(ctx,
		bson.M{"user_id": user.UserID, "active": true},
		options.FindOne().SetSort(bson.M{"expires_at": -1}),
	).Decode(&sub)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			httpClient.RespondError(w, http.StatusNotFound, "No active subscription", nil)
		} else {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving subscription", err)
		}
		return
	}
	httpClient.RespondSuccess(w, sub)
}

// CreateSubscription starts a subscription for the calling user, or extends
// the active one from its current expiry.
func CreateSubscription(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(models.ContextUser).(models.User)
	if !ok {
		httpClient.RespondError(w, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var payload struct {
		PlanCode string `json:"planCode"`
		Days     int    `json:"days"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.Days <= 0 {
		payload.Days = 30
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	now := time.Now().UTC()
	extension := time.Duration(payload.Days) * 24 * time.Hour

	var current models.Subscription
	err := subscriptionCollection.FindOne(ctx,
		bson.M{"user_id": user.UserID, "active": true, "expires_at": bson.M{"$gt": now}},
	).Decode(&current)
	if err == nil {
		update := bson.M{"$set": bson.M{
			"expires_at": current.ExpiresAt.Add(extension),
			"updated_at": now,
		}}
		if _, err := subscriptionCollection.UpdateOne(ctx, bson.M{"subscription_id": current.SubscriptionID}, update); err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error extending subscription", err)
			return
		}
		current.ExpiresAt = current.ExpiresAt.Add(extension)
		current.UpdatedAt = now
		httpClient.RespondSuccess(w, current)
		return
	}
	if err != mongo.ErrNoDocuments {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving subscription", err)
		return
	}

	sub := models.Subscription{
		ID:        primitive.NewObjectID(),
		UserID:    user.UserID,
		PlanCode:  payload.PlanCode,
		Active:    true,
		StartedAt: now,
		ExpiresAt: now.Add(extension),
		CreatedAt: now,
		UpdatedAt: now,
	}
	sub.SubscriptionID = sub.ID.Hex()

	if _, err := subscriptionCollection.InsertOne(ctx, sub); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error creating subscription", err)
		return
	}
	httpClient.RespondCreated(w, sub)
}

// SweepSubscriptions triggers an expiry sweep on demand, outside the
// background schedule.
func SweepSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	deactivated, err := sweeper.DeactivateExpired(ctx)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Sweep failed", err)
		return
	}
	httpClient.RespondSuccess(w, map[string]interface{}{"deactivated": deactivated})
}

func ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	filter := bson.M{}
	if r.URL.Query().Get("active") == "true" {
		filter["active"] = true
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	cur, err := subscriptionCollection.Find(ctx, filter, options.Find().SetSort(bson.M{"expires_at": -1}))
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error listing subscriptions", err)
		return
	}
	defer cur.Close(ctx)

	subs := []models.Subscription{}
	if err := cur.All(ctx, &subs); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error listing subscriptions", err)
		return
	}
	httpClient.RespondSuccess(w, subs)
}
