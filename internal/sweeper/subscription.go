package sweeper

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"centratutor/database"
)

var subscriptionCollection *mongo.Collection = database.OpenCollection(database.Client, "subscriptions")

// ExpiredFilter matches subscriptions that are still marked active although
// their expiry has passed.
func ExpiredFilter(now time.Time) bson.M {
	return bson.M{
		"active":     true,
		"expires_at": bson.M{"$lt": now},
	}
}

// DeactivateExpired flips expired-but-active subscriptions to inactive.
// Deactivation is a one-way transition, so re-running the sweep is a no-op
// for rows already processed.
func DeactivateExpired(ctx context.Context) (int64, error) {
	now := time.Now().UTC()
	result, err := subscriptionCollection.UpdateMany(ctx,
		ExpiredFilter(now),
		bson.M{"$set": bson.M{"active": false, "updated_at": now}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

// NewHourly and NewDaily build the two standing subscription sweepers. They
// run on independent schedules with no coordination; double-processing is
// harmless because deactivation is monotone.
func NewHourly() *Sweeper {
	return New("subscription-hourly", time.Hour, DeactivateExpired)
}

func NewDaily() *Sweeper {
	return New("subscription-daily", 24*time.Hour, DeactivateExpired)
}
