package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription deactivation is a one-way transition: the sweeper (or a manual
// sweep) flips active to false once expires_at has passed and nothing turns
// it back on except a new payment extending expires_at.
type Subscription struct {
	ID             primitive.ObjectID `bson:"_id" json:"-"`
	SubscriptionID string             `bson:"subscription_id" json:"subscriptionId"`
	UserID         string             `bson:"user_id" json:"userId" validate:"required"`
	PlanCode       string             `bson:"plan_code" json:"planCode"`
	Active         bool               `bson:"active" json:"active"`
	StartedAt      time.Time          `bson:"started_at" json:"startedAt"`
	ExpiresAt      time.Time          `bson:"expires_at" json:"expiresAt"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}
