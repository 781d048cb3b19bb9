package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type contextKey string

// ContextUser is the request-context key the auth middleware stores the
// resolved user under.
const ContextUser contextKey = "user"

type User struct {
	ID           primitive.ObjectID `bson:"_id" json:"-"`
	UserID       string             `bson:"user_id" json:"userId"`
	Email        *string            `bson:"email" json:"email" validate:"email,required"`
	Name         *string            `bson:"name" json:"name" validate:"required,max=100"`
	Password     *string            `bson:"password" json:"password,omitempty" validate:"required,min=6"`
	Role         string             `bson:"role" json:"role" validate:"omitempty,oneof=user admin"`
	Token        *string            `bson:"token" json:"token,omitempty"`
	RefreshToken *string            `bson:"refresh_token" json:"refreshToken,omitempty"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}
