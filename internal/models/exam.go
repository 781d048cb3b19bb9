package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exam is the root of the content taxonomy (e.g. JAMB, WAEC). Name is stored
// uppercase and is globally unique.
type Exam struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	ExamID      string             `bson:"exam_id" json:"examId"`
	Name        string             `bson:"name" json:"name" validate:"required,max=100"`
	DisplayName string             `bson:"display_name" json:"displayName" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Icon        string             `bson:"icon" json:"icon"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
