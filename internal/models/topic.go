package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Topic is an approved subdivision of a subject. The topic list is
// authoritative for content-upload validation: content referencing a topic
// name outside this list is rejected.
type Topic struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	TopicID     string             `bson:"topic_id" json:"topicId"`
	ExamID      string             `bson:"exam_id" json:"examId" validate:"required"`
	SubjectID   string             `bson:"subject_id" json:"subjectId" validate:"required"`
	Name        string             `bson:"name" json:"name" validate:"required,max=200"`
	DisplayName string             `bson:"display_name" json:"displayName" validate:"required"`
	Description string             `bson:"description" json:"description"`
	OrderIndex  int                `bson:"order_index" json:"orderIndex"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
