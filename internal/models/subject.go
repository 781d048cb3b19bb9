package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subject is global per exam. Whether it is navigable under a particular
// subcategory is decided by a SubjectAvailability join record, not by the
// subject itself.
type Subject struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	SubjectID   string             `bson:"subject_id" json:"subjectId"`
	ExamID      string             `bson:"exam_id" json:"examId" validate:"required"`
	Name        string             `bson:"name" json:"name" validate:"required,max=100"`
	DisplayName string             `bson:"display_name" json:"displayName" validate:"required"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}

// SubjectAvailability links a subject to a subcategory it can appear under.
type SubjectAvailability struct {
	ID        primitive.ObjectID `bson:"_id" json:"-"`
	ExamID    string             `bson:"exam_id" json:"examId" validate:"required"`
	SubjectID string             `bson:"subject_id" json:"subjectId" validate:"required"`
	SubCatID  string             `bson:"subcategory_id" json:"subCategoryId" validate:"required"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
