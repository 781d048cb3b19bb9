package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TrackTypeWeeks    = "weeks"
	TrackTypeDays     = "days"
	TrackTypeMonths   = "months"
	TrackTypeSemester = "semester"
	TrackTypeYears    = "years"
)

// Track is a time- or year-partitioned unit scoped to one exam+subcategory
// pairing (tracks are not shared across subcategories). Duration, when
// non-zero, bounds the valid period index for content uploads.
type Track struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	TrackID     string             `bson:"track_id" json:"trackId"`
	ExamID      string             `bson:"exam_id" json:"examId" validate:"required"`
	SubCatID    string             `bson:"subcategory_id" json:"subCategoryId" validate:"required"`
	Name        string             `bson:"name" json:"name" validate:"required,max=100"`
	DisplayName string             `bson:"display_name" json:"displayName" validate:"required"`
	TrackType   string             `bson:"track_type" json:"trackType" validate:"required,oneof=weeks days months semester years"`
	Duration    int                `bson:"duration" json:"duration" validate:"min=0"`
	OrderIndex  int                `bson:"order_index" json:"orderIndex"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
