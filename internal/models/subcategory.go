package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	ContentTypeJSON  = "json"
	ContentTypeMedia = "media"
)

// SubCategory is a content channel under an exam, e.g. "pastquestions" or
// "notes". Name is stored lowercase.
type SubCategory struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	SubCatID    string             `bson:"subcategory_id" json:"subCategoryId"`
	ExamID      string             `bson:"exam_id" json:"examId" validate:"required"`
	Name        string             `bson:"name" json:"name" validate:"required,max=100"`
	DisplayName string             `bson:"display_name" json:"displayName" validate:"required"`
	RoutePath   string             `bson:"route_path" json:"routePath"`
	ContentType string             `bson:"content_type" json:"contentType" validate:"required,oneof=json media"`
	OrderIndex  int                `bson:"order_index" json:"orderIndex"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
