package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Metadata keys recognised by the period-grouping engine. The map is open:
// uploaders may attach anything, only these keys carry grouping semantics.
const (
	MetaDay          = "day"
	MetaWeek         = "week"
	MetaMonth        = "month"
	MetaSemester     = "semester"
	MetaSemesterName = "semesterName"
	MetaYear         = "year"
)

// Content is a single uploadable unit (note, video, json blob) positioned by
// the full taxonomy tuple. Name is unique within its exam/subject/track/
// subcategory scope.
type Content struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	ContentID   string             `bson:"content_id" json:"contentId"`
	ExamID      string             `bson:"exam_id" json:"examId" validate:"required"`
	SubjectID   string             `bson:"subject_id" json:"subjectId" validate:"required"`
	TrackID     string             `bson:"track_id" json:"trackId" validate:"required"`
	SubCatID    string             `bson:"subcategory_id" json:"subCategoryId" validate:"required"`
	TopicID     string             `bson:"topic_id" json:"topicId"`
	Name        string             `bson:"name" json:"name" validate:"required,max=200"`
	DisplayName string             `bson:"display_name" json:"displayName" validate:"required"`
	Description string             `bson:"description" json:"description"`
	OrderIndex  int                `bson:"order_index" json:"orderIndex"`
	Metadata    map[string]string  `bson:"metadata" json:"metadata"`
	FilePath    string             `bson:"file_path" json:"filePath"`
	FileType    string             `bson:"file_type" json:"fileType"`
	FileSize    int64              `bson:"file_size" json:"fileSize"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
