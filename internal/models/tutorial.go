package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TutorialNodeCategory = "category"
	TutorialNodeTopic    = "topic"
	TutorialNodeContent  = "content"
)

// TutorialNode is one node of the ad-hoc tutorial/skill-up tree. The tree is
// not part of the exam taxonomy: children are resolved by parent_id and a
// delete removes only the node itself, orphaning any children.
type TutorialNode struct {
	ID          primitive.ObjectID `bson:"_id" json:"-"`
	NodeID      string             `bson:"node_id" json:"nodeId"`
	ParentID    string             `bson:"parent_id" json:"parentId"`
	Name        string             `bson:"name" json:"name" validate:"required,max=200"`
	DisplayName string             `bson:"display_name" json:"displayName" validate:"required"`
	Description string             `bson:"description" json:"description"`
	NodeType    string             `bson:"node_type" json:"nodeType" validate:"required,oneof=category topic content"`
	OrderIndex  int                `bson:"order_index" json:"orderIndex"`
	FilePath    string             `bson:"file_path" json:"filePath"`
	FileType    string             `bson:"file_type" json:"fileType"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updatedAt"`
}
