package taxonomy

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"centratutor/internal/models"
)

// TopicValidation is the outcome of checking a candidate topic name against
// the approved topic list of a subject.
type TopicValidation struct {
	IsValid bool          `json:"isValid"`
	TopicID string        `json:"topicId,omitempty"`
	Topic   *models.Topic `json:"topic,omitempty"`
	Message string        `json:"message"`
}

// ValidateTopicForContent checks that an active topic with the given name or
// display name exists under the subject. Content referencing an unapproved
// topic is rejected before insert.
func ValidateTopicForContent(ctx context.Context, examID, subjectID, topicName string) (TopicValidation, error) {
	if topicName == "" {
		return TopicValidation{Message: "topic name is required"}, nil
	}

	nameMatch := caseInsensitiveExact(topicName)
	var topic models.Topic
	err := topicCollection.FindOne(ctx, bson.M{
		"exam_id":    examID,
		"subject_id": subjectID,
		"is_active":  true,
		"$or": bson.A{
			bson.M{"name": nameMatch},
			bson.M{"display_name": nameMatch},
		},
	}).Decode(&topic)
	if err == mongo.ErrNoDocuments {
		return TopicValidation{
			Message: fmt.Sprintf("%q is not an approved topic for this subject", topicName),
		}, nil
	}
	if err != nil {
		return TopicValidation{}, err
	}

	return TopicValidation{
		IsValid: true,
		TopicID: topic.TopicID,
		Topic:   &topic,
		Message: "topic is approved",
	}, nil
}
