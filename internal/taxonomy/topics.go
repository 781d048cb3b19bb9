package taxonomy

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"centratutor/internal/models"
)

// Count kinds for JoinTopicCounts.
const (
	CountContent   = "content"
	CountQuestions = "questions"
)

// TopicWithCount is a topic annotated with how many active content rows or
// questions sit under it for the queried track.
type TopicWithCount struct {
	models.Topic
	ContentCount  int64 `json:"contentCount,omitempty"`
	QuestionCount int64 `json:"questionCount,omitempty"`
}

type topicGroup struct {
	TopicID string `bson:"_id"`
	Count   int64  `bson:"count"`
}

func countByTopic(ctx context.Context, coll *mongo.Collection, match bson.M) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": "$topic_id", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := make(map[string]int64)
	for cur.Next(ctx) {
		var group topicGroup
		if err := cur.Decode(&group); err != nil {
			return nil, err
		}
		if group.TopicID != "" {
			counts[group.TopicID] = group.Count
		}
	}
	return counts, cur.Err()
}

func activeTopicsForSubject(ctx context.Context, subjectID string) ([]models.Topic, error) {
	cur, err := topicCollection.Find(ctx, bson.M{"subject_id": subjectID, "is_active": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	topics := []models.Topic{}
	if err := cur.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}

// JoinTopicCounts joins per-topic counts back onto the topic list, drops
// topics with zero matching items, and orders the result by order_index.
func JoinTopicCounts(topics []models.Topic, counts map[string]int64, kind string) []TopicWithCount {
	joined := []TopicWithCount{}
	for _, topic := range topics {
		n, ok := counts[topic.TopicID]
		if !ok || n == 0 {
			continue
		}
		entry := TopicWithCount{Topic: topic}
		if kind == CountQuestions {
			entry.QuestionCount = n
		} else {
			entry.ContentCount = n
		}
		joined = append(joined, entry)
	}
	sort.SliceStable(joined, func(i, j int) bool {
		return joined[i].OrderIndex < joined[j].OrderIndex
	})
	return joined
}

// TopicsWithContentForTrack lists the subject's topics that have at least one
// active content row under the given track and subcategory, with counts.
func TopicsWithContentForTrack(ctx context.Context, examID, subjectID, trackID, subCatID string) ([]TopicWithCount, error) {
	counts, err := countByTopic(ctx, contentCollection, bson.M{
		"exam_id":        examID,
		"subject_id":     subjectID,
		"track_id":       trackID,
		"subcategory_id": subCatID,
		"is_active":      true,
	})
	if err != nil {
		return nil, err
	}

	topics, err := activeTopicsForSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return JoinTopicCounts(topics, counts, CountContent), nil
}

// TopicsWithQuestionsForTrack is the question-side variant. Past questions
// are not subcategory-partitioned, so only three keys apply.
func TopicsWithQuestionsForTrack(ctx context.Context, examID, subjectID, trackID string) ([]TopicWithCount, error) {
	counts, err := countByTopic(ctx, questionCollection, bson.M{
		"exam_id":    examID,
		"subject_id": subjectID,
		"track_id":   trackID,
		"is_active":  true,
	})
	if err != nil {
		return nil, err
	}

	topics, err := activeTopicsForSubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	return JoinTopicCounts(topics, counts, CountQuestions), nil
}
