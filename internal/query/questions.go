package query

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"centratutor/database"
	"centratutor/internal/models"
)

var questionCollection *mongo.Collection = database.OpenCollection(database.Client, "questions")

// ErrEmptyTrackSelection rejects a multi-selection query without tracks.
var ErrEmptyTrackSelection = errors.New("trackIds must contain at least one track")

// QuestionsByFilters returns active questions matching all provided filters.
// With no filters and no limit the whole active collection comes back, so
// callers should pass a limit for open-ended queries.
func QuestionsByFilters(ctx context.Context, f QuestionFilters, limit, offset int64) ([]models.Question, error) {
	opts := options.Find().SetSort(bson.M{"order_index": 1})
	if offset > 0 {
		opts.SetSkip(offset)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := questionCollection.Find(ctx, f.Build(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// QuestionsMultiSelection returns active questions across a required set of
// tracks (OR), optionally intersected with a topic set.
func QuestionsMultiSelection(ctx context.Context, examID, subjectID string, trackIDs, topicIDs []string) ([]models.Question, error) {
	if len(trackIDs) == 0 {
		return nil, ErrEmptyTrackSelection
	}

	filter := bson.M{
		"exam_id":    examID,
		"subject_id": subjectID,
		"track_id":   bson.M{"$in": trackIDs},
		"is_active":  true,
	}
	if len(topicIDs) > 0 {
		filter["topic_id"] = bson.M{"$in": topicIDs}
	}

	cur, err := questionCollection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// SampleQuestions draws up to n random active questions matching the filters
// using the server-side $sample stage, so the full candidate set never
// crosses the wire.
func SampleQuestions(ctx context.Context, f QuestionFilters, n int64) ([]models.Question, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: f.Build()}},
		{{Key: "$sample", Value: bson.M{"size": n}}},
	}
	cur, err := questionCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	questions := []models.Question{}
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// CountQuestions counts active questions matching the filters.
func CountQuestions(ctx context.Context, f QuestionFilters) (int64, error) {
	return questionCollection.CountDocuments(ctx, f.Build())
}
