package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"centratutor/database"
	"centratutor/internal/ingest"
	"centratutor/internal/models"
	"centratutor/internal/taxonomy"
	httpClient "centratutor/internal/utility/http"
)

var topicCollection *mongo.Collection = database.OpenCollection(database.Client, "topics")

func GetTopics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := taxonomy.ResolveContext(ctx, chi.URLParam(r, "examName"), "", chi.URLParam(r, "subjectName"), "")
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if !result.Resolved {
		httpClient.RespondError(w, http.StatusNotFound, result.MissingSegment+" not found", nil)
		return
	}

	cur, err := topicCollection.Find(ctx, bson.M{
		"subject_id": result.Context.Subject.SubjectID,
		"is_active":  true,
	}, options.Find().SetSort(bson.M{"order_index": 1}))
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching topics", err)
		return
	}
	defer cur.Close(ctx)

	topics := []models.Topic{}
	if err := cur.All(ctx, &topics); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching topics", err)
		return
	}
	httpClient.RespondSuccess(w, topics)
}

func CreateTopic(w http.ResponseWriter, r *http.Request) {
	var topic models.Topic
	if !decodeBody(w, r, &topic) {
		return
	}

	if err := validate.Struct(topic); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyExists, err := topicCollection.CountDocuments(ctx, bson.M{
		"exam_id":    topic.ExamID,
		"subject_id": topic.SubjectID,
		"name":       topic.Name,
	})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "Topic already exists!", nil)
		return
	}

	topic.ID = primitive.NewObjectID()
	topic.TopicID = topic.ID.Hex()
	topic.IsActive = true
	topic.CreatedAt = time.Now().UTC()
	topic.UpdatedAt = topic.CreatedAt

	if _, err := topicCollection.InsertOne(ctx, topic); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, topic)
}

type bulkTopicItem struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	OrderIndex  int    `json:"orderIndex"`
}

func BulkCreateTopics(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExamID    string          `json:"examId"`
		SubjectID string          `json:"subjectId"`
		Topics    []bulkTopicItem `json:"topics"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.ExamID == "" || payload.SubjectID == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "examId and subjectId are required", nil)
		return
	}

	rows := make([]ingest.Row, 0, len(payload.Topics))
	for _, item := range payload.Topics {
		item := item
		rows = append(rows, ingest.Row{
			Item: item,
			Validate: func() error {
				if item.Name == "" {
					return fmt.Errorf("name is required")
				}
				return nil
			},
			Exists: func(ctx context.Context) (bool, error) {
				n, err := topicCollection.CountDocuments(ctx, bson.M{
					"exam_id":    payload.ExamID,
					"subject_id": payload.SubjectID,
					"name":       item.Name,
				})
				return n > 0, err
			},
			Insert: func(ctx context.Context) error {
				now := time.Now().UTC()
				topic := models.Topic{
					ID:          primitive.NewObjectID(),
					ExamID:      payload.ExamID,
					SubjectID:   payload.SubjectID,
					Name:        item.Name,
					DisplayName: item.DisplayName,
					Description: item.Description,
					OrderIndex:  item.OrderIndex,
					IsActive:    true,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				topic.TopicID = topic.ID.Hex()
				if topic.DisplayName == "" {
					topic.DisplayName = topic.Name
				}
				_, err := topicCollection.InsertOne(ctx, topic)
				return err
			},
		})
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	httpClient.RespondSuccess(w, ingest.Run(ctx, rows))
}

func UpdateTopic(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}
	set := buildUpdate(body, map[string]string{
		"name":        "name",
		"displayName": "display_name",
		"description": "description",
		"orderIndex":  "order_index",
		"isActive":    "is_active",
	})

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := topicCollection.UpdateOne(ctx,
		bson.M{"topic_id": chi.URLParam(r, "id")},
		bson.M{"$set": set},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating topic", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Topic not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

func DeleteTopic(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := topicCollection.UpdateOne(ctx,
		bson.M{"topic_id": chi.URLParam(r, "id")},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting topic", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Topic not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

// ValidateTopic answers whether a topic name is approved for content upload
// under a subject.
func ValidateTopic(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExamID    string `json:"examId"`
		SubjectID string `json:"subjectId"`
		TopicName string `json:"topicName"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.ExamID == "" || payload.SubjectID == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "examId and subjectId are required", nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	validation, err := taxonomy.ValidateTopicForContent(ctx, payload.ExamID, payload.SubjectID, payload.TopicName)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondSuccess(w, validation)
}
