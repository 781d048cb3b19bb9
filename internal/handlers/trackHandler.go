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

var trackCollection *mongo.Collection = database.OpenCollection(database.Client, "tracks")

func GetTracks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := taxonomy.ResolveContext(ctx, chi.URLParam(r, "examName"), chi.URLParam(r, "subCategoryName"), "", "")
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if !result.Resolved {
		httpClient.RespondError(w, http.StatusNotFound, result.MissingSegment+" not found", nil)
		return
	}

	cur, err := trackCollection.Find(ctx, bson.M{
		"exam_id":        result.Context.Exam.ExamID,
		"subcategory_id": result.Context.SubCategory.SubCatID,
		"is_active":      true,
	}, options.Find().SetSort(bson.M{"order_index": 1}))
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching tracks", err)
		return
	}
	defer cur.Close(ctx)

	tracks := []models.Track{}
	if err := cur.All(ctx, &tracks); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching tracks", err)
		return
	}
	httpClient.RespondSuccess(w, tracks)
}

func CreateTrack(w http.ResponseWriter, r *http.Request) {
	var track models.Track
	if !decodeBody(w, r, &track) {
		return
	}

	if err := validate.Struct(track); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyExists, err := trackCollection.CountDocuments(ctx, bson.M{
		"exam_id":        track.ExamID,
		"subcategory_id": track.SubCatID,
		"name":           track.Name,
	})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "Track already exists!", nil)
		return
	}

	track.ID = primitive.NewObjectID()
	track.TrackID = track.ID.Hex()
	track.IsActive = true
	track.CreatedAt = time.Now().UTC()
	track.UpdatedAt = track.CreatedAt

	if _, err := trackCollection.InsertOne(ctx, track); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, track)
}

type bulkTrackItem struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	TrackType   string `json:"trackType"`
	Duration    int    `json:"duration"`
	OrderIndex  int    `json:"orderIndex"`
}

func BulkCreateTracks(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExamID   string          `json:"examId"`
		SubCatID string          `json:"subCategoryId"`
		Tracks   []bulkTrackItem `json:"tracks"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	if payload.ExamID == "" || payload.SubCatID == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "examId and subCategoryId are required", nil)
		return
	}

	rows := make([]ingest.Row, 0, len(payload.Tracks))
	for _, item := range payload.Tracks {
		item := item
		rows = append(rows, ingest.Row{
			Item: item,
			Validate: func() error {
				if item.Name == "" {
					return fmt.Errorf("name is required")
				}
				if item.TrackType == "" {
					return fmt.Errorf("trackType is required")
				}
				return nil
			},
			Exists: func(ctx context.Context) (bool, error) {
				n, err := trackCollection.CountDocuments(ctx, bson.M{
					"exam_id":        payload.ExamID,
					"subcategory_id": payload.SubCatID,
					"name":           item.Name,
				})
				return n > 0, err
			},
			Insert: func(ctx context.Context) error {
				now := time.Now().UTC()
				track := models.Track{
					ID:          primitive.NewObjectID(),
					ExamID:      payload.ExamID,
					SubCatID:    payload.SubCatID,
					Name:        item.Name,
					DisplayName: item.DisplayName,
					TrackType:   item.TrackType,
					Duration:    item.Duration,
					OrderIndex:  item.OrderIndex,
					IsActive:    true,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				track.TrackID = track.ID.Hex()
				if track.DisplayName == "" {
					track.DisplayName = track.Name
				}
				_, err := trackCollection.InsertOne(ctx, track)
				return err
			},
		})
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	httpClient.RespondSuccess(w, ingest.Run(ctx, rows))
}

func UpdateTrack(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}
	set := buildUpdate(body, map[string]string{
		"name":        "name",
		"displayName": "display_name",
		"trackType":   "track_type",
		"duration":    "duration",
		"orderIndex":  "order_index",
		"isActive":    "is_active",
	})

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := trackCollection.UpdateOne(ctx,
		bson.M{"track_id": chi.URLParam(r, "id")},
		bson.M{"$set": set},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating track", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Track not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

func DeleteTrack(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := trackCollection.UpdateOne(ctx,
		bson.M{"track_id": chi.URLParam(r, "id")},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting track", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Track not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

// HardDeleteTrack physically removes the track document. Content under the
// track is not cascaded.
func HardDeleteTrack(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := trackCollection.DeleteOne(ctx, bson.M{"track_id": chi.URLParam(r, "id")})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting track", err)
		return
	}
	if result.DeletedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Track not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}
