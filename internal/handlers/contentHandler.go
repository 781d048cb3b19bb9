package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"centratutor/database"
	"centratutor/internal/ingest"
	"centratutor/internal/models"
	"centratutor/internal/query"
	"centratutor/internal/storage"
	"centratutor/internal/taxonomy"
	httpClient "centratutor/internal/utility/http"
)

var contentCollection *mongo.Collection = database.OpenCollection(database.Client, "contents")

func contentFiltersFromQuery(values url.Values) query.ContentFilters {
	f := query.ContentFilters{
		ExamID:    values.Get("examId"),
		SubjectID: values.Get("subjectId"),
		TrackID:   values.Get("trackId"),
		SubCatID:  values.Get("subCategoryId"),
		TopicID:   values.Get("topicId"),
	}
	if raw := values.Get("topicIds"); raw != "" {
		f.TopicIDs = strings.Split(raw, ",")
	}
	return f
}

// GetContent lists content by filters. With ?groupBy=<period> the flat list
// is folded into sorted period groups instead.
func GetContent(w http.ResponseWriter, r *http.Request) {
	filters := contentFiltersFromQuery(r.URL.Query())
	limit, offset, err := query.ParseLimitOffset(r.URL.Query())
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	groupBy := r.URL.Query().Get("groupBy")
	if groupBy != "" && !query.ValidPeriods[groupBy] {
		httpClient.RespondError(w, http.StatusBadRequest, fmt.Sprintf("invalid groupBy %q", groupBy), nil)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := query.ContentByFilters(ctx, filters, limit, offset)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching content", err)
		return
	}

	if groupBy != "" {
		httpClient.RespondSuccess(w, query.GroupContentByPeriod(items, groupBy))
		return
	}
	httpClient.RespondSuccess(w, items)
}

// GroupedContent partitions the filtered content set by topic.
func GroupedContent(w http.ResponseWriter, r *http.Request) {
	filters := contentFiltersFromQuery(r.URL.Query())

	ctx, cancel := requestContext(r)
	defer cancel()

	items, err := query.ContentByFilters(ctx, filters, 0, 0)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching content", err)
		return
	}
	httpClient.RespondSuccess(w, query.GroupContentByTopic(items))
}

// loadTrack fetches the track a content row claims to live in.
func loadTrack(ctx context.Context, trackID string) (models.Track, error) {
	var track models.Track
	err := trackCollection.FindOne(ctx, bson.M{"track_id": trackID, "is_active": true}).Decode(&track)
	return track, err
}

// checkContentConflicts guards the two uniqueness rules for a content row in
// its exam/subject/track/subcategory scope: no duplicate name, and no second
// row claiming the same period slot. Returns a client message when a rule is
// violated, empty when clear.
func checkContentConflicts(ctx context.Context, c models.Content, track models.Track) (string, error) {
	scope := bson.M{
		"exam_id":        c.ExamID,
		"subject_id":     c.SubjectID,
		"track_id":       c.TrackID,
		"subcategory_id": c.SubCatID,
		"is_active":      true,
	}

	dup, err := contentCollection.CountDocuments(ctx, contentKeyFilter(c))
	if err != nil {
		return "", err
	}
	if dup > 0 {
		return "Content with this name already exists in this scope", nil
	}

	period := ingest.PeriodKeyForTrackType(track.TrackType)
	if period == "" {
		return "", nil
	}
	claimed, ok := query.PeriodValue(c, period)
	if !ok {
		return "", nil
	}

	cur, err := contentCollection.Find(ctx, scope)
	if err != nil {
		return "", err
	}
	defer cur.Close(ctx)

	var existing []models.Content
	if err := cur.All(ctx, &existing); err != nil {
		return "", err
	}
	for _, other := range existing {
		if n, ok := query.PeriodValue(other, period); ok && n == claimed {
			return fmt.Sprintf("%s %d is already taken by %q", period, claimed, other.Name), nil
		}
	}
	return "", nil
}

// contentKeyFilter is the natural key an active content row occupies in its
// exam/subject/track/subcategory scope. Soft-deleted rows release the key.
func contentKeyFilter(c models.Content) bson.M {
	return bson.M{
		"exam_id":        c.ExamID,
		"subject_id":     c.SubjectID,
		"track_id":       c.TrackID,
		"subcategory_id": c.SubCatID,
		"name":           c.Name,
		"is_active":      true,
	}
}

// contentAdmitFunc runs the admission pipeline for one candidate row.
type contentAdmitFunc func(ctx context.Context, c *models.Content) (status int, message string, err error)

// newContentRow wires one bulk candidate through the admission pipeline
// before insert, so every write path enforces the same topic, period-bound
// and conflict rules as the single-create endpoint.
func newContentRow(item models.Content, admit contentAdmitFunc) ingest.Row {
	return ingest.Row{
		Item: item,
		Validate: func() error {
			return validate.Struct(item)
		},
		Exists: func(ctx context.Context) (bool, error) {
			n, err := contentCollection.CountDocuments(ctx, contentKeyFilter(item))
			return n > 0, err
		},
		Insert: func(ctx context.Context) error {
			_, message, err := admit(ctx, &item)
			if err != nil {
				return err
			}
			if message != "" {
				return fmt.Errorf("%s", message)
			}
			item.ID = primitive.NewObjectID()
			item.ContentID = item.ID.Hex()
			item.IsActive = true
			item.CreatedAt = time.Now().UTC()
			item.UpdatedAt = item.CreatedAt
			_, err = contentCollection.InsertOne(ctx, item)
			return err
		},
	}
}

// prepareContent runs the full admission pipeline for one content row:
// topic integrity, period bound, and scope conflicts. A non-empty message
// means the row must be rejected with the given status.
func prepareContent(ctx context.Context, c *models.Content) (status int, message string, err error) {
	if c.TopicID != "" {
		n, err := topicCollection.CountDocuments(ctx, bson.M{
			"topic_id":   c.TopicID,
			"exam_id":    c.ExamID,
			"subject_id": c.SubjectID,
			"is_active":  true,
		})
		if err != nil {
			return 0, "", err
		}
		if n == 0 {
			return http.StatusBadRequest, "Topic does not belong to this exam and subject", nil
		}
	}

	track, err := loadTrack(ctx, c.TrackID)
	if err == mongo.ErrNoDocuments {
		return http.StatusBadRequest, "Track not found", nil
	}
	if err != nil {
		return 0, "", err
	}

	if err := ingest.ValidatePeriodBound(track, c.Metadata, c.Name); err != nil {
		return http.StatusBadRequest, err.Error(), nil
	}

	conflict, err := checkContentConflicts(ctx, *c, track)
	if err != nil {
		return 0, "", err
	}
	if conflict != "" {
		return http.StatusConflict, conflict, nil
	}
	return 0, "", nil
}

func CreateContent(w http.ResponseWriter, r *http.Request) {
	var content models.Content
	if !decodeBody(w, r, &content) {
		return
	}
	if err := validate.Struct(content); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	status, message, err := prepareContent(ctx, &content)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if message != "" {
		httpClient.RespondError(w, status, message, nil)
		return
	}

	content.ID = primitive.NewObjectID()
	content.ContentID = content.ID.Hex()
	content.IsActive = true
	content.CreatedAt = time.Now().UTC()
	content.UpdatedAt = content.CreatedAt

	if _, err := contentCollection.InsertOne(ctx, content); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, content)
}

// BulkContent ingests content rows independently; a bad row lands in the
// errors bucket without sinking its siblings.
func BulkContent(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Contents []models.Content `json:"contents"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	rows := make([]ingest.Row, 0, len(payload.Contents))
	for _, item := range payload.Contents {
		rows = append(rows, newContentRow(item, prepareContent))
	}

	httpClient.RespondSuccess(w, ingest.Run(ctx, rows))
}

type bulkValidatedItem struct {
	models.Content
	Topic string `json:"topic"`
}

// BulkContentValidated is the all-or-nothing variant: every topic name in
// the batch must resolve before a single row is written.
func BulkContentValidated(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ExamID    string              `json:"examId"`
		SubjectID string              `json:"subjectId"`
		Contents  []bulkValidatedItem `json:"contents"`
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

	topicNames := make([]string, 0, len(payload.Contents))
	for _, item := range payload.Contents {
		topicNames = append(topicNames, item.Topic)
	}

	resolvedIDs := map[string]string{}
	report := ingest.ValidateTopics(topicNames, func(name string) (string, bool) {
		validation, err := taxonomy.ValidateTopicForContent(ctx, payload.ExamID, payload.SubjectID, name)
		if err != nil || !validation.IsValid {
			return "", false
		}
		resolvedIDs[strings.ToLower(strings.TrimSpace(name))] = validation.TopicID
		return validation.TopicID, true
	})

	if !report.Valid() {
		httpClient.RespondRaw(w, http.StatusBadRequest, map[string]interface{}{
			"success":    false,
			"message":    "Some topics do not exist for this subject",
			"validation": report,
		})
		return
	}

	rows := make([]ingest.Row, 0, len(payload.Contents))
	for _, item := range payload.Contents {
		content := item.Content
		content.ExamID = payload.ExamID
		content.SubjectID = payload.SubjectID
		content.TopicID = resolvedIDs[strings.ToLower(strings.TrimSpace(item.Topic))]
		rows = append(rows, newContentRow(content, prepareContent))
	}

	httpClient.RespondSuccess(w, ingest.Run(ctx, rows))
}

// UploadContentMedia streams a multipart file to object storage and attaches
// the resulting path to the content row named by the contentId form field.
func UploadContentMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Invalid multipart form", err)
		return
	}
	contentID := r.FormValue("contentId")
	if contentID == "" {
		httpClient.RespondError(w, http.StatusBadRequest, "contentId field is required", nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "file field is required", err)
		return
	}
	defer file.Close()

	ctx, cancel := requestContext(r)
	defer cancel()

	var content models.Content
	if err := contentCollection.FindOne(ctx, bson.M{"content_id": contentID}).Decode(&content); err != nil {
		if err == mongo.ErrNoDocuments {
			httpClient.RespondError(w, http.StatusNotFound, "Content not found", nil)
		} else {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error retrieving content", err)
		}
		return
	}

	bucket := os.Getenv("AWS_BUCKET_NAME")
	if bucket == "" {
		httpClient.RespondError(w, http.StatusInternalServerError, "Storage is not configured", nil)
		return
	}
	sess, err := storage.NewSession()
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Storage is not configured", err)
		return
	}

	key := fmt.Sprintf("content/%s/%s", contentID, header.Filename)
	contentType := header.Header.Get("Content-Type")
	if err := storage.UploadObject(sess, bucket, key, contentType, file); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	update := bson.M{
		"file_path":  key,
		"file_type":  contentType,
		"file_size":  header.Size,
		"updated_at": time.Now().UTC(),
	}
	if _, err := contentCollection.UpdateOne(ctx, bson.M{"content_id": contentID}, bson.M{"$set": update}); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating content", err)
		return
	}

	httpClient.RespondSuccess(w, map[string]interface{}{
		"contentId": contentID,
		"filePath":  key,
		"fileType":  contentType,
		"fileSize":  header.Size,
	})
}

func UpdateContent(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}
	set := buildUpdate(body, map[string]string{
		"name":        "name",
		"displayName": "display_name",
		"description": "description",
		"orderIndex":  "order_index",
		"metadata":    "metadata",
		"topicId":     "topic_id",
		"isActive":    "is_active",
	})

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := contentCollection.UpdateOne(ctx,
		bson.M{"content_id": chi.URLParam(r, "id")},
		bson.M{"$set": set},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating content", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Content not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

func DeleteContent(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := contentCollection.UpdateOne(ctx,
		bson.M{"content_id": chi.URLParam(r, "id")},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting content", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Content not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}
