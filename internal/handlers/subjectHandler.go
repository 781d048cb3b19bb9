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

	"centratutor/database"
	"centratutor/internal/ingest"
	"centratutor/internal/models"
	"centratutor/internal/taxonomy"
	httpClient "centratutor/internal/utility/http"
)

var (
	subjectCollection      *mongo.Collection = database.OpenCollection(database.Client, "subjects")
	availabilityCollection *mongo.Collection = database.OpenCollection(database.Client, "subjectavailability")
)

// GetSubjects lists an exam's active subjects. With ?subCategory=<name> the
// list is restricted to subjects with an availability record under that
// subcategory.
func GetSubjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := taxonomy.ResolveContext(ctx, chi.URLParam(r, "examName"), r.URL.Query().Get("subCategory"), "", "")
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if !result.Resolved {
		httpClient.RespondError(w, http.StatusNotFound, result.MissingSegment+" not found", nil)
		return
	}

	filter := bson.M{"exam_id": result.Context.Exam.ExamID, "is_active": true}
	if subCat := result.Context.SubCategory; subCat != nil {
		linkCur, err := availabilityCollection.Find(ctx, bson.M{
			"exam_id":        result.Context.Exam.ExamID,
			"subcategory_id": subCat.SubCatID,
		})
		if err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subjects", err)
			return
		}
		links := []models.SubjectAvailability{}
		if err := linkCur.All(ctx, &links); err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subjects", err)
			return
		}
		ids := make([]string, 0, len(links))
		for _, link := range links {
			ids = append(ids, link.SubjectID)
		}
		filter["subject_id"] = bson.M{"$in": ids}
	}

	cur, err := subjectCollection.Find(ctx, filter)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subjects", err)
		return
	}
	defer cur.Close(ctx)

	subjects := []models.Subject{}
	if err := cur.All(ctx, &subjects); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subjects", err)
		return
	}
	httpClient.RespondSuccess(w, subjects)
}

func CreateSubject(w http.ResponseWriter, r *http.Request) {
	var subject models.Subject
	if !decodeBody(w, r, &subject) {
		return
	}
	subject.ExamID = chi.URLParam(r, "examId")

	if err := validate.Struct(subject); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyExists, err := subjectCollection.CountDocuments(ctx, bson.M{
		"exam_id": subject.ExamID,
		"name":    subject.Name,
	})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "Subject already exists!", nil)
		return
	}

	subject.ID = primitive.NewObjectID()
	subject.SubjectID = subject.ID.Hex()
	subject.IsActive = true
	subject.CreatedAt = time.Now().UTC()
	subject.UpdatedAt = subject.CreatedAt

	if _, err := subjectCollection.InsertOne(ctx, subject); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, subject)
}

type bulkSubjectItem struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}

// BulkCreateSubjects inserts a batch of subjects under one exam, classifying
// each candidate as created, duplicate or error.
func BulkCreateSubjects(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Subjects []bulkSubjectItem `json:"subjects"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	examID := chi.URLParam(r, "examId")

	rows := make([]ingest.Row, 0, len(payload.Subjects))
	for _, item := range payload.Subjects {
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
				n, err := subjectCollection.CountDocuments(ctx, bson.M{"exam_id": examID, "name": item.Name})
				return n > 0, err
			},
			Insert: func(ctx context.Context) error {
				now := time.Now().UTC()
				subject := models.Subject{
					ID:          primitive.NewObjectID(),
					ExamID:      examID,
					Name:        item.Name,
					DisplayName: item.DisplayName,
					IsActive:    true,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				subject.SubjectID = subject.ID.Hex()
				if subject.DisplayName == "" {
					subject.DisplayName = subject.Name
				}
				_, err := subjectCollection.InsertOne(ctx, subject)
				return err
			},
		})
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	httpClient.RespondSuccess(w, ingest.Run(ctx, rows))
}

type availabilityItem struct {
	SubjectID string `json:"subjectId"`
	SubCatID  string `json:"subCategoryId"`
}

// BulkCreateAvailability seeds the subject↔subcategory join records.
func BulkCreateAvailability(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Availability []availabilityItem `json:"availability"`
	}
	if !decodeBody(w, r, &payload) {
		return
	}
	examID := chi.URLParam(r, "examId")

	rows := make([]ingest.Row, 0, len(payload.Availability))
	for _, item := range payload.Availability {
		item := item
		rows = append(rows, ingest.Row{
			Item: item,
			Validate: func() error {
				if item.SubjectID == "" || item.SubCatID == "" {
					return fmt.Errorf("subjectId and subCategoryId are required")
				}
				return nil
			},
			Exists: func(ctx context.Context) (bool, error) {
				n, err := availabilityCollection.CountDocuments(ctx, bson.M{
					"exam_id":        examID,
					"subject_id":     item.SubjectID,
					"subcategory_id": item.SubCatID,
				})
				return n > 0, err
			},
			Insert: func(ctx context.Context) error {
				_, err := availabilityCollection.InsertOne(ctx, models.SubjectAvailability{
					ID:        primitive.NewObjectID(),
					ExamID:    examID,
					SubjectID: item.SubjectID,
					SubCatID:  item.SubCatID,
					CreatedAt: time.Now().UTC(),
				})
				return err
			},
		})
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	httpClient.RespondSuccess(w, ingest.Run(ctx, rows))
}
