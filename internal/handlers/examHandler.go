package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"centratutor/database"
	"centratutor/internal/models"
	"centratutor/internal/taxonomy"
	httpClient "centratutor/internal/utility/http"
)

var examCollection *mongo.Collection = database.OpenCollection(database.Client, "exams")

func GetExams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	cur, err := examCollection.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching exams", err)
		return
	}
	defer cur.Close(ctx)

	exams := []models.Exam{}
	if err := cur.All(ctx, &exams); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching exams", err)
		return
	}
	httpClient.RespondSuccess(w, exams)
}

func CreateExam(w http.ResponseWriter, r *http.Request) {
	var exam models.Exam
	if !decodeBody(w, r, &exam) {
		return
	}

	exam.Name = taxonomy.NormalizeExamName(exam.Name)
	if err := validate.Struct(exam); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyExists, err := examCollection.CountDocuments(ctx, bson.M{"name": exam.Name})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "Exam already exists!", nil)
		return
	}

	exam.ID = primitive.NewObjectID()
	exam.ExamID = exam.ID.Hex()
	exam.IsActive = true
	exam.CreatedAt = time.Now().UTC()
	exam.UpdatedAt = exam.CreatedAt

	if _, err := examCollection.InsertOne(ctx, exam); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, exam)
}

func GetExamByName(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := taxonomy.ResolveContext(ctx, chi.URLParam(r, "examName"), "", "", "")
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if !result.Resolved {
		httpClient.RespondError(w, http.StatusNotFound, result.MissingSegment+" not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result.Context.Exam)
}

func UpdateExam(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}

	if name, ok := body["name"].(string); ok {
		body["name"] = taxonomy.NormalizeExamName(name)
	}
	set := buildUpdate(body, map[string]string{
		"name":        "name",
		"displayName": "display_name",
		"description": "description",
		"icon":        "icon",
		"isActive":    "is_active",
	})

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := examCollection.UpdateOne(ctx,
		bson.M{"exam_id": chi.URLParam(r, "id")},
		bson.M{"$set": set},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating exam", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Exam not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

// DeleteExam soft-deletes: children (subjects, tracks, content) are not
// cascaded; integrity is the caller's responsibility.
func DeleteExam(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := examCollection.UpdateOne(ctx,
		bson.M{"exam_id": chi.URLParam(r, "id")},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting exam", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Exam not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}
