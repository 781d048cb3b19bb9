package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"centratutor/database"
	"centratutor/internal/models"
	"centratutor/internal/taxonomy"
	httpClient "centratutor/internal/utility/http"
)

var subCategoryCollection *mongo.Collection = database.OpenCollection(database.Client, "subcategories")

func GetSubCategories(w http.ResponseWriter, r *http.Request) {
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

	cur, err := subCategoryCollection.Find(ctx,
		bson.M{"exam_id": result.Context.Exam.ExamID, "is_active": true},
		options.Find().SetSort(bson.M{"order_index": 1}),
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subcategories", err)
		return
	}
	defer cur.Close(ctx)

	subCats := []models.SubCategory{}
	if err := cur.All(ctx, &subCats); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching subcategories", err)
		return
	}
	httpClient.RespondSuccess(w, subCats)
}

func CreateSubCategory(w http.ResponseWriter, r *http.Request) {
	var subCat models.SubCategory
	if !decodeBody(w, r, &subCat) {
		return
	}
	subCat.ExamID = chi.URLParam(r, "examId")
	subCat.Name = taxonomy.NormalizeSubCategoryName(subCat.Name)

	if err := validate.Struct(subCat); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	alreadyExists, err := subCategoryCollection.CountDocuments(ctx, bson.M{
		"exam_id": subCat.ExamID,
		"name":    subCat.Name,
	})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "SubCategory already exists!", nil)
		return
	}

	subCat.ID = primitive.NewObjectID()
	subCat.SubCatID = subCat.ID.Hex()
	subCat.IsActive = true
	subCat.CreatedAt = time.Now().UTC()
	subCat.UpdatedAt = subCat.CreatedAt

	if _, err := subCategoryCollection.InsertOne(ctx, subCat); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, subCat)
}

func UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}
	if name, ok := body["name"].(string); ok {
		body["name"] = taxonomy.NormalizeSubCategoryName(name)
	}
	set := buildUpdate(body, map[string]string{
		"name":        "name",
		"displayName": "display_name",
		"routePath":   "route_path",
		"contentType": "content_type",
		"orderIndex":  "order_index",
		"isActive":    "is_active",
	})

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := subCategoryCollection.UpdateOne(ctx,
		bson.M{"subcategory_id": chi.URLParam(r, "id")},
		bson.M{"$set": set},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating subcategory", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "SubCategory not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

func DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := subCategoryCollection.UpdateOne(ctx,
		bson.M{"subcategory_id": chi.URLParam(r, "id")},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting subcategory", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "SubCategory not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}
