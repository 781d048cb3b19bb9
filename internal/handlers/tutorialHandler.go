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
	httpClient "centratutor/internal/utility/http"
)

var tutorialCollection *mongo.Collection = database.OpenCollection(database.Client, "tutorials")

// GetTutorialTree lists one level of the tutorial tree: the children of
// ?parentId=, or the roots when the parameter is absent.
func GetTutorialTree(w http.ResponseWriter, r *http.Request) {
	parentID := r.URL.Query().Get("parentId")

	ctx, cancel := requestContext(r)
	defer cancel()

	cur, err := tutorialCollection.Find(ctx,
		bson.M{"parent_id": parentID, "is_active": true},
		options.Find().SetSort(bson.M{"order_index": 1}),
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching tutorial nodes", err)
		return
	}
	defer cur.Close(ctx)

	nodes := []models.TutorialNode{}
	if err := cur.All(ctx, &nodes); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error fetching tutorial nodes", err)
		return
	}
	httpClient.RespondSuccess(w, nodes)
}

func CreateTutorialNode(w http.ResponseWriter, r *http.Request) {
	var node models.TutorialNode
	if !decodeBody(w, r, &node) {
		return
	}
	if err := validate.Struct(node); err != nil {
		httpClient.RespondError(w, http.StatusBadRequest, "Fields not valid", err)
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	if node.ParentID != "" {
		n, err := tutorialCollection.CountDocuments(ctx, bson.M{"node_id": node.ParentID, "is_active": true})
		if err != nil {
			httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
			return
		}
		if n == 0 {
			httpClient.RespondError(w, http.StatusBadRequest, "Parent node not found", nil)
			return
		}
	}

	alreadyExists, err := tutorialCollection.CountDocuments(ctx, bson.M{
		"parent_id": node.ParentID,
		"name":      node.Name,
	})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if alreadyExists > 0 {
		httpClient.RespondError(w, http.StatusConflict, "Node with this name already exists under this parent", nil)
		return
	}

	node.ID = primitive.NewObjectID()
	node.NodeID = node.ID.Hex()
	node.IsActive = true
	node.CreatedAt = time.Now().UTC()
	node.UpdatedAt = node.CreatedAt

	if _, err := tutorialCollection.InsertOne(ctx, node); err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	httpClient.RespondCreated(w, node)
}

func UpdateTutorialNode(w http.ResponseWriter, r *http.Request) {
	var body map[string]interface{}
	if !decodeBody(w, r, &body) {
		return
	}
	set := buildUpdate(body, map[string]string{
		"name":        "name",
		"displayName": "display_name",
		"description": "description",
		"orderIndex":  "order_index",
		"filePath":    "file_path",
		"fileType":    "file_type",
		"isActive":    "is_active",
	})

	ctx, cancel := requestContext(r)
	defer cancel()

	result, err := tutorialCollection.UpdateOne(ctx,
		bson.M{"node_id": chi.URLParam(r, "id")},
		bson.M{"$set": set},
	)
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error updating node", err)
		return
	}
	if result.MatchedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Node not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}

// DeleteTutorialNode removes a leaf node. Nodes with children are refused so
// the tree never strands a subtree.
func DeleteTutorialNode(w http.ResponseWriter, r *http.Request) {
	nodeID := chi.URLParam(r, "id")

	ctx, cancel := requestContext(r)
	defer cancel()

	children, err := tutorialCollection.CountDocuments(ctx, bson.M{"parent_id": nodeID, "is_active": true})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Internal Server Error", err)
		return
	}
	if children > 0 {
		httpClient.RespondError(w, http.StatusConflict, "Node has children, delete them first", nil)
		return
	}

	result, err := tutorialCollection.DeleteOne(ctx, bson.M{"node_id": nodeID})
	if err != nil {
		httpClient.RespondError(w, http.StatusInternalServerError, "Error deleting node", err)
		return
	}
	if result.DeletedCount == 0 {
		httpClient.RespondError(w, http.StatusNotFound, "Node not found", nil)
		return
	}
	httpClient.RespondSuccess(w, result)
}
