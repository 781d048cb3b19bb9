package query

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"centratutor/database"
	"centratutor/internal/models"
)

var contentCollection *mongo.Collection = database.OpenCollection(database.Client, "contents")

// ContentByFilters returns active content rows matching all provided
// filters, same AND-composition as questions.
func ContentByFilters(ctx context.Context, f ContentFilters, limit, offset int64) ([]models.Content, error) {
	opts := options.Find().SetSort(bson.M{"order_index": 1})
	if offset > 0 {
		opts.SetSkip(offset)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := contentCollection.Find(ctx, f.Build(), opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	items := []models.Content{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
