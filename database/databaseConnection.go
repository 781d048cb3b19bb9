package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DBinstance creates the mongo client shared by every collection handle.
func DBinstance() *mongo.Client {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	MongoDb := os.Getenv("MONGODB_URL")
	if MongoDb == "" {
		MongoDb = "mongodb://localhost:27017"
	}

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(MongoDb))
	if err != nil {
		log.Fatal(err)
	}

	return client
}

var Client *mongo.Client = DBinstance()

func databaseName() string {
	name := os.Getenv("DATABASE_NAME")
	if name == "" {
		name = "centratutor"
	}
	return name
}

// OpenCollection returns a handle on a collection in the application database.
func OpenCollection(client *mongo.Client, collectionName string) *mongo.Collection {
	return client.Database(databaseName()).Collection(collectionName)
}

// Ping reports whether the database is reachable right now.
func Ping() bool {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return Client.Ping(ctx, readpref.Primary()) == nil
}
