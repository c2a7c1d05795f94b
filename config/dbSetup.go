package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection    *mongo.Collection
	ListingCollection *mongo.Collection
	ViewCollection    *mongo.Collection
)

// DefaultViewRetentionDays bounds how long raw view events are kept.
const DefaultViewRetentionDays = 90

func ConnectDB() (*mongo.Client, error) {
	MONGO_URI := os.Getenv("MONGOURI")
	if MONGO_URI == "" {
		return nil, fmt.Errorf("MONGO_URI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(MONGO_URI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func InitCollections(client *mongo.Client) {
	dbName := os.Getenv("DB")
	UserCollection = client.Database(dbName).Collection("users")
	ListingCollection = client.Database(dbName).Collection("properties")
	ViewCollection = client.Database(dbName).Collection("propertyViews")
}

// EnsureIndexes creates the indexes the search and analytics paths rely
// on: full-text over title/description/city/locality, 2dsphere for nearby
// lookups, the popularity sort, the uniqueness probe, and the view-event
// TTL (VIEW_RETENTION_DAYS, default 90).
func EnsureIndexes(ctx context.Context) error {
	listingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "city", Value: "text"},
				{Key: "locality", Value: "text"},
			},
		},
		{Keys: bson.D{{Key: "location", Value: "2dsphere"}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "isActive", Value: 1}}},
		{Keys: bson.D{{Key: "views", Value: -1}, {Key: "uniqueViews", Value: -1}}},
		{Keys: bson.D{{Key: "city", Value: 1}, {Key: "type", Value: 1}, {Key: "price", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := ListingCollection.Indexes().CreateMany(ctx, listingIndexes); err != nil {
		return fmt.Errorf("listing indexes: %v", err)
	}

	retentionDays := DefaultViewRetentionDays
	if raw := os.Getenv("VIEW_RETENTION_DAYS"); raw != "" {
		if d, err := strconv.Atoi(raw); err == nil && d > 0 {
			retentionDays = d
		}
	}

	viewIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "propertyId", Value: 1}, {Key: "viewedAt", Value: -1}}},
		{Keys: bson.D{{Key: "sessionId", Value: 1}, {Key: "viewedAt", Value: -1}}},
		{Keys: bson.D{{Key: "viewerId", Value: 1}, {Key: "viewedAt", Value: -1}}},
		{
			Keys:    bson.D{{Key: "viewedAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(retentionDays * 24 * 3600)),
		},
	}
	if _, err := ViewCollection.Indexes().CreateMany(ctx, viewIndexes); err != nil {
		return fmt.Errorf("view indexes: %v", err)
	}

	return nil
}

func CloseDBConnection(client *mongo.Client) {
	if err := client.Disconnect(context.TODO()); err != nil {
		log.Fatalf("Error closing database connection: %v", err)
	}
	log.Println("MongoDB connection closed")
}
