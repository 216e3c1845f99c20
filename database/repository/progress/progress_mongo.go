package progressRepo

import (
	"context"
	"fmt"
	"time"

	"servitech/config"
	"servitech/database"
	"servitech/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProgressRepo implements ProgressRepository using MongoDB.
type MongoProgressRepo struct {
	events *mongo.Collection
}

// NewMongoProgressRepo creates a new instance of ProgressRepository using MongoDB.
func NewMongoProgressRepo() ProgressRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoProgressRepo{events: db.Collection("progress_events")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoProgressRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "request_id", Value: 1}, {Key: "timestamp", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create progress indexes: %w", err)
	}
	return nil
}

// Append inserts a new progress event.
func (r *MongoProgressRepo) Append(ctx context.Context, event *models.ProgressEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if _, err := r.events.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to append progress event: %w", err)
	}
	return nil
}

// Latest retrieves the most recent event for a request, or nil when none exist.
func (r *MongoProgressRepo) Latest(ctx context.Context, requestID string) (*models.ProgressEvent, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var event models.ProgressEvent
	if err := r.events.FindOne(ctx, bson.M{"request_id": requestID}, opts).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch latest progress for request %s: %w", requestID, err)
	}
	return &event, nil
}

// ListByRequest retrieves all events for a request in insertion order.
func (r *MongoProgressRepo) ListByRequest(ctx context.Context, requestID string) ([]models.ProgressEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.events.Find(ctx, bson.M{"request_id": requestID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress for request %s: %w", requestID, err)
	}
	defer cursor.Close(ctx)

	var events []models.ProgressEvent
	for cursor.Next(ctx) {
		var event models.ProgressEvent
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("failed to decode progress event: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// CountByRequest counts the events recorded for a request.
func (r *MongoProgressRepo) CountByRequest(ctx context.Context, requestID string) (int64, error) {
	count, err := r.events.CountDocuments(ctx, bson.M{"request_id": requestID})
	if err != nil {
		return 0, fmt.Errorf("failed to count progress for request %s: %w", requestID, err)
	}
	return count, nil
}
