package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB.
type MongoCatalogRepo struct {
	coll *mongo.Collection
}

// NewMongoCatalogRepo creates a new instance of CatalogRepository using MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoCatalogRepo{coll: db.Collection("service_types")}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create catalog index: %w", err)
	}
	return nil
}

// List retrieves all catalog entries.
func (r *MongoCatalogRepo) List(ctx context.Context) ([]models.ServiceType, error) {
	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list service types: %w", err)
	}
	defer cursor.Close(ctx)

	var types []models.ServiceType
	for cursor.Next(ctx) {
		var st models.ServiceType
		if err := cursor.Decode(&st); err != nil {
			return nil, fmt.Errorf("failed to decode service type: %w", err)
		}
		types = append(types, st)
	}
	return types, nil
}

// GetByName retrieves a catalog entry by its name.
func (r *MongoCatalogRepo) GetByName(ctx context.Context, name string) (*models.ServiceType, error) {
	var st models.ServiceType
	if err := r.coll.FindOne(ctx, bson.M{"name": name}).Decode(&st); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service type %s: %w", name, err)
	}
	return &st, nil
}
