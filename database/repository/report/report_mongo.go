package reportRepo

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

// MongoReportRepo implements ReportRepository using MongoDB.
type MongoReportRepo struct {
	coll *mongo.Collection
}

// NewMongoReportRepo creates a new instance of ReportRepository using MongoDB.
func NewMongoReportRepo() ReportRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoReportRepo{coll: db.Collection("technician_reports")}
}

// Create inserts a new report.
func (r *MongoReportRepo) Create(ctx context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	return nil
}

// ListByTechnician retrieves reports filed against a technician, newest first.
func (r *MongoReportRepo) ListByTechnician(ctx context.Context, technicianID string) ([]models.Report, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"technician_id": technicianID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports for technician %s: %w", technicianID, err)
	}
	defer cursor.Close(ctx)

	var reports []models.Report
	for cursor.Next(ctx) {
		var report models.Report
		if err := cursor.Decode(&report); err != nil {
			return nil, fmt.Errorf("failed to decode report: %w", err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
