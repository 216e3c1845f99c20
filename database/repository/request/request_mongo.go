package requestRepo

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

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	requests *mongo.Collection
	capacity *mongo.Collection
}

// NewMongoRequestRepo creates a new instance of RequestRepository using MongoDB.
func NewMongoRequestRepo() RequestRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoRequestRepo{
		requests: db.Collection("service_requests"),
		capacity: db.Collection("technician_capacity"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.requests.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "technician_id", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "customer_id", Value: 1}, {Key: "status", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create request indexes: %w", err)
	}

	_, err = r.capacity.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "technician_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create capacity index: %w", err)
	}
	return nil
}

// Create inserts a new service request document.
func (r *MongoRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now

	if _, err := r.requests.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create service request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its unique ID.
func (r *MongoRequestRepo) GetByID(ctx context.Context, id string) (*models.ServiceRequest, error) {
	var req models.ServiceRequest
	if err := r.requests.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch request with id %s: %w", id, err)
	}
	return &req, nil
}

// ListPending retrieves all pending requests in insertion order.
func (r *MongoRequestRepo) ListPending(ctx context.Context) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"status": models.StatusPending})
}

// ListByTechnician retrieves a technician's requests with the given status.
func (r *MongoRequestRepo) ListByTechnician(ctx context.Context, technicianID, status string) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"technician_id": technicianID, "status": status})
}

// ListByCustomer retrieves a customer's requests with the given status.
func (r *MongoRequestRepo) ListByCustomer(ctx context.Context, customerID, status string) ([]models.ServiceRequest, error) {
	return r.list(ctx, bson.M{"customer_id": customerID, "status": status})
}

func (r *MongoRequestRepo) list(ctx context.Context, filter bson.M) ([]models.ServiceRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.requests.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list service requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.ServiceRequest
	for cursor.Next(ctx) {
		var req models.ServiceRequest
		if err := cursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode service request: %w", err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// LatestActiveByCustomer retrieves the customer's most recent non-cancelled request.
func (r *MongoRequestRepo) LatestActiveByCustomer(ctx context.Context, customerID string) (*models.ServiceRequest, error) {
	filter := bson.M{
		"customer_id": customerID,
		"status":      bson.M{"$ne": models.StatusCancelled},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var req models.ServiceRequest
	if err := r.requests.FindOne(ctx, filter, opts).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch latest request for customer %s: %w", customerID, err)
	}
	return &req, nil
}

// HasPendingForCustomer reports whether the customer already has a pending request.
func (r *MongoRequestRepo) HasPendingForCustomer(ctx context.Context, customerID string) (bool, error) {
	count, err := r.requests.CountDocuments(ctx, bson.M{
		"customer_id": customerID,
		"status":      models.StatusPending,
	})
	if err != nil {
		return false, fmt.Errorf("failed to count pending requests for customer %s: %w", customerID, err)
	}
	return count > 0, nil
}

// Claim atomically assigns a pending request to a technician. The capacity
// count and the guarded status flip run inside one transaction so concurrent
// claims serialize: exactly one wins, the rest observe ErrNotPending.
func (r *MongoRequestRepo) Claim(ctx context.Context, requestID, technicianID, code string, maxActive int) error {
	client := r.requests.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		active, err := r.requests.CountDocuments(sc, bson.M{
			"technician_id": technicianID,
			"status":        models.StatusAssigned,
		})
		if err != nil {
			return fmt.Errorf("failed to count active assignments: %w", err)
		}
		if active >= int64(maxActive) {
			return ErrCapacityReached
		}

		filter := bson.M{"id": requestID, "status": models.StatusPending}
		update := bson.M{"$set": bson.M{
			"status":            models.StatusAssigned,
			"technician_id":     technicianID,
			"confirmation_code": code,
			"updated_at":        time.Now(),
		}}
		res, err := r.requests.UpdateOne(sc, filter, update)
		if err != nil {
			return fmt.Errorf("failed to assign request: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotPending
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("claim transaction failed: %w", err)
	}
	return nil
}

// CancelByTechnician flips an assigned request to cancelled and clears the assignment.
func (r *MongoRequestRepo) CancelByTechnician(ctx context.Context, requestID, technicianID string) error {
	filter := bson.M{
		"id":            requestID,
		"technician_id": technicianID,
		"status":        models.StatusAssigned,
	}
	return r.cancel(ctx, filter)
}

// CancelByCustomer cancels the customer's own request.
func (r *MongoRequestRepo) CancelByCustomer(ctx context.Context, requestID, customerID string) error {
	filter := bson.M{
		"id":          requestID,
		"customer_id": customerID,
		"status":      bson.M{"$in": bson.A{models.StatusPending, models.StatusAssigned}},
	}
	return r.cancel(ctx, filter)
}

func (r *MongoRequestRepo) cancel(ctx context.Context, filter bson.M) error {
	update := bson.M{
		"$set": bson.M{
			"status":     models.StatusCancelled,
			"updated_at": time.Now(),
		},
		"$unset": bson.M{
			"technician_id":     "",
			"confirmation_code": "",
		},
	}
	res, err := r.requests.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to cancel request: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Capacity returns the technician's capacity record, creating it lazily.
func (r *MongoRequestRepo) Capacity(ctx context.Context, technicianID string, defaultMax int) (*models.TechnicianCapacity, error) {
	filter := bson.M{"technician_id": technicianID}
	update := bson.M{"$setOnInsert": bson.M{
		"technician_id":  technicianID,
		"max_concurrent": defaultMax,
	}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cap models.TechnicianCapacity
	if err := r.capacity.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cap); err != nil {
		return nil, fmt.Errorf("failed to fetch capacity for technician %s: %w", technicianID, err)
	}
	return &cap, nil
}

// CountActiveByTechnician counts the technician's currently assigned requests.
func (r *MongoRequestRepo) CountActiveByTechnician(ctx context.Context, technicianID string) (int64, error) {
	count, err := r.requests.CountDocuments(ctx, bson.M{
		"technician_id": technicianID,
		"status":        models.StatusAssigned,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active assignments for technician %s: %w", technicianID, err)
	}
	return count, nil
}
