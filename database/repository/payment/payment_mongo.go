package paymentRepo

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

// MongoPaymentRepo implements PaymentRepository using MongoDB. It holds the
// request, progress and notification collections as well so settlement can
// span all of them in a single transaction.
type MongoPaymentRepo struct {
	payments      *mongo.Collection
	requests      *mongo.Collection
	events        *mongo.Collection
	notifications *mongo.Collection
}

// NewMongoPaymentRepo creates a new instance of PaymentRepository using MongoDB.
func NewMongoPaymentRepo() PaymentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	repo := &MongoPaymentRepo{
		payments:      db.Collection("payments"),
		requests:      db.Collection("service_requests"),
		events:        db.Collection("progress_events"),
		notifications: db.Collection("notifications"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func (r *MongoPaymentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.payments.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "request_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}

// Settle runs the settlement write sequence inside one Mongo transaction.
// The request update is guarded on the document still being assigned to the
// paying customer; a zero match aborts everything with ErrRequestConflict.
func (r *MongoPaymentRepo) Settle(ctx context.Context, payment *models.Payment, event *models.ProgressEvent, notif *models.Notification) error {
	client := r.payments.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		now := time.Now()

		payment.Status = models.PaymentPending
		payment.CreatedAt = now
		payment.UpdatedAt = now
		if _, err := r.payments.InsertOne(sc, payment); err != nil {
			return fmt.Errorf("insert payment failed: %w", err)
		}

		event.Timestamp = now
		if _, err := r.events.InsertOne(sc, event); err != nil {
			return fmt.Errorf("insert completion event failed: %w", err)
		}

		reqFilter := bson.M{
			"id":          payment.RequestID,
			"customer_id": notif.UserID,
			"status":      models.StatusAssigned,
		}
		reqUpdate := bson.M{"$set": bson.M{
			"status":     models.StatusCompleted,
			"updated_at": now,
		}}
		res, err := r.requests.UpdateOne(sc, reqFilter, reqUpdate)
		if err != nil {
			return fmt.Errorf("complete request failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrRequestConflict
		}

		payFilter := bson.M{"id": payment.ID}
		payUpdate := bson.M{"$set": bson.M{
			"status":     models.PaymentCompleted,
			"updated_at": now,
		}}
		if _, err := r.payments.UpdateOne(sc, payFilter, payUpdate); err != nil {
			return fmt.Errorf("complete payment failed: %w", err)
		}
		payment.Status = models.PaymentCompleted
		payment.UpdatedAt = now

		notif.CreatedAt = now
		if _, err := r.notifications.InsertOne(sc, notif); err != nil {
			return fmt.Errorf("insert settlement notification failed: %w", err)
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
		return fmt.Errorf("settlement transaction failed: %w", err)
	}
	return nil
}

// GetByRequestID retrieves the payment recorded for a request, or nil when absent.
func (r *MongoPaymentRepo) GetByRequestID(ctx context.Context, requestID string) (*models.Payment, error) {
	var payment models.Payment
	if err := r.payments.FindOne(ctx, bson.M{"request_id": requestID}).Decode(&payment); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch payment for request %s: %w", requestID, err)
	}
	return &payment, nil
}

// ListCompletedByTechnician retrieves completed payments for the technician's
// completed requests, newest first.
func (r *MongoPaymentRepo) ListCompletedByTechnician(ctx context.Context, technicianID string) ([]models.Payment, error) {
	reqCursor, err := r.requests.Find(ctx, bson.M{
		"technician_id": technicianID,
		"status":        models.StatusCompleted,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list completed requests for technician %s: %w", technicianID, err)
	}
	defer reqCursor.Close(ctx)

	var requestIDs []string
	for reqCursor.Next(ctx) {
		var req models.ServiceRequest
		if err := reqCursor.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode service request: %w", err)
		}
		requestIDs = append(requestIDs, req.ID)
	}
	if len(requestIDs) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"request_id": bson.M{"$in": requestIDs},
		"status":     models.PaymentCompleted,
	}
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cursor, err := r.payments.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments for technician %s: %w", technicianID, err)
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	for cursor.Next(ctx) {
		var payment models.Payment
		if err := cursor.Decode(&payment); err != nil {
			return nil, fmt.Errorf("failed to decode payment: %w", err)
		}
		payments = append(payments, payment)
	}
	return payments, nil
}
