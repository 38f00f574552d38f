package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

const collectionNotifications = "notifications"

type NotificationRepository struct {
	col *mongo.Collection
}

func NewNotificationRepository(db *mongo.Database) *NotificationRepository {
	return &NotificationRepository{col: db.Collection(collectionNotifications)}
}

type notificationDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	UserID         string             `bson:"user_id"`
	Title          string             `bson:"title"`
	Message        string             `bson:"message"`
	Type           string             `bson:"type"`
	Read           bool               `bson:"read"`
	GrievanceID    string             `bson:"grievance_id,omitempty"`
	GrievanceTitle string             `bson:"grievance_title,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func toNotificationDoc(n *domain.Notification) notificationDoc {
	return notificationDoc{
		UserID:         n.UserID,
		Title:          n.Title,
		Message:        n.Message,
		Type:           string(n.Type),
		Read:           n.Read,
		GrievanceID:    n.GrievanceID,
		GrievanceTitle: n.GrievanceTitle,
		CreatedAt:      n.CreatedAt.UTC(),
	}
}

func (d notificationDoc) toDomain() *domain.Notification {
	return &domain.Notification{
		ID:             d.ID.Hex(),
		UserID:         d.UserID,
		Title:          d.Title,
		Message:        d.Message,
		Type:           domain.NotificationType(d.Type),
		Read:           d.Read,
		GrievanceID:    d.GrievanceID,
		GrievanceTitle: d.GrievanceTitle,
		CreatedAt:      d.CreatedAt,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	res, err := r.col.InsertOne(ctx, toNotificationDoc(n))
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		n.ID = oid.Hex()
	}
	return nil
}

// CreateBatch writes all records or none. When the caller is already inside a
// session (the transition engine's transaction) the writes join it; otherwise
// the batch runs in its own transaction.
func (r *NotificationRepository) CreateBatch(ctx context.Context, ns []*domain.Notification) error {
	if len(ns) == 0 {
		return nil
	}

	docs := make([]interface{}, len(ns))
	for i, n := range ns {
		docs[i] = toNotificationDoc(n)
	}

	if mongo.SessionFromContext(ctx) != nil {
		_, err := r.col.InsertMany(ctx, docs)
		return err
	}

	sess, err := r.col.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return r.col.InsertMany(sc, docs)
	})
	return err
}

// ListByUser returns the recipient's notifications newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*domain.Notification
	for cur.Next(ctx) {
		var doc notificationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toDomain())
	}
	return result, cur.Err()
}

func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*domain.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNotificationNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc notificationDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNotificationNotFound
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// EnsureIndexes creates the per-recipient inbox index.
func (r *NotificationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
