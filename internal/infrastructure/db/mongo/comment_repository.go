package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

const collectionComments = "comments"

type CommentRepository struct {
	col *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{col: db.Collection(collectionComments)}
}

type commentDoc struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	GrievanceID    string             `bson:"grievance_id"`
	UserID         string             `bson:"user_id"`
	UserName       string             `bson:"user_name"`
	UserRole       string             `bson:"user_role"`
	Text           string             `bson:"text"`
	IsStatusUpdate bool               `bson:"is_status_update"`
	NewStatus      string             `bson:"new_status,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (d commentDoc) toDomain() *domain.Comment {
	return &domain.Comment{
		ID:             d.ID.Hex(),
		GrievanceID:    d.GrievanceID,
		UserID:         d.UserID,
		UserName:       d.UserName,
		UserRole:       d.UserRole,
		Text:           d.Text,
		IsStatusUpdate: d.IsStatusUpdate,
		NewStatus:      domain.Status(d.NewStatus),
		CreatedAt:      d.CreatedAt,
	}
}

func (r *CommentRepository) Create(ctx context.Context, c *domain.Comment) error {
	doc := commentDoc{
		GrievanceID:    c.GrievanceID,
		UserID:         c.UserID,
		UserName:       c.UserName,
		UserRole:       c.UserRole,
		Text:           c.Text,
		IsStatusUpdate: c.IsStatusUpdate,
		NewStatus:      string(c.NewStatus),
		CreatedAt:      c.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = oid.Hex()
	}
	return nil
}

// ListByGrievance returns the grievance's comments oldest first, the order
// they are rendered in the discussion thread.
func (r *CommentRepository) ListByGrievance(ctx context.Context, grievanceID string) ([]*domain.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"grievance_id": grievanceID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*domain.Comment
	for cur.Next(ctx) {
		var doc commentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toDomain())
	}
	return result, cur.Err()
}

// EnsureIndexes creates the grievance thread index.
func (r *CommentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "grievance_id", Value: 1}, {Key: "created_at", Value: 1}},
	})
	return err
}
