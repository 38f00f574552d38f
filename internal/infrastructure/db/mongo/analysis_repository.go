package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/villageconnect/grievance-system/internal/core/domain"
)

const collectionImageAnalysis = "image_analysis"

// AnalysisRepository is the side log for raw diagnostic vision results.
type AnalysisRepository struct {
	col *mongo.Collection
}

func NewAnalysisRepository(db *mongo.Database) *AnalysisRepository {
	return &AnalysisRepository{col: db.Collection(collectionImageAnalysis)}
}

type analysisDoc struct {
	ID                primitive.ObjectID      `bson:"_id,omitempty"`
	ImageURL          string                  `bson:"image_url"`
	Description       string                  `bson:"description"`
	Objects           []domain.DetectedObject `bson:"objects"`
	Labels            []string                `bson:"labels"`
	OverallConfidence float64                 `bson:"overall_confidence"`
	CreatedAt         time.Time               `bson:"created_at"`
}

func (r *AnalysisRepository) Create(ctx context.Context, a *domain.ImageAnalysis) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := analysisDoc{
		ImageURL:          a.ImageURL,
		Description:       a.Description,
		Objects:           a.Objects,
		Labels:            a.Labels,
		OverallConfidence: a.OverallConfidence,
		CreatedAt:         a.CreatedAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = oid.Hex()
	}
	return nil
}
