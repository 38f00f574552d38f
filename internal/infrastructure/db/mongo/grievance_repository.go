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
	"github.com/villageconnect/grievance-system/internal/core/ports"
)

const collectionGrievances = "grievances"

type GrievanceRepository struct {
	col *mongo.Collection
}

func NewGrievanceRepository(db *mongo.Database) *GrievanceRepository {
	return &GrievanceRepository{col: db.Collection(collectionGrievances)}
}

type grievanceDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Departments     []string           `bson:"departments"`
	Status          string             `bson:"status"`
	Priority        string             `bson:"priority"`
	Location        string             `bson:"location"`
	ImageURLs       []string           `bson:"image_urls"`
	SubmittedBy     string             `bson:"submitted_by"`
	SubmittedByName string             `bson:"submitted_by_name"`
	ContactPhone    string             `bson:"contact_phone"`
	ContactEmail    string             `bson:"contact_email"`
	AssignedTo      []string           `bson:"assigned_to"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
	ResolvedAt      *time.Time         `bson:"resolved_at,omitempty"`
}

func toGrievanceDoc(g *domain.Grievance) grievanceDoc {
	return grievanceDoc{
		Title:           g.Title,
		Description:     g.Description,
		Departments:     g.Departments,
		Status:          string(g.Status),
		Priority:        string(g.Priority),
		Location:        g.Location,
		ImageURLs:       g.ImageURLs,
		SubmittedBy:     g.SubmittedBy,
		SubmittedByName: g.SubmittedByName,
		ContactPhone:    g.ContactPhone,
		ContactEmail:    g.ContactEmail,
		AssignedTo:      g.AssignedTo,
		CreatedAt:       g.CreatedAt.UTC(),
		UpdatedAt:       g.UpdatedAt.UTC(),
		ResolvedAt:      g.ResolvedAt,
	}
}

func (d grievanceDoc) toDomain() *domain.Grievance {
	return &domain.Grievance{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		Departments:     d.Departments,
		Status:          domain.Status(d.Status),
		Priority:        domain.Priority(d.Priority),
		Location:        d.Location,
		ImageURLs:       d.ImageURLs,
		SubmittedBy:     d.SubmittedBy,
		SubmittedByName: d.SubmittedByName,
		ContactPhone:    d.ContactPhone,
		ContactEmail:    d.ContactEmail,
		AssignedTo:      d.AssignedTo,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
		ResolvedAt:      d.ResolvedAt,
	}
}

// Create inserts a new grievance document and fills in the generated ID.
func (r *GrievanceRepository) Create(ctx context.Context, g *domain.Grievance) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toGrievanceDoc(g))
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		g.ID = oid.Hex()
	}
	return nil
}

func (r *GrievanceRepository) FindByID(ctx context.Context, id string) (*domain.Grievance, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrGrievanceNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc grievanceDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrGrievanceNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns grievances matching filter, newest first. A department filter
// matches by array membership on the departments field.
func (r *GrievanceRepository) List(ctx context.Context, filter ports.ListGrievancesFilter) ([]*domain.Grievance, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Department != "" {
		query["departments"] = filter.Department
	}
	if filter.SubmittedBy != "" {
		query["submitted_by"] = filter.SubmittedBy
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var result []*domain.Grievance
	for cur.Next(ctx) {
		var doc grievanceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		result = append(result, doc.toDomain())
	}
	return result, cur.Err()
}

// ApplyUpdate sets the changed fields on the grievance document.
func (r *GrievanceRepository) ApplyUpdate(ctx context.Context, id string, update ports.GrievanceUpdate) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrGrievanceNotFound
	}

	set := bson.M{"updated_at": update.UpdatedAt.UTC()}
	if update.Status != nil {
		set["status"] = string(*update.Status)
	}
	if update.Priority != nil {
		set["priority"] = string(*update.Priority)
	}
	if update.ResolvedAt != nil {
		set["resolved_at"] = update.ResolvedAt.UTC()
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrGrievanceNotFound
	}
	return nil
}

// Summary aggregates counts by status, priority, and department in one
// $facet pipeline.
func (r *GrievanceRepository) Summary(ctx context.Context) (*ports.SummaryCounts, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$facet", Value: bson.M{
			"by_status": bson.A{
				bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
			},
			"by_priority": bson.A{
				bson.M{"$group": bson.M{"_id": "$priority", "count": bson.M{"$sum": 1}}},
			},
			"by_department": bson.A{
				bson.M{"$unwind": "$departments"},
				bson.M{"$group": bson.M{"_id": "$departments", "count": bson.M{"$sum": 1}}},
			},
			"total": bson.A{
				bson.M{"$count": "count"},
			},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	type bucket struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	var facets []struct {
		ByStatus     []bucket `bson:"by_status"`
		ByPriority   []bucket `bson:"by_priority"`
		ByDepartment []bucket `bson:"by_department"`
		Total        []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
	}
	if err := cur.All(ctx, &facets); err != nil {
		return nil, err
	}

	counts := &ports.SummaryCounts{
		ByStatus:     map[string]int64{},
		ByPriority:   map[string]int64{},
		ByDepartment: map[string]int64{},
	}
	if len(facets) == 0 {
		return counts, nil
	}
	for _, b := range facets[0].ByStatus {
		counts.ByStatus[b.ID] = b.Count
	}
	for _, b := range facets[0].ByPriority {
		counts.ByPriority[b.ID] = b.Count
	}
	for _, b := range facets[0].ByDepartment {
		counts.ByDepartment[b.ID] = b.Count
	}
	if len(facets[0].Total) > 0 {
		counts.Total = facets[0].Total[0].Count
	}
	return counts, nil
}

// EnsureIndexes creates the indexes the read-side views depend on.
func (r *GrievanceRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "departments", Value: 1}}},
		{Keys: bson.D{{Key: "submitted_by", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
