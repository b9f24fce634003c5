package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uninorte/lead-system/internal/core/domain"
)

const collectionLeads = "leads"

// LeadRepository implements ports.LeadRepository using MongoDB.
type LeadRepository struct {
	col *mongo.Collection
	now func() time.Time
}

func NewLeadRepository(db *mongo.Database) *LeadRepository {
	return &LeadRepository{col: db.Collection(collectionLeads), now: time.Now}
}

func (r *LeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("insert lead: %w", err)
	}
	return nil
}

func (r *LeadRepository) InsertMany(ctx context.Context, leads []*domain.Lead) error {
	if len(leads) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	docs := make([]interface{}, len(leads))
	for i, l := range leads {
		docs[i] = l
	}
	if _, err := r.col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert leads: %w", err)
	}
	return nil
}

// leadFilter builds the query for the optional listing filters.
func leadFilter(f domain.LeadFilter) bson.M {
	q := bson.M{}
	if f.Course != "" {
		q["curso"] = f.Course
	}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.SellerID != "" {
		q["vendedor_id"] = f.SellerID
	}
	return q
}

// List returns matching leads, newest first.
func (r *LeadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "criado_em", Value: -1}}).SetLimit(listLimit)
	cur, err := r.col.Find(ctx, leadFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	leads := make([]*domain.Lead, 0)
	if err := cur.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("decode leads: %w", err)
	}
	return leads, nil
}

// Update sets the given fields plus atualizado_em and returns the new document.
func (r *LeadRepository) Update(ctx context.Context, id string, update domain.LeadUpdate) (*domain.Lead, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"atualizado_em": r.now().UTC()}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.FullName != nil {
		set["nome_completo"] = *update.FullName
	}
	if update.Phone != nil {
		set["telefone"] = *update.Phone
	}
	if update.Course != nil {
		set["curso"] = *update.Course
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var l domain.Lead
	err := r.col.FindOneAndUpdate(ctx, bson.M{"id": id}, bson.M{"$set": set}, opts).Decode(&l)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrLeadNotFound
		}
		return nil, fmt.Errorf("update lead: %w", err)
	}
	return &l, nil
}

func (r *LeadRepository) Count(ctx context.Context, filter domain.LeadFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, leadFilter(filter))
}

func (r *LeadRepository) CountByStatus(ctx context.Context) ([]domain.CountBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}
	out := make([]domain.CountBucket, 0)
	if err := r.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LeadRepository) TopCourses(ctx context.Context, limit int) ([]domain.CountBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$curso"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
		{{Key: "$limit", Value: limit}},
	}
	out := make([]domain.CountBucket, 0)
	if err := r.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SellerRanking counts each seller's leads and how many of them enrolled.
func (r *LeadRepository) SellerRanking(ctx context.Context) ([]domain.SellerRank, error) {
	enrolled := bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{"$status", domain.EnrolledStatus}}}, 1, 0,
	}}}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$vendedor_id"},
			{Key: "vendedor_nome", Value: bson.D{{Key: "$first", Value: "$vendedor_nome"}}},
			{Key: "total_leads", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "matriculados", Value: bson.D{{Key: "$sum", Value: enrolled}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "total_leads", Value: -1}}}},
	}
	out := make([]domain.SellerRank, 0)
	if err := r.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Monthly groups leads by YYYY-MM of criado_em.
func (r *LeadRepository) Monthly(ctx context.Context, sellerID string, newestFirst bool, limit int) ([]domain.CountBucket, error) {
	order := 1
	if newestFirst {
		order = -1
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: leadFilter(domain.LeadFilter{SellerID: sellerID})}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m"},
				{Key: "date", Value: "$criado_em"},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: order}}}},
		{{Key: "$limit", Value: limit}},
	}
	out := make([]domain.CountBucket, 0)
	if err := r.aggregate(ctx, pipeline, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *LeadRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregate leads: %w", err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode aggregation: %w", err)
	}
	return nil
}

// EnsureIndexes creates indexes for the listing filters and the aggregations.
func (r *LeadRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "vendedor_id", Value: 1}, {Key: "criado_em", Value: -1}}},
		{Keys: bson.D{{Key: "curso", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
