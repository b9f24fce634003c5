package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/uninorte/lead-system/internal/core/domain"
)

const (
	collectionCourses    = "courses"
	collectionLeadStatus = "lead_status"
)

// CourseRepository implements ports.CourseRepository using MongoDB.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, course); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

func (r *CourseRepository) InsertMany(ctx context.Context, courses []*domain.Course) error {
	docs := make([]interface{}, len(courses))
	for i, c := range courses {
		docs[i] = c
	}
	return insertMany(ctx, r.col, docs)
}

func (r *CourseRepository) List(ctx context.Context, activeOnly bool) ([]*domain.Course, error) {
	filter := bson.M{}
	if activeOnly {
		filter["ativo"] = true
	}
	courses := make([]*domain.Course, 0)
	if err := findAll(ctx, r.col, filter, bson.D{{Key: "nome", Value: 1}}, &courses); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique id index.
func (r *CourseRepository) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueID(ctx, r.col)
}

// LeadStatusRepository implements ports.LeadStatusRepository using MongoDB.
type LeadStatusRepository struct {
	col *mongo.Collection
}

func NewLeadStatusRepository(db *mongo.Database) *LeadStatusRepository {
	return &LeadStatusRepository{col: db.Collection(collectionLeadStatus)}
}

func (r *LeadStatusRepository) Create(ctx context.Context, status *domain.LeadStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, status); err != nil {
		return fmt.Errorf("insert lead status: %w", err)
	}
	return nil
}

func (r *LeadStatusRepository) InsertMany(ctx context.Context, statuses []*domain.LeadStatus) error {
	docs := make([]interface{}, len(statuses))
	for i, s := range statuses {
		docs[i] = s
	}
	return insertMany(ctx, r.col, docs)
}

// List returns the statuses in insertion order so the pipeline reads left to right.
func (r *LeadStatusRepository) List(ctx context.Context) ([]*domain.LeadStatus, error) {
	statuses := make([]*domain.LeadStatus, 0)
	if err := findAll(ctx, r.col, bson.M{}, bson.D{{Key: "_id", Value: 1}}, &statuses); err != nil {
		return nil, fmt.Errorf("list lead statuses: %w", err)
	}
	return statuses, nil
}

func (r *LeadStatusRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

// EnsureIndexes creates the unique id index.
func (r *LeadStatusRepository) EnsureIndexes(ctx context.Context) error {
	return ensureUniqueID(ctx, r.col)
}

func ensureUniqueID(ctx context.Context, col *mongo.Collection) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func insertMany(ctx context.Context, col *mongo.Collection, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := col.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert into %s: %w", col.Name(), err)
	}
	return nil
}

func findAll(ctx context.Context, col *mongo.Collection, filter bson.M, sort bson.D, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := col.Find(ctx, filter, options.Find().SetSort(sort).SetLimit(listLimit))
	if err != nil {
		return err
	}
	return cur.All(ctx, out)
}
