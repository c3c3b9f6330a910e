// internal/repository/mongo/scheduled_run_repo.go
package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scheduledRunCollectionName = "scheduled_runs"

// mongoScheduledRunRepository implements repository.ScheduledRunRepository
type mongoScheduledRunRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduledRunRepository creates a new ScheduledRun repository.
func NewMongoScheduledRunRepository(db *mongo.Database) repository.ScheduledRunRepository {
	return &mongoScheduledRunRepository{
		collection: db.Collection(scheduledRunCollectionName),
	}
}

// CreateMany inserts a generated plan's runs in one round trip. IDs already set are kept.
func (r *mongoScheduledRunRepository) CreateMany(ctx context.Context, runs []domain.ScheduledRun) error {
	if len(runs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, len(runs))
	for i := range runs {
		if runs[i].PlanID == primitive.NilObjectID {
			return repository.ErrInvalidRecord
		}
		if runs[i].ID == primitive.NilObjectID {
			runs[i].ID = primitive.NewObjectID()
		}
		runs[i].CreatedAt = now
		runs[i].UpdatedAt = now
		docs[i] = runs[i]
	}

	// Ordered insert keeps the plan's run order on disk
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	return err
}

// GetByID retrieves a single run by its ID.
func (r *mongoScheduledRunRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduledRun, error) {
	var run domain.ScheduledRun
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&run)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &run, nil
}

// GetByPlanID retrieves all runs of a plan ordered by scheduled date.
func (r *mongoScheduledRunRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.ScheduledRun, error) {
	var runs []domain.ScheduledRun
	filter := bson.M{"planId": planID}
	// _id breaks ties in insertion order
	findOptions := options.Find().SetSort(bson.D{{Key: "scheduledDate", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &runs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// Update writes back the mutable fields of a run. OriginalDate and WeekNumber never change.
func (r *mongoScheduledRunRepository) Update(ctx context.Context, run *domain.ScheduledRun) error {
	if run.ID == primitive.NilObjectID {
		return repository.ErrInvalidRecord
	}

	filter := bson.M{"_id": run.ID}
	updateDoc := bson.M{
		"$set": bson.M{
			"scheduledDate": run.ScheduledDate,
			"type":          run.Type,
			"status":        run.Status,
			"movedFrom":     run.MovedFrom,
			"effortRating":  run.EffortRating,
			"notes":         run.Notes,
			"updatedAt":     time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, updateDoc)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureScheduledRunIndexes creates necessary indexes. Call during startup.
func EnsureScheduledRunIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "scheduledDate", Value: 1}},
			Options: options.Index(),
		},
		{
			// Progress queries by status
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
