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

const adjustmentCollectionName = "schedule_adjustments"

type mongoAdjustmentRepository struct {
	collection *mongo.Collection
}

// NewMongoAdjustmentRepository creates a new ScheduleAdjustment repository.
func NewMongoAdjustmentRepository(db *mongo.Database) repository.AdjustmentRepository {
	return &mongoAdjustmentRepository{
		collection: db.Collection(adjustmentCollectionName),
	}
}

// Create appends an adjustment to the plan's history.
func (r *mongoAdjustmentRepository) Create(ctx context.Context, adj *domain.ScheduleAdjustment) (primitive.ObjectID, error) {
	if adj.PlanID == primitive.NilObjectID || len(adj.AffectedRunIDs) == 0 {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	adj.ID = primitive.NewObjectID()
	if adj.Timestamp.IsZero() {
		adj.Timestamp = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, adj)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted adjustment ID")
	}
	return insertedID, nil
}

// GetByPlanID lists a plan's adjustments, newest first.
func (r *mongoAdjustmentRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.ScheduleAdjustment, error) {
	var adjustments []domain.ScheduleAdjustment
	filter := bson.M{"planId": planID}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &adjustments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return adjustments, nil
}

// EnsureAdjustmentIndexes creates necessary indexes. Call during startup.
func EnsureAdjustmentIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
