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

const routeCollectionName = "routes"

// mongoRouteRepository implements repository.RouteRepository
type mongoRouteRepository struct {
	collection *mongo.Collection
}

// NewMongoRouteRepository creates a new RunRoute repository.
func NewMongoRouteRepository(db *mongo.Database) repository.RouteRepository {
	return &mongoRouteRepository{
		collection: db.Collection(routeCollectionName),
	}
}

func (r *mongoRouteRepository) Create(ctx context.Context, route *domain.RunRoute) (primitive.ObjectID, error) {
	if route.UserID == primitive.NilObjectID || len(route.Waypoints) == 0 {
		return primitive.NilObjectID, repository.ErrInvalidRecord
	}
	route.ID = primitive.NewObjectID()
	route.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, route)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted route ID")
	}
	return insertedID, nil
}

func (r *mongoRouteRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RunRoute, error) {
	var route domain.RunRoute
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&route)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

// GetByUserID lists a user's saved routes, newest first.
func (r *mongoRouteRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.RunRoute, error) {
	var routes []domain.RunRoute
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &routes); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return routes, nil
}

// SetGPXObjectKey records where the route's GPX export lives in object storage.
func (r *mongoRouteRepository) SetGPXObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"gpxObjectKey": objectKey}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRouteIndexes creates necessary indexes. Call during startup.
func EnsureRouteIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
