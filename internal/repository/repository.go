package repository

import (
	"context"

	"alcyxob/runplan/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrUpdateFailed  = RepositoryError("update failed")
	ErrDuplicateKey  = RepositoryError("duplicate key")
	ErrInvalidRecord = RepositoryError("invalid record")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
}

// TrainingPlanRepository stores plan headers. Runs live in ScheduledRunRepository.
type TrainingPlanRepository interface {
	Create(ctx context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error)
	GetActiveByUser(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PlanStatus) error
	// DeactivateOthers marks every other active plan of the user as abandoned.
	DeactivateOthers(ctx context.Context, userID, keepPlanID primitive.ObjectID) error
}

// ScheduledRunRepository defines the interface for interacting with scheduled runs.
type ScheduledRunRepository interface {
	CreateMany(ctx context.Context, runs []domain.ScheduledRun) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ScheduledRun, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.ScheduledRun, error) // Ordered by scheduled date
	Update(ctx context.Context, run *domain.ScheduledRun) error
}

// AdjustmentRepository keeps the history of accepted schedule edits.
type AdjustmentRepository interface {
	Create(ctx context.Context, adj *domain.ScheduleAdjustment) (primitive.ObjectID, error)
	GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.ScheduleAdjustment, error) // Newest first
}

// RouteRepository defines the interface for interacting with saved routes.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.RunRoute) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.RunRoute, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.RunRoute, error) // Newest first
	SetGPXObjectKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}
