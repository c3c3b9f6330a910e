package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repositories. Each stores copies so tests observe only what was written back.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.users[user.ID] = *user
	return nil
}

type fakePlanRepo struct {
	mu    sync.Mutex
	plans map[primitive.ObjectID]domain.TrainingPlan
	order []primitive.ObjectID
}

func newFakePlanRepo() *fakePlanRepo {
	return &fakePlanRepo{plans: map[primitive.ObjectID]domain.TrainingPlan{}}
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if plan.ID == primitive.NilObjectID {
		plan.ID = primitive.NewObjectID()
	}
	stored := *plan
	stored.Runs = nil
	r.plans[plan.ID] = stored
	r.order = append(r.order, plan.ID)
	return plan.ID, nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *fakePlanRepo) GetActiveByUser(_ context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.plans[r.order[i]]
		if p.UserID == userID && p.Status == domain.PlanActive {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakePlanRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.PlanStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.plans[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	r.plans[id] = p
	return nil
}

func (r *fakePlanRepo) DeactivateOthers(_ context.Context, userID, keepPlanID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.plans {
		if p.UserID == userID && id != keepPlanID && p.Status == domain.PlanActive {
			p.Status = domain.PlanAbandoned
			r.plans[id] = p
		}
	}
	return nil
}

type fakeRunRepo struct {
	mu        sync.Mutex
	runs      map[primitive.ObjectID]domain.ScheduledRun
	updates   int
	failOn    primitive.ObjectID
	createErr error
}

func newFakeRunRepo() *fakeRunRepo {
	return &fakeRunRepo{runs: map[primitive.ObjectID]domain.ScheduledRun{}}
}

func (r *fakeRunRepo) CreateMany(_ context.Context, runs []domain.ScheduledRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	for i := range runs {
		if runs[i].ID == primitive.NilObjectID {
			runs[i].ID = primitive.NewObjectID()
		}
		r.runs[runs[i].ID] = runs[i]
	}
	return nil
}

func (r *fakeRunRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ScheduledRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.runs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &run, nil
}

func (r *fakeRunRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.ScheduledRun, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var runs []domain.ScheduledRun
	for _, run := range r.runs {
		if run.PlanID == planID {
			runs = append(runs, run)
		}
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].ScheduledDate.Equal(runs[j].ScheduledDate) {
			return runs[i].ID.Hex() < runs[j].ID.Hex()
		}
		return runs[i].ScheduledDate.Before(runs[j].ScheduledDate)
	})
	return runs, nil
}

func (r *fakeRunRepo) Update(_ context.Context, run *domain.ScheduledRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if run.ID == r.failOn {
		return errors.New("write conflict")
	}
	if _, ok := r.runs[run.ID]; !ok {
		return repository.ErrNotFound
	}
	r.runs[run.ID] = *run
	r.updates++
	return nil
}

type fakeAdjustmentRepo struct {
	mu          sync.Mutex
	adjustments []domain.ScheduleAdjustment
}

func (r *fakeAdjustmentRepo) Create(_ context.Context, adj *domain.ScheduleAdjustment) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	adj.ID = primitive.NewObjectID()
	r.adjustments = append(r.adjustments, *adj)
	return adj.ID, nil
}

func (r *fakeAdjustmentRepo) GetByPlanID(_ context.Context, planID primitive.ObjectID) ([]domain.ScheduleAdjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ScheduleAdjustment
	for i := len(r.adjustments) - 1; i >= 0; i-- {
		if r.adjustments[i].PlanID == planID {
			out = append(out, r.adjustments[i])
		}
	}
	return out, nil
}

type fakeRouteRepo struct {
	mu     sync.Mutex
	routes []domain.RunRoute
}

func (r *fakeRouteRepo) Create(_ context.Context, route *domain.RunRoute) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	route.ID = primitive.NewObjectID()
	route.CreatedAt = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(len(r.routes)) * time.Hour)
	r.routes = append(r.routes, *route)
	return route.ID, nil
}

func (r *fakeRouteRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.RunRoute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, route := range r.routes {
		if route.ID == id {
			return &route, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRouteRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.RunRoute, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.RunRoute
	for i := len(r.routes) - 1; i >= 0; i-- {
		if r.routes[i].UserID == userID {
			out = append(out, r.routes[i])
		}
	}
	return out, nil
}

func (r *fakeRouteRepo) SetGPXObjectKey(_ context.Context, id primitive.ObjectID, objectKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.routes {
		if r.routes[i].ID == id {
			r.routes[i].GPXObjectKey = objectKey
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	deleted []string
	putErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStorage) PutObject(_ context.Context, objectKey string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.putErr != nil {
		return s.putErr
	}
	s.objects[objectKey] = body
	s.types[objectKey] = contentType
	return nil
}

func (s *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/" + objectKey + "?sig=abc", nil
}

func (s *fakeStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectKey)
	s.deleted = append(s.deleted, objectKey)
	return nil
}
