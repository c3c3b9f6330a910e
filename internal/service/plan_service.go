package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"alcyxob/runplan/internal/config"
	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/repository"
	"alcyxob/runplan/internal/schedule"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// --- Error Definitions ---
var (
	ErrNoActivePlan        = errors.New("no active training plan")
	ErrRunNotFound         = errors.New("scheduled run not found in the active plan")
	ErrInvalidPlanInput    = errors.New("invalid plan input")
	ErrInvalidEffortRating = errors.New("effort rating must be one of easy, good, hard, struggle")
)

// OnboardingInput is the fitness profile collected on first launch.
type OnboardingInput struct {
	HeightCm            *float64
	WeightKg            *float64
	LongestRunKm        float64
	CurrentWeeklyKm     float64
	RunsPerWeek         int   // 0 uses the configured default
	IncludeModerateRuns *bool // nil uses the configured default
	TargetDate          time.Time
	GoalRace            domain.GoalRace
	GoalName            string
}

type OnboardingResult struct {
	Plan     *domain.TrainingPlan
	Summary  schedule.PlanSummary
	Warnings []string
}

// AdjustmentResult is returned once a move or skip has been written back.
type AdjustmentResult struct {
	Plan       *domain.TrainingPlan
	Preview    *domain.CascadePreview
	Adjustment *domain.ScheduleAdjustment
}

// TodayView backs the home screen.
type TodayView struct {
	UserName string
	Date     time.Time
	Snapshot schedule.TodaySnapshot
	Progress schedule.PlanProgress
}

type PlanService interface {
	Onboard(ctx context.Context, userID primitive.ObjectID, input OnboardingInput) (*OnboardingResult, error)
	GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error)

	// Previews never write anything.
	PreviewMove(ctx context.Context, userID, runID primitive.ObjectID, newDate time.Time) (*domain.CascadePreview, error)
	PreviewSkip(ctx context.Context, userID, runID primitive.ObjectID) (*domain.CascadePreview, error)
	DropDates(ctx context.Context, userID, runID primitive.ObjectID, weekStart time.Time) ([]time.Time, error)

	ApplyMove(ctx context.Context, userID, runID primitive.ObjectID, newDate time.Time, reason string) (*AdjustmentResult, error)
	ApplySkip(ctx context.Context, userID, runID primitive.ObjectID, reason string) (*AdjustmentResult, error)
	CompleteRun(ctx context.Context, userID, runID primitive.ObjectID, rating domain.EffortRating, notes string) (*domain.ScheduledRun, error)

	Today(ctx context.Context, userID primitive.ObjectID) (*TodayView, error)
	Week(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*schedule.ScheduleWeek, error)
	Progress(ctx context.Context, userID primitive.ObjectID) (*schedule.PlanProgress, error)
	ListAdjustments(ctx context.Context, userID primitive.ObjectID) ([]domain.ScheduleAdjustment, error)
}

// planService implements the PlanService interface.
type planService struct {
	userRepo       repository.UserRepository
	planRepo       repository.TrainingPlanRepository
	runRepo        repository.ScheduledRunRepository
	adjustmentRepo repository.AdjustmentRepository
	cfg            config.PlanConfig
	now            func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	userRepo repository.UserRepository,
	planRepo repository.TrainingPlanRepository,
	runRepo repository.ScheduledRunRepository,
	adjustmentRepo repository.AdjustmentRepository,
	cfg config.PlanConfig,
) PlanService {
	if cfg.DefaultRunsPerWeek == 0 {
		cfg.DefaultRunsPerWeek = 3
	}
	return &planService{
		userRepo:       userRepo,
		planRepo:       planRepo,
		runRepo:        runRepo,
		adjustmentRepo: adjustmentRepo,
		cfg:            cfg,
		now:            time.Now,
	}
}

// today is the current calendar day in the configured zone.
func (s *planService) today() time.Time {
	return schedule.Day(s.now().In(s.cfg.Location()))
}

// === Onboarding ===

// Onboard validates the fitness profile, generates a plan and stores it as the user's only active plan.
func (s *planService) Onboard(ctx context.Context, userID primitive.ObjectID, input OnboardingInput) (*OnboardingResult, error) {
	if input.RunsPerWeek == 0 {
		input.RunsPerWeek = s.cfg.DefaultRunsPerWeek
	}
	includeModerate := s.cfg.IncludeModerateRuns
	if input.IncludeModerateRuns != nil {
		includeModerate = *input.IncludeModerateRuns
	}
	today := s.today()

	switch {
	case input.LongestRunKm <= 0:
		return nil, fmt.Errorf("%w: longest run must be positive", ErrInvalidPlanInput)
	case input.CurrentWeeklyKm <= 0:
		return nil, fmt.Errorf("%w: weekly distance must be positive", ErrInvalidPlanInput)
	case input.RunsPerWeek != 3 && input.RunsPerWeek != 4:
		return nil, fmt.Errorf("%w: runs per week must be 3 or 4", ErrInvalidPlanInput)
	case input.TargetDate.IsZero():
		return nil, fmt.Errorf("%w: target date is required", ErrInvalidPlanInput)
	case !schedule.Day(input.TargetDate).After(today):
		return nil, fmt.Errorf("%w: target date must be in the future", ErrInvalidPlanInput)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	planInput := schedule.PlanInput{
		LongestRunKm:        input.LongestRunKm,
		CurrentWeeklyKm:     input.CurrentWeeklyKm,
		RunsPerWeek:         input.RunsPerWeek,
		TargetDate:          schedule.Day(input.TargetDate),
		IncludeModerateRuns: includeModerate,
		Today:               today,
	}
	generated := schedule.GeneratePlan(planInput)

	now := s.now().UTC()
	plan := schedule.NewTrainingPlan(generated, userID, planInput, now)
	if input.GoalRace != "" {
		plan.GoalRace = input.GoalRace
		plan.GoalName = input.GoalName
	}

	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	if err := s.runRepo.CreateMany(ctx, plan.Runs); err != nil {
		// An active plan without runs would shadow the previous plan.
		if statusErr := s.planRepo.UpdateStatus(ctx, plan.ID, domain.PlanAbandoned); statusErr != nil {
			log.Printf("ERROR: Failed to abandon plan %s after run insert failure: %v", plan.ID.Hex(), statusErr)
		}
		return nil, fmt.Errorf("create runs for plan %s: %w", plan.ID.Hex(), err)
	}
	if err := s.planRepo.DeactivateOthers(ctx, userID, plan.ID); err != nil {
		return nil, fmt.Errorf("deactivate previous plans: %w", err)
	}

	user.HeightCm = input.HeightCm
	user.WeightKg = input.WeightKg
	user.LongestRunKm = input.LongestRunKm
	user.CurrentWeeklyKm = input.CurrentWeeklyKm
	user.RunsPerWeek = input.RunsPerWeek
	user.IncludeModerateRuns = includeModerate
	user.OnboardingCompleted = true
	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		// The plan is already usable without the profile.
		log.Printf("WARN: Failed to update profile for user %s: %v", userID.Hex(), err)
	}

	log.Printf("INFO: Created plan %s for user %s: %d weeks, %d runs, %d warnings",
		plan.ID.Hex(), userID.Hex(), plan.TotalWeeks, len(plan.Runs), len(generated.Warnings))

	return &OnboardingResult{
		Plan:     plan,
		Summary:  schedule.Summarize(generated),
		Warnings: generated.Warnings,
	}, nil
}

// === Plan loading ===

// loadActivePlan returns the user's active plan with its runs ordered by date.
func (s *planService) loadActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	runs, err := s.runRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, fmt.Errorf("load runs for plan %s: %w", plan.ID.Hex(), err)
	}
	plan.Runs = runs
	plan.SortRuns()
	return plan, nil
}

func (s *planService) GetActivePlan(ctx context.Context, userID primitive.ObjectID) (*domain.TrainingPlan, error) {
	return s.loadActivePlan(ctx, userID)
}

// === Previews ===

func (s *planService) PreviewMove(ctx context.Context, userID, runID primitive.ObjectID, newDate time.Time) (*domain.CascadePreview, error) {
	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	preview := schedule.CalculateMoveEffect(plan, runID, newDate)
	if preview == nil {
		return nil, ErrRunNotFound
	}
	return preview, nil
}

func (s *planService) PreviewSkip(ctx context.Context, userID, runID primitive.ObjectID) (*domain.CascadePreview, error) {
	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	preview := schedule.CalculateSkipEffect(plan, runID)
	if preview == nil {
		return nil, ErrRunNotFound
	}
	return preview, nil
}

func (s *planService) DropDates(ctx context.Context, userID, runID primitive.ObjectID, weekStart time.Time) ([]time.Time, error) {
	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	run := plan.FindRun(runID)
	if run == nil {
		return nil, ErrRunNotFound
	}
	if weekStart.IsZero() {
		weekStart = schedule.StartOfWeek(run.ScheduledDate)
	}
	return schedule.ValidDropDates(plan, runID, weekStart), nil
}

// === Mutations ===

// restoreRuns writes back the pre-mutation state of runs that were already updated
// when a later write of the same change failed.
func (s *planService) restoreRuns(ctx context.Context, plan *domain.TrainingPlan, written []domain.ScheduledRun) {
	for i := len(written) - 1; i >= 0; i-- {
		original := plan.FindRun(written[i].ID)
		if original == nil {
			continue
		}
		restored := *original
		if err := s.runRepo.Update(ctx, &restored); err != nil {
			log.Printf("ERROR: Failed to restore run %s in plan %s: %v", restored.ID.Hex(), plan.ID.Hex(), err)
		}
	}
}

func (s *planService) ApplyMove(ctx context.Context, userID, runID primitive.ObjectID, newDate time.Time, reason string) (*AdjustmentResult, error) {
	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	preview := schedule.CalculateMoveEffect(plan, runID, newDate)
	if preview == nil {
		return nil, ErrRunNotFound
	}
	return s.apply(ctx, plan, preview, reason)
}

func (s *planService) ApplySkip(ctx context.Context, userID, runID primitive.ObjectID, reason string) (*AdjustmentResult, error) {
	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	preview := schedule.CalculateSkipEffect(plan, runID)
	if preview == nil {
		return nil, ErrRunNotFound
	}
	return s.apply(ctx, plan, preview, reason)
}

// apply writes an accepted preview back to the store and records it in the adjustment history.
// The preview is recomputed by the caller from the stored plan, so a stale client preview cannot be applied.
func (s *planService) apply(ctx context.Context, plan *domain.TrainingPlan, preview *domain.CascadePreview, reason string) (*AdjustmentResult, error) {
	now := s.now().UTC()
	mutation := schedule.ApplyPreview(plan, preview, now)
	if mutation == nil {
		return nil, ErrRunNotFound
	}

	affectedIDs := make([]primitive.ObjectID, len(mutation.Changed))
	for i := range mutation.Changed {
		if err := s.runRepo.Update(ctx, &mutation.Changed[i]); err != nil {
			s.restoreRuns(ctx, plan, mutation.Changed[:i])
			return nil, fmt.Errorf("update run %s: %w", mutation.Changed[i].ID.Hex(), err)
		}
		affectedIDs[i] = mutation.Changed[i].ID
	}

	adjustment := &domain.ScheduleAdjustment{
		PlanID:         plan.ID,
		Timestamp:      now,
		Type:           preview.Action,
		AffectedRunIDs: affectedIDs,
		Reason:         reason,
		CascadeEffect:  preview.Effect,
		Suggestion:     preview.Suggestion,
	}
	if _, err := s.adjustmentRepo.Create(ctx, adjustment); err != nil {
		// History is advisory; the runs are already updated.
		log.Printf("ERROR: Failed to record %s adjustment for plan %s: %v", preview.Action, plan.ID.Hex(), err)
	}

	log.Printf("INFO: Applied %s of run %s in plan %s (%d runs changed, risk %s)",
		preview.Action, preview.TargetRun.ID.Hex(), plan.ID.Hex(), len(mutation.Changed), preview.Effect.RiskLevel)

	return &AdjustmentResult{
		Plan:       mutation.Plan,
		Preview:    preview,
		Adjustment: adjustment,
	}, nil
}

// CompleteRun marks a run done with the runner's effort rating. The plan is marked completed
// once no scheduled or moved runs remain.
func (s *planService) CompleteRun(ctx context.Context, userID, runID primitive.ObjectID, rating domain.EffortRating, notes string) (*domain.ScheduledRun, error) {
	if !rating.Valid() {
		return nil, ErrInvalidEffortRating
	}

	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	run := plan.FindRun(runID)
	if run == nil {
		return nil, ErrRunNotFound
	}

	run.Status = domain.RunCompleted
	run.EffortRating = rating
	if notes != "" {
		run.Notes = notes
	}
	run.UpdatedAt = s.now().UTC()
	if err := s.runRepo.Update(ctx, run); err != nil {
		return nil, fmt.Errorf("update run %s: %w", runID.Hex(), err)
	}

	if planFinished(plan) {
		if err := s.planRepo.UpdateStatus(ctx, plan.ID, domain.PlanCompleted); err != nil {
			log.Printf("ERROR: Failed to mark plan %s completed: %v", plan.ID.Hex(), err)
		} else {
			log.Printf("INFO: Plan %s completed", plan.ID.Hex())
		}
	}

	completed := *run
	return &completed, nil
}

func planFinished(plan *domain.TrainingPlan) bool {
	for _, r := range plan.Runs {
		if r.Status == domain.RunScheduled || r.Status == domain.RunMoved {
			return false
		}
	}
	return len(plan.Runs) > 0
}

// === Views ===

// Today loads the profile and the active plan concurrently.
func (s *planService) Today(ctx context.Context, userID primitive.ObjectID) (*TodayView, error) {
	var (
		user *domain.User
		plan *domain.TrainingPlan
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.userRepo.GetByID(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		user = u
		return nil
	})
	g.Go(func() error {
		p, err := s.loadActivePlan(gctx, userID)
		if err != nil {
			return err
		}
		plan = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	today := s.today()
	return &TodayView{
		UserName: user.Name,
		Date:     today,
		Snapshot: schedule.Today(plan, today),
		Progress: schedule.Progress(plan, today),
	}, nil
}

func (s *planService) Week(ctx context.Context, userID primitive.ObjectID, weekStart time.Time) (*schedule.ScheduleWeek, error) {
	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	week := schedule.BuildWeek(plan, weekStart, s.today())
	return &week, nil
}

func (s *planService) Progress(ctx context.Context, userID primitive.ObjectID) (*schedule.PlanProgress, error) {
	plan, err := s.loadActivePlan(ctx, userID)
	if err != nil {
		return nil, err
	}
	progress := schedule.Progress(plan, s.today())
	return &progress, nil
}

func (s *planService) ListAdjustments(ctx context.Context, userID primitive.ObjectID) ([]domain.ScheduleAdjustment, error) {
	plan, err := s.planRepo.GetActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}
	adjustments, err := s.adjustmentRepo.GetByPlanID(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if adjustments == nil {
		adjustments = []domain.ScheduleAdjustment{}
	}
	return adjustments, nil
}
