package api

import (
	"fmt"
	"net/http"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/schedule"
	"alcyxob/runplan/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves the runner's active plan and its views.
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type OnboardingRequest struct {
	HeightCm            *float64        `json:"heightCm" binding:"omitempty,gt=0"`
	WeightKg            *float64        `json:"weightKg" binding:"omitempty,gt=0"`
	LongestRunKm        float64         `json:"longestRunKm" binding:"required,gt=0"`
	CurrentWeeklyKm     float64         `json:"currentWeeklyKm" binding:"required,gt=0"`
	RunsPerWeek         int             `json:"runsPerWeek" binding:"omitempty,oneof=3 4"`
	IncludeModerateRuns *bool           `json:"includeModerateRuns"`
	TargetDate          string          `json:"targetDate" binding:"required"` // YYYY-MM-DD
	GoalRace            domain.GoalRace `json:"goalRace" binding:"omitempty,oneof=half_marathon 10k 5k custom"`
	GoalName            string          `json:"goalName"`
}

type OnboardingResponse struct {
	PlanID   string               `json:"planId"`
	Plan     PlanResponse         `json:"plan"`
	Summary  schedule.PlanSummary `json:"summary"`
	Warnings []string             `json:"warnings"`
}

// Onboarding godoc
// @Summary Complete onboarding
// @Description Stores the fitness profile and generates a new active training plan.
// @Tags Plan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body OnboardingRequest true "Fitness profile and goal"
// @Success 201 {object} OnboardingResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /onboarding [post]
func (h *PlanHandler) Onboarding(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	targetDate, err := schedule.ParseDate(req.TargetDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "targetDate must be formatted as YYYY-MM-DD")
		return
	}

	result, err := h.planService.Onboard(c.Request.Context(), userID, service.OnboardingInput{
		HeightCm:            req.HeightCm,
		WeightKg:            req.WeightKg,
		LongestRunKm:        req.LongestRunKm,
		CurrentWeeklyKm:     req.CurrentWeeklyKm,
		RunsPerWeek:         req.RunsPerWeek,
		IncludeModerateRuns: req.IncludeModerateRuns,
		TargetDate:          targetDate,
		GoalRace:            req.GoalRace,
		GoalName:            req.GoalName,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create training plan")
		return
	}

	c.JSON(http.StatusCreated, OnboardingResponse{
		PlanID:   result.Plan.ID.Hex(),
		Plan:     MapPlanToResponse(result.Plan),
		Summary:  result.Summary,
		Warnings: result.Warnings,
	})
}

// GetPlan godoc
// @Summary Active plan
// @Description Returns the active plan with all runs and a summary.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} PlanResponse
// @Failure 404 {object} gin.H "No active plan"
// @Router /plan [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	plan, err := h.planService.GetActivePlan(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve training plan")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// GetProgress godoc
// @Summary Plan progress
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} schedule.PlanProgress
// @Failure 404 {object} gin.H "No active plan"
// @Router /plan/progress [get]
func (h *PlanHandler) GetProgress(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	progress, err := h.planService.Progress(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetWeek godoc
// @Summary Week view
// @Description Lays out the Monday-to-Sunday week containing weekStart.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Param weekStart path string true "Any day of the week, YYYY-MM-DD"
// @Success 200 {object} WeekResponse
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 404 {object} gin.H "No active plan"
// @Router /plan/weeks/{weekStart} [get]
func (h *PlanHandler) GetWeek(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	weekStart, err := schedule.ParseDate(c.Param("weekStart"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "weekStart must be formatted as YYYY-MM-DD")
		return
	}

	week, err := h.planService.Week(c.Request.Context(), userID, weekStart)
	if err != nil {
		respondServiceError(c, err, "Failed to build week view")
		return
	}
	c.JSON(http.StatusOK, MapWeekToResponse(week))
}

// GetToday godoc
// @Summary Home screen
// @Description Today's run, the next run, the last completed run and progress.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TodayResponse
// @Failure 404 {object} gin.H "No active plan"
// @Router /today [get]
func (h *PlanHandler) GetToday(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	view, err := h.planService.Today(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to build today view")
		return
	}
	c.JSON(http.StatusOK, MapTodayToResponse(view))
}

// ListAdjustments godoc
// @Summary Schedule adjustment history
// @Description Accepted moves and skips for the active plan, newest first.
// @Tags Plan
// @Produce json
// @Security BearerAuth
// @Success 200 {array} AdjustmentResponse
// @Failure 404 {object} gin.H "No active plan"
// @Router /adjustments [get]
func (h *PlanHandler) ListAdjustments(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	adjustments, err := h.planService.ListAdjustments(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve adjustments")
		return
	}
	c.JSON(http.StatusOK, MapAdjustmentsToResponse(adjustments))
}
