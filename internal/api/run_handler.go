package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/schedule"
	"alcyxob/runplan/internal/service"

	"github.com/gin-gonic/gin"
)

// RunHandler serves previews and mutations of individual scheduled runs.
type RunHandler struct {
	planService service.PlanService
}

func NewRunHandler(planService service.PlanService) *RunHandler {
	return &RunHandler{planService: planService}
}

type PreviewMoveRequest struct {
	NewDate string `json:"newDate" binding:"required"` // YYYY-MM-DD
}

type MoveRunRequest struct {
	NewDate string `json:"newDate" binding:"required"`
	Reason  string `json:"reason"`
}

type SkipRunRequest struct {
	Reason string `json:"reason"`
}

type CompleteRunRequest struct {
	EffortRating domain.EffortRating `json:"effortRating" binding:"required"`
	Notes        string              `json:"notes"`
}

type DropDatesResponse struct {
	Dates []string `json:"dates"`
}

// PreviewMove godoc
// @Summary Preview moving a run
// @Description Computes the cascade of moving a run to another day without changing the plan.
// @Tags Runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Param body body PreviewMoveRequest true "Target date"
// @Success 200 {object} PreviewResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Run or plan not found"
// @Router /runs/{id}/preview-move [post]
func (h *RunHandler) PreviewMove(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	runID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req PreviewMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	newDate, ok := bindDate(c, "newDate", req.NewDate)
	if !ok {
		return
	}

	preview, err := h.planService.PreviewMove(c.Request.Context(), userID, runID, newDate)
	if err != nil {
		respondServiceError(c, err, "Failed to preview move")
		return
	}
	c.JSON(http.StatusOK, MapPreviewToResponse(preview))
}

// PreviewSkip godoc
// @Summary Preview skipping a run
// @Tags Runs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Success 200 {object} PreviewResponse
// @Failure 404 {object} gin.H "Run or plan not found"
// @Router /runs/{id}/preview-skip [post]
func (h *RunHandler) PreviewSkip(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	runID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	preview, err := h.planService.PreviewSkip(c.Request.Context(), userID, runID)
	if err != nil {
		respondServiceError(c, err, "Failed to preview skip")
		return
	}
	c.JSON(http.StatusOK, MapPreviewToResponse(preview))
}

// DropDates godoc
// @Summary Valid drop targets
// @Description Days of the given week a run can be dragged onto. Defaults to the run's own week.
// @Tags Runs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Param weekStart query string false "Any day of the week, YYYY-MM-DD"
// @Success 200 {object} DropDatesResponse
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 404 {object} gin.H "Run or plan not found"
// @Router /runs/{id}/drop-dates [get]
func (h *RunHandler) DropDates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	runID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var weekStart time.Time
	if raw := c.Query("weekStart"); raw != "" {
		if weekStart, ok = bindDate(c, "weekStart", raw); !ok {
			return
		}
		weekStart = schedule.StartOfWeek(weekStart)
	}

	dates, err := h.planService.DropDates(c.Request.Context(), userID, runID, weekStart)
	if err != nil {
		respondServiceError(c, err, "Failed to compute drop dates")
		return
	}

	resp := DropDatesResponse{Dates: make([]string, len(dates))}
	for i, d := range dates {
		resp.Dates[i] = schedule.FormatDate(d)
	}
	c.JSON(http.StatusOK, resp)
}

// Move godoc
// @Summary Move a run
// @Description Applies the move and its cascade, and records the adjustment.
// @Tags Runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Param body body MoveRunRequest true "Target date and reason"
// @Success 200 {object} AppliedResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Run or plan not found"
// @Router /runs/{id}/move [post]
func (h *RunHandler) Move(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	runID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req MoveRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	newDate, ok := bindDate(c, "newDate", req.NewDate)
	if !ok {
		return
	}

	result, err := h.planService.ApplyMove(c.Request.Context(), userID, runID, newDate, req.Reason)
	if err != nil {
		respondServiceError(c, err, "Failed to move run")
		return
	}
	c.JSON(http.StatusOK, MapAppliedToResponse(result))
}

// Skip godoc
// @Summary Skip a run
// @Tags Runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Param body body SkipRunRequest false "Reason"
// @Success 200 {object} AppliedResponse
// @Failure 404 {object} gin.H "Run or plan not found"
// @Router /runs/{id}/skip [post]
func (h *RunHandler) Skip(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	runID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req SkipRunRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}

	result, err := h.planService.ApplySkip(c.Request.Context(), userID, runID, req.Reason)
	if err != nil {
		respondServiceError(c, err, "Failed to skip run")
		return
	}
	c.JSON(http.StatusOK, MapAppliedToResponse(result))
}

// Complete godoc
// @Summary Complete a run
// @Tags Runs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Run ID"
// @Param body body CompleteRunRequest true "Effort rating"
// @Success 200 {object} RunResponse
// @Failure 400 {object} gin.H "Invalid effort rating"
// @Failure 404 {object} gin.H "Run or plan not found"
// @Router /runs/{id}/complete [post]
func (h *RunHandler) Complete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	runID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	var req CompleteRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	run, err := h.planService.CompleteRun(c.Request.Context(), userID, runID, req.EffortRating, req.Notes)
	if err != nil {
		respondServiceError(c, err, "Failed to complete run")
		return
	}
	c.JSON(http.StatusOK, MapRunToResponse(run))
}

// bindDate parses a YYYY-MM-DD field, aborting with 400 when malformed.
func bindDate(c *gin.Context, field, value string) (time.Time, bool) {
	d, err := schedule.ParseDate(value)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("%s must be formatted as YYYY-MM-DD", field))
		return time.Time{}, false
	}
	return d, true
}
