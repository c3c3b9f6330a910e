package api

import (
	"fmt"
	"net/http"
	"time"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/service"

	"github.com/gin-gonic/gin"
)

// RouteHandler serves saved running routes.
type RouteHandler struct {
	routeService service.RouteService
}

func NewRouteHandler(routeService service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

type CreateRouteRequest struct {
	Name           string               `json:"name"`
	Waypoints      []domain.Coordinates `json:"waypoints" binding:"required"`
	Path           []domain.Coordinates `json:"path"`
	DistanceKm     float64              `json:"distanceKm" binding:"gte=0"`
	ElevationGainM float64              `json:"elevationGainM" binding:"gte=0"`
	Lighting       domain.LightingScore `json:"lighting"`
}

type RouteExportResponse struct {
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// CreateRoute godoc
// @Summary Save a route
// @Description Stores a drawn route. Distance is measured from the path when omitted.
// @Tags Routes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param route body CreateRouteRequest true "Route"
// @Success 201 {object} RouteResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Router /routes [post]
func (h *RouteHandler) CreateRoute(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	route, err := h.routeService.CreateRoute(c.Request.Context(), userID, service.CreateRouteInput{
		Name:           req.Name,
		Waypoints:      req.Waypoints,
		Path:           req.Path,
		DistanceKm:     req.DistanceKm,
		ElevationGainM: req.ElevationGainM,
		Lighting:       req.Lighting,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to save route")
		return
	}
	c.JSON(http.StatusCreated, MapRouteToResponse(route))
}

// ListRoutes godoc
// @Summary List saved routes
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} RouteResponse
// @Router /routes [get]
func (h *RouteHandler) ListRoutes(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	routes, err := h.routeService.ListRoutes(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve routes")
		return
	}
	c.JSON(http.StatusOK, MapRoutesToResponse(routes))
}

// ExportRoute godoc
// @Summary Export a route as GPX
// @Description Uploads a GPX file to storage and returns a temporary download link.
// @Tags Routes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Route ID"
// @Success 200 {object} RouteExportResponse
// @Failure 404 {object} gin.H "Route not found"
// @Router /routes/{id}/export [post]
func (h *RouteHandler) ExportRoute(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	routeID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	export, err := h.routeService.ExportGPX(c.Request.Context(), userID, routeID)
	if err != nil {
		respondServiceError(c, err, "Failed to export route")
		return
	}
	c.JSON(http.StatusOK, RouteExportResponse{
		DownloadURL: export.DownloadURL,
		ExpiresAt:   export.ExpiresAt,
	})
}
