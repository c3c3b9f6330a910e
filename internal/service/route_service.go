package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"alcyxob/runplan/internal/domain"
	"alcyxob/runplan/internal/repository"
	"alcyxob/runplan/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrRouteNotFound     = errors.New("route not found")
	ErrRouteTooShort     = errors.New("route must have at least 2 waypoints")
	ErrInvalidLighting   = errors.New("lighting must be one of well_lit, partial, unlit, unknown")
	ErrRouteExportFailed = errors.New("failed to export route")
)

const gpxContentType = "application/gpx+xml"

// CreateRouteInput is a drawn route. Path is the routed polyline; when empty the waypoints are used.
type CreateRouteInput struct {
	Name           string
	Waypoints      []domain.Coordinates
	Path           []domain.Coordinates
	DistanceKm     float64 // 0 means measure the path
	ElevationGainM float64
	Lighting       domain.LightingScore
}

// RouteExport points at a GPX file in object storage.
type RouteExport struct {
	ObjectKey   string
	DownloadURL string
	ExpiresAt   time.Time
}

type RouteService interface {
	CreateRoute(ctx context.Context, userID primitive.ObjectID, input CreateRouteInput) (*domain.RunRoute, error)
	ListRoutes(ctx context.Context, userID primitive.ObjectID) ([]domain.RunRoute, error)
	ExportGPX(ctx context.Context, userID, routeID primitive.ObjectID) (*RouteExport, error)
}

type routeService struct {
	routeRepo   repository.RouteRepository
	fileStorage storage.FileStorage
	now         func() time.Time
}

// NewRouteService creates a new instance of routeService.
func NewRouteService(routeRepo repository.RouteRepository, fileStorage storage.FileStorage) RouteService {
	return &routeService{
		routeRepo:   routeRepo,
		fileStorage: fileStorage,
		now:         time.Now,
	}
}

func (s *routeService) CreateRoute(ctx context.Context, userID primitive.ObjectID, input CreateRouteInput) (*domain.RunRoute, error) {
	if len(input.Waypoints) < 2 {
		return nil, ErrRouteTooShort
	}

	lighting := input.Lighting
	switch lighting {
	case "":
		lighting = domain.LightingUnknown
	case domain.LightingWellLit, domain.LightingPartial, domain.LightingUnlit, domain.LightingUnknown:
	default:
		return nil, ErrInvalidLighting
	}

	routePath := input.Path
	if len(routePath) == 0 {
		routePath = input.Waypoints
	}

	name := input.Name
	if name == "" {
		name = "Route " + s.now().UTC().Format("2006-01-02")
	}

	route := &domain.RunRoute{
		UserID:         userID,
		Name:           name,
		Waypoints:      input.Waypoints,
		Path:           routePath,
		DistanceKm:     input.DistanceKm,
		ElevationGainM: input.ElevationGainM,
		Shape:          DetectShape(input.Waypoints),
		Lighting:       lighting,
	}
	if route.DistanceKm <= 0 {
		route.DistanceKm = PathLengthKm(routePath)
	}

	id, err := s.routeRepo.Create(ctx, route)
	if err != nil {
		return nil, fmt.Errorf("create route: %w", err)
	}
	route.ID = id
	return route, nil
}

func (s *routeService) ListRoutes(ctx context.Context, userID primitive.ObjectID) ([]domain.RunRoute, error) {
	routes, err := s.routeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []domain.RunRoute{}
	}
	return routes, nil
}

// ExportGPX writes the route as a GPX track to object storage and returns a short-lived
// download URL. A previous export of the same route is replaced.
func (s *routeService) ExportGPX(ctx context.Context, userID, routeID primitive.ObjectID) (*RouteExport, error) {
	route, err := s.routeRepo.GetByID(ctx, routeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRouteNotFound
		}
		return nil, err
	}
	// Other users' routes are reported as missing.
	if route.UserID != userID {
		return nil, ErrRouteNotFound
	}

	body, err := EncodeGPX(route)
	if err != nil {
		log.Printf("ERROR: Failed to encode GPX for route %s: %v", routeID.Hex(), err)
		return nil, ErrRouteExportFailed
	}

	objectKey := path.Join("routes", userID.Hex(), routeID.Hex(), uuid.NewString()+".gpx")
	if err := s.fileStorage.PutObject(ctx, objectKey, body, gpxContentType); err != nil {
		return nil, ErrRouteExportFailed
	}
	if err := s.routeRepo.SetGPXObjectKey(ctx, routeID, objectKey); err != nil {
		return nil, fmt.Errorf("record export of route %s: %w", routeID.Hex(), err)
	}
	if route.GPXObjectKey != "" && route.GPXObjectKey != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, route.GPXObjectKey); err != nil {
			log.Printf("WARN: Failed to delete previous export '%s': %v", route.GPXObjectKey, err)
		}
	}

	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrRouteExportFailed
	}

	return &RouteExport{
		ObjectKey:   objectKey,
		DownloadURL: url,
		ExpiresAt:   s.now().UTC().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

// DetectShape reports a loop when the route ends exactly where it starts.
func DetectShape(waypoints []domain.Coordinates) domain.RouteShape {
	if len(waypoints) >= 2 && waypoints[0] == waypoints[len(waypoints)-1] {
		return domain.RouteLoop
	}
	return domain.RoutePointToPoint
}
