package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type LightingScore string

const (
	LightingWellLit LightingScore = "well_lit"
	LightingPartial LightingScore = "partial"
	LightingUnlit   LightingScore = "unlit"
	LightingUnknown LightingScore = "unknown"
)

type RouteShape string

const (
	RouteLoop         RouteShape = "loop"
	RouteOutAndBack   RouteShape = "out_and_back"
	RoutePointToPoint RouteShape = "point_to_point"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// RunRoute is a saved route. The path comes from an external routing service;
// this app only stores it.
type RunRoute struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	Name           string             `bson:"name" json:"name"`
	Waypoints      []Coordinates      `bson:"waypoints" json:"waypoints"` // User clicks
	Path           []Coordinates      `bson:"path" json:"path"`           // Routed path, falls back to waypoints
	DistanceKm     float64            `bson:"distanceKm" json:"distanceKm"`
	ElevationGainM float64            `bson:"elevationGainM" json:"elevationGainM"`
	Shape          RouteShape         `bson:"shape" json:"shape"`
	Lighting       LightingScore      `bson:"lighting" json:"lighting"`
	GPXObjectKey   string             `bson:"gpxObjectKey,omitempty" json:"-"` // Set once exported to storage
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}
