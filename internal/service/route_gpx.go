package service

import (
	"math"

	"alcyxob/runplan/internal/domain"

	"github.com/tkrajina/gpxgo/gpx"
)

func toSegment(points []domain.Coordinates) gpx.GPXTrackSegment {
	seg := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, len(points))}
	for i, p := range points {
		seg.Points[i] = gpx.GPXPoint{Point: gpx.Point{Latitude: p.Lat, Longitude: p.Lng}}
	}
	return seg
}

// EncodeGPX renders the route's path as a single-track GPX 1.1 document.
func EncodeGPX(route *domain.RunRoute) ([]byte, error) {
	points := route.Path
	if len(points) == 0 {
		points = route.Waypoints
	}

	doc := &gpx.GPX{
		Creator: "runplan",
		Name:    route.Name,
		Tracks: []gpx.GPXTrack{{
			Name:     route.Name,
			Type:     "running",
			Segments: []gpx.GPXTrackSegment{toSegment(points)},
		}},
	}
	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}

// PathLengthKm measures a polyline in km, rounded to 10 m.
func PathLengthKm(points []domain.Coordinates) float64 {
	if len(points) < 2 {
		return 0
	}
	seg := toSegment(points)
	meters := seg.Length2D()
	return math.Round(meters/10) / 100
}
