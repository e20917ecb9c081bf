package http

import (
	"dispatch/internal/core/application/usecases/queries"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// routeGeoJSON renders a batch as a FeatureCollection: the route starting at the hub
// as a LineString, then one Point per stop in delivery order.
func routeGeoJSON(v queries.BatchView) ([]byte, error) {
	coords := make([]geom.Coord, 0, len(v.Stops)+1)
	coords = append(coords, geom.Coord{v.Hub.Lon(), v.Hub.Lat()})
	for _, s := range v.Stops {
		coords = append(coords, geom.Coord{s.Location.Lon(), s.Location.Lat()})
	}

	route, err := geom.NewLineString(geom.XY).SetCoords(coords)
	if err != nil {
		return nil, err
	}

	features := make([]*geojson.Feature, 0, len(v.Stops)+1)
	features = append(features, &geojson.Feature{
		ID:       v.Ref,
		Geometry: route,
		Properties: map[string]any{
			"batch":    v.Ref,
			"zone":     v.Zone.String(),
			"route_km": v.RouteKm,
		},
	})

	for _, s := range v.Stops {
		point, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{s.Location.Lon(), s.Location.Lat()})
		if err != nil {
			return nil, err
		}
		features = append(features, &geojson.Feature{
			ID:       s.OrderRef,
			Geometry: point,
			Properties: map[string]any{
				"sequence":          s.Sequence,
				"order":             s.OrderRef,
				"confirmation_code": s.ConfirmationCode,
			},
		})
	}

	return (&geojson.FeatureCollection{Features: features}).MarshalJSON()
}
