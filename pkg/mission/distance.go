// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package mission

import (
	"math"

	"github.com/canonical/squad-service/internal/types"
)

const earthRadiusMeters = 6371008.8

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Haversine returns the great circle distance in meters between two points
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(a)))
}

// DistanceCovered sums, for every user, the length of the path through their
// samples in recording order
func DistanceCovered(samples []types.LocationSample) float64 {
	last := make(map[string]types.LocationSample)

	var total float64
	for _, s := range samples {
		if prev, ok := last[s.UserID]; ok {
			total += Haversine(prev.Latitude, prev.Longitude, s.Latitude, s.Longitude)
		}

		last[s.UserID] = s
	}

	return total
}
