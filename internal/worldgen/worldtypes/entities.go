// Package worldtypes holds the vector-partition record types produced by
// the province/region stages (§4.7-§4.11): provinces, regions, strategic
// points, and river segments. Kept separate from the stage implementations
// so the stages, the export package, and the pipeline facade can all depend
// on the same plain data without importing each other.
package worldtypes

import (
	"math"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
)

// Province is the smallest administrative partition of the map (spec §3).
// Provinces are referenced by integer id only (spec §9's arena discipline);
// Neighbors holds ids, never pointers.
type Province struct {
	ID       int
	CenterX  float64
	CenterY  float64
	Area     int
	Class    biome.ProvinceClass
	Coastal  bool
	Biomes   map[biome.Biome]float64 // histogram, fractions sum to 1.0
	Neighbors []int                   // sorted, deduplicated province ids

	Cells []grid.Coord // owned cell set; not serialized to provinces.json
}

// Region is a maximal set of same-class adjacent provinces (spec §3/§4.10).
type Region struct {
	ID          int
	Class       biome.ProvinceClass
	ColorHue    float64 // degrees, 0-360
	ColorSat    float64 // 0-1
	ColorLight  float64 // 0-1
	ProvinceIDs []int
}

// StrategicPoint is a single gameplay-relevant cell (spec §3/§4.11).
type StrategicPoint struct {
	X, Y       int
	Kind       biome.StrategicKind
	ProvinceID int
}

// RiverSegment is a polyline of cells with a flow magnitude (spec §3/§4.6).
type RiverSegment struct {
	Cells   []grid.Coord
	Flow    []float64 // flow accumulation at each cell, same length as Cells
	Estuary bool
}

// CentroidAngle averages a set of longitude (x) coordinates on the unit
// circle, so the mean respects the X-wrap instead of being pulled toward 0
// by provinces whose cells straddle the seam (spec §9).
func CentroidAngle(xs []int, width int) float64 {
	var sinSum, cosSum float64
	for _, x := range xs {
		theta := 2 * math.Pi * float64(x) / float64(width)
		sinSum += math.Sin(theta)
		cosSum += math.Cos(theta)
	}
	theta := math.Atan2(sinSum/float64(len(xs)), cosSum/float64(len(xs)))
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta / (2 * math.Pi) * float64(width)
}

// HistogramSum returns the sum of a province's biome histogram fractions,
// the quantity spec §8 property 10 bounds.
func HistogramSum(h map[biome.Biome]float64) float64 {
	var sum float64
	for _, v := range h {
		sum += v
	}
	return sum
}
