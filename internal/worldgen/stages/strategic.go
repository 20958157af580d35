package stages

import (
	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/worldtypes"
)

// Strategic runs stage 11 (spec §4.11): Ports (coastal land province, at the
// border cell with the largest adjacent ocean-province area), Estuaries
// (from the river stage's segment endpoints), and Passes (local-minimum
// ridge cells between two land provinces above sea_level+0.15).
func Strategic(h *grid.Grid[float32], water *grid.Grid[biome.WaterTag], pixelToID *grid.Grid[uint32], provinces []worldtypes.Province, rivers []worldtypes.RiverSegment, seaLevel float64) []worldtypes.StrategicPoint {
	var points []worldtypes.StrategicPoint
	points = append(points, ports(water, pixelToID, provinces)...)
	points = append(points, estuaries(water, pixelToID, rivers)...)
	points = append(points, passes(h, water, pixelToID, provinces, seaLevel)...)
	return points
}

func ports(water *grid.Grid[biome.WaterTag], pixelToID *grid.Grid[uint32], provinces []worldtypes.Province) []worldtypes.StrategicPoint {
	areaByProvince := make([]int, len(provinces))
	for _, p := range provinces {
		areaByProvince[p.ID] = p.Area
	}

	type best struct {
		x, y, oceanArea int
		found           bool
	}
	bestByLandProvince := make(map[int]best)

	for y := 0; y < pixelToID.H; y++ {
		for x := 0; x < pixelToID.W; x++ {
			id := int(pixelToID.At(x, y))
			if provinces[id].Class != biome.ClassContinental || water.At(x, y) != biome.Land {
				continue
			}
			if !provinces[id].Coastal {
				continue
			}
			for _, nb := range water.Neighbors4(x, y) {
				nbID := int(pixelToID.At(nb.X, nb.Y))
				if provinces[nbID].Class != biome.ClassOceanic {
					continue
				}
				area := areaByProvince[nbID]
				cur := bestByLandProvince[id]
				if !cur.found || area > cur.oceanArea {
					bestByLandProvince[id] = best{x, y, area, true}
				}
			}
		}
	}

	var points []worldtypes.StrategicPoint
	for provID, b := range bestByLandProvince {
		points = append(points, worldtypes.StrategicPoint{X: b.x, Y: b.y, Kind: biome.Port, ProvinceID: provID})
	}
	return points
}

func estuaries(water *grid.Grid[biome.WaterTag], pixelToID *grid.Grid[uint32], rivers []worldtypes.RiverSegment) []worldtypes.StrategicPoint {
	var points []worldtypes.StrategicPoint
	for _, seg := range rivers {
		if !seg.Estuary || len(seg.Cells) == 0 {
			continue
		}
		mouth := seg.Cells[len(seg.Cells)-1]
		id := int(pixelToID.At(mouth.X, mouth.Y))
		points = append(points, worldtypes.StrategicPoint{X: mouth.X, Y: mouth.Y, Kind: biome.Estuary, ProvinceID: id})
	}
	return points
}

// passes scans each land-land province adjacency for its lowest shared
// border cell, and marks it a Pass if that cell is a 3x3 local minimum among
// mountain cells above sea_level+0.15 (spec §4.11).
func passes(h *grid.Grid[float32], water *grid.Grid[biome.WaterTag], pixelToID *grid.Grid[uint32], provinces []worldtypes.Province, seaLevel float64) []worldtypes.StrategicPoint {
	ridgeLevel := seaLevel + 0.15

	type edgeKey struct{ a, b int }
	lowest := make(map[edgeKey]grid.Coord)
	lowestElev := make(map[edgeKey]float32)

	for y := 0; y < pixelToID.H; y++ {
		for x := 0; x < pixelToID.W; x++ {
			if water.At(x, y) != biome.Land {
				continue
			}
			a := int(pixelToID.At(x, y))
			for _, nb := range pixelToID.Neighbors4(x, y) {
				if water.At(nb.X, nb.Y) != biome.Land {
					continue
				}
				b := int(pixelToID.At(nb.X, nb.Y))
				if a == b {
					continue
				}
				key := edgeKey{min(a, b), max(a, b)}
				elev := h.At(x, y)
				if prev, ok := lowestElev[key]; !ok || elev < prev {
					lowestElev[key] = elev
					lowest[key] = grid.Coord{X: x, Y: y}
				}
			}
		}
	}

	var points []worldtypes.StrategicPoint
	for key, c := range lowest {
		if float64(h.At(c.X, c.Y)) <= ridgeLevel {
			continue
		}
		if !isLocalMinimumAmongMountains(h, c.X, c.Y, ridgeLevel) {
			continue
		}
		points = append(points, worldtypes.StrategicPoint{X: c.X, Y: c.Y, Kind: biome.Pass, ProvinceID: key.a})
	}
	return points
}

func isLocalMinimumAmongMountains(h *grid.Grid[float32], x, y int, ridgeLevel float64) bool {
	center := h.At(x, y)
	for _, nb := range h.Neighbors8(x, y) {
		e := h.At(nb.X, nb.Y)
		if float64(e) <= ridgeLevel {
			continue
		}
		if e <= center {
			return false
		}
	}
	return true
}
