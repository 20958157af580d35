package stages

import (
	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
)

// AssignBiomes runs stage 6 (spec §4.5): classifies every cell with
// biome.Classify, first computing the coastal flag (land cell 4-adjacent to
// water) that the classifier needs for its Beach rule. River overlay is
// applied afterward by the caller once stage 7 has run, per spec §4.6.
func AssignBiomes(h *grid.Grid[float32], temp, hum *grid.Grid[float32], water *grid.Grid[biome.WaterTag], seaLevel float64, th biome.Thresholds) *grid.Grid[biome.Biome] {
	w, hgt := h.W, h.H
	out := grid.New[biome.Biome](w, hgt)
	th.SeaLevel = seaLevel

	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			in := biome.Inputs{
				Elevation:   float64(h.At(x, y)),
				Temperature: float64(temp.At(x, y)),
				Humidity:    float64(hum.At(x, y)),
				Water:       water.At(x, y),
				Coastal:     isCoastal(water, x, y),
			}
			out.Set(x, y, biome.Classify(in, th))
		}
	}
	return out
}

// isCoastal reports whether a land cell has at least one water neighbor.
func isCoastal(water *grid.Grid[biome.WaterTag], x, y int) bool {
	if water.At(x, y) != biome.Land {
		return false
	}
	for _, nb := range water.Neighbors4(x, y) {
		if water.At(nb.X, nb.Y) != biome.Land {
			return true
		}
	}
	return false
}

// OverlayRivers marks every river cell as biome.River, overwriting whatever
// land biome it had, per spec §4.6 ("overwriting land biome").
func OverlayRivers(b *grid.Grid[biome.Biome], cells []grid.Coord) {
	for _, c := range cells {
		b.Set(c.X, c.Y, biome.River)
	}
}
