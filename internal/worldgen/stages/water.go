package stages

import (
	"fmt"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/wgerr"
)

// Water runs stage 3 (spec §4.3): BFS flood fill from every water cell on
// row 0 or row H-1, 4-connected with X-wrap. Reachable water becomes Ocean;
// the rest of the water becomes Lake; everything else is Land. This is the
// "reachable from the map edge" resolution of the open question in spec §9 —
// grounded on the flood-fill shape of a map generator's shoreline/lake
// separation pass (the same `processWater`/`getArea` BFS-over-water-with-
// visited-set idiom as a coastline detector, just driven from the poles
// instead of an arbitrary start cell).
func Water(h *grid.Grid[float32], seaLevel float64) (*grid.Grid[biome.WaterTag], error) {
	w, hgt := h.W, h.H
	tags := grid.New[biome.WaterTag](w, hgt)
	visited := make([]bool, w*hgt)

	isWater := func(x, y int) bool {
		return float64(h.At(x, y)) <= seaLevel
	}

	queue := make([]grid.Coord, 0, w*2)
	for x := 0; x < w; x++ {
		for _, y := range [2]int{0, hgt - 1} {
			if isWater(x, y) {
				idx := h.Idx(x, y)
				if !visited[idx] {
					visited[idx] = true
					queue = append(queue, grid.Coord{X: x, Y: y})
				}
			}
		}
	}
	if len(queue) == 0 {
		return nil, &wgerr.Error{Kind: wgerr.ErrEmptyOceans, Stage: "water",
			Err: fmt.Errorf("no water cell found on the map edge at sea_level=%f", seaLevel)}
	}

	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		tags.Set(c.X, c.Y, biome.WaterOcean)
		for _, nb := range h.Neighbors4(c.X, c.Y) {
			idx := h.Idx(nb.X, nb.Y)
			if visited[idx] || !isWater(nb.X, nb.Y) {
				continue
			}
			visited[idx] = true
			queue = append(queue, nb)
		}
	}

	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			if visited[h.Idx(x, y)] {
				continue
			}
			if isWater(x, y) {
				tags.Set(x, y, biome.WaterLake)
			} else {
				tags.Set(x, y, biome.Land)
			}
		}
	}
	return tags, nil
}
