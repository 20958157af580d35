package stages

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/params"
	"github.com/san-smith/mapgen/internal/worldgen/rng"
	"github.com/san-smith/mapgen/internal/worldgen/wgerr"
	"github.com/san-smith/mapgen/internal/worldgen/worldtypes"
)

// seedPoint is one Poisson-disk-placed province seed.
type seedPoint struct {
	x, y  int
	class biome.ProvinceClass
}

// Provinces runs stage 8 (spec §4.7): places province seeds by Bridson
// Poisson-disk sampling (land and water run separately, X-wrap aware), then
// grows them via multi-source priority-queue BFS with a (distance, seed id,
// x, y) tie-break so the result is deterministic regardless of scan order.
// Grounded on the same flood-fill family as the water-classification stage
// (§4.3), generalized here to a weighted frontier instead of unweighted BFS.
func Provinces(h *grid.Grid[float32], water *grid.Grid[biome.WaterTag], p params.Params, stageSeed uint64) ([]worldtypes.Province, *grid.Grid[uint32], error) {
	w, hgt := h.W, h.H
	total := h.W * h.H

	var landCount, oceanCount, lakeCount int
	for _, tag := range water.Data {
		switch tag {
		case biome.Land:
			landCount++
		case biome.WaterOcean:
			oceanCount++
		case biome.WaterLake:
			lakeCount++
		}
	}

	landFrac := float64(landCount) / float64(total)
	nLand := int(math.Round(float64(p.Terrain.TotalProvinces) * landFrac))
	if nLand < 1 && landCount > 0 {
		nLand = 1
	}
	nWater := p.Terrain.TotalProvinces - nLand
	// Split water seeds between ocean and lake proportionally to their area.
	waterCount := oceanCount + lakeCount
	nOcean, nLake := 0, 0
	if waterCount > 0 {
		nOcean = int(math.Round(float64(nWater) * float64(oceanCount) / float64(waterCount)))
		nLake = nWater - nOcean
	}

	var seeds []seedPoint
	seeds = append(seeds, placeSeeds(water, biome.ClassContinental, landCount, nLand, w, hgt, rng.Subseed(stageSeed, 1))...)
	seeds = append(seeds, placeSeeds(water, biome.ClassOceanic, oceanCount, nOcean, w, hgt, rng.Subseed(stageSeed, 2))...)
	seeds = append(seeds, placeSeeds(water, biome.ClassLake, lakeCount, nLake, w, hgt, rng.Subseed(stageSeed, 3))...)

	if len(seeds) == 0 {
		return nil, nil, &wgerr.Error{Kind: wgerr.ErrSeedPlacementFailed, Stage: "provinces",
			Err: fmt.Errorf("no province seeds could be placed for total_provinces=%d", p.Terrain.TotalProvinces)}
	}

	pixelToID, cellLists, seeds := growProvinces(h, water, seeds)

	provinces := make([]worldtypes.Province, len(seeds))
	for i, s := range seeds {
		provinces[i] = worldtypes.Province{
			ID:    i,
			Class: s.class,
			Cells: cellLists[i],
			Area:  len(cellLists[i]),
		}
	}
	return provinces, pixelToID, nil
}

// placeSeeds runs Bridson's Poisson-disk algorithm restricted to cells whose
// water tag matches class, with minimum distance r = sqrt(area/n/pi)*0.9
// per spec §4.7.
func placeSeeds(water *grid.Grid[biome.WaterTag], class biome.ProvinceClass, classArea, n, w, hgt int, seed uint64) []seedPoint {
	if n <= 0 || classArea == 0 {
		return nil
	}
	minDist := math.Sqrt(float64(classArea)/float64(n)/math.Pi) * 0.9
	if minDist < 1 {
		minDist = 1
	}

	matches := func(x, y int) bool {
		return biome.ClassFromWater(water.At(x, y)) == class
	}

	sm := rng.NewSplitMix64(seed)
	var placed []seedPoint
	const maxAttempts = 30
	candidates := make([]grid.Coord, 0, n*4)

	// Seed the process with one random valid point.
	for tries := 0; tries < 10000 && len(candidates) == 0; tries++ {
		x := int(sm.Float64() * float64(w))
		y := int(sm.Float64() * float64(hgt))
		if matches(x, y) {
			candidates = append(candidates, grid.Coord{X: x, Y: y})
			placed = append(placed, seedPoint{x, y, class})
		}
	}

	for len(candidates) > 0 && len(placed) < n {
		idx := int(sm.Float64() * float64(len(candidates)))
		base := candidates[idx]
		found := false
		for a := 0; a < maxAttempts; a++ {
			ang := sm.Float64() * 2 * math.Pi
			dist := minDist * (1 + sm.Float64())
			nx := grid.WrapX(base.X+int(dist*math.Cos(ang)), w)
			ny := base.Y + int(dist*math.Sin(ang))
			if ny < 0 || ny >= hgt || !matches(nx, ny) {
				continue
			}
			if tooClose(placed, nx, ny, w, minDist) {
				continue
			}
			candidates = append(candidates, grid.Coord{X: nx, Y: ny})
			placed = append(placed, seedPoint{nx, ny, class})
			found = true
			if len(placed) >= n {
				break
			}
		}
		if !found {
			candidates = append(candidates[:idx], candidates[idx+1:]...)
		}
	}
	return placed
}

func tooClose(placed []seedPoint, x, y, w int, minDist float64) bool {
	for _, s := range placed {
		dx := float64(grid.WrapDeltaX(x, s.x, w))
		dy := float64(y - s.y)
		if math.Hypot(dx, dy) < minDist {
			return true
		}
	}
	return false
}

// frontierEntry is a priority-queue item for multi-source growth: lower
// distance first, tied by seed id then x then y, per spec §4.7.
type frontierEntry struct {
	dist           float64
	seedID, x, y   int
}

type frontierQueue []frontierEntry

func (q frontierQueue) Len() int { return len(q) }
func (q frontierQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	if a.seedID != b.seedID {
		return a.seedID < b.seedID
	}
	if a.x != b.x {
		return a.x < b.x
	}
	return a.y < b.y
}
func (q frontierQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *frontierQueue) Push(x any)        { *q = append(*q, x.(frontierEntry)) }
func (q *frontierQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// growProvinces runs the multi-source weighted BFS described in spec §4.7:
// a cell may only be claimed by a seed whose class matches the cell's water
// class; cost to cross a land cell is 1 + elevation difference. A
// class-connected component the Poisson-disk pass never placed a seed in
// (a remote island in a sparsely seeded Archipelago world, say) is left
// unclaimed by the frontier search; claimOrphanComponents seeds each such
// leftover component afterward so the returned grid stays total, and
// returns the (possibly longer) seed list alongside it.
func growProvinces(h *grid.Grid[float32], water *grid.Grid[biome.WaterTag], seeds []seedPoint) (*grid.Grid[uint32], [][]grid.Coord, []seedPoint) {
	w, hgt := h.W, h.H
	pixelToID := grid.New[uint32](w, hgt)
	claimed := make([]bool, w*hgt)
	bestDist := make([]float64, w*hgt)
	for i := range bestDist {
		bestDist[i] = math.Inf(1)
	}
	cellLists := make([][]grid.Coord, len(seeds))

	pq := &frontierQueue{}
	heap.Init(pq)
	for id, s := range seeds {
		idx := h.Idx(s.x, s.y)
		bestDist[idx] = 0
		heap.Push(pq, frontierEntry{dist: 0, seedID: id, x: s.x, y: s.y})
	}

	for pq.Len() > 0 {
		e := heap.Pop(pq).(frontierEntry)
		idx := h.Idx(e.x, e.y)
		if claimed[idx] {
			continue
		}
		if e.dist > bestDist[idx] {
			continue
		}
		claimed[idx] = true
		pixelToID.Set(e.x, e.y, uint32(e.seedID))
		cellLists[e.seedID] = append(cellLists[e.seedID], grid.Coord{X: e.x, Y: e.y})

		seedClass := seeds[e.seedID].class
		for _, nb := range h.Neighbors4(e.x, e.y) {
			nidx := h.Idx(nb.X, nb.Y)
			if claimed[nidx] {
				continue
			}
			if biome.ClassFromWater(water.At(nb.X, nb.Y)) != seedClass {
				continue
			}
			cost := 1.0
			if seedClass == biome.ClassContinental {
				cost = 1 + math.Abs(float64(h.At(nb.X, nb.Y)-h.At(e.x, e.y)))
			}
			nd := e.dist + cost
			if nd < bestDist[nidx] {
				bestDist[nidx] = nd
				heap.Push(pq, frontierEntry{dist: nd, seedID: e.seedID, x: nb.X, y: nb.Y})
			}
		}
	}

	seeds, cellLists = claimOrphanComponents(h, water, pixelToID, claimed, seeds, cellLists)
	return pixelToID, cellLists, seeds
}

// claimOrphanComponents scans every cell in row-major order (deterministic
// regardless of how growProvinces's frontier happened to explore) and, for
// each still-unclaimed cell, flood-fills its entire same-class 4-connected
// component and assigns it a new seed. Any cell reachable from a placed
// seed through same-class neighbors would already be claimed (growProvinces
// has no distance cutoff), so an unclaimed cell is proof its whole
// component holds zero seeds.
func claimOrphanComponents(h *grid.Grid[float32], water *grid.Grid[biome.WaterTag], pixelToID *grid.Grid[uint32], claimed []bool, seeds []seedPoint, cellLists [][]grid.Coord) ([]seedPoint, [][]grid.Coord) {
	w, hgt := h.W, h.H
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := h.Idx(x, y)
			if claimed[idx] {
				continue
			}
			class := biome.ClassFromWater(water.At(x, y))
			newID := len(seeds)
			seeds = append(seeds, seedPoint{x, y, class})
			cellLists = append(cellLists, nil)

			queue := []grid.Coord{{X: x, Y: y}}
			claimed[idx] = true
			for len(queue) > 0 {
				c := queue[0]
				queue = queue[1:]
				pixelToID.Set(c.X, c.Y, uint32(newID))
				cellLists[newID] = append(cellLists[newID], c)
				for _, nb := range h.Neighbors4(c.X, c.Y) {
					nidx := h.Idx(nb.X, nb.Y)
					if claimed[nidx] {
						continue
					}
					if biome.ClassFromWater(water.At(nb.X, nb.Y)) != class {
						continue
					}
					claimed[nidx] = true
					queue = append(queue, nb)
				}
			}
		}
	}
	return seeds, cellLists
}
