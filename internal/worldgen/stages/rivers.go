package stages

import (
	"sort"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/worldtypes"
)

// Rivers runs stage 7 (spec §4.6): D8 steepest-descent flow direction,
// Floyd/O'Callaghan flow accumulation in descending-elevation order
// (humidity-weighted), thresholding into river cells, and linking
// contiguous river cells downhill into polyline segments. Grounded on the
// same "walk downhill to the sea" control flow as a random-walk river
// tracer, generalized here to full accumulation instead of single-source
// walks, per spec §4.6.
func Rivers(h *grid.Grid[float32], hum *grid.Grid[float32], water *grid.Grid[biome.WaterTag]) ([]worldtypes.RiverSegment, *grid.Grid[float32]) {
	w, hgt := h.W, h.H
	flow := grid.New[float32](w, hgt)
	downstream := grid.New[int32](w, hgt)
	for i := range downstream.Data {
		downstream.Data[i] = -1
	}

	type cellElev struct {
		x, y int
		elev float32
	}
	cells := make([]cellElev, 0, w*hgt)
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			if water.At(x, y) == biome.Land {
				cells = append(cells, cellElev{x, y, h.At(x, y)})
				flow.Set(x, y, float32(1+hum.At(x, y)))
			}
		}
	}

	// Steepest descent among 8 neighbors for every land cell; a cell with no
	// lower neighbor routes to an equal-height one if there is one, and a
	// sink (every neighbor higher) gets no downstream cell.
	for _, c := range cells {
		var bestX, bestY = -1, -1
		bestElev := c.elev
		for _, nb := range h.Neighbors8(c.x, c.y) {
			e := h.At(nb.X, nb.Y)
			if e < bestElev || (bestX == -1 && e <= bestElev) {
				bestElev = e
				bestX, bestY = nb.X, nb.Y
			}
		}
		if bestX != -1 {
			downstream.Set(c.x, c.y, int32(h.Idx(bestX, bestY)))
		}
	}

	// Accumulate in descending elevation order (Floyd/O'Callaghan D8).
	sort.Slice(cells, func(i, j int) bool { return cells[i].elev > cells[j].elev })
	for _, c := range cells {
		idx := h.Idx(c.x, c.y)
		ds := downstream.At(c.x, c.y)
		if ds < 0 {
			continue
		}
		flow.Data[ds] += flow.Data[idx]
	}

	meanHum := meanValue(hum)
	threshold := float32(3.0) * (1 + meanHum)

	isRiver := make([]bool, w*hgt)
	for _, c := range cells {
		if flow.At(c.x, c.y) > threshold {
			isRiver[h.Idx(c.x, c.y)] = true
		}
	}

	segments := linkRiverSegments(h, water, downstream, isRiver, flow)
	return segments, flow
}

// linkRiverSegments walks each river cell's downstream chain into a polyline
// until it reaches a non-river cell or water, producing one segment per
// maximal chain whose head has no river upstream neighbor (so a
// river network's tributaries don't get re-walked as separate overlapping
// segments starting mid-chain).
func linkRiverSegments(h *grid.Grid[float32], water *grid.Grid[biome.WaterTag], downstream *grid.Grid[int32], isRiver []bool, flow *grid.Grid[float32]) []worldtypes.RiverSegment {
	w, hgt := h.W, h.H
	hasRiverUpstream := make([]bool, w*hgt)
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := h.Idx(x, y)
			if !isRiver[idx] {
				continue
			}
			ds := downstream.At(x, y)
			if ds >= 0 {
				hasRiverUpstream[ds] = true
			}
		}
	}

	var segments []worldtypes.RiverSegment
	for y := 0; y < hgt; y++ {
		for x := 0; x < w; x++ {
			idx := h.Idx(x, y)
			if !isRiver[idx] || hasRiverUpstream[idx] {
				continue
			}
			seg := worldtypes.RiverSegment{}
			cx, cy := x, y
			for {
				seg.Cells = append(seg.Cells, grid.Coord{X: cx, Y: cy})
				seg.Flow = append(seg.Flow, float64(flow.At(cx, cy)))
				ds := downstream.At(cx, cy)
				if ds < 0 {
					break
				}
				ny, nx := int(ds)/w, int(ds)%w
				if water.At(nx, ny) != biome.Land {
					seg.Estuary = water.At(nx, ny) == biome.WaterOcean
					break
				}
				if !isRiver[ds] {
					break
				}
				cx, cy = nx, ny
			}
			segments = append(segments, seg)
		}
	}
	return segments
}
