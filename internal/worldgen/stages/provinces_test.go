package stages

import (
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/params"
)

func TestProvinceTotalityAndPurity(t *testing.T) {
	p := testParams()
	p.Terrain.TotalProvinces = 24
	h, sea := Heightmap(p, 31)
	water, err := Water(h, sea)
	if err != nil {
		t.Fatalf("Water error: %v", err)
	}
	provinces, pixelToID, err := Provinces(h, water, p, 31)
	if err != nil {
		t.Fatalf("Provinces error: %v", err)
	}

	// Totality (spec §8 property 4): the union of every province's own Cells
	// list must cover every grid cell exactly once, and pixelToID must agree
	// with that ownership — not merely "every pixelToID lookup returns some
	// in-range id", which is true of a zero-filled grid regardless of
	// whether every province actually claims the cells it is credited with.
	seen := make([]bool, h.W*h.H)
	for _, prov := range provinces {
		if prov.ID < 0 || prov.ID >= len(provinces) {
			t.Fatalf("province has out-of-range id %d", prov.ID)
		}
		for _, c := range prov.Cells {
			idx := h.Idx(c.X, c.Y)
			if seen[idx] {
				t.Fatalf("cell (%d,%d) claimed by more than one province", c.X, c.Y)
			}
			seen[idx] = true
			if got := pixelToID.At(c.X, c.Y); int(got) != prov.ID {
				t.Fatalf("cell (%d,%d) listed under province %d but pixelToID says %d", c.X, c.Y, prov.ID, got)
			}
		}
	}
	for i, ok := range seen {
		if !ok {
			t.Fatalf("cell index %d is not in any province's Cells list", i)
		}
	}

	for _, prov := range provinces {
		var class biome.ProvinceClass
		for i, c := range prov.Cells {
			cls := biome.ClassFromWater(water.At(c.X, c.Y))
			if i == 0 {
				class = cls
			} else if cls != class {
				t.Fatalf("province %d has mixed classes", prov.ID)
			}
		}
	}
}

// TestProvinceClaimsDisconnectedIslands exercises an Archipelago world with
// a low province count relative to its scattered land, the shape most
// likely to produce a land (or water) component the Poisson-disk pass never
// drops a seed into. Every cell, including ones on a remote island with no
// seed of its own, must still end up owned by some province.
func TestProvinceClaimsDisconnectedIslands(t *testing.T) {
	p := testParams()
	p.WorldType = params.Archipelago
	p.Islands.IslandDensity = 0.8
	p.Terrain.TotalProvinces = 16

	h, sea := Heightmap(p, 99)
	water, err := Water(h, sea)
	if err != nil {
		t.Fatalf("Water error: %v", err)
	}
	provinces, pixelToID, err := Provinces(h, water, p, 99)
	if err != nil {
		t.Fatalf("Provinces error: %v", err)
	}

	seen := make([]bool, h.W*h.H)
	for _, prov := range provinces {
		for _, c := range prov.Cells {
			seen[h.Idx(c.X, c.Y)] = true
		}
	}
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			if !seen[h.Idx(x, y)] {
				t.Fatalf("cell (%d,%d) is unclaimed by any province", x, y)
			}
			if got := pixelToID.At(x, y); int(got) >= len(provinces) {
				t.Fatalf("cell (%d,%d) maps to out-of-range province id %d", x, y, got)
			}
		}
	}
}
