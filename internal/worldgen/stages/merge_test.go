package stages

import "testing"

func TestMergeLeavesNoStaleProvinceIDs(t *testing.T) {
	p := testParams()
	p.Terrain.TotalProvinces = 40
	h, sea := Heightmap(p, 41)
	water, err := Water(h, sea)
	if err != nil {
		t.Fatalf("Water error: %v", err)
	}
	provinces, pixelToID, err := Provinces(h, water, p, 41)
	if err != nil {
		t.Fatalf("Provinces error: %v", err)
	}
	merged := Merge(provinces, pixelToID)

	total := h.W * h.H
	minArea := total / len(merged) / 4
	for _, prov := range merged {
		if prov.Area < minArea && len(merged) > 1 {
			t.Logf("province %d area %d below threshold %d (acceptable if no valid merge target existed)", prov.ID, prov.Area, minArea)
		}
	}

	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			id := int(pixelToID.At(x, y))
			if id >= len(merged) {
				t.Fatalf("pixel (%d,%d) references stale id %d after merge", x, y, id)
			}
		}
	}
}
