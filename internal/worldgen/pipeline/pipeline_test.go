package pipeline

import (
	"context"
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/params"
)

func scenarioParams(world params.WorldType, seed uint64) params.Params {
	p := params.DefaultParams()
	p.Seed = seed
	p.Width = 256
	p.Height = 128
	p.WorldType = world
	p.Terrain.TotalProvinces = 60
	return p
}

func TestScenarioAEarthLike(t *testing.T) {
	p := scenarioParams(params.EarthLike, 42)
	p.Terrain.TotalProvinces = 120
	art, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	coastal := 0
	for _, prov := range art.Provinces {
		if prov.Coastal {
			coastal++
		}
	}
	if coastal < 1 {
		t.Errorf("expected at least one coastal province, got 0")
	}

	longest := 0
	for _, seg := range art.Rivers {
		if len(seg.Cells) > longest {
			longest = len(seg.Cells)
		}
	}
	if longest < 10 {
		t.Errorf("expected a river segment with length >= 10, longest is %d", longest)
	}

	total := int(p.Width) * int(p.Height)
	land := 0
	for _, v := range art.Height.Data {
		if float64(v) > art.SeaLevel {
			land++
		}
	}
	frac := float64(land) / float64(total)
	if frac < 0.28 || frac > 0.32 {
		t.Errorf("land fraction %f outside expected [0.28,0.32] band for EarthLike", frac)
	}
}

func TestScenarioBArchipelago(t *testing.T) {
	p := scenarioParams(params.Archipelago, 42)
	p.Islands.IslandDensity = 0.8
	art, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	total := int(p.Width) * int(p.Height)
	land := 0
	for _, v := range art.Height.Data {
		if float64(v) > art.SeaLevel {
			land++
		}
	}
	if frac := float64(land) / float64(total); frac < 0.13 || frac > 0.17 {
		t.Errorf("land fraction %f outside expected [0.13,0.17] band for Archipelago", frac)
	}

	if len(art.Regions) < 5 {
		t.Errorf("expected at least 5 regions, got %d", len(art.Regions))
	}

	// Pure islands: every province in a land region must itself be coastal.
	for _, r := range art.Regions {
		if r.Class != biome.ClassContinental {
			continue
		}
		for _, pid := range r.ProvinceIDs {
			if !art.Provinces[pid].Coastal {
				t.Errorf("region %d (land) contains non-coastal province %d", r.ID, pid)
			}
		}
	}
}

func TestScenarioCMediterranean(t *testing.T) {
	p := scenarioParams(params.Mediterranean, 7)
	art, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	total := int(p.Width) * int(p.Height)
	minLargeArea := total / 200 // generous floor so noise doesn't make this flaky

	largeLakeRegions := 0
	for _, r := range art.Regions {
		if r.Class != biome.ClassLake {
			continue
		}
		area := 0
		for _, pid := range r.ProvinceIDs {
			area += art.Provinces[pid].Area
		}
		if area >= minLargeArea {
			largeLakeRegions++
		}
	}

	surroundedOcean := 0
	for _, prov := range art.Provinces {
		if prov.Class != biome.ClassOceanic || len(prov.Neighbors) == 0 {
			continue
		}
		allLand := true
		for _, nb := range prov.Neighbors {
			if art.Provinces[nb].Class != biome.ClassContinental {
				allLand = false
				break
			}
		}
		if allLand {
			surroundedOcean++
		}
	}

	if largeLakeRegions != 1 && surroundedOcean < 1 {
		t.Errorf("expected exactly one large Lake region or at least one land-surrounded Ocean province; got %d large lake regions, %d surrounded ocean provinces",
			largeLakeRegions, surroundedOcean)
	}
}

func TestScenarioDIceAgeEarth(t *testing.T) {
	p := scenarioParams(params.IceAgeEarth, 1)
	art, err := Generate(context.Background(), p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	var coldCells int
	for _, b := range art.Biomes.Data {
		if b == biome.Ice || b == biome.Tundra {
			coldCells++
		}
	}
	if frac := float64(coldCells) / float64(len(art.Biomes.Data)); frac < 0.25 {
		t.Errorf("Ice+Tundra fraction %f below the expected >= 0.25 for IceAgeEarth", frac)
	}
}

func TestScenarioEDeterminismUnderWorkerCount(t *testing.T) {
	p1 := scenarioParams(params.EarthLike, 5)
	p1.Workers = 1
	a1, err := Generate(context.Background(), p1)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	p8 := scenarioParams(params.EarthLike, 5)
	p8.Workers = 8
	a8, err := Generate(context.Background(), p8)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	for i := range a1.Height.Data {
		if a1.Height.Data[i] != a8.Height.Data[i] {
			t.Fatalf("heightmap differs by worker count at index %d", i)
		}
	}
	if len(a1.Provinces) != len(a8.Provinces) {
		t.Fatalf("province count differs by worker count: %d vs %d", len(a1.Provinces), len(a8.Provinces))
	}
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	p := params.DefaultParams()
	p.Width = 10
	_, err := Generate(context.Background(), p)
	if err == nil {
		t.Fatal("expected an error for width below the minimum")
	}
}
