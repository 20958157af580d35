package stages

import (
	"math"
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/params"
)

func testParams() params.Params {
	p := params.DefaultParams()
	p.Width = 128
	p.Height = 64
	return p
}

func TestHeightmapDeterministic(t *testing.T) {
	p := testParams()
	g1, s1 := Heightmap(p, 42)
	g2, s2 := Heightmap(p, 42)
	if s1 != s2 {
		t.Fatalf("sea level differs across runs: %f vs %f", s1, s2)
	}
	for i := range g1.Data {
		if g1.Data[i] != g2.Data[i] {
			t.Fatalf("heightmap differs at index %d", i)
			break
		}
	}
}

func TestHeightmapSeamContinuity(t *testing.T) {
	p := testParams()
	g, _ := Heightmap(p, 7)
	var maxDiff float32
	for y := 0; y < g.H; y++ {
		d := g.At(0, y) - g.At(g.W-1, y)
		if d < 0 {
			d = -d
		}
		if d > maxDiff {
			maxDiff = d
		}
	}
	if maxDiff > 0.2 {
		t.Errorf("seam discontinuity too large: %f", maxDiff)
	}
}

func TestHeightmapInUnitRange(t *testing.T) {
	p := testParams()
	g, _ := Heightmap(p, 1)
	for _, v := range g.Data {
		if v < 0 || v > 1 {
			t.Fatalf("heightmap value out of [0,1]: %f", v)
		}
	}
}

func TestFindSeaLevelHitsLandFractionTarget(t *testing.T) {
	p := testParams()
	p.WorldType = params.Supercontinent
	g, sea := Heightmap(p, 99)
	frac := landFraction(g, sea)
	target := p.WorldType.TargetLandFraction()
	if math.Abs(frac-target) > 0.02 {
		t.Errorf("land fraction %f too far from target %f", frac, target)
	}
}

func TestWorkerCountDeterminism(t *testing.T) {
	p := testParams()
	p.Workers = 1
	g1, _ := Heightmap(p, 5)
	p.Workers = 8
	g2, _ := Heightmap(p, 5)
	for i := range g1.Data {
		if g1.Data[i] != g2.Data[i] {
			t.Fatalf("heightmap differs by worker count at index %d", i)
		}
	}
}
