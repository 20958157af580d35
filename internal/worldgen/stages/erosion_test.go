package stages

import (
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/grid"
)

func TestErosionDeterministic(t *testing.T) {
	p := testParams()
	h0, _ := Heightmap(p, 3)
	e1 := Erosion(h0.Clone(), p, 3)
	e2 := Erosion(h0.Clone(), p, 3)
	for i := range e1.Data {
		if e1.Data[i] != e2.Data[i] {
			t.Fatalf("erosion differs at index %d", i)
		}
	}
}

func TestErosionKeepsHeightInRange(t *testing.T) {
	p := testParams()
	h0, _ := Heightmap(p, 11)
	e := Erosion(h0, p, 11)
	for _, v := range e.Data {
		if v < 0 || v > 1 {
			t.Fatalf("eroded height out of [0,1]: %f", v)
		}
	}
}

func TestThermalErosionReducesLocalSlopeVariance(t *testing.T) {
	p := testParams()
	h0, _ := Heightmap(p, 19)
	before := maxNeighborDiff(h0)
	smoothed := thermalErosion(h0, 20, 0.01, 0.5)
	after := maxNeighborDiff(smoothed)
	if after > before {
		t.Errorf("thermal erosion increased max neighbor diff: %f -> %f", before, after)
	}
}

func maxNeighborDiff(g *grid.Grid[float32]) float32 {
	var max float32
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			for _, nb := range g.Neighbors4(x, y) {
				d := g.At(x, y) - g.At(nb.X, nb.Y)
				if d < 0 {
					d = -d
				}
				if d > max {
					max = d
				}
			}
		}
	}
	return max
}
