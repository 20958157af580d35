package stages

import (
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/worldtypes"
)

// Merge runs stage 9's merge half (spec §4.8): any province smaller than
// total_area/N/4 is folded into its largest same-class neighbor by shared
// border length (ties broken by lower neighbor id), repeated to a fixpoint,
// then ids are reassigned contiguously.
func Merge(provinces []worldtypes.Province, pixelToID *grid.Grid[uint32]) []worldtypes.Province {
	total := pixelToID.W * pixelToID.H
	n := len(provinces)
	if n == 0 {
		return provinces
	}
	minArea := total / n / 4

	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	for {
		borders := borderLengths(pixelToID, parent, n)
		areas := make([]int, n)
		for i, p := range provinces {
			areas[find(i)] += len(p.Cells)
		}

		merged := false
		for i := 0; i < n; i++ {
			root := find(i)
			if root != i || areas[root] >= minArea {
				continue
			}
			best, bestLen := -1, 0
			for nb, length := range borders[root] {
				if nb == root {
					continue
				}
				if provinces[nb].Class != provinces[root].Class {
					continue
				}
				if length > bestLen || (length == bestLen && nb < best) {
					best, bestLen = nb, length
				}
			}
			if best == -1 {
				continue
			}
			// best may already have been folded into root earlier in this
			// pass; linking them again would form a parent cycle.
			target := find(best)
			if target == root {
				continue
			}
			parent[root] = target
			merged = true
		}
		if !merged {
			break
		}
	}

	return rebuildAfterMerge(provinces, pixelToID, parent, find)
}

// borderLengths returns, for each surviving root, a map from neighboring
// root id to shared border-pixel count.
func borderLengths(pixelToID *grid.Grid[uint32], parent []int, n int) []map[int]int {
	out := make([]map[int]int, n)
	for i := range out {
		out[i] = make(map[int]int)
	}
	find := func(i int) int {
		for parent[i] != i {
			i = parent[i]
		}
		return i
	}
	for y := 0; y < pixelToID.H; y++ {
		for x := 0; x < pixelToID.W; x++ {
			a := find(int(pixelToID.At(x, y)))
			for _, nb := range pixelToID.Neighbors4(x, y) {
				b := find(int(pixelToID.At(nb.X, nb.Y)))
				if a != b {
					out[a][b]++
				}
			}
		}
	}
	return out
}

func rebuildAfterMerge(provinces []worldtypes.Province, pixelToID *grid.Grid[uint32], parent []int, find func(int) int) []worldtypes.Province {
	roots := make(map[int]int) // old root id -> new contiguous id
	var newList []worldtypes.Province
	for i, p := range provinces {
		root := find(i)
		newID, ok := roots[root]
		if !ok {
			newID = len(newList)
			roots[root] = newID
			newList = append(newList, worldtypes.Province{
				ID:    newID,
				Class: provinces[root].Class,
			})
		}
		newList[newID].Cells = append(newList[newID].Cells, p.Cells...)
	}
	for i := range newList {
		newList[i].Area = len(newList[i].Cells)
	}

	for _, p := range newList {
		newID := uint32(p.ID)
		for _, c := range p.Cells {
			pixelToID.Set(c.X, c.Y, newID)
		}
	}
	return newList
}
