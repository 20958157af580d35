// Package export renders a pipeline.Artifacts value to the on-disk formats
// consumed by the browser demo shell and the CLI's inspect command: the six
// PNG layers and the two JSON documents of spec §6, plus a non-authoritative
// YAML debug snapshot in the teacher's config-loading idiom.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/grid"
	"github.com/san-smith/mapgen/internal/worldgen/pipeline"
	"github.com/san-smith/mapgen/internal/worldgen/rng"
)

// WritePNGs writes every §6 PNG layer into dir, creating it if necessary.
func WritePNGs(a *pipeline.Artifacts, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", dir, err)
	}

	writers := []struct {
		name string
		fn   func(*pipeline.Artifacts) image.Image
	}{
		{"heightmap.png", heightmapImage},
		{"biomes.png", biomesImage},
		{"provinces.png", provincesImage},
		{"regions.png", regionsImage},
		{"rivers.png", riversImage},
		{"normals.png", normalsImage},
	}
	for _, w := range writers {
		if err := writePNG(filepath.Join(dir, w.name), w.fn(a)); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return nil
}

// heightmapImage renders H as 16-bit grayscale, per spec §6.
func heightmapImage(a *pipeline.Artifacts) image.Image {
	h := a.Height
	img := image.NewGray16(image.Rect(0, 0, h.W, h.H))
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			v := clamp01(h.At(x, y))
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535)})
		}
	}
	return img
}

// biomesImage renders the biome grid with the fixed per-biome palette color
// of internal/worldgen/biome's registry.
func biomesImage(a *pipeline.Artifacts) image.Image {
	b := a.Biomes
	img := image.NewRGBA(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			img.Set(x, y, hexColor(biome.Get(b.At(x, y)).Color))
		}
	}
	return img
}

// provincesImage colors every cell by a hash of its owning province id, with
// a black 1-pixel border along ownership discontinuities (spec §6).
func provincesImage(a *pipeline.Artifacts) image.Image {
	p := a.PixelToProvince
	img := image.NewRGBA(image.Rect(0, 0, p.W, p.H))
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			id := p.At(x, y)
			if onProvinceBorder(p, x, y) {
				img.Set(x, y, color.Black)
				continue
			}
			img.Set(x, y, hashColor(uint64(id)))
		}
	}
	return img
}

func onProvinceBorder(p *grid.Grid[uint32], x, y int) bool {
	id := p.At(x, y)
	for _, n := range p.Neighbors4(x, y) {
		if p.At(n.X, n.Y) != id {
			return true
		}
	}
	return false
}

// regionsImage colors every province cell by its owning region's stored HSL
// color, shared across every province in that region.
func regionsImage(a *pipeline.Artifacts) image.Image {
	regionOf := make(map[int]int, len(a.Provinces))
	for _, r := range a.Regions {
		for _, pid := range r.ProvinceIDs {
			regionOf[pid] = r.ID
		}
	}
	regionColor := make(map[int]color.Color, len(a.Regions))
	for _, r := range a.Regions {
		regionColor[r.ID] = hslColor(r.ColorHue, r.ColorSat, r.ColorLight)
	}

	p := a.PixelToProvince
	img := image.NewRGBA(image.Rect(0, 0, p.W, p.H))
	for y := 0; y < p.H; y++ {
		for x := 0; x < p.W; x++ {
			rid := regionOf[int(p.At(x, y))]
			img.Set(x, y, regionColor[rid])
		}
	}
	return img
}

// riversImage overlays the biome map with blue cells along every river
// polyline, per spec §6.
func riversImage(a *pipeline.Artifacts) image.Image {
	base := biomesImage(a)
	img := image.NewRGBA(base.Bounds())
	draw.Draw(img, img.Bounds(), base, image.Point{}, draw.Src)

	riverBlue := color.RGBA{R: 0x3A, G: 0x7C, B: 0xA5, A: 0xFF}
	for _, seg := range a.Rivers {
		for _, c := range seg.Cells {
			img.Set(c.X, c.Y, riverBlue)
		}
	}
	return img
}

// normalsImage derives an RGB normal map from H via central differences,
// packed into [0,255] the conventional way (N*0.5+0.5).
func normalsImage(a *pipeline.Artifacts) image.Image {
	h := a.Height
	img := image.NewRGBA(image.Rect(0, 0, h.W, h.H))
	for y := 0; y < h.H; y++ {
		for x := 0; x < h.W; x++ {
			left := h.At(x-1, y)
			right := h.At(x+1, y)
			var up, down float32
			if y > 0 {
				up = h.At(x, y-1)
			} else {
				up = h.At(x, y)
			}
			if y < h.H-1 {
				down = h.At(x, y+1)
			} else {
				down = h.At(x, y)
			}

			dx := float64(right - left)
			dy := float64(down - up)
			nx, ny, nz := -dx, -dy, 2.0/float64(h.W)
			length := math.Sqrt(nx*nx + ny*ny + nz*nz)
			nx, ny, nz = nx/length, ny/length, nz/length

			img.Set(x, y, color.RGBA{
				R: pack01(nx),
				G: pack01(ny),
				B: pack01(nz),
				A: 0xFF,
			})
		}
	}
	return img
}

func pack01(v float64) uint8 {
	return uint8(clamp01f((v*0.5 + 0.5)) * 255)
}

func clamp01(v float32) float64 {
	return clamp01f(float64(v))
}

func clamp01f(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func hexColor(hex string) color.Color {
	var r, g, b uint8
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}
}

// hashColor derives a stable RGB color from an id by mixing it through the
// pipeline's splitmix64 finalizer, the same hash used to color map layers
// deterministically by id elsewhere in the pipeline (regions.go's hue).
func hashColor(id uint64) color.Color {
	h := rng.Mix64(id)
	return color.RGBA{
		R: uint8(h),
		G: uint8(h >> 8),
		B: uint8(h >> 16),
		A: 0xFF,
	}
}

// hslColor converts HSL (hue in degrees, saturation/lightness in [0,1]) to
// an RGBA color.
func hslColor(hue, sat, light float64) color.Color {
	h := math.Mod(hue, 360) / 360
	var r, g, b float64
	if sat == 0 {
		r, g, b = light, light, light
	} else {
		var q float64
		if light < 0.5 {
			q = light * (1 + sat)
		} else {
			q = light + sat - light*sat
		}
		p := 2*light - q
		r = hueToRGB(p, q, h+1.0/3)
		g = hueToRGB(p, q, h)
		b = hueToRGB(p, q, h-1.0/3)
	}
	return color.RGBA{R: uint8(r * 255), G: uint8(g * 255), B: uint8(b * 255), A: 0xFF}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}
