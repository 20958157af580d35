package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-smith/mapgen/internal/worldgen/pipeline"
)

// ProvinceRecord is one entry of provinces.json, per spec §6's exact field
// list. Exported so callers can decode a previously-written provinces.json
// back via ImportProvinces without redeclaring the schema.
type ProvinceRecord struct {
	ID      int                `json:"id"`
	Color   string             `json:"color"`
	Center  [2]float64         `json:"center"`
	Area    int                `json:"area"`
	Type    string             `json:"type"`
	Coastal bool               `json:"coastal"`
	Biomes  map[string]float64 `json:"biomes"`
}

// regionDoc is one entry of regions.json, per spec §6's exact field list.
type regionDoc struct {
	ID          int    `json:"id"`
	Color       string `json:"color"`
	ProvinceIDs []int  `json:"province_ids"`
}

// WriteJSON writes provinces.json and regions.json into dir.
func WriteJSON(a *pipeline.Artifacts, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", dir, err)
	}
	if err := writeProvincesJSON(a, filepath.Join(dir, "provinces.json")); err != nil {
		return err
	}
	return writeRegionsJSON(a, filepath.Join(dir, "regions.json"))
}

// ImportProvinces reads a provinces.json file previously written by
// WriteJSON and decodes it back into ProvinceRecord values — the inverse of
// writeProvincesJSON, exercising the read side of spec §8's round-trip
// property instead of leaving it untested.
func ImportProvinces(path string) ([]ProvinceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("export: open %s: %w", path, err)
	}
	defer f.Close()
	var docs []ProvinceRecord
	if err := json.NewDecoder(f).Decode(&docs); err != nil {
		return nil, fmt.Errorf("export: decode %s: %w", path, err)
	}
	return docs, nil
}

func writeProvincesJSON(a *pipeline.Artifacts, path string) error {
	docs := make([]ProvinceRecord, len(a.Provinces))
	for i, p := range a.Provinces {
		biomes := make(map[string]float64, len(p.Biomes))
		for b, frac := range p.Biomes {
			biomes[string(b)] = frac
		}
		docs[i] = ProvinceRecord{
			ID:      p.ID,
			Color:   hexString(hashColor(uint64(p.ID))),
			Center:  [2]float64{p.CenterX, p.CenterY},
			Area:    p.Area,
			Type:    p.Class.String(),
			Coastal: p.Coastal,
			Biomes:  biomes,
		}
	}
	return writeJSONFile(path, docs)
}

func writeRegionsJSON(a *pipeline.Artifacts, path string) error {
	docs := make([]regionDoc, len(a.Regions))
	for i, r := range a.Regions {
		docs[i] = regionDoc{
			ID:          r.ID,
			Color:       hexString(hslColor(r.ColorHue, r.ColorSat, r.ColorLight)),
			ProvinceIDs: r.ProvinceIDs,
		}
	}
	return writeJSONFile(path, docs)
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("export: encode %s: %w", path, err)
	}
	return nil
}

func hexString(c any) string {
	type rgba interface {
		RGBA() (r, g, b, a uint32)
	}
	rc := c.(rgba)
	r, g, b, _ := rc.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
