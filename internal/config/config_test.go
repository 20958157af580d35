package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-smith/mapgen/internal/worldgen/params"
)

func TestDefaultMatchesParamsDefaults(t *testing.T) {
	c := Default()
	p := c.ToParams()
	want := params.DefaultParams()
	if p != want {
		t.Fatalf("Default().ToParams() = %+v, want %+v", p, want)
	}
}

func TestLoadOverridesOnlyGivenKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.toml")
	contents := `
seed = 42
world_type = "archipelago"

[terrain]
total_provinces = 64
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	p := c.ToParams()

	if p.Seed != 42 {
		t.Errorf("Seed = %d, want 42", p.Seed)
	}
	if p.WorldType != params.Archipelago {
		t.Errorf("WorldType = %v, want Archipelago", p.WorldType)
	}
	if p.Terrain.TotalProvinces != 64 {
		t.Errorf("TotalProvinces = %d, want 64", p.Terrain.TotalProvinces)
	}

	def := params.DefaultParams()
	if p.Width != def.Width || p.Height != def.Height {
		t.Errorf("unset keys should retain defaults: got width=%d height=%d", p.Width, p.Height)
	}
	if p.Climate.PolarAmplification != def.Climate.PolarAmplification {
		t.Errorf("unset climate key should retain default, got %v", p.Climate.PolarAmplification)
	}
}

func TestLoadUnknownWorldTypeFallsBackToEarthLike(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.toml")
	if err := os.WriteFile(path, []byte(`world_type = "nonsense"`+"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.ToParams().WorldType; got != params.EarthLike {
		t.Errorf("WorldType = %v, want EarthLike fallback", got)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("Load on a missing file should error")
	}
}
