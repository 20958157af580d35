// Package pipeline orchestrates the eleven generation stages of spec §2
// into a single Generate call, owning every grid and graph produced along
// the way (spec §3 "Lifecycle": the driver owns everything, stages borrow).
package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/san-smith/mapgen/internal/worldgen/biome"
	"github.com/san-smith/mapgen/internal/worldgen/params"
	"github.com/san-smith/mapgen/internal/worldgen/rng"
	"github.com/san-smith/mapgen/internal/worldgen/stages"
)

// Driver runs the pipeline with a configurable logger, mirroring the
// teacher's habit of injecting a *log.Logger rather than reaching for a
// logging package (internal/db, cmd/server). The worker count comes from
// params.Params.Workers, not from the Driver.
type Driver struct {
	Logger *log.Logger
}

// NewDriver returns a Driver that logs to log.Default().
func NewDriver() *Driver {
	return &Driver{Logger: log.Default()}
}

func (d *Driver) logf(format string, args ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, args...)
	}
}

// Generate runs the full pipeline (spec §2's eleven stages) and returns the
// completed Artifacts, or an error with no partial result (spec §7): a
// closed-set *wgerr.Error, or the context's own error when ctx is cancelled.
// The caller's context is checked between stages only; stages themselves are
// atomic (spec §5 "Cancellation").
func (d *Driver) Generate(ctx context.Context, p params.Params) (*Artifacts, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	stageNames := []string{
		"heightmap", "erosion", "water", "temperature", "humidity",
		"biomes", "rivers", "provinces", "merge+graph", "regions", "strategic",
	}
	stageIdx := 0
	checkpoint := func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	logStage := func(start time.Time) {
		d.logf("stage %-12s done in %s", stageNames[stageIdx], time.Since(start))
		stageIdx++
	}

	t0 := time.Now()
	height, seaLevel := stages.Heightmap(p, p.Seed)
	logStage(t0)
	if err := checkpoint(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	height = stages.Erosion(height, p, p.Seed)
	logStage(t0)
	if err := checkpoint(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	water, err := stages.Water(height, seaLevel)
	if err != nil {
		return nil, err
	}
	logStage(t0)
	if err := checkpoint(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	temperature := stages.Temperature(height, seaLevel, p)
	logStage(t0)

	t0 = time.Now()
	humidity := stages.Humidity(height, water, p)
	logStage(t0)
	if err := checkpoint(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	th := biome.DefaultThresholds()
	biomes := stages.AssignBiomes(height, temperature, humidity, water, seaLevel, th)
	logStage(t0)

	t0 = time.Now()
	riverSegments, _ := stages.Rivers(height, humidity, water)
	for _, seg := range riverSegments {
		stages.OverlayRivers(biomes, seg.Cells)
	}
	logStage(t0)
	if err := checkpoint(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	provinceSeed := rng.Subseed(p.Seed, rng.TagProvinces)
	provinces, pixelToProvince, err := stages.Provinces(height, water, p, provinceSeed)
	if err != nil {
		return nil, err
	}
	logStage(t0)
	if err := checkpoint(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	provinces = stages.Merge(provinces, pixelToProvince)
	stages.AdjacencyGraph(provinces, pixelToProvince, biomes)
	logStage(t0)
	if err := checkpoint(); err != nil {
		return nil, err
	}

	t0 = time.Now()
	regions := stages.Regions(provinces)
	logStage(t0)

	t0 = time.Now()
	strategicPoints := stages.Strategic(height, water, pixelToProvince, provinces, riverSegments, seaLevel)
	logStage(t0)

	return &Artifacts{
		Params:          p,
		Height:          height,
		Water:           water,
		Temperature:     temperature,
		Humidity:        humidity,
		Biomes:          biomes,
		PixelToProvince: pixelToProvince,
		Provinces:       provinces,
		Regions:         regions,
		Rivers:          riverSegments,
		StrategicPoints: strategicPoints,
		SeaLevel:        seaLevel,
	}, nil
}

// Generate is the package-level convenience entry point matching spec §6's
// `generate_world(params) -> WorldArtifacts`, using a default Driver.
func Generate(ctx context.Context, p params.Params) (*Artifacts, error) {
	return NewDriver().Generate(ctx, p)
}
