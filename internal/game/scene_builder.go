package game

import (
	"context"
	"math/rand/v2"

	"scenery/internal/config"
	"scenery/internal/logging"
	"scenery/internal/profiling"
	"scenery/internal/render"
	"scenery/internal/scene"
	"scenery/internal/terrain"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Placement is one model instance of a grid.
type Placement struct {
	Transform scene.Transform
	Shade     float32 // diffuse/ambient multiplier; 1 keeps the model's material
}

// TerrainParams converts the terrain section of the config.
func TerrainParams(c config.TerrainConfig) terrain.Params {
	return terrain.Params{
		Size:        c.Size,
		Resolution:  c.Resolution,
		Amplitude:   c.Amplitude,
		Seed:        c.Seed,
		Octaves:     c.Octaves,
		Persistence: c.Persistence,
		Lacunarity:  c.Lacunarity,
		Frequency:   c.Frequency,
	}
}

// Ground returns the terrain height function, or nil when terrain is off.
func Ground(c config.TerrainConfig) func(x, z float32) float32 {
	if !c.Enabled {
		return nil
	}
	return TerrainParams(c).HeightAt
}

// GridPlacements lays out Rows×Cols instances of a model starting at its
// position, stepping Spacing along +X per column and +Z per row. Variation
// spreads yaw, scale and shade with a generator seeded from the config, so
// the same config always yields the same grid.
func GridPlacements(mc config.ModelConfig, ground func(x, z float32) float32) []Placement {
	rows, cols := max(mc.Rows, 1), max(mc.Cols, 1)
	rng := rand.New(rand.NewPCG(uint64(mc.Seed), uint64(mc.Seed)^0x9e3779b97f4a7c15))
	origin := mgl32.Vec3(mc.Position)

	out := make([]Placement, 0, rows*cols)
	for r := range rows {
		for c := range cols {
			pos := origin.Add(mgl32.Vec3{float32(c) * mc.Spacing, 0, float32(r) * mc.Spacing})
			if mc.OnTerrain && ground != nil {
				pos[1] += ground(pos.X(), pos.Z())
			}

			yaw := rng.Float32() * 360 * mc.Variation
			scale := mc.Scale * (1 + mc.Variation*(rng.Float32()-0.5))
			shade := 1 - 0.4*mc.Variation*rng.Float32()

			t := scene.IdentityTransform()
			t.Position = pos
			t.SetRotationDegrees(mc.Rotation[0], mc.Rotation[1]+yaw, mc.Rotation[2])
			t.Scale = scale
			out = append(out, Placement{Transform: t, Shade: shade})
		}
	}
	return out
}

// Shaded darkens the ambient and diffuse colours of m, keeping alpha.
func Shaded(m scene.Material, shade float32) scene.Material {
	for _, v := range []*mgl32.Vec4{&m.Ambient, &m.Diffuse} {
		v[0] *= shade
		v[1] *= shade
		v[2] *= shade
	}
	return m
}

// MaterialOverrides reports which model paths get a material override on
// every entity. Entities of one path share a render group, so a single shaded
// placement anywhere in the config switches the whole path over.
func MaterialOverrides(models []config.ModelConfig, grids [][]Placement) map[string]bool {
	out := make(map[string]bool, len(models))
	for i, mc := range models {
		if i >= len(grids) {
			break
		}
		for _, p := range grids[i] {
			if p.Shade != 1 {
				out[mc.Path] = true
				break
			}
		}
	}
	return out
}

func placed(t *scene.Transform, pos, rot [3]float32, scale float32) {
	t.Position = mgl32.Vec3(pos)
	t.SetRotationDegrees(rot[0], rot[1], rot[2])
	t.Scale = scale
}

// BuildScene creates every renderable the config describes. Model files are
// parsed in parallel first; only cancellation of ctx is an error.
func BuildScene(ctx context.Context, cfg *config.Config, f *render.Factory) (*scene.Scene, error) {
	defer profiling.Track("scene.Build")()
	s := scene.New()

	if cfg.Terrain.Enabled {
		s.SetTerrain(f.CreateTerrain(TerrainParams(cfg.Terrain), cfg.Terrain.Texture))
	}
	if cfg.Skybox.Enabled && cfg.Skybox.Base != "" {
		s.SetSky(f.CreateSkyBox(cfg.Skybox.Base))
	}

	paths := make([]string, 0, len(cfg.Models))
	for _, mc := range cfg.Models {
		paths = append(paths, mc.Path)
	}
	if err := f.Preload(ctx, paths); err != nil {
		s.Dispose()
		return nil, err
	}

	ground := Ground(cfg.Terrain)
	grids := make([][]Placement, len(cfg.Models))
	for i, mc := range cfg.Models {
		grids[i] = GridPlacements(mc, ground)
	}
	overrides := MaterialOverrides(cfg.Models, grids)
	for i, mc := range cfg.Models {
		for _, p := range grids[i] {
			e := f.CreateEntity(mc.Path)
			e.Transform = p.Transform
			if overrides[mc.Path] {
				e.SetMaterial(Shaded(e.Model().Material(), p.Shade))
			}
			s.AddRenderable(e)
		}
	}

	for _, ic := range cfg.Images {
		img := f.CreateImage(ic.Path)
		placed(&img.Transform, ic.Position, ic.Rotation, ic.Scale)
		s.AddRenderable(img)
	}
	for _, tc := range cfg.Texts {
		img := f.CreateTextImage(tc.Text, tc.Font, tc.Size)
		placed(&img.Transform, tc.Position, tc.Rotation, tc.Scale)
		s.AddRenderable(img)
	}

	logging.L().Info("scene built",
		zap.Int("groups", s.GroupCount()),
		zap.Int("instances", s.InstanceCount()),
		zap.Bool("terrain", cfg.Terrain.Enabled),
	)
	return s, nil
}
