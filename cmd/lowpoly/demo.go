package main

import (
	"fmt"
	"math"

	"github.com/taigrr/lowpoly/internal/config"
	"github.com/taigrr/lowpoly/pkg/math3d"
	"github.com/taigrr/lowpoly/pkg/models"
	"github.com/taigrr/lowpoly/pkg/palette"
	"github.com/taigrr/lowpoly/pkg/render"
	"github.com/taigrr/lowpoly/pkg/scene"
)

const (
	// modelSize is the largest extent a loaded model is scaled to.
	modelSize = 2.0
	// bulbSize is the edge of the emissive cube marking a point light.
	bulbSize = 0.15
	// waveHeight is the amplitude of the terrain ripple.
	waveHeight = 0.15
)

// demo is the viewer's scene: terrain, lights, fog and the loaded models.
type demo struct {
	scene      *scene.Scene
	camera     *render.Camera
	orbit      *Orbit
	fog        *scene.Fog
	terrain    *scene.GeometryNode
	stage      *spinner
	debug      scene.Debug
	background palette.Color
	models     int
}

// buildDemo assembles the scene described by cfg. Models are attached
// later with attachModels.
func buildDemo(cfg *config.Config) (*demo, error) {
	bg, err := palette.Parse(cfg.Graphics.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}

	s := scene.New()
	d := &demo{
		scene:      s,
		background: bg,
		debug: scene.Debug{
			ShowNormals: cfg.Debug.ShowNormals,
			ShowAABB:    cfg.Debug.ShowAABB,
		},
	}

	d.camera = render.NewCamera()
	d.camera.FOV = cfg.Camera.FOV
	d.camera.Far = cfg.Camera.Far
	d.camera.DisableBackfaceCulling = cfg.Debug.DisableBackfaceCulling
	s.Add(d.camera)
	if err := d.camera.MakeCurrent(); err != nil {
		return nil, err
	}

	d.orbit = NewOrbit(d.camera, cfg.Graphics.FPS, cfg.Camera.Distance, cfg.Camera.Height, cfg.Camera.OrbitSpeed)
	s.Add(d.orbit)

	if err := d.addLights(cfg); err != nil {
		return nil, err
	}

	if cfg.Fog.Enabled {
		fc, err := palette.Parse(cfg.Fog.Color)
		if err != nil {
			return nil, fmt.Errorf("fog color: %w", err)
		}
		d.fog = scene.NewFog(fc)
		d.fog.Density = cfg.Fog.Density
		s.Add(d.fog)
	}

	if n := cfg.Scene.Terrain; n > 0 {
		tc, err := palette.Parse(cfg.Scene.Color)
		if err != nil {
			return nil, fmt.Errorf("terrain color: %w", err)
		}
		geo := models.Plane(n, n)
		geo.SetColor(tc)
		d.terrain = scene.NewGeometryNode("terrain", geo)
		d.terrain.Program = ripple
		d.terrain.Debug = d.debug
		s.Add(d.terrain)
	}

	d.stage = newSpinner("stage", 0.3)
	s.Add(d.stage)
	return d, nil
}

func (d *demo) addLights(cfg *config.Config) error {
	lc, err := palette.Parse(cfg.Lighting.Color)
	if err != nil {
		return fmt.Errorf("light color: %w", err)
	}
	ambient, err := palette.Parse(cfg.Lighting.Ambient)
	if err != nil {
		return fmt.Errorf("ambient color: %w", err)
	}

	sun := scene.NewDirectionalLight(cfg.LightDirection())
	sun.Color = lc
	sun.Ambient = ambient
	sun.Exponent = cfg.Lighting.Exponent
	d.scene.Add(sun)

	for i, pc := range cfg.Lighting.Points {
		c, err := palette.Parse(pc.Color)
		if err != nil {
			return fmt.Errorf("point light %d: %w", i, err)
		}

		// The rig spins; the light and its bulb ride on it.
		rig := newSpinner(fmt.Sprintf("light_rig_%d", i), pc.Speed)
		rig.Rotate(math3d.Up(), 2*math.Pi*float64(i)/float64(len(cfg.Lighting.Points)))

		light := scene.NewPointLight(c, pc.Radius)
		light.Transform.Position = math3d.V3(pc.Orbit, pc.Height, 0)

		bulbGeo := models.Box(bulbSize, bulbSize, bulbSize)
		bulbGeo.SetColor(c)
		bulb := scene.NewGeometryNode("bulb", bulbGeo)
		bulb.Emissive = true

		light.AddChild(bulb)
		rig.AddChild(light)
		d.scene.Add(rig)
	}
	return nil
}

// attachModels places geos side by side on the stage, each scaled to fit
// modelSize and resting on the terrain. Without models a box stands in.
func (d *demo) attachModels(geos []*models.Geometry) {
	if len(geos) == 0 {
		geos = []*models.Geometry{models.Box(1, 1, 1)}
	}

	spacing := modelSize * 1.25
	start := -spacing * float64(len(geos)-1) / 2
	for i, geo := range geos {
		node := scene.NewGeometryNode(geo.Name, geo)
		node.Debug = d.debug
		node.Transform = fitTransform(geo.Bounds(), math3d.V3(start+spacing*float64(i), 0, 0))
		d.stage.AddChild(node)
		d.models++
	}
}

// fitTransform scales bounds to modelSize and moves them so the bottom
// center sits at base.
func fitTransform(bounds math3d.AABB, base math3d.Vec3) math3d.Transform3D {
	size := bounds.Size
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))
	s := 1.0
	if maxDim > 0 {
		s = modelSize / maxDim
	}
	offset := bounds.Center.Scale(-s).Add(math3d.V3(0, size.Y*s/2, 0))
	return math3d.NewTransform(math3d.IdentityBasis().Scaled(math3d.V3(s, s, s)), base.Add(offset))
}

// toggleFog enables or disables the fog node.
func (d *demo) toggleFog() {
	if d.fog == nil {
		return
	}
	d.fog.SetEnabled(!d.fog.Enabled())
}

// setDebug applies overlay toggles to every mesh.
func (d *demo) setDebug(dbg scene.Debug) {
	d.debug = dbg
	for _, g := range scene.EnabledDescendants[*scene.GeometryNode](d.scene.Root()) {
		if g.Emissive {
			continue
		}
		g.Debug = dbg
	}
}

// ripple bobs terrain vertices with a travelling wave and keeps the normal
// in step with the new shape.
func ripple(p scene.Polygon, v scene.View) scene.Polygon {
	t := v.Time()
	world := v.GlobalTransform()
	bob := func(c math3d.Vec3) math3d.Vec3 {
		w := world.Xform(c)
		return c.Add(math3d.Up().ApplyBasis(world.Basis.Inverse()).Scale(waveHeight * math.Sin(t*1.5+w.X*0.8+w.Z*0.6)))
	}
	p.V1, p.V2, p.V3 = bob(p.V1), bob(p.V2), bob(p.V3)
	return p.RecalculateNormal()
}
