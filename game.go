package main

import (
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/colornames"

	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
	"github.com/coldsnap/flurry/ecs/entity"
	"github.com/coldsnap/flurry/ecs/system"
	"github.com/coldsnap/flurry/prefabs"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

// Fixed simulation step; ebiten ticks at 60 by default.
const tickSeconds = 1.0 / 60.0

type Game struct {
	world  *ecs.World
	render *system.RenderSystem

	muncherEnt ecs.Entity
	flakeEnt   ecs.Entity
	camEnt     ecs.Entity

	watcher *prefabs.Watcher
	ui      *pauseUI
	paused  bool
	debug   bool
}

func NewGame(seed int64, debug bool) (*Game, error) {
	muncherSpec, err := prefabs.LoadMuncherSpec("muncher.yaml")
	if err != nil {
		return nil, err
	}
	flakeSpec, err := prefabs.LoadFlakeSpec("flake.yaml")
	if err != nil {
		return nil, err
	}
	camSpec, err := prefabs.LoadCameraSpec("camera.yaml")
	if err != nil {
		return nil, err
	}

	w := ecs.NewWorld()

	camEnt, err := entity.BuildCamera(w, camSpec)
	if err != nil {
		return nil, err
	}
	flakeEnt, err := entity.BuildFlake(w, flakeSpec)
	if err != nil {
		return nil, err
	}
	muncherEnt, err := entity.BuildMuncher(w, muncherSpec)
	if err != nil {
		return nil, err
	}

	w.AddSystem(system.NewCameraSystem(baseWidth, baseHeight))
	w.AddSystem(system.NewFlakeDriftSystem(seed + 1))
	w.AddSystem(system.NewPhysicsSystem())
	w.AddSystem(system.NewMuncherSystem(seed))

	g := &Game{
		world:      w,
		render:     system.NewRenderSystem(),
		muncherEnt: muncherEnt,
		flakeEnt:   flakeEnt,
		camEnt:     camEnt,
		debug:      debug,
	}
	g.ui = NewPauseUI(g)

	watcher, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
	if err != nil {
		log.Printf("prefab watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}

	return g, nil
}

// Close releases the prefab watcher. Call after the game loop exits.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.ui.setStatus(g.statusLine())
		g.ui.Update()
		return nil
	}

	g.drainReloads()
	g.steerFlake()
	g.world.Update(tickSeconds)
	return nil
}

// drainReloads applies prefab edits picked up by the watcher. Only tuning,
// drift shape, camera mapping, and sprites refresh; live behavior state is
// left alone.
func (g *Game) drainReloads() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab changed: %s", name)
			if err := g.applyPrefab(name); err != nil {
				log.Printf("reload %s: %v", filepath.Base(name), err)
			}
		case err := <-g.watcher.Errors:
			if err != nil {
				log.Printf("prefab watcher: %v", err)
			}
		default:
			return
		}
	}
}

// applyPrefab reloads the prefab a watcher event names and re-applies it to
// its live entity. Script edits route through the muncher load, since the
// tuning script runs there.
func (g *Game) applyPrefab(name string) error {
	base := filepath.Base(name)
	switch {
	case base == "flake.yaml":
		spec, err := prefabs.LoadFlakeSpec(base)
		if err != nil {
			return err
		}
		return entity.ApplyFlakeSpec(g.world, g.flakeEnt, spec)
	case base == "camera.yaml":
		spec, err := prefabs.LoadCameraSpec(base)
		if err != nil {
			return err
		}
		return entity.ApplyCameraSpec(g.world, g.camEnt, spec)
	case base == "muncher.yaml", strings.HasSuffix(base, ".tengo"):
		spec, err := prefabs.LoadMuncherSpec("muncher.yaml")
		if err != nil {
			return err
		}
		return entity.ApplyMuncherSpec(g.world, g.muncherEnt, spec)
	}
	return nil
}

func (g *Game) statusLine() string {
	st, ok := ecs.Get(g.world, g.muncherEnt, component.MuncherStateComponent)
	if !ok {
		return ""
	}
	return fmt.Sprintf("muncher: %s", st.Phase)
}

// steerFlake drags the flake's drift anchor to the cursor while the left
// button is held, in world coordinates.
func (g *Game) steerFlake() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		return
	}
	cam, ok := ecs.Get(g.world, g.camEnt, component.CameraComponent)
	if !ok || cam.Zoom <= 0 {
		return
	}
	drift, ok := ecs.Get(g.world, g.flakeEnt, component.FlakeDriftComponent)
	if !ok {
		return
	}
	cx, cy := ebiten.CursorPosition()
	drift.BaseX = float64(cx) / cam.Zoom
	drift.BaseY = (baseHeight - float64(cy)) / cam.Zoom
	_ = ecs.Add(g.world, g.flakeEnt, component.FlakeDriftComponent, drift)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	g.render.Draw(g.world, screen)

	if g.debug {
		phase := "?"
		if st, ok := ecs.Get(g.world, g.muncherEnt, component.MuncherStateComponent); ok {
			phase = st.Phase.String()
		}
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f    phase: %s", ebiten.ActualFPS(), phase))
	}

	if g.paused {
		g.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return baseWidth, baseHeight
}
