package main

import (
	"testing"

	"github.com/coldsnap/flurry/ecs"
	"github.com/coldsnap/flurry/ecs/component"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := NewGame(1, false)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestApplyPrefabDispatch(t *testing.T) {
	g := newTestGame(t)

	// Live state a reload must not clobber.
	drift, _ := ecs.Get(g.world, g.flakeEnt, component.FlakeDriftComponent)
	drift.Attaches = 2
	if err := ecs.Add(g.world, g.flakeEnt, component.FlakeDriftComponent, drift); err != nil {
		t.Fatal(err)
	}

	if err := g.applyPrefab("prefabs/flake.yaml"); err != nil {
		t.Fatal(err)
	}
	drift, _ = ecs.Get(g.world, g.flakeEnt, component.FlakeDriftComponent)
	if drift.AmplitudeX != 5 {
		t.Errorf("flake drift not re-applied: %+v", drift)
	}
	if drift.Attaches != 2 {
		t.Errorf("flake reload clobbered attach count: %+v", drift)
	}

	if err := g.applyPrefab("prefabs/camera.yaml"); err != nil {
		t.Fatal(err)
	}
	cam, _ := ecs.Get(g.world, g.camEnt, component.CameraComponent)
	if cam.Zoom != 32 {
		t.Errorf("camera not re-applied: %+v", cam)
	}

	if err := g.applyPrefab("prefabs/scripts/tuning.tengo"); err != nil {
		t.Fatal(err)
	}
	tuning, _ := ecs.Get(g.world, g.muncherEnt, component.MuncherComponent)
	if tuning.Speed != 8 {
		t.Errorf("script edit did not re-run the muncher load: %+v", tuning)
	}

	// Unrecognized files are ignored, not an error.
	if err := g.applyPrefab("prefabs/notes.yaml"); err != nil {
		t.Fatal(err)
	}
}

func TestPauseStatusReadout(t *testing.T) {
	g := newTestGame(t)

	g.ui.setStatus(g.statusLine())
	if got := g.ui.status.Label; got != "muncher: approaching" {
		t.Errorf("status = %q, want %q", got, "muncher: approaching")
	}

	st, _ := ecs.Get(g.world, g.muncherEnt, component.MuncherStateComponent)
	st.Phase = component.PhaseAttached
	if err := ecs.Add(g.world, g.muncherEnt, component.MuncherStateComponent, st); err != nil {
		t.Fatal(err)
	}
	g.ui.setStatus(g.statusLine())
	if got := g.ui.status.Label; got != "muncher: attached" {
		t.Errorf("status = %q, want %q", got, "muncher: attached")
	}
}
