package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a YAML prefab into T, preferring an on-disk copy over
// the embedded one so prefabs can be edited while the game runs.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Z        float64 `yaml:"z"`
	Rotation float64 `yaml:"rotation"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
}

type SpriteSpec struct {
	Radius        float64 `yaml:"radius"`
	Color         string  `yaml:"color"`
	AttachedColor string  `yaml:"attached_color"`
}

type MuncherTuningSpec struct {
	MinFlakeDistance   float64 `yaml:"min_flake_distance"`
	ArcHeight          float64 `yaml:"arc_height"`
	SmoothTime         float64 `yaml:"smooth_time"`
	Speed              float64 `yaml:"speed"`
	TimeBeforeMoveAway float64 `yaml:"time_before_move_away"`
}

type MuncherSpec struct {
	Name      string            `yaml:"name"`
	Transform TransformSpec     `yaml:"transform"`
	Sprite    SpriteSpec        `yaml:"sprite"`
	Tuning    MuncherTuningSpec `yaml:"tuning"`
}

// LoadMuncherSpec loads the muncher prefab and runs the optional tuning
// script over it.
func LoadMuncherSpec(filename string) (MuncherSpec, error) {
	spec, err := LoadSpec[MuncherSpec](filename)
	if err != nil {
		return spec, err
	}
	if err := ApplyTuningScript(&spec); err != nil {
		return spec, err
	}
	return spec, nil
}

type DriftSpec struct {
	AmplitudeX    float64 `yaml:"amplitude_x"`
	AmplitudeY    float64 `yaml:"amplitude_y"`
	SpeedX        float64 `yaml:"speed_x"`
	SpeedY        float64 `yaml:"speed_y"`
	RelocateAfter int     `yaml:"relocate_after"`
}

type FlakeSpec struct {
	Name      string        `yaml:"name"`
	Transform TransformSpec `yaml:"transform"`
	Sprite    SpriteSpec    `yaml:"sprite"`
	Drift     DriftSpec     `yaml:"drift"`
}

func LoadFlakeSpec(filename string) (FlakeSpec, error) {
	return LoadSpec[FlakeSpec](filename)
}

type CameraSpec struct {
	Zoom     float64 `yaml:"zoom"`
	PaddingX float64 `yaml:"padding_x"`
	PaddingY float64 `yaml:"padding_y"`
}

func LoadCameraSpec(filename string) (CameraSpec, error) {
	return LoadSpec[CameraSpec](filename)
}
