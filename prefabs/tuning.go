package prefabs

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

const tuningScriptName = "tuning.tengo"

// ApplyTuningScript runs the embedded tuning script over a freshly loaded
// muncher spec. The script sees the tuning values as a map named "tuning"
// and may rewrite them; a missing script is not an error.
func ApplyTuningScript(spec *MuncherSpec) error {
	src, err := LoadScript(tuningScriptName)
	if err != nil {
		return nil
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	if err := script.Add("tuning", tuningMap(spec.Tuning)); err != nil {
		return fmt.Errorf("prefabs: tuning script: %w", err)
	}

	compiled, err := script.Run()
	if err != nil {
		return fmt.Errorf("prefabs: tuning script: %w", err)
	}

	out := compiled.Get("tuning").Map()
	spec.Tuning = MuncherTuningSpec{
		MinFlakeDistance:   numField(out, "min_flake_distance", spec.Tuning.MinFlakeDistance),
		ArcHeight:          numField(out, "arc_height", spec.Tuning.ArcHeight),
		SmoothTime:         numField(out, "smooth_time", spec.Tuning.SmoothTime),
		Speed:              numField(out, "speed", spec.Tuning.Speed),
		TimeBeforeMoveAway: numField(out, "time_before_move_away", spec.Tuning.TimeBeforeMoveAway),
	}
	return nil
}

func tuningMap(t MuncherTuningSpec) map[string]interface{} {
	return map[string]interface{}{
		"min_flake_distance":    t.MinFlakeDistance,
		"arc_height":            t.ArcHeight,
		"smooth_time":           t.SmoothTime,
		"speed":                 t.Speed,
		"time_before_move_away": t.TimeBeforeMoveAway,
	}
}

func numField(m map[string]interface{}, key string, fallback float64) float64 {
	switch v := m[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	}
	return fallback
}
