package component

// FlakeTag marks the single snowflake entity the muncher pursues.
type FlakeTag struct{}

var FlakeTagComponent = NewComponent[FlakeTag]()

// FlakeDrift makes the flake wander around its base point so the chase has
// a moving target. Attaches counts completed attachments; once it reaches
// RelocateAfter the drift system moves the base point somewhere new.
type FlakeDrift struct {
	BaseX      float64
	BaseY      float64
	AmplitudeX float64
	AmplitudeY float64
	SpeedX     float64
	SpeedY     float64
	Elapsed    float64

	RelocateAfter int
	Attaches      int
}

var FlakeDriftComponent = NewComponent[FlakeDrift]()
