package component

// Sprite is the render shape for an entity: a filled circle with a nose
// line when rotated. Colors are colornames keys resolved by the render
// system; AttachedColor is used while the muncher's visual state is
// VisualAttached.
type Sprite struct {
	Radius        float64
	Color         string
	AttachedColor string
}

var SpriteComponent = NewComponent[Sprite]()
