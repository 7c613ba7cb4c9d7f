package component

// Camera fixes the world-to-screen mapping: a world unit covers Zoom
// pixels, with the world origin at the bottom-left of the screen and world
// Y pointing up.
type Camera struct {
	Zoom float64
}

var CameraComponent = NewComponent[Camera]()
