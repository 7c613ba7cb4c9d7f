package component

// Contact is a one-shot notification that the physics layer saw the muncher
// and the flake touch. It is attached at the end of a physics step and
// consumed (removed) by the behavior system at the start of the next tick,
// so a contact arriving mid-tick never interleaves with state updates.
type Contact struct{}

var ContactComponent = NewComponent[Contact]()
