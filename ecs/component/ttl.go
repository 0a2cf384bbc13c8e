package component

// TTL destroys its entity after Seconds of simulated time. Used for minion
// despawn timeouts and boss corpses.
type TTL struct {
	Seconds float64
}

var TTLComponent = NewComponent[TTL]()

// HitFlash is presentation state set by the hit-feedback collaborator; the
// renderer fades it out. Core logic never reads it.
type HitFlash struct {
	Remaining float64
}

var HitFlashComponent = NewComponent[HitFlash]()

// ColorMarker is the presentation color requested for an entity, typically
// on phase transitions.
type ColorMarker struct {
	Color string
}

var ColorMarkerComponent = NewComponent[ColorMarker]()
