package component

// Health tracks hit points. Current is always clamped to [0, Max];
// Defeated flips when Current reaches zero and never flips back.
type Health struct {
	Current  float64
	Max      float64
	Defeated bool
}

// Ratio returns Current/Max, or 0 when Max is not positive.
func (h *Health) Ratio() float64 {
	if h == nil || h.Max <= 0 {
		return 0
	}
	return h.Current / h.Max
}

var HealthComponent = NewComponent[Health]()
