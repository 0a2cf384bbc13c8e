package main

import "log/slog"

// logAudio stands in for a sample player. Sound cues still flow through the
// world so the hooks stay exercised; with -debug they show up in the log.
type logAudio struct {
	enabled bool
}

func (a *logAudio) Play(id string, volume float64) {
	if a.enabled {
		slog.Debug("sound", "id", id, "volume", volume)
	}
}
