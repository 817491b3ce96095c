package mengine

import "time"

// tickStats holds per-tick timing and event counts.
// Only populated when Engine.debug is true.
type tickStats struct {
	updateTime time.Duration
	sprites    int
	updated    int
	spawned    int
	killed     int
	collisions int
	blocked    int
}

// debugLog writes the tick stats at debug level.
func (e *Engine) debugLog(stats tickStats) {
	if !e.debug {
		return
	}
	Logger().Debug("tick",
		"n", e.tick,
		"update", stats.updateTime,
		"sprites", stats.sprites,
		"updated", stats.updated,
		"spawned", stats.spawned,
		"killed", stats.killed,
		"collisions", stats.collisions,
		"blocked", stats.blocked,
	)
}
