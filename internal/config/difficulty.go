package config

import "math"

// Hard floors on what difficulty scaling may produce. Below these the
// games stop being physically clearable at any skill level.
const (
	minPlayableGap     = 4
	minPlayableSpacing = 15
)

// DifficultyManager turns a session's score or elapsed ticks into a
// difficulty level in [0, 1] and derives the scaled game parameters
// (speed, gap size, obstacle spacing) from it. One manager is built per
// run from the game's DifficultyConfig; presets adjust only the starting
// level, never the progression curve.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a manager for the given config.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: cfg.InitialLevel,
	}
}

// SetInitialLevel overrides the starting difficulty level, clamped to
// [0, 1]. Presets call this.
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// IsEnabled reports whether difficulty progresses at all during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty in [0, 1]. With progression
// disabled it stays at the initial level; otherwise it interpolates from
// the initial level to 1.0 as progress approaches the configured maximum.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}
	return d.initialLevel + d.progress(score, ticks)*(1.0-d.initialLevel)
}

// progress maps the progression source onto [0, 1].
func (d *DifficultyManager) progress(score, ticks int) float64 {
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var raw float64
	switch d.cfg.Progression.Type {
	case "score":
		raw = float64(score) / maxAt
	case "time":
		raw = float64(ticks) / maxAt
	default:
		return 0
	}
	return clampF(raw, 0.0, 1.0)
}

// Speed scales a base speed up with difficulty, from base at level 0 to
// base times (1 + SpeedMultiplier) at level 1.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	return baseSpeed * (1.0 + d.Level(score, ticks)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize shrinks a base gap as difficulty rises, never below the
// playable floor.
func (d *DifficultyManager) GapSize(baseGap int, score int, ticks int) int {
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.GapReduction))
	if gap := baseGap - reduction; gap > minPlayableGap {
		return gap
	}
	return minPlayableGap
}

// Spacing shrinks a base obstacle spacing as difficulty rises, never
// below the playable floor.
func (d *DifficultyManager) Spacing(baseSpacing int, score int, ticks int) int {
	reduction := int(d.Level(score, ticks) * float64(d.cfg.Scaling.SpacingReduction))
	if spacing := baseSpacing - reduction; spacing > minPlayableSpacing {
		return spacing
	}
	return minPlayableSpacing
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
