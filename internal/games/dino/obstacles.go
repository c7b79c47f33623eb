package dino

import (
	"math/rand"

	"github.com/gesturelab/gesture-arcade/internal/config"
	"github.com/gesturelab/gesture-arcade/internal/core"
)

// Cactus is a ground obstacle the player must jump over. Cacti sit on the
// ground line, so only width and height vary.
type Cactus struct {
	X      int // Left edge
	Width  int
	Height int
}

// Rect returns the collision rectangle, anchored to the ground line.
func (c Cactus) Rect(groundY int) core.Rect {
	return core.NewRect(c.X, groundY-c.Height, c.Width, c.Height)
}

// ObstacleManager scrolls cacti toward the player and keeps the track
// populated. Spawn spacing tightens as the difficulty level rises, with a
// random jitter on top so runs don't settle into a rhythm.
type ObstacleManager struct {
	cacti      []Cactus
	rng        *rand.Rand
	screenW    int
	nextSpawnX int
	cfg        *config.DinoConfig
	difficulty *config.DifficultyManager
}

// NewObstacleManager creates an obstacle manager seeded for a fresh run.
func NewObstacleManager(seed int64, screenW int, cfg *config.DinoConfig, diff *config.DifficultyManager) *ObstacleManager {
	om := &ObstacleManager{
		cacti:      make([]Cactus, 0, 8),
		screenW:    screenW,
		cfg:        cfg,
		difficulty: diff,
	}
	om.Reset(seed)
	return om
}

// UpdateConfig swaps in a new config and difficulty manager.
func (om *ObstacleManager) UpdateConfig(cfg *config.DinoConfig, diff *config.DifficultyManager) {
	om.cfg = cfg
	om.difficulty = diff
}

// Reset clears the track and reseeds the RNG.
func (om *ObstacleManager) Reset(seed int64) {
	om.cacti = om.cacti[:0]
	om.rng = rand.New(rand.NewSource(seed))
	// First cactus enters from beyond the right edge
	om.nextSpawnX = om.screenW + om.cfg.Obstacles.MinSpacing
}

// UpdateScreenSize updates the screen width.
func (om *ObstacleManager) UpdateScreenSize(screenW int) {
	om.screenW = screenW
}

// Update scrolls the track left at the current difficulty speed, drops
// cacti that left the screen, and spawns the next one when its slot
// scrolls into view.
func (om *ObstacleManager) Update(score int, ticks int) {
	speed := int(om.difficulty.Speed(om.cfg.Physics.BaseSpeed, score, ticks))
	if speed < 1 {
		speed = 1
	}

	live := om.cacti[:0]
	for _, c := range om.cacti {
		c.X -= speed
		if c.X+c.Width > 0 {
			live = append(live, c)
		}
	}
	om.cacti = live

	om.nextSpawnX -= speed
	if om.nextSpawnX <= om.screenW {
		om.spawnCactus(score, ticks)
	}
}

// spawnCactus places a randomly sized cactus at the pending spawn slot and
// schedules the slot after it.
func (om *ObstacleManager) spawnCactus(score, ticks int) {
	obs := om.cfg.Obstacles
	c := Cactus{
		X:      om.nextSpawnX,
		Width:  om.randSpan(obs.MinWidth, obs.MaxWidth),
		Height: om.randSpan(obs.MinHeight, obs.MaxHeight),
	}
	om.cacti = append(om.cacti, c)
	om.nextSpawnX += c.Width + om.nextGap(score, ticks)
}

// nextGap returns the spacing to the following cactus: the difficulty
// level shrinks the configured maximum toward the minimum, then a random
// jitter inside the remaining range keeps the track irregular.
func (om *ObstacleManager) nextGap(score, ticks int) int {
	widest := om.difficulty.Spacing(om.cfg.Obstacles.MaxSpacing, score, ticks)
	return om.randSpan(om.cfg.Obstacles.MinSpacing, widest)
}

// randSpan picks uniformly from [min, max], tolerating max <= min.
func (om *ObstacleManager) randSpan(min, max int) int {
	if max <= min {
		return min
	}
	return min + om.rng.Intn(max-min+1)
}

// Cacti returns the current list of obstacles.
func (om *ObstacleManager) Cacti() []Cactus {
	return om.cacti
}

// CheckCollision tests the player rectangle against every cactus.
func (om *ObstacleManager) CheckCollision(playerRect core.Rect, groundY int) bool {
	for _, c := range om.cacti {
		if playerRect.Intersects(c.Rect(groundY)) {
			return true
		}
	}
	return false
}
