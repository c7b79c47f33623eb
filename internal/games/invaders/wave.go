package invaders

import (
	"math/rand"

	"github.com/gesturelab/gesture-arcade/internal/config"
	"github.com/gesturelab/gesture-arcade/internal/core"
)

// Invader is a single alien in the marching grid.
type Invader struct {
	Row   int
	Col   int
	Alive bool
}

// Wave manages the marching alien grid: horizontal stepping, edge
// descent, and bomb drops.
type Wave struct {
	invaders []Invader
	offsetX  int // Grid left edge
	offsetY  int // Grid top edge
	dir      int // +1 right, -1 left
	stepIn   int // Ticks until next horizontal step
	alive    int
	total    int

	rng     *rand.Rand
	screenW int
	cfg     *config.InvadersConfig
}

// NewWave builds a fresh grid at the top of the screen.
func NewWave(seed int64, screenW int, cfg *config.InvadersConfig) *Wave {
	w := &Wave{
		screenW: screenW,
		cfg:     cfg,
	}
	w.Reset(seed)
	return w
}

// Reset rebuilds the grid and restores the RNG.
func (w *Wave) Reset(seed int64) {
	w.rng = rand.New(rand.NewSource(seed))
	w.offsetX = 2
	w.offsetY = w.cfg.Wave.TopOffset
	w.dir = 1
	w.stepIn = w.cfg.Wave.StepTicks

	w.total = w.cfg.Wave.Rows * w.cfg.Wave.Cols
	w.invaders = make([]Invader, 0, w.total)
	for row := 0; row < w.cfg.Wave.Rows; row++ {
		for col := 0; col < w.cfg.Wave.Cols; col++ {
			w.invaders = append(w.invaders, Invader{Row: row, Col: col, Alive: true})
		}
	}
	w.alive = w.total
}

// Alive returns the number of invaders still standing.
func (w *Wave) Alive() int {
	return w.alive
}

// Invaders returns the full grid, including dead entries.
func (w *Wave) Invaders() []Invader {
	return w.invaders
}

// CellOf returns the screen position of an invader.
func (w *Wave) CellOf(inv Invader) (int, int) {
	x := w.offsetX + inv.Col*w.cfg.Wave.HSpacing
	y := w.offsetY + inv.Row*w.cfg.Wave.VSpacing
	return x, y
}

// stepInterval returns the ticks between horizontal steps. The wave
// speeds up as invaders die and as difficulty rises.
func (w *Wave) stepInterval(diff *config.DifficultyManager, score, ticks int) int {
	base := float64(w.cfg.Wave.StepTicks)

	// Fewer invaders march faster
	frac := float64(w.alive) / float64(w.total)
	interval := base * (0.4 + 0.6*frac)

	// Difficulty shortens the interval further
	speed := diff.Speed(1.0, score, ticks)
	if speed > 0 {
		interval /= speed
	}

	result := int(interval)
	if result < w.cfg.Wave.MinStepGap {
		result = w.cfg.Wave.MinStepGap
	}
	return result
}

// Update advances the wave by one tick and returns true when the wave
// performed a descent (used to detect boundary breach by the caller).
func (w *Wave) Update(diff *config.DifficultyManager, score, ticks int) bool {
	w.stepIn--
	if w.stepIn > 0 {
		return false
	}
	w.stepIn = w.stepInterval(diff, score, ticks)

	minX, maxX := w.aliveExtent()
	if minX < 0 {
		return false // Nothing alive
	}

	// Descend and reverse at either edge, otherwise step sideways
	if (w.dir > 0 && maxX+1 >= w.screenW-1) || (w.dir < 0 && minX-1 <= 0) {
		w.offsetY += w.cfg.Wave.DescendBy
		w.dir = -w.dir
		return true
	}

	w.offsetX += w.dir
	return false
}

// aliveExtent returns the leftmost and rightmost x of living invaders,
// or (-1, -1) when none remain.
func (w *Wave) aliveExtent() (int, int) {
	minX, maxX := -1, -1
	for _, inv := range w.invaders {
		if !inv.Alive {
			continue
		}
		x, _ := w.CellOf(inv)
		if minX < 0 || x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}
	return minX, maxX
}

// BottomY returns the lowest y of any living invader, or -1 when the
// wave is empty.
func (w *Wave) BottomY() int {
	bottom := -1
	for _, inv := range w.invaders {
		if !inv.Alive {
			continue
		}
		_, y := w.CellOf(inv)
		if y > bottom {
			bottom = y
		}
	}
	return bottom
}

// HitAt kills the living invader at the given cell, if any.
// Returns true when an invader was destroyed.
func (w *Wave) HitAt(x, y int) bool {
	for i := range w.invaders {
		if !w.invaders[i].Alive {
			continue
		}
		ix, iy := w.CellOf(w.invaders[i])
		if ix == x && iy == y {
			w.invaders[i].Alive = false
			w.alive--
			return true
		}
	}
	return false
}

// BombSpawn picks a random living invader to drop a bomb from.
// Returns the spawn cell below it, or ok=false when the wave is empty.
func (w *Wave) BombSpawn() (x, y int, ok bool) {
	if w.alive == 0 {
		return 0, 0, false
	}

	// Reservoir-pick a living invader
	n := 0
	var chosen Invader
	for _, inv := range w.invaders {
		if !inv.Alive {
			continue
		}
		n++
		if w.rng.Intn(n) == 0 {
			chosen = inv
		}
	}

	cx, cy := w.CellOf(chosen)
	return cx, cy + 1, true
}

// Rects returns collision rectangles for all living invaders.
func (w *Wave) Rects() []core.Rect {
	rects := make([]core.Rect, 0, w.alive)
	for _, inv := range w.invaders {
		if !inv.Alive {
			continue
		}
		x, y := w.CellOf(inv)
		rects = append(rects, core.NewRect(x, y, 1, 1))
	}
	return rects
}
