// Package invaders implements a Space Invaders-style game.
// The player moves a ship along the bottom of the screen, shooting a
// marching grid of aliens while dodging their bombs.
package invaders

import (
	"fmt"

	"github.com/gesturelab/gesture-arcade/internal/config"
	"github.com/gesturelab/gesture-arcade/internal/core"
	"github.com/gesturelab/gesture-arcade/internal/registry"
)

// Events emitted for tracked player input. Movement is emitted on the
// tick a direction key goes down; fire is emitted for each shot that
// actually leaves the ship.
const (
	EventMoveLeft  = "move_left"
	EventMoveRight = "move_right"
	EventFire      = "fire"
)

// Visual characters for rendering
const (
	ShipChar    = '▲'
	ShipBase    = '█'
	InvaderChar = '☗'
	LaserChar   = '|'
	BombChar    = '¡'
	GroundChar  = '═'
)

// Shot is a projectile in flight. Lasers travel up, bombs travel down.
type Shot struct {
	X      float64
	Y      float64
	VY     float64
	Active bool
}

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements the Space Invaders game logic.
type Game struct {
	playerX  float64
	playerY  int
	cooldown int // Ticks until the ship may fire again

	wave   *Wave
	lasers []Shot
	bombs  []Shot

	bombIn int // Ticks until the next bomb drop

	score    int
	lives    int
	gameOver bool
	won      bool
	paused   bool

	prevLeft  bool
	prevRight bool

	runtime    core.RuntimeConfig
	cfg        config.InvadersConfig
	difficulty *config.DifficultyManager
	tickCount  int
}

// New creates a new Space Invaders game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "invaders"
}

// TelemetryID returns the game API identifier for this game.
func (g *Game) TelemetryID() string {
	return "SPACE"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Space Invaders"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadInvaders(configPath)
	if err != nil {
		cfg = config.DefaultInvadersConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.playerY = runtime.ScreenH - 3
	g.playerX = float64(runtime.ScreenW-cfg.Player.Width) / 2
	g.cooldown = 0
	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.gameOver = false
	g.won = false
	g.paused = false
	g.prevLeft = false
	g.prevRight = false
	g.tickCount = 0
	g.bombIn = cfg.Wave.StepTicks * 2

	g.lasers = g.lasers[:0]
	g.bombs = g.bombs[:0]

	if g.wave == nil {
		g.wave = NewWave(runtime.Seed, runtime.ScreenW, &g.cfg)
	} else {
		g.wave.cfg = &g.cfg
		g.wave.screenW = runtime.ScreenW
		g.wave.Reset(runtime.Seed)
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}

	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++

	var events []string

	left := in.Has(core.ActionLeft)
	right := in.Has(core.ActionRight)

	if left && !g.prevLeft {
		events = append(events, EventMoveLeft)
	}
	if right && !g.prevRight {
		events = append(events, EventMoveRight)
	}
	g.prevLeft = left
	g.prevRight = right

	// Move ship
	if left {
		g.playerX -= g.cfg.Player.Speed
	}
	if right {
		g.playerX += g.cfg.Player.Speed
	}
	maxX := float64(g.runtime.ScreenW - g.cfg.Player.Width)
	g.playerX = core.ClampF(g.playerX, 0, maxX)

	// Fire
	if g.cooldown > 0 {
		g.cooldown--
	}
	if in.Has(core.ActionFire) && g.cooldown == 0 {
		g.lasers = append(g.lasers, Shot{
			X:      g.playerX + float64(g.cfg.Player.Width)/2,
			Y:      float64(g.playerY - 1),
			VY:     -g.cfg.Projectile.Speed,
			Active: true,
		})
		g.cooldown = g.cfg.Projectile.CooldownTicks
		events = append(events, EventFire)
	}

	// March the wave
	g.wave.Update(g.difficulty, g.score, g.tickCount)

	// Wave reached the ship row: boundary breach, immediate loss
	if bottom := g.wave.BottomY(); bottom >= g.playerY {
		g.gameOver = true
		return core.StepResult{State: g.State(), Events: events}
	}

	g.dropBombs()
	g.updateShots()

	if g.wave.Alive() == 0 {
		g.won = true
		g.gameOver = true
	}

	return core.StepResult{State: g.State(), Events: events}
}

// dropBombs periodically spawns a bomb from a random living invader.
func (g *Game) dropBombs() {
	g.bombIn--
	if g.bombIn > 0 {
		return
	}
	g.bombIn = g.cfg.Wave.StepTicks * 2

	if x, y, ok := g.wave.BombSpawn(); ok {
		g.bombs = append(g.bombs, Shot{
			X:      float64(x),
			Y:      float64(y),
			VY:     g.cfg.Projectile.Speed / 2,
			Active: true,
		})
	}
}

// updateShots moves projectiles and resolves their collisions.
func (g *Game) updateShots() {
	// Lasers climb and kill invaders
	for i := range g.lasers {
		if !g.lasers[i].Active {
			continue
		}
		g.lasers[i].Y += g.lasers[i].VY
		if g.lasers[i].Y < 0 {
			g.lasers[i].Active = false
			continue
		}
		if g.wave.HitAt(int(g.lasers[i].X), int(g.lasers[i].Y)) {
			g.lasers[i].Active = false
			g.score += g.cfg.Gameplay.InvaderPoints
		}
	}

	// Bombs fall and hit the ship
	shipRect := g.playerRect()
	for i := range g.bombs {
		if !g.bombs[i].Active {
			continue
		}
		g.bombs[i].Y += g.bombs[i].VY
		if int(g.bombs[i].Y) >= g.runtime.ScreenH {
			g.bombs[i].Active = false
			continue
		}
		bombCell := core.NewRect(int(g.bombs[i].X), int(g.bombs[i].Y), 1, 1)
		if bombCell.Intersects(shipRect) {
			g.bombs[i].Active = false
			g.lives--
			if g.lives <= 0 {
				g.gameOver = true
				return
			}
		}
	}

	g.compactShots()
}

// compactShots drops spent projectiles from both slices.
func (g *Game) compactShots() {
	live := g.lasers[:0]
	for _, s := range g.lasers {
		if s.Active {
			live = append(live, s)
		}
	}
	g.lasers = live

	liveBombs := g.bombs[:0]
	for _, s := range g.bombs {
		if s.Active {
			liveBombs = append(liveBombs, s)
		}
	}
	g.bombs = liveBombs
}

// playerRect returns the ship's collision rectangle.
func (g *Game) playerRect() core.Rect {
	return core.NewRect(int(g.playerX), g.playerY, g.cfg.Player.Width, g.cfg.Player.Height)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw ground
	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar)

	// Draw invaders
	for _, inv := range g.wave.Invaders() {
		if !inv.Alive {
			continue
		}
		x, y := g.wave.CellOf(inv)
		dst.Set(x, y, InvaderChar)
	}

	// Draw projectiles
	for _, s := range g.lasers {
		if s.Active {
			dst.Set(int(s.X), int(s.Y), LaserChar)
		}
	}
	for _, s := range g.bombs {
		if s.Active {
			dst.Set(int(s.X), int(s.Y), BombChar)
		}
	}

	// Draw ship
	px := int(g.playerX)
	for dx := 0; dx < g.cfg.Player.Width; dx++ {
		if dx == g.cfg.Player.Width/2 {
			dst.Set(px+dx, g.playerY, ShipChar)
		} else {
			dst.Set(px+dx, g.playerY, ShipBase)
		}
	}

	// Draw HUD
	hud := fmt.Sprintf(" Score: %d  Lives: %d ", g.score, g.lives)
	dst.DrawText(2, 0, hud)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		title := "GAME OVER"
		if g.won {
			title = "WAVE CLEARED!"
		}
		g.drawCenteredMessage(dst, title, fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	titleX := boxX + (boxW-len(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-len(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("invaders", func() registry.Game {
		return New()
	})
}
