// Package breakout implements a brick breaker game.
// The player moves a paddle to bounce a ball into a grid of bricks.
package breakout

import (
	"fmt"

	"github.com/gesturelab/gesture-arcade/internal/config"
	"github.com/gesturelab/gesture-arcade/internal/core"
	"github.com/gesturelab/gesture-arcade/internal/registry"
)

// Events emitted for tracked paddle movement. Emitted on the tick a
// direction key goes down, not on every tick it is held.
const (
	EventMoveLeft  = "move_left"
	EventMoveRight = "move_right"
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BrickChar  = '█'
	GroundChar = '─'
)

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

// Brick is a single destructible cell in the grid.
type Brick struct {
	X     int // Left edge
	Y     int
	Width int
	Alive bool
}

// Rect returns the collision rectangle for this brick.
func (b Brick) Rect() core.Rect {
	return core.NewRect(b.X, b.Y, b.Width, 1)
}

// Game implements the brick breaker game logic.
type Game struct {
	paddleX float64 // Paddle left edge
	paddleY int

	ballX float64
	ballY float64
	ballVX float64
	ballVY float64
	stuck  bool // Ball rides the paddle until launched

	bricks     []Brick
	bricksLeft int

	score    int
	lives    int
	gameOver bool
	won      bool
	paused   bool

	prevLeft  bool // Input edge detection for event emission
	prevRight bool

	runtime    core.RuntimeConfig
	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager
	tickCount  int
}

// New creates a new brick breaker game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "breakout"
}

// TelemetryID returns the game API identifier for this game.
func (g *Game) TelemetryID() string {
	return "BRICK"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Brick Breaker"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBreakout(configPath)
	if err != nil {
		cfg = config.DefaultBreakoutConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg.Difficulty, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.paddleY = runtime.ScreenH - 2
	g.paddleX = float64(runtime.ScreenW-cfg.Paddle.Width) / 2
	g.score = 0
	g.lives = cfg.Gameplay.Lives
	g.gameOver = false
	g.won = false
	g.paused = false
	g.prevLeft = false
	g.prevRight = false
	g.tickCount = 0

	g.buildBricks()
	g.placeBallOnPaddle()
}

// buildBricks lays out the brick grid from the config.
func (g *Game) buildBricks() {
	brickW := g.cfg.Bricks.Width
	sideGap := g.cfg.Bricks.SideGap
	usable := g.runtime.ScreenW - 2*sideGap
	cols := usable / (brickW + 1)
	if cols < 1 {
		cols = 1
	}

	g.bricks = g.bricks[:0]
	for row := 0; row < g.cfg.Bricks.Rows; row++ {
		for col := 0; col < cols; col++ {
			g.bricks = append(g.bricks, Brick{
				X:     sideGap + col*(brickW+1),
				Y:     g.cfg.Bricks.TopOffset + row,
				Width: brickW,
				Alive: true,
			})
		}
	}
	g.bricksLeft = len(g.bricks)
}

// placeBallOnPaddle parks the ball on the paddle until the next launch.
func (g *Game) placeBallOnPaddle() {
	g.stuck = true
	g.ballX = g.paddleX + float64(g.cfg.Paddle.Width)/2
	g.ballY = float64(g.paddleY - 1)
	g.ballVX = 0
	g.ballVY = 0
}

// launchBall sends the ball upward at the current difficulty speed.
func (g *Game) launchBall() {
	speed := g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.score, g.tickCount)
	g.ballVX = speed / 2
	g.ballVY = -speed
	g.stuck = false
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

	// Move paddle
	if left {
		g.paddleX -= g.cfg.Physics.PaddleSpeed
	}
	if right {
		g.paddleX += g.cfg.Physics.PaddleSpeed
	}
	maxX := float64(g.runtime.ScreenW - g.cfg.Paddle.Width)
	g.paddleX = core.ClampF(g.paddleX, 0, maxX)

	if g.stuck {
		// Ball follows paddle; launch on jump or fire
		g.ballX = g.paddleX + float64(g.cfg.Paddle.Width)/2
		g.ballY = float64(g.paddleY - 1)
		if in.Has(core.ActionJump) || in.Has(core.ActionFire) {
			g.launchBall()
		}
		return core.StepResult{State: g.State(), Events: events}
	}

	g.updateBall()

	return core.StepResult{State: g.State(), Events: events}
}

// updateBall moves the ball one tick and resolves collisions.
func (g *Game) updateBall() {
	g.ballX += g.ballVX
	g.ballY += g.ballVY

	// Side walls
	if g.ballX < 0 {
		g.ballX = 0
		g.ballVX = -g.ballVX
	}
	if g.ballX > float64(g.runtime.ScreenW-1) {
		g.ballX = float64(g.runtime.ScreenW - 1)
		g.ballVX = -g.ballVX
	}

	// Ceiling (row 0 is the HUD)
	if g.ballY < 1 {
		g.ballY = 1
		g.ballVY = -g.ballVY
	}

	// Paddle
	if g.ballVY > 0 && int(g.ballY) >= g.paddleY-1 && int(g.ballY) <= g.paddleY {
		px := int(g.ballX)
		if px >= int(g.paddleX) && px < int(g.paddleX)+g.cfg.Paddle.Width {
			g.ballY = float64(g.paddleY - 1)
			g.ballVY = -g.ballVY

			// Hit offset steers the ball: edges deflect harder
			offset := (g.ballX - g.paddleX) / float64(g.cfg.Paddle.Width) // 0..1
			speed := g.difficulty.Speed(g.cfg.Physics.BallSpeed, g.score, g.tickCount)
			g.ballVX = (offset - 0.5) * 2 * speed
		}
	}

	// Bricks
	ballCell := core.NewRect(int(g.ballX), int(g.ballY), 1, 1)
	for i := range g.bricks {
		if !g.bricks[i].Alive {
			continue
		}
		if ballCell.Intersects(g.bricks[i].Rect()) {
			g.bricks[i].Alive = false
			g.bricksLeft--
			g.score += g.cfg.Gameplay.BrickPoints
			g.ballVY = -g.ballVY
			break
		}
	}

	if g.bricksLeft == 0 {
		g.won = true
		g.gameOver = true
		return
	}

	// Ball fell past the paddle
	if int(g.ballY) >= g.runtime.ScreenH {
		g.lives--
		if g.lives <= 0 {
			g.gameOver = true
			return
		}
		g.placeBallOnPaddle()
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Draw bricks
	for _, b := range g.bricks {
		if !b.Alive {
			continue
		}
		for dx := 0; dx < b.Width; dx++ {
			dst.Set(b.X+dx, b.Y, BrickChar)
		}
	}

	// Draw paddle
	px := int(g.paddleX)
	for dx := 0; dx < g.cfg.Paddle.Width; dx++ {
		dst.Set(px+dx, g.paddleY, PaddleChar)
	}

	// Draw ball
	dst.Set(int(g.ballX), int(g.ballY), BallChar)

	// Draw HUD
	hud := fmt.Sprintf(" Score: %d  Lives: %d ", g.score, g.lives)
	dst.DrawText(2, 0, hud)

	if g.stuck && !g.gameOver {
		dst.DrawTextCentered(g.paddleY+1, "Press SPACE to launch")
	}

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}

	if g.gameOver {
		title := "GAME OVER"
		if g.won {
			title = "YOU WIN!"
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
	registry.Register("breakout", func() registry.Game {
		return New()
	})
}
