package breakout

import (
	"testing"

	"github.com/gesturelab/gesture-arcade/internal/core"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     1,
	}
}

func TestGameReset(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	if g.score != 0 {
		t.Errorf("Reset should clear score, got %d", g.score)
	}
	if g.lives != g.cfg.Gameplay.Lives {
		t.Errorf("Reset should restore lives, got %d want %d", g.lives, g.cfg.Gameplay.Lives)
	}
	if !g.stuck {
		t.Error("Ball should start on the paddle")
	}
	if g.bricksLeft == 0 {
		t.Error("Reset should build a brick grid")
	}
}

func TestPaddleMovement(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	startX := g.paddleX

	right := core.NewInputFrame()
	right.Set(core.ActionRight)
	g.Step(right)

	if g.paddleX <= startX {
		t.Errorf("Paddle should move right, was %f now %f", startX, g.paddleX)
	}

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	g.Step(left)
	g.Step(left)

	if g.paddleX >= startX {
		t.Errorf("Paddle should move left past start, was %f now %f", startX, g.paddleX)
	}
}

func TestPaddleClampedToScreen(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	for i := 0; i < 200; i++ {
		g.Step(left)
	}

	if g.paddleX < 0 {
		t.Errorf("Paddle should not leave screen, got %f", g.paddleX)
	}
}

func TestMovementEventsAreEdgeTriggered(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	right := core.NewInputFrame()
	right.Set(core.ActionRight)

	result := g.Step(right)
	if len(result.Events) != 1 || result.Events[0] != EventMoveRight {
		t.Errorf("First held tick should emit %q, got %v", EventMoveRight, result.Events)
	}

	// Holding the key emits nothing further
	result = g.Step(right)
	if len(result.Events) != 0 {
		t.Errorf("Held key should not re-emit, got %v", result.Events)
	}

	// Releasing and pressing again re-emits
	g.Step(core.NewInputFrame())
	result = g.Step(right)
	if len(result.Events) != 1 || result.Events[0] != EventMoveRight {
		t.Errorf("Re-press should emit %q, got %v", EventMoveRight, result.Events)
	}
}

func TestLaunchReleasesBall(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	launch := core.NewInputFrame()
	launch.Set(core.ActionJump)
	g.Step(launch)

	if g.stuck {
		t.Error("Ball should be in play after launch")
	}
	if g.ballVY >= 0 {
		t.Errorf("Launched ball should move up, vy=%f", g.ballVY)
	}
}

func TestBrickHitScoresAndBounces(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	launch := core.NewInputFrame()
	launch.Set(core.ActionJump)
	g.Step(launch)

	// Drive the ball into the first brick
	b := &g.bricks[0]
	g.ballX = float64(b.X)
	g.ballY = float64(b.Y + 1)
	g.ballVX = 0
	g.ballVY = -1

	before := g.bricksLeft
	g.Step(core.NewInputFrame())

	if g.bricksLeft != before-1 {
		t.Errorf("Brick hit should reduce bricksLeft, got %d want %d", g.bricksLeft, before-1)
	}
	if g.score != g.cfg.Gameplay.BrickPoints {
		t.Errorf("Brick hit should score %d, got %d", g.cfg.Gameplay.BrickPoints, g.score)
	}
	if g.ballVY <= 0 {
		t.Errorf("Ball should bounce off brick, vy=%f", g.ballVY)
	}
}

func TestMissLosesLife(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	launch := core.NewInputFrame()
	launch.Set(core.ActionJump)
	g.Step(launch)

	livesBefore := g.lives

	// Drop the ball below the paddle
	g.ballX = 40
	g.ballY = float64(g.runtime.ScreenH)
	g.ballVY = 1
	g.Step(core.NewInputFrame())

	if g.lives != livesBefore-1 {
		t.Errorf("Miss should cost a life, got %d want %d", g.lives, livesBefore-1)
	}
	if !g.stuck {
		t.Error("Ball should return to the paddle after a miss")
	}
}

func TestClearingBricksWins(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	launch := core.NewInputFrame()
	launch.Set(core.ActionJump)
	g.Step(launch)

	// Kill all bricks except one, then hit the last
	for i := 1; i < len(g.bricks); i++ {
		g.bricks[i].Alive = false
	}
	g.bricksLeft = 1

	b := &g.bricks[0]
	g.ballX = float64(b.X)
	g.ballY = float64(b.Y + 1)
	g.ballVX = 0
	g.ballVY = -1

	result := g.Step(core.NewInputFrame())

	if !result.State.Won {
		t.Error("Clearing all bricks should win the game")
	}
	if !result.State.GameOver {
		t.Error("Winning should end the game")
	}
}

func TestGameOverWhenOutOfLives(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	launch := core.NewInputFrame()
	launch.Set(core.ActionJump)

	for g.lives > 0 && !g.gameOver {
		g.Step(launch)
		g.ballX = 40
		g.ballY = float64(g.runtime.ScreenH)
		g.ballVY = 1
		g.Step(core.NewInputFrame())
	}

	if !g.gameOver {
		t.Error("Game should end when lives run out")
	}
	if g.won {
		t.Error("Running out of lives is not a win")
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.Reset(testRuntime())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if screen.Get(int(g.paddleX), g.paddleY) != PaddleChar {
		t.Error("Paddle should be drawn")
	}
	if screen.Get(g.bricks[0].X, g.bricks[0].Y) != BrickChar {
		t.Error("Bricks should be drawn")
	}
}
