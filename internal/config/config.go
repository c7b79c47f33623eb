// Package config provides YAML-based configuration loading and difficulty
// management for the arcade platform, plus the telemetry endpoint settings.
package config

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// FlappyObstacles defines obstacle parameters for Flappy Bird.
type FlappyObstacles struct {
	PipeWidth    int `yaml:"pipe_width"`
	PipeSpacing  int `yaml:"pipe_spacing"`
	MinGapSize   int `yaml:"min_gap_size"`
	MaxGapSize   int `yaml:"max_gap_size"`
	TopMargin    int `yaml:"top_margin"`
	BottomMargin int `yaml:"bottom_margin"`
}

// FlappyPlayer defines player parameters for Flappy Bird.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DinoConfig contains all configuration for the Dino Runner game.
type DinoConfig struct {
	Physics    DinoPhysics      `yaml:"physics"`
	Obstacles  DinoObstacles    `yaml:"obstacles"`
	Player     DinoPlayer       `yaml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DinoPhysics defines physics parameters for Dino Runner.
type DinoPhysics struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed"`
}

// DinoObstacles defines obstacle parameters for Dino Runner.
type DinoObstacles struct {
	MinWidth   int `yaml:"min_width"`
	MaxWidth   int `yaml:"max_width"`
	MinHeight  int `yaml:"min_height"`
	MaxHeight  int `yaml:"max_height"`
	MinSpacing int `yaml:"min_spacing"`
	MaxSpacing int `yaml:"max_spacing"`
}

// DinoPlayer defines player parameters for Dino Runner.
type DinoPlayer struct {
	X            int `yaml:"x"`
	Width        int `yaml:"width"`
	Height       int `yaml:"height"`
	GroundOffset int `yaml:"ground_offset"`
}

// BreakoutConfig contains all configuration for the Brick Breaker game.
type BreakoutConfig struct {
	Physics    BreakoutPhysics  `yaml:"physics"`
	Paddle     BreakoutPaddle   `yaml:"paddle"`
	Bricks     BreakoutBricks   `yaml:"bricks"`
	Gameplay   BreakoutGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BreakoutPhysics defines physics parameters for Brick Breaker.
type BreakoutPhysics struct {
	BallSpeed   float64 `yaml:"ball_speed"`   // Cells per tick
	PaddleSpeed float64 `yaml:"paddle_speed"` // Cells per tick
}

// BreakoutPaddle defines paddle parameters for Brick Breaker.
type BreakoutPaddle struct {
	Width int `yaml:"width"`
}

// BreakoutBricks defines the brick layout for Brick Breaker.
type BreakoutBricks struct {
	Rows      int `yaml:"rows"`
	TopOffset int `yaml:"top_offset"`
	SideGap   int `yaml:"side_gap"`
	Width     int `yaml:"width"`
}

// BreakoutGameplay defines scoring and lives for Brick Breaker.
type BreakoutGameplay struct {
	Lives       int `yaml:"lives"`
	BrickPoints int `yaml:"brick_points"`
}

// InvadersConfig contains all configuration for the Space Invaders game.
type InvadersConfig struct {
	Player     InvadersPlayer   `yaml:"player"`
	Wave       InvadersWave     `yaml:"wave"`
	Projectile InvadersShot     `yaml:"projectile"`
	Gameplay   InvadersGameplay `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// InvadersPlayer defines the player ship parameters.
type InvadersPlayer struct {
	Speed  float64 `yaml:"speed"` // Cells per tick
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// InvadersWave defines the marching alien grid.
type InvadersWave struct {
	Rows       int `yaml:"rows"`
	Cols       int `yaml:"cols"`
	HSpacing   int `yaml:"h_spacing"`
	VSpacing   int `yaml:"v_spacing"`
	TopOffset  int `yaml:"top_offset"`
	StepTicks  int `yaml:"step_ticks"`  // Ticks between horizontal steps
	DescendBy  int `yaml:"descend_by"`  // Rows to drop at each edge
	MinStepGap int `yaml:"min_step_gap"` // Fastest allowed step interval
}

// InvadersShot defines projectile behavior.
type InvadersShot struct {
	Speed         float64 `yaml:"speed"`          // Cells per tick
	CooldownTicks int     `yaml:"cooldown_ticks"` // Ticks between player shots
}

// InvadersGameplay defines scoring and lives for Space Invaders.
type InvadersGameplay struct {
	Lives         int `yaml:"lives"`
	InvaderPoints int `yaml:"invader_points"`
}

// TelemetryConfig defines the session-reporting endpoint settings.
type TelemetryConfig struct {
	// APIURL is the base URL of the game API (no trailing slash).
	APIURL string `yaml:"api_url"`

	// TimeoutSeconds bounds each submission request.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// ShutdownFlushSeconds bounds the best-effort wait for in-flight
	// submissions when the process exits.
	ShutdownFlushSeconds int `yaml:"shutdown_flush_seconds"`

	// DevToken, if set, is used when no user token is available.
	// Development setups only; leave empty in production.
	DevToken string `yaml:"dev_token"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Multiplier added to speed at max difficulty
	GapReduction     int     `yaml:"gap_reduction"`     // Gap size reduction at max difficulty
	SpacingReduction int     `yaml:"spacing_reduction"` // Spacing reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies a difficulty config based on a named preset.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(preset)
}

// ParsePreset converts a CLI string to a DifficultyPreset.
// Returns "" for unrecognized values, meaning "use config default".
func ParsePreset(s string) DifficultyPreset {
	switch s {
	case "easy":
		return DifficultyEasy
	case "normal":
		return DifficultyNormal
	case "hard":
		return DifficultyHard
	case "fixed":
		return DifficultyFixed
	default:
		return ""
	}
}
