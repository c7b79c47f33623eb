package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

//go:embed defaults/invaders.yaml
var defaultInvadersYAML []byte

//go:embed defaults/telemetry.yaml
var defaultTelemetryYAML []byte

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.25,
			JumpImpulse:  -1.8,
			MaxFallSpeed: 3.0,
			BaseSpeed:    0.8,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:    5,
			PipeSpacing:  40,
			MinGapSize:   8,
			MaxGapSize:   12,
			TopMargin:    3,
			BottomMargin: 3,
		},
		Player: FlappyPlayer{
			X:      10,
			Width:  2,
			Height: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  1.0,
				GapReduction:     4,
				SpacingReduction: 15,
			},
		},
	}
}

// DefaultDinoConfig returns the default Dino Runner configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Physics: DinoPhysics{
			Gravity:      0.3,
			JumpImpulse:  -2.5,
			MaxFallSpeed: 4.0,
			BaseSpeed:    0.5,
		},
		Obstacles: DinoObstacles{
			MinWidth:   1,
			MaxWidth:   3,
			MinHeight:  2,
			MaxHeight:  4,
			MinSpacing: 30,
			MaxSpacing: 50,
		},
		Player: DinoPlayer{
			X:            8,
			Width:        3,
			Height:       3,
			GroundOffset: 2,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 2000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  2.0,
				GapReduction:     0,
				SpacingReduction: 20,
			},
		},
	}
}

// DefaultBreakoutConfig returns the default Brick Breaker configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Physics: BreakoutPhysics{
			BallSpeed:   0.4,
			PaddleSpeed: 1.0,
		},
		Paddle: BreakoutPaddle{
			Width: 8,
		},
		Bricks: BreakoutBricks{
			Rows:      4,
			TopOffset: 2,
			SideGap:   2,
			Width:     4,
		},
		Gameplay: BreakoutGameplay{
			Lives:       3,
			BrickPoints: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 1000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
			},
		},
	}
}

// DefaultInvadersConfig returns the default Space Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Player: InvadersPlayer{
			Speed:  1.0,
			Width:  3,
			Height: 1,
		},
		Wave: InvadersWave{
			Rows:       3,
			Cols:       8,
			HSpacing:   5,
			VSpacing:   2,
			TopOffset:  2,
			StepTicks:  30,
			DescendBy:  1,
			MinStepGap: 6,
		},
		Projectile: InvadersShot{
			Speed:         1.0,
			CooldownTicks: 15,
		},
		Gameplay: InvadersGameplay{
			Lives:         3,
			InvaderPoints: 10,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 240,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultTelemetryConfig returns the default telemetry settings.
// The API URL is intentionally empty: without explicit configuration no
// submission leaves the process.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		APIURL:               "",
		TimeoutSeconds:       10,
		ShutdownFlushSeconds: 2,
		DevToken:             "",
	}
}
