package tracking

// ActionEntry is one recorded player action inside a session payload.
// Time is the offset in seconds from session start.
type ActionEntry struct {
	Action string  `json:"action"`
	Time   float64 `json:"time"`
}

// Progress groups the gesture label and the committed action log for the
// game_progress field of the outbound payload.
type Progress struct {
	Gesture string        `json:"gesture"`
	Actions []ActionEntry `json:"actions"`
}

// Payload is the structured document describing one completed session,
// submitted to the telemetry endpoint exactly once per End call.
type Payload struct {
	GameID   string   `json:"game_id"`
	Progress Progress `json:"game_progress"`
	Result   string   `json:"game_result"`
	Score    int      `json:"game_score"`
}
