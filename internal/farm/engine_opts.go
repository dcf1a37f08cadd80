package farm

type EngineOpt func(*Engine)

// WithRoll replaces the yield die, used by tests to make harvests
// deterministic. The function must return a value in [0, n).
func WithRoll(roll func(n int) int) EngineOpt {
	return func(e *Engine) {
		e.roll = roll
	}
}
