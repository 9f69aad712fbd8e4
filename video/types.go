package video

// Outcome is the terminal state a file reaches in a conversion run.
// Every discovered file ends in exactly one of these.
type Outcome int

const (
	OutcomeDone Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
