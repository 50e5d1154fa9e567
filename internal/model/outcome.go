package model

// PollOutcome is the result of one poll attempt
type PollOutcome int

const (
	OutcomeWaiting PollOutcome = iota
	OutcomeSatisfied
	OutcomeFailed // path disappeared or became unreadable
)

// String returns a human-readable outcome name
func (o PollOutcome) String() string {
	switch o {
	case OutcomeWaiting:
		return "waiting"
	case OutcomeSatisfied:
		return "satisfied"
	case OutcomeFailed:
		return "failed"
	default:
		return ""
	}
}

// Condition is what satisfied a wait
type Condition int

const (
	ConditionCreated Condition = iota
	ConditionModified
)

// String returns a human-readable condition name
func (c Condition) String() string {
	if c == ConditionCreated {
		return "created"
	}
	return "modified"
}

// Result is a resolved wait
type Result struct {
	Path      string    // the watched path
	Condition Condition // creation or modification
	Trigger   string    // the path whose change satisfied the wait; Path or a descendant
}

// Nested reports whether a descendant of the watched path triggered the result
func (r Result) Nested() bool {
	return r.Trigger != "" && r.Trigger != r.Path
}
