package wizard

import "fmt"

// Step is one stage of the booking wizard. The chain is strictly linear.
type Step int

const (
	StepCourt Step = iota + 1
	StepTime
	StepDetails
	StepPayment
	StepSummary
)

// StepCount is the number of steps including the terminal summary.
const StepCount = int(StepSummary)

func (s Step) String() string {
	switch s {
	case StepCourt:
		return "court"
	case StepTime:
		return "time"
	case StepDetails:
		return "details"
	case StepPayment:
		return "payment"
	case StepSummary:
		return "summary"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

func (s Step) Valid() bool {
	return s >= StepCourt && s <= StepSummary
}

// Terminal reports whether no further transition leaves this step.
func (s Step) Terminal() bool {
	return s == StepSummary
}

// Progress is the completion ratio shown by the progress bar, in percent.
// The summary counts as the fourth quarter done.
func (s Step) Progress() int {
	if !s.Valid() {
		return 0
	}
	p := int(s) * 100 / (StepCount - 1)
	if p > 100 {
		return 100
	}
	return p
}

// ShowsSidebar reports whether the compact summary accompanies the step.
func (s Step) ShowsSidebar() bool {
	return s > StepCourt && s < StepSummary
}
