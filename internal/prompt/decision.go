package prompt

import (
	"fmt"
	"strings"
)

// Decision is a yes/no answer.
type Decision int

const (
	// No declines.
	No Decision = iota
	// Yes accepts.
	Yes
)

// String returns "yes" or "no".
func (d Decision) String() string {
	if d == Yes {
		return "yes"
	}
	return "no"
}

// ParseDecision accepts y, yes, "yes please", n, no and "no thanks" in any case.
func ParseDecision(s string) (Decision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "yes please":
		return Yes, nil
	case "n", "no", "no thanks":
		return No, nil
	default:
		return No, fmt.Errorf("%w %q: answer yes or no", ErrInvalidInput, s)
	}
}

// ReviewAction is what to do with an existing description during review.
type ReviewAction int

const (
	// ReviewSkip leaves the description unchanged.
	ReviewSkip ReviewAction = iota
	// ReviewDelete removes the description.
	ReviewDelete
	// ReviewUpdate replaces the description with Text.
	ReviewUpdate
)

// DeleteKey is the reserved review response that deletes a description.
const DeleteKey = "d"

// ReviewDecision is a parsed review response.
type ReviewDecision struct {
	Action ReviewAction
	Text   string
}

// ParseReviewDecision maps an empty response to skip, DeleteKey (any case) to
// delete, and anything else to an update carrying the response verbatim.
// It never fails.
func ParseReviewDecision(s string) (ReviewDecision, error) {
	switch {
	case s == "":
		return ReviewDecision{Action: ReviewSkip}, nil
	case strings.ToLower(s) == DeleteKey:
		return ReviewDecision{Action: ReviewDelete}, nil
	default:
		return ReviewDecision{Action: ReviewUpdate, Text: s}, nil
	}
}
