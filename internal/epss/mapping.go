package epss

const (
	// Below this score an exploit is effectively unreported.
	thresholdPoC = 0.05
	// At or above this score exploitation is likely enough in the wild to
	// treat as active.
	thresholdActive = 0.50
)

// ScoreToExploitMaturity maps an EPSS score (0-1) to an exploit-maturity
// token the decision engine recognizes.
func ScoreToExploitMaturity(score float64) string {
	switch {
	case score >= thresholdActive:
		return "active"
	case score >= thresholdPoC:
		return "poc"
	default:
		return "none"
	}
}
