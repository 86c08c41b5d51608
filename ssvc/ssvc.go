// Package ssvc implements a Stakeholder-Specific Vulnerability Categorization
// decision engine: CVSS v3 base metrics, exploit maturity, and mission impact
// go in, one of four recommended actions comes out. The engine is stateless
// and does no I/O; feeding it the same inputs always yields the same verdict.
package ssvc

import (
	"errors"
	"fmt"
	"strings"
)

// ExploitationLevel reflects how actively a vulnerability is exploited.
type ExploitationLevel string

const (
	ExploitationActive ExploitationLevel = "Active"
	ExploitationPoC    ExploitationLevel = "PoC"
	ExploitationNone   ExploitationLevel = "None"
)

// Automatable tells whether exploitation can be scripted without per-target
// human effort.
type Automatable string

const (
	AutomatableYes Automatable = "Yes"
	AutomatableNo  Automatable = "No"
)

// TechnicalImpact is the severity of the vulnerability's direct effect.
type TechnicalImpact string

const (
	TechnicalImpactTotal   TechnicalImpact = "Total"
	TechnicalImpactPartial TechnicalImpact = "Partial"
)

// MissionImpact is the organization-specific criticality of the affected
// system. It is supplied by the operator, never derived from CVSS.
type MissionImpact string

const (
	MissionImpactHigh   MissionImpact = "High"
	MissionImpactMedium MissionImpact = "Medium"
	MissionImpactLow    MissionImpact = "Low"
)

// Action is the engine's verdict, ordered by urgency:
// Act > Attend > Track* > Track.
type Action string

const (
	ActionAct       Action = "Act"
	ActionAttend    Action = "Attend"
	ActionTrackStar Action = "Track*"
	ActionTrack     Action = "Track"
)

var (
	// ErrInvalidInput marks a required field that is missing or blank.
	ErrInvalidInput = errors.New("missing or blank input")
	// ErrInvalidMetricValue marks a CVSS impact field outside {H,L,N}.
	ErrInvalidMetricValue = errors.New("invalid metric value")
	// ErrInvalidMissionImpact marks mission-impact text that does not
	// normalize to High, Medium, or Low.
	ErrInvalidMissionImpact = errors.New("invalid mission impact")
)

var activeStates = map[string]bool{
	"active": true, "attacked": true, "high": true, "critical": true, "functional": true,
}

var pocStates = map[string]bool{
	"poc": true, "proof-of-concept": true, "available": true,
}

// ClassifyExploitation maps a free-text exploit-maturity label to an
// exploitation tier. Matching is case-insensitive. Any token outside the
// recognized active and PoC sets classifies as None; that is the documented
// default at this layer, not an error, so callers that need strict label
// validation must reject unknown labels before calling.
func ClassifyExploitation(raw string) (ExploitationLevel, error) {
	if strings.TrimSpace(raw) == "" {
		return "", fmt.Errorf("exploit maturity: %w", ErrInvalidInput)
	}
	switch s := strings.ToLower(strings.TrimSpace(raw)); {
	case activeStates[s]:
		return ExploitationActive, nil
	case pocStates[s]:
		return ExploitationPoC, nil
	default:
		return ExploitationNone, nil
	}
}

// ClassifyAutomatable reports whether exploitation is automatable: attack
// complexity Low, privileges required None, and user interaction None, all
// three exact (case-insensitive). No partial credit.
func ClassifyAutomatable(attackComplexity, privilegesRequired, userInteraction string) (Automatable, error) {
	for _, f := range []struct{ name, val string }{
		{"attack complexity", attackComplexity},
		{"privileges required", privilegesRequired},
		{"user interaction", userInteraction},
	} {
		if strings.TrimSpace(f.val) == "" {
			return "", fmt.Errorf("%s: %w", f.name, ErrInvalidInput)
		}
	}
	if strings.EqualFold(attackComplexity, "l") &&
		strings.EqualFold(privilegesRequired, "n") &&
		strings.EqualFold(userInteraction, "n") {
		return AutomatableYes, nil
	}
	return AutomatableNo, nil
}

// ClassifyTechnicalImpact classifies the CVSS impact triad. Each value must
// be one of H, L, or N (case-insensitive); anything else fails with
// ErrInvalidMetricValue naming the offending field. Total means all three
// impacts are High; anything less is Partial.
func ClassifyTechnicalImpact(confidentiality, integrity, availability string) (TechnicalImpact, error) {
	total := true
	for _, f := range []struct{ name, val string }{
		{"c", confidentiality},
		{"i", integrity},
		{"a", availability},
	} {
		if strings.TrimSpace(f.val) == "" {
			return "", fmt.Errorf("metric %q: %w", f.name, ErrInvalidInput)
		}
		switch strings.ToLower(f.val) {
		case "h":
		case "l", "n":
			total = false
		default:
			return "", fmt.Errorf("metric %q: value %q (want H, L, or N): %w", f.name, f.val, ErrInvalidMetricValue)
		}
	}
	if total {
		return TechnicalImpactTotal, nil
	}
	return TechnicalImpactPartial, nil
}

// NormalizeMissionImpact matches operator-supplied criticality text against
// the three mission tiers, case-insensitively. The engine never infers this
// value from technical signals; mission impact is organizational context.
func NormalizeMissionImpact(raw string) (MissionImpact, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", fmt.Errorf("mission impact: %w", ErrInvalidInput)
	case "high":
		return MissionImpactHigh, nil
	case "medium":
		return MissionImpactMedium, nil
	case "low":
		return MissionImpactLow, nil
	default:
		return "", fmt.Errorf("mission impact %q: %w", raw, ErrInvalidMissionImpact)
	}
}

// Input carries the raw per-record fields the engine classifies. The six
// CVSS fields use single-letter metric values as they appear in a v3 vector.
type Input struct {
	AttackComplexity   string
	PrivilegesRequired string
	UserInteraction    string
	Confidentiality    string
	Integrity          string
	Availability       string
	ExploitMaturity    string
	MissionImpact      string
}

// DecisionPath records the four intermediate classifications and the final
// action for one record: the complete, auditable trace of a verdict.
type DecisionPath struct {
	Exploitation    ExploitationLevel
	Automatable     Automatable
	TechnicalImpact TechnicalImpact
	MissionImpact   MissionImpact
	Action          Action
}

// Evaluate runs the four classifiers and the decision tree over one record.
// The first classifier failure propagates unmodified and no partial
// DecisionPath is produced.
func Evaluate(in Input) (DecisionPath, error) {
	exploitation, err := ClassifyExploitation(in.ExploitMaturity)
	if err != nil {
		return DecisionPath{}, err
	}
	automatable, err := ClassifyAutomatable(in.AttackComplexity, in.PrivilegesRequired, in.UserInteraction)
	if err != nil {
		return DecisionPath{}, err
	}
	techImpact, err := ClassifyTechnicalImpact(in.Confidentiality, in.Integrity, in.Availability)
	if err != nil {
		return DecisionPath{}, err
	}
	missionImpact, err := NormalizeMissionImpact(in.MissionImpact)
	if err != nil {
		return DecisionPath{}, err
	}
	return DecisionPath{
		Exploitation:    exploitation,
		Automatable:     automatable,
		TechnicalImpact: techImpact,
		MissionImpact:   missionImpact,
		Action:          DecideAction(exploitation, automatable, techImpact, missionImpact),
	}, nil
}
