package ssvc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyExploitation(t *testing.T) {
	tests := []struct {
		raw  string
		want ExploitationLevel
	}{
		{"active", ExploitationActive},
		{"ACTIVE", ExploitationActive},
		{"attacked", ExploitationActive},
		{"high", ExploitationActive},
		{"critical", ExploitationActive},
		{"Functional", ExploitationActive},
		{" active ", ExploitationActive},
		{"poc", ExploitationPoC},
		{"Proof-of-Concept", ExploitationPoC},
		{"available", ExploitationPoC},
		{"none", ExploitationNone},
		// Unknown tokens classify as None by design; label validation is
		// the caller's job.
		{"unknown-token", ExploitationNone},
		{"urgent", ExploitationNone},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ClassifyExploitation(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyExploitationBlank(t *testing.T) {
	_, err := ClassifyExploitation("")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = ClassifyExploitation("   ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestClassifyAutomatable(t *testing.T) {
	tests := []struct {
		ac, pr, ui string
		want       Automatable
	}{
		{"L", "N", "N", AutomatableYes},
		{"l", "n", "n", AutomatableYes},
		{"H", "N", "N", AutomatableNo},
		{"L", "L", "N", AutomatableNo},
		{"L", "N", "R", AutomatableNo},
		{"H", "H", "R", AutomatableNo},
	}
	for _, tt := range tests {
		got, err := ClassifyAutomatable(tt.ac, tt.pr, tt.ui)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got, "ac=%s pr=%s ui=%s", tt.ac, tt.pr, tt.ui)
	}
}

func TestClassifyAutomatableBlank(t *testing.T) {
	_, err := ClassifyAutomatable("", "N", "N")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = ClassifyAutomatable("L", "", "N")
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = ClassifyAutomatable("L", "N", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestClassifyTechnicalImpact(t *testing.T) {
	got, err := ClassifyTechnicalImpact("H", "H", "H")
	require.NoError(t, err)
	assert.Equal(t, TechnicalImpactTotal, got)

	got, err = ClassifyTechnicalImpact("h", "h", "h")
	require.NoError(t, err)
	assert.Equal(t, TechnicalImpactTotal, got)

	for _, triple := range [][3]string{
		{"H", "H", "L"},
		{"H", "L", "H"},
		{"L", "H", "H"},
		{"N", "N", "N"},
	} {
		got, err := ClassifyTechnicalImpact(triple[0], triple[1], triple[2])
		require.NoError(t, err)
		assert.Equalf(t, TechnicalImpactPartial, got, "c=%s i=%s a=%s", triple[0], triple[1], triple[2])
	}
}

func TestClassifyTechnicalImpactInvalid(t *testing.T) {
	_, err := ClassifyTechnicalImpact("x", "H", "H")
	require.ErrorIs(t, err, ErrInvalidMetricValue)
	assert.Contains(t, err.Error(), `"c"`)

	_, err = ClassifyTechnicalImpact("H", "medium", "H")
	require.ErrorIs(t, err, ErrInvalidMetricValue)
	assert.Contains(t, err.Error(), `"i"`)

	_, err = ClassifyTechnicalImpact("H", "H", "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestNormalizeMissionImpact(t *testing.T) {
	for raw, want := range map[string]MissionImpact{
		"high":   MissionImpactHigh,
		"High":   MissionImpactHigh,
		"MEDIUM": MissionImpactMedium,
		"low":    MissionImpactLow,
	} {
		got, err := NormalizeMissionImpact(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := NormalizeMissionImpact("urgent")
	require.ErrorIs(t, err, ErrInvalidMissionImpact)
	_, err = NormalizeMissionImpact("")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want DecisionPath
	}{
		{
			name: "active automatable total low mission",
			in: Input{
				AttackComplexity: "L", PrivilegesRequired: "N", UserInteraction: "N",
				Confidentiality: "H", Integrity: "H", Availability: "H",
				ExploitMaturity: "active", MissionImpact: "low",
			},
			want: DecisionPath{
				Exploitation: ExploitationActive, Automatable: AutomatableYes,
				TechnicalImpact: TechnicalImpactTotal, MissionImpact: MissionImpactLow,
				Action: ActionAct,
			},
		},
		{
			name: "poc manual total medium mission",
			in: Input{
				AttackComplexity: "H", PrivilegesRequired: "N", UserInteraction: "N",
				Confidentiality: "H", Integrity: "H", Availability: "H",
				ExploitMaturity: "poc", MissionImpact: "medium",
			},
			want: DecisionPath{
				Exploitation: ExploitationPoC, Automatable: AutomatableNo,
				TechnicalImpact: TechnicalImpactTotal, MissionImpact: MissionImpactMedium,
				Action: ActionTrackStar,
			},
		},
		{
			name: "unexploited manual total high mission",
			in: Input{
				AttackComplexity: "L", PrivilegesRequired: "L", UserInteraction: "N",
				Confidentiality: "H", Integrity: "H", Availability: "H",
				ExploitMaturity: "none", MissionImpact: "high",
			},
			want: DecisionPath{
				Exploitation: ExploitationNone, Automatable: AutomatableNo,
				TechnicalImpact: TechnicalImpactTotal, MissionImpact: MissionImpactHigh,
				Action: ActionTrackStar,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluatePropagatesFirstFailure(t *testing.T) {
	in := Input{
		AttackComplexity: "L", PrivilegesRequired: "N", UserInteraction: "N",
		Confidentiality: "x", Integrity: "H", Availability: "H",
		ExploitMaturity: "active", MissionImpact: "garbage",
	}
	_, err := Evaluate(in)
	// Technical impact is classified before mission impact, so its failure
	// wins.
	require.ErrorIs(t, err, ErrInvalidMetricValue)

	in.Confidentiality = ""
	_, err = Evaluate(in)
	require.ErrorIs(t, err, ErrInvalidInput)
}
