package cvss

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vector31 = "CVSS:3.1/AV:N/AC:L/PR:N/UI:N/S:U/C:H/I:H/A:H"

func TestVersion(t *testing.T) {
	v, err := Version(vector31)
	require.NoError(t, err)
	assert.Equal(t, "CVSS 3.1", v)

	v, err = Version("CVSS:3.0/AV:L/AC:H/PR:L/UI:R/S:C/C:L/I:N/A:N")
	require.NoError(t, err)
	assert.Equal(t, "CVSS 3.0", v)

	_, err = Version("not-a-vector")
	require.Error(t, err)

	_, err = Version("CVSS:3.1/AV:N")
	require.Error(t, err)
}

func TestParseVector(t *testing.T) {
	m, err := ParseVector(vector31)
	require.NoError(t, err)
	assert.Equal(t, "n", m["av"])
	assert.Equal(t, "l", m["ac"])
	assert.Equal(t, "n", m["pr"])
	assert.Equal(t, "n", m["ui"])
	assert.Equal(t, "u", m["s"])
	assert.Equal(t, "h", m["c"])
	assert.Equal(t, "h", m["i"])
	assert.Equal(t, "h", m["a"])
}

func TestParseVectorRejectsNonV3(t *testing.T) {
	_, err := ParseVector("AV:N/AC:L/Au:N/C:P/I:P/A:P")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CVSS 2.0")
}

func TestBaseScore(t *testing.T) {
	score, err := BaseScore(vector31)
	require.NoError(t, err)
	assert.InDelta(t, 9.8, score, 0.001)
}

func TestSeverityRating(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{0.0, "NONE"},
		{0.1, "LOW"},
		{3.9, "LOW"},
		{4.0, "MEDIUM"},
		{6.9, "MEDIUM"},
		{7.0, "HIGH"},
		{8.9, "HIGH"},
		{9.0, "CRITICAL"},
		{10.0, "CRITICAL"},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, SeverityRating(tt.score), "score=%v", tt.score)
	}
}
