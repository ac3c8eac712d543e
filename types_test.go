package nextver

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeverityOrder(t *testing.T) {
	require.Less(t, SeverityNone, SeverityPatch)
	require.Less(t, SeverityPatch, SeverityMinor)
	require.Less(t, SeverityMinor, SeverityMajor)
}

func TestSeverityString(t *testing.T) {
	require.Equal(t, "none", SeverityNone.String())
	require.Equal(t, "patch", SeverityPatch.String())
	require.Equal(t, "minor", SeverityMinor.String())
	require.Equal(t, "major", SeverityMajor.String())
	require.Equal(t, "severity(42)", Severity(42).String())
}

func TestParseBumpMode(t *testing.T) {
	tests := []struct {
		input    string
		expected BumpMode
	}{
		{"auto", BumpAuto},
		{"none", BumpNone},
		{"patch", BumpPatch},
		{"minor", BumpMinor},
		{"major", BumpMajor},
		{"Major", BumpMajor},
		{" MINOR ", BumpMinor},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			mode, err := ParseBumpMode(test.input)
			require.NoError(t, err)
			require.Equal(t, test.expected, mode)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParseBumpMode("huge")
		require.ErrorIs(t, err, ErrUnknownBump)
	})
}

func TestBumpModeSeverity(t *testing.T) {
	tests := []struct {
		mode     BumpMode
		expected Severity
	}{
		{BumpNone, SeverityNone},
		{BumpPatch, SeverityPatch},
		{BumpMinor, SeverityMinor},
		{BumpMajor, SeverityMajor},
	}

	for _, test := range tests {
		t.Run(test.mode.String(), func(t *testing.T) {
			severity, err := test.mode.Severity()
			require.NoError(t, err)
			require.Equal(t, test.expected, severity)
		})
	}

	t.Run("auto has no fixed severity", func(t *testing.T) {
		_, err := BumpAuto.Severity()
		require.ErrorIs(t, err, ErrUnknownBump)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := BumpMode(99).Severity()
		require.ErrorIs(t, err, ErrUnknownBump)
	})
}

func TestResolutionJSON(t *testing.T) {
	res := Resolution{
		Version:  "1.3.0-alpha.1",
		Current:  "1.2.3",
		Severity: SeverityMinor,
		LastTag:  strPtr("v1.2.3"),
		Commits:  1,
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"version": "1.3.0-alpha.1",
		"current": "1.2.3",
		"bump": "minor",
		"last_tag": "v1.2.3",
		"commits": 1,
		"release": false
	}`, string(data))
}
