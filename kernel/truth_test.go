package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpectationRange(t *testing.T) {
	require.InDelta(t, 0.5, Unknown().Expectation(), 1e-9)
	require.InDelta(t, 0.995, Certain().Expectation(), 1e-9)
}

func TestRevisionCommutative(t *testing.T) {
	a := TruthValue{Frequency: 0.9, Confidence: 0.8}
	b := TruthValue{Frequency: 0.6, Confidence: 0.5}
	require.Equal(t, Revision(a, b), Revision(b, a))
}

func TestRevisionIncreasesConfidenceWhenAgreeing(t *testing.T) {
	a := TruthValue{Frequency: 0.9, Confidence: 0.8}
	b := TruthValue{Frequency: 0.9, Confidence: 0.5}
	r := Revision(a, b)
	require.Greater(t, r.Confidence, a.Confidence)
	require.Greater(t, r.Confidence, b.Confidence)
}

func TestRevisionOfTwoZeroConfidenceInputsIsDefinedNotNaN(t *testing.T) {
	a := TruthValue{Frequency: 0.9, Confidence: 0}
	b := TruthValue{Frequency: 0.7, Confidence: 0}
	r := Revision(a, b)
	require.InDelta(t, 0.8, r.Frequency, 1e-9)
	require.Equal(t, 0.0, r.Confidence)
	require.False(t, r.Frequency != r.Frequency, "frequency must not be NaN")
}

func TestTransitiveFrequencyNeverExceedsInputs(t *testing.T) {
	a := TruthValue{Frequency: 0.8, Confidence: 0.9}
	b := TruthValue{Frequency: 0.7, Confidence: 0.9}
	r := Transitive(a, b)
	require.LessOrEqual(t, r.Frequency, a.Frequency)
	require.LessOrEqual(t, r.Frequency, b.Frequency)
}

func TestClampConfidenceNeverReachesOne(t *testing.T) {
	require.Less(t, clampConfidence(5), 1.0)
	require.Equal(t, 0.0, clampConfidence(-1))
}
