// Package analysis derives the consistency verdict and the quadrant of a
// finished set of scoring events. Everything here is a pure function of
// its inputs and is recomputed on demand.
package analysis

import (
	"errors"
	"math"

	"github.com/HendryAvila/compass/internal/config"
)

// ErrNoEvents is returned when Analyze is called without any recorded
// delta. Callers must treat this as insufficient data, never as a
// consistent pattern.
var ErrNoEvents = errors.New("analysis: no scoring events")

// Classification labels a response pattern.
type Classification string

const (
	Consistent         Classification = "consistent"
	MixedOrIntegrative Classification = "mixed_or_integrative"
	LikelyRandom       Classification = "likely_random"
)

// Describe returns the narrative sentence used in reports.
func (c Classification) Describe() string {
	switch c {
	case Consistent:
		return "Your answers point in a coherent direction."
	case MixedOrIntegrative:
		return "Your answers spread widely. This often reflects an eclectic or integrative style that holds several approaches in tension."
	case LikelyRandom:
		return "Your answers pull strongly in opposite directions and cancel out near the centre. The result may not reflect a stable orientation; consider retaking the questionnaire more slowly."
	default:
		return ""
	}
}

// Verdict is the consistency analysis of one session.
type Verdict struct {
	VarianceA      float64        `json:"variance_a"`
	VarianceB      float64        `json:"variance_b"`
	TotalVariance  float64        `json:"total_variance"`
	Classification Classification `json:"classification"`
}

// Variance returns the population variance of xs. Empty and
// single-element inputs have variance 0.
func Variance(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var sq float64
	for _, x := range xs {
		d := x - mean
		sq += d * d
	}
	return sq / float64(len(xs))
}

// Analyze classifies the dispersion of the recorded deltas. totalA and
// totalB are the accumulated position; th holds the thresholds.
//
// LikelyRandom is checked before MixedOrIntegrative: its variance
// threshold is higher and it additionally requires the position to sit
// near the origin.
func Analyze(deltasA, deltasB []float64, totalA, totalB float64, th config.Consistency) (Verdict, error) {
	if len(deltasA) == 0 && len(deltasB) == 0 {
		return Verdict{}, ErrNoEvents
	}

	v := Verdict{
		VarianceA: Variance(deltasA),
		VarianceB: Variance(deltasB),
	}
	v.TotalVariance = v.VarianceA + v.VarianceB

	nearOrigin := math.Abs(totalA) < th.RandomRadius && math.Abs(totalB) < th.RandomRadius
	switch {
	case nearOrigin && v.TotalVariance > th.RandomVariance:
		v.Classification = LikelyRandom
	case v.TotalVariance > th.MixedVariance:
		v.Classification = MixedOrIntegrative
	default:
		v.Classification = Consistent
	}
	return v, nil
}
