// Package config holds the tunable constants of the scoring engine and the
// process settings of the compass binary.
//
// Every weight and threshold that the scoring rules, the consistency
// analyzer and the quadrant classifier use lives in Scoring. Nothing in
// those packages carries an inline magic number for a tunable value.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// RevisitPolicy decides what happens when a question is confirmed again
// in the same session.
type RevisitPolicy string

const (
	// RevisitAccumulate appends new deltas on top of the earlier ones.
	RevisitAccumulate RevisitPolicy = "accumulate"
	// RevisitReplace retracts the earlier events for the same question
	// before recording the new answer.
	RevisitReplace RevisitPolicy = "replace"
)

// Slider configures linear slider questions.
type Slider struct {
	Min         int     `yaml:"min" validate:"gte=0"`
	Max         int     `yaml:"max" validate:"gtfield=Min"`
	Midpoint    int     `yaml:"midpoint" validate:"gtefield=Min,ltefield=Max"`
	Coefficient float64 `yaml:"coefficient" validate:"gt=0"`
}

// RankWeights scales the two picks of a ranked pair question.
type RankWeights struct {
	First  float64 `yaml:"first" validate:"gt=0,gtfield=Second"`
	Second float64 `yaml:"second" validate:"gt=0"`
}

// Consistency holds the dispersion thresholds of the consistency analyzer.
type Consistency struct {
	// RandomRadius is the distance from the origin (per axis) under which
	// a high-variance pattern reads as random.
	RandomRadius float64 `yaml:"random_radius" validate:"gt=0"`
	// RandomVariance must exceed MixedVariance.
	RandomVariance float64 `yaml:"random_variance" validate:"gtfield=MixedVariance"`
	MixedVariance  float64 `yaml:"mixed_variance" validate:"gt=0"`
}

// Quadrant configures the secondary proximity labels.
type Quadrant struct {
	ProximityBand float64 `yaml:"proximity_band" validate:"gte=0"`
}

// Scoring is the named configuration table of the scoring engine.
type Scoring struct {
	Slider      Slider        `yaml:"slider"`
	RankWeights RankWeights   `yaml:"rank_weights"`
	Consistency Consistency   `yaml:"consistency"`
	Quadrant    Quadrant      `yaml:"quadrant"`
	Revisit     RevisitPolicy `yaml:"revisit" validate:"oneof=accumulate replace"`
}

// Default returns the scoring table shipped with the instrument.
func Default() Scoring {
	return Scoring{
		Slider: Slider{
			Min:         1,
			Max:         5,
			Midpoint:    3,
			Coefficient: 1.5,
		},
		RankWeights: RankWeights{
			First:  1.5,
			Second: 1.0,
		},
		Consistency: Consistency{
			RandomRadius:   2.0,
			RandomVariance: 5.0,
			MixedVariance:  3.5,
		},
		Quadrant: Quadrant{
			ProximityBand: 1.0,
		},
		Revisit: RevisitAccumulate,
	}
}

var validate = validator.New()

// Validate checks the structural constraints of a scoring table.
func (s Scoring) Validate() error {
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid scoring config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid scoring config: %w", err)
	}
	return nil
}

// Load reads a YAML scoring table from path and overlays it on Default.
// Keys missing from the file keep their default values. An empty path
// returns the defaults.
func Load(path string) (Scoring, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Scoring{}, fmt.Errorf("reading scoring config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Scoring{}, fmt.Errorf("parsing scoring config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Scoring{}, err
	}
	return cfg, nil
}

// Marshal renders a scoring table as YAML. Used by `compass rules --yaml`
// to print a starting point for a custom table.
func Marshal(s Scoring) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling scoring config: %w", err)
	}
	return data, nil
}
