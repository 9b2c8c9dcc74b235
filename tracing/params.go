package tracing

import (
	"github.com/pkg/errors"

	"github.com/tuannh982/spreader-detector/tracing/commons"
)

const (
	DefaultMinDistance                 = 1.0
	DefaultMaxMeasure                  = 10.0
	DefaultAgeThreshold                = 40
	DefaultAgeAddition                 = 0.08
	DefaultMedicalSupervisionThreshold = 0.3
	DefaultRegularQuarantineThreshold  = 0.1

	SpreaderInfectionRate = 1.0
)

var ErrInvalidParams = errors.New("invalid infection params")

// Params are the constants of the infection model.
type Params struct {
	MinDistance                 float64
	MaxMeasure                  float64
	AgeThreshold                uint64
	AgeAddition                 float64
	MedicalSupervisionThreshold float64
	RegularQuarantineThreshold  float64
}

func DefaultParams() Params {
	return Params{
		MinDistance:                 DefaultMinDistance,
		MaxMeasure:                  DefaultMaxMeasure,
		AgeThreshold:                DefaultAgeThreshold,
		AgeAddition:                 DefaultAgeAddition,
		MedicalSupervisionThreshold: DefaultMedicalSupervisionThreshold,
		RegularQuarantineThreshold:  DefaultRegularQuarantineThreshold,
	}
}

func (p Params) Validate() error {
	if p.MinDistance <= 0 {
		return errors.Wrapf(ErrInvalidParams, "min distance %v", p.MinDistance)
	}
	if p.MaxMeasure <= 0 {
		return errors.Wrapf(ErrInvalidParams, "max measure %v", p.MaxMeasure)
	}
	if p.AgeAddition < 0 {
		return errors.Wrapf(ErrInvalidParams, "age addition %v", p.AgeAddition)
	}
	if p.RegularQuarantineThreshold > p.MedicalSupervisionThreshold {
		return errors.Wrapf(ErrInvalidParams, "quarantine threshold %v above medical supervision threshold %v",
			p.RegularQuarantineThreshold, p.MedicalSupervisionThreshold)
	}
	return nil
}

// InfectionRate is the chance that infected caught the disease in meeting m
// from someone whose own rate is prev.
func (p Params) InfectionRate(m *commons.Meeting, infected *commons.Person, prev float64) float64 {
	rate := (m.Measure * p.MinDistance) / (m.Distance * p.MaxMeasure) * prev
	if infected.Age > p.AgeThreshold {
		rate += p.AgeAddition
	}
	return rate
}

type Treatment string

const (
	MedicalSupervision Treatment = "MedicalSupervision"
	Quarantine         Treatment = "Quarantine"
	Clean              Treatment = "Clean"
)

func (p Params) Treatment(rate float64) Treatment {
	switch {
	case rate > p.MedicalSupervisionThreshold:
		return MedicalSupervision
	case rate > p.RegularQuarantineThreshold:
		return Quarantine
	default:
		return Clean
	}
}
