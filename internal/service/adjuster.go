package service

import (
	"github.com/clinical-dss-server/internal/domain"
	"github.com/clinical-dss-server/internal/knowledge"
)

// Prior probabilities are clamped to this range after adjustment so the
// log-odds transform never sees 0 or 1.
const (
	minAdjustedPrior = 0.0001
	maxAdjustedPrior = 0.99
)

// PriorAdjuster scales disease priors by demographic, seasonal and
// geographic factors from an optional patient context. Factors from
// different context attributes compound multiplicatively.
type PriorAdjuster struct {
	kb *knowledge.Base
}

// NewPriorAdjuster creates a prior adjuster over the given knowledge base.
func NewPriorAdjuster(kb *knowledge.Base) *PriorAdjuster {
	return &PriorAdjuster{kb: kb}
}

// AdjustedPrior returns the context-adjusted, clamped prior for a disease.
// A nil context or absent context fields leave the prior unscaled.
func (a *PriorAdjuster) AdjustedPrior(diseaseID string, ctx *domain.PatientContext) (float64, bool) {
	prior, ok := a.kb.Prior(diseaseID)
	if !ok {
		return 0, false
	}
	return clampPrior(prior * a.kb.AdjustmentFactor(ctx, diseaseID)), true
}

func clampPrior(p float64) float64 {
	if p < minAdjustedPrior {
		return minAdjustedPrior
	}
	if p > maxAdjustedPrior {
		return maxAdjustedPrior
	}
	return p
}
