package service

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/clinical-dss-server/internal/domain"
	"github.com/clinical-dss-server/internal/knowledge"
)

const (
	// significanceThreshold is the minimum posterior probability for a
	// diagnosis to enter the returned differential.
	significanceThreshold = 0.01

	// maxDifferentials caps the length of the returned list.
	maxDifferentials = 10
)

// DifferentialCalculator ranks candidate diagnoses by combining
// context-adjusted priors with observed-symptom likelihood ratios in
// log-odds space. It is a pure function over the immutable knowledge base
// and is safe for unsynchronized concurrent use.
type DifferentialCalculator struct {
	logger   *logrus.Logger
	kb       *knowledge.Base
	adjuster *PriorAdjuster
}

// NewDifferentialCalculator creates a calculator over the given knowledge base.
func NewDifferentialCalculator(logger *logrus.Logger, kb *knowledge.Base) *DifferentialCalculator {
	return &DifferentialCalculator{
		logger:   logger,
		kb:       kb,
		adjuster: NewPriorAdjuster(kb),
	}
}

// Calculate returns up to 10 differentials in descending probability order.
// The returned probabilities are normalized over the returned set only, so
// adding one more symptom can shift every entry even when its own evidence
// is untouched. Symptoms without a likelihood entry for a disease carry no
// evidence for it; unknown symptom keys are silently ignored. An empty
// symptom set still scores every disease on its prior alone, so a very
// common condition can appear with zero findings.
func (c *DifferentialCalculator) Calculate(symptoms []domain.SymptomKey, ctx *domain.PatientContext) []domain.Differential {
	observed := normalizeSymptomSet(symptoms)

	candidates := make([]domain.Differential, 0, len(c.kb.DiseaseIDs()))
	for _, diseaseID := range c.kb.DiseaseIDs() {
		prior, ok := c.adjuster.AdjustedPrior(diseaseID, ctx)
		if !ok {
			continue
		}

		logOdds := math.Log(prior / (1 - prior))
		var supporting, against []domain.SymptomKey
		for _, symptom := range observed {
			lr, ok := c.kb.LikelihoodRatio(symptom, diseaseID)
			if !ok || lr <= 0 {
				continue
			}
			logOdds += math.Log(lr)
			switch {
			case lr > 1:
				supporting = append(supporting, symptom)
			case lr < 1:
				against = append(against, symptom)
			}
		}

		odds := math.Exp(logOdds)
		posterior := odds / (1 + odds)
		if posterior < significanceThreshold {
			continue
		}

		candidates = append(candidates, domain.Differential{
			DiagnosisID:        diseaseID,
			Probability:        posterior,
			SupportingFeatures: supporting,
			AgainstFeatures:    against,
			SuggestedTests:     c.kb.SuggestedTests(diseaseID),
			Severity:           c.kb.Severity(diseaseID),
		})
	}

	// An empty significant set short-circuits rather than dividing by zero
	// during renormalization.
	if len(candidates) == 0 {
		c.logger.WithField("symptom_count", len(observed)).Debug("No diagnosis cleared the significance threshold")
		return nil
	}

	renormalize(candidates)
	sortByProbability(candidates)
	if len(candidates) > maxDifferentials {
		candidates = candidates[:maxDifferentials]
		renormalize(candidates)
	}

	c.logger.WithFields(logrus.Fields{
		"symptom_count": len(observed),
		"differentials": len(candidates),
		"top_diagnosis": candidates[0].DiagnosisID,
	}).Debug("Completed differential calculation")

	return candidates
}

// Update re-scores an existing differential list against one new finding.
// Each diagnosis's prior odds come from its current probability, not the
// original table prior. A present finding multiplies the odds by LR+; an
// absent finding divides by LR+ when an entry exists, which approximates a
// true negative likelihood ratio. Diagnoses with no entry for the finding
// are left untouched. Probabilities are clamped to the same [0.0001, 0.99]
// bounds as adjusted priors before the odds transform, so an entry at 1.0
// stays finite. The result is renormalized across exactly the incoming
// diagnoses; an update never introduces a new one.
func (c *DifferentialCalculator) Update(current []domain.Differential, finding domain.SymptomKey, present bool) []domain.Differential {
	if len(current) == 0 {
		return nil
	}

	updated := make([]domain.Differential, len(current))
	copy(updated, current)

	touched := 0
	for i := range updated {
		lr, ok := c.kb.LikelihoodRatio(finding, updated[i].DiagnosisID)
		if !ok || lr <= 0 {
			continue
		}
		touched++

		// Clamp to the same bounds the adjuster applies to priors: a
		// renormalized one-element list arrives with probability 1.0, and
		// unclamped that makes the odds infinite and the posterior NaN.
		p := clampPrior(updated[i].Probability)
		odds := p / (1 - p)
		if present {
			odds *= lr
		} else {
			odds /= lr
		}
		updated[i].Probability = odds / (1 + odds)

		if present {
			switch {
			case lr > 1:
				updated[i].SupportingFeatures = appendUniqueSymptom(updated[i].SupportingFeatures, finding)
			case lr < 1:
				updated[i].AgainstFeatures = appendUniqueSymptom(updated[i].AgainstFeatures, finding)
			}
		}
	}

	renormalize(updated)
	sortByProbability(updated)

	c.logger.WithFields(logrus.Fields{
		"finding":   finding,
		"present":   present,
		"touched":   touched,
		"diagnoses": len(updated),
	}).Debug("Applied sequential evidence update")

	return updated
}

// Distinguish returns the hand-authored features separating two diagnoses.
// Unknown pairs yield an empty result rather than an error.
func (c *DifferentialCalculator) Distinguish(dx1, dx2 string) []domain.FeatureContrast {
	return c.kb.Contrasts(dx1, dx2)
}

// normalizeSymptomSet deduplicates the caller-supplied set and fixes a
// deterministic evaluation order so repeated identical calls return
// bit-identical results.
func normalizeSymptomSet(symptoms []domain.SymptomKey) []domain.SymptomKey {
	seen := make(map[domain.SymptomKey]struct{}, len(symptoms))
	out := make([]domain.SymptomKey, 0, len(symptoms))
	for _, s := range symptoms {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// renormalize scales probabilities so the list sums to 1. The caller
// guarantees a non-empty list with positive probabilities.
func renormalize(diffs []domain.Differential) {
	var sum float64
	for _, d := range diffs {
		sum += d.Probability
	}
	for i := range diffs {
		diffs[i].Probability /= sum
	}
}

// sortByProbability sorts descending. The sort is stable and no secondary
// key is defined: ties retain their relative input order, which is
// deterministic for a fixed input but not otherwise meaningful.
func sortByProbability(diffs []domain.Differential) {
	sort.SliceStable(diffs, func(i, j int) bool {
		return diffs[i].Probability > diffs[j].Probability
	})
}

func appendUniqueSymptom(list []domain.SymptomKey, s domain.SymptomKey) []domain.SymptomKey {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
