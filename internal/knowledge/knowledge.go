// Package knowledge holds the static clinical knowledge consumed by the
// decision-support engines: disease base-rate priors, the positive
// likelihood-ratio table, demographic/seasonal/geographic prior adjustment
// factors, suggested diagnostic workups, the distinguishing-feature pair
// table, and the ordered red-flag rule list.
//
// A Base is immutable after construction. Engines hold a *Base for the
// process lifetime and read it concurrently without synchronization. If a
// future version supports reloading, the whole Base must be rebuilt and
// swapped atomically so in-flight reads never observe a partial table.
package knowledge

import (
	"sort"
	"strings"

	"github.com/clinical-dss-server/internal/domain"
)

// Base is the assembled, read-only clinical knowledge base.
type Base struct {
	priors     map[string]float64
	diseaseIDs []string // sorted; the deterministic iteration order

	likelihood map[domain.SymptomKey]map[string]float64

	severity map[string]domain.Severity

	workups        map[string][]string
	workupFallback []workupHeuristic
	workupDefault  []string

	adjustments adjustmentTables

	contrasts map[contrastKey][]domain.FeatureContrast

	redFlagRules []domain.RedFlagRule
}

type contrastKey struct {
	dx1 string
	dx2 string
}

// workupHeuristic maps a substring of a disease id to a generic test panel,
// used when no disease-specific workup is authored.
type workupHeuristic struct {
	substring string
	tests     []string
}

// NewBase builds the knowledge base from the authored tables. The result is
// never mutated afterwards.
func NewBase() *Base {
	b := &Base{
		priors:         diseasePriors,
		likelihood:     likelihoodTable,
		severity:       diseaseSeverity,
		workups:        diseaseWorkups,
		workupFallback: workupHeuristics,
		workupDefault:  defaultWorkup,
		adjustments:    adjustments,
		contrasts:      distinguishingFeatures,
		redFlagRules:   redFlagRules,
	}

	b.diseaseIDs = make([]string, 0, len(b.priors))
	for id := range b.priors {
		b.diseaseIDs = append(b.diseaseIDs, id)
	}
	sort.Strings(b.diseaseIDs)

	return b
}

// DiseaseIDs returns every disease id in the prior table, sorted. Callers
// must not modify the returned slice.
func (b *Base) DiseaseIDs() []string {
	return b.diseaseIDs
}

// Prior returns the unadjusted base-rate prior for a disease.
func (b *Base) Prior(diseaseID string) (float64, bool) {
	p, ok := b.priors[diseaseID]
	return p, ok
}

// LikelihoodRatio returns the positive likelihood ratio recorded for a
// symptom/disease pair. The second return is false when no entry exists, in
// which case the symptom carries no evidence for that disease.
func (b *Base) LikelihoodRatio(symptom domain.SymptomKey, diseaseID string) (float64, bool) {
	byDisease, ok := b.likelihood[symptom]
	if !ok {
		return 0, false
	}
	lr, ok := byDisease[diseaseID]
	return lr, ok
}

// Severity returns the authored severity tag for a disease, defaulting to
// moderate for diseases without one.
func (b *Base) Severity(diseaseID string) domain.Severity {
	if s, ok := b.severity[diseaseID]; ok {
		return s
	}
	return domain.SeverityModerate
}

// SuggestedTests returns the diagnostic workup for a disease: the authored
// disease-specific list when present, otherwise the first matching
// category-substring panel, otherwise the generic default panel.
func (b *Base) SuggestedTests(diseaseID string) []string {
	if tests, ok := b.workups[diseaseID]; ok {
		return tests
	}
	for _, h := range b.workupFallback {
		if strings.Contains(diseaseID, h.substring) {
			return h.tests
		}
	}
	return b.workupDefault
}

// Contrasts returns the hand-authored distinguishing features for a pair of
// diagnoses. Both orderings of the pair are checked; when only the reversed
// pair is authored, the two meaning columns are swapped. An unknown pair
// yields an empty slice, never an error.
func (b *Base) Contrasts(dx1, dx2 string) []domain.FeatureContrast {
	if rows, ok := b.contrasts[contrastKey{dx1, dx2}]; ok {
		return rows
	}
	rows, ok := b.contrasts[contrastKey{dx2, dx1}]
	if !ok {
		return nil
	}
	swapped := make([]domain.FeatureContrast, len(rows))
	for i, row := range rows {
		swapped[i] = domain.FeatureContrast{
			Feature:       row.Feature,
			MeaningForDx1: row.MeaningForDx2,
			MeaningForDx2: row.MeaningForDx1,
		}
	}
	return swapped
}

// RedFlagRules returns the ordered rule list. Authoring order is the
// tie-break priority among equal urgencies; callers must not reorder or
// modify the returned slice.
func (b *Base) RedFlagRules() []domain.RedFlagRule {
	return b.redFlagRules
}
