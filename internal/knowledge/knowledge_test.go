package knowledge

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-dss-server/internal/domain"
)

func TestDiseaseIDsSortedAndStable(t *testing.T) {
	base := NewBase()

	ids := base.DiseaseIDs()
	require.NotEmpty(t, ids)
	assert.True(t, sort.StringsAreSorted(ids))

	// A second base must iterate in the identical order; this underpins the
	// bit-identical repeated-call guarantee of the calculator.
	assert.Equal(t, ids, NewBase().DiseaseIDs())
}

func TestLikelihoodRatioLookup(t *testing.T) {
	base := NewBase()

	lr, ok := base.LikelihoodRatio("fever_with_rash", "dengue")
	require.True(t, ok)
	assert.Equal(t, 4.0, lr)

	// Recorded disfavoring entry.
	lr, ok = base.LikelihoodRatio("fever_with_rash", "malaria")
	require.True(t, ok)
	assert.Less(t, lr, 1.0)

	// No entry means no evidence.
	_, ok = base.LikelihoodRatio("fever_with_rash", "uti")
	assert.False(t, ok)
	_, ok = base.LikelihoodRatio("no_such_symptom", "dengue")
	assert.False(t, ok)
}

func TestSuggestedTestsFallbackChain(t *testing.T) {
	base := NewBase()

	// Authored workup.
	assert.Contains(t, base.SuggestedTests("dengue"), "NS1 antigen test")

	// Category-substring heuristic: viral_fever is not authored but
	// contains "fever".
	assert.Equal(t, []string{"CBC", "Peripheral blood smear", "Blood culture"},
		base.SuggestedTests("viral_fever"))

	// "itis" heuristic.
	assert.Equal(t, []string{"CBC", "CRP"}, base.SuggestedTests("gastroenteritis"))

	// Generic default.
	assert.Equal(t, []string{"CBC", "Basic metabolic panel"}, base.SuggestedTests("migraine"))
}

func TestContrastsBothOrderings(t *testing.T) {
	base := NewBase()

	forward := base.Contrasts("dengue", "malaria")
	require.NotEmpty(t, forward)

	reversed := base.Contrasts("malaria", "dengue")
	require.Len(t, reversed, len(forward))
	for i := range forward {
		assert.Equal(t, forward[i].Feature, reversed[i].Feature)
		assert.Equal(t, forward[i].MeaningForDx1, reversed[i].MeaningForDx2)
		assert.Equal(t, forward[i].MeaningForDx2, reversed[i].MeaningForDx1)
	}

	assert.Empty(t, base.Contrasts("dengue", "no_such_disease"))
	assert.Empty(t, base.Contrasts("", ""))
}

func TestAdjustmentFactorCompounds(t *testing.T) {
	base := NewBase()

	age := 28.0
	gender := domain.MALE
	season := domain.MONSOON
	location := domain.URBAN
	ctx := &domain.PatientContext{
		AgeYears: &age,
		Gender:   &gender,
		Season:   &season,
		Location: &location,
	}

	// dengue: 1.2 (age 16-40) * 3.0 (monsoon) * 1.5 (urban).
	assert.InDelta(t, 1.2*3.0*1.5, base.AdjustmentFactor(ctx, "dengue"), 1e-9)

	// malaria picks up only the monsoon factor for this context.
	assert.InDelta(t, 2.5, base.AdjustmentFactor(ctx, "malaria"), 1e-9)

	// Nil context and unknown disease both mean a neutral factor.
	assert.Equal(t, 1.0, base.AdjustmentFactor(nil, "dengue"))
	assert.Equal(t, 1.0, base.AdjustmentFactor(ctx, "no_such_disease"))
}

func TestAdjustmentFactorSkipsAbsentFields(t *testing.T) {
	base := NewBase()

	season := domain.MONSOON
	ctx := &domain.PatientContext{Season: &season}

	// Only the seasonal multiplier applies when other fields are absent.
	assert.InDelta(t, 3.0, base.AdjustmentFactor(ctx, "dengue"), 1e-9)
}

func TestRedFlagRulesAuthoredOrderPreserved(t *testing.T) {
	base := NewBase()

	rules := base.RedFlagRules()
	require.NotEmpty(t, rules)

	// The cardiac rule is authored first and must stay first: authoring
	// order is the tie-break priority among equal urgencies.
	assert.Equal(t, "CARDIAC", rules[0].Category)
	assert.Equal(t, domain.EMERGENCY, rules[0].Urgency)

	for _, rule := range rules {
		assert.NoError(t, rule.Validate(), "rule %q failed structural validation", rule.Description)
		if rule.Threshold > 0 {
			assert.NotEmpty(t, rule.AnyOf, "rule %q has a positive threshold but no any_of list", rule.Description)
		}
	}
}

func TestPriorsAnchorValues(t *testing.T) {
	base := NewBase()

	p, ok := base.Prior("viral_fever")
	require.True(t, ok)
	assert.Equal(t, 0.70, p)

	p, ok = base.Prior("meningitis")
	require.True(t, ok)
	assert.Equal(t, 0.000025, p)

	_, ok = base.Prior("no_such_disease")
	assert.False(t, ok)
}
