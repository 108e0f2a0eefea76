package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-dss-server/internal/domain"
	"github.com/clinical-dss-server/internal/knowledge"
)

func newTestMatcher() *RedFlagMatcher {
	return NewRedFlagMatcher(newTestLogger(), knowledge.NewBase())
}

func TestDeriveFeatures(t *testing.T) {
	tests := []struct {
		name         string
		presentation domain.Presentation
		want         []string
		absent       []string
	}{
		{
			name:         "true boolean adds key",
			presentation: domain.Presentation{"chest_pain": domain.BoolValue(true)},
			want:         []string{"chest_pain"},
		},
		{
			name:         "false boolean adds nothing",
			presentation: domain.Presentation{"chest_pain": domain.BoolValue(false)},
			absent:       []string{"chest_pain"},
		},
		{
			name:         "string adds key and normalized value",
			presentation: domain.Presentation{"pain_character": domain.StringValue("Crushing Central")},
			want:         []string{"pain_character", "crushing_central"},
		},
		{
			name:         "number adds key without threshold",
			presentation: domain.Presentation{"age": domain.NumberValue(55)},
			want:         []string{"age"},
			absent:       []string{"age_below_2"},
		},
		{
			name:         "infant age derives threshold feature",
			presentation: domain.Presentation{"age": domain.NumberValue(1.5)},
			want:         []string{"age", "age_below_2"},
		},
		{
			name:         "low spo2 derives threshold feature",
			presentation: domain.Presentation{"spo2": domain.NumberValue(87)},
			want:         []string{"spo2", "spo2_below_90"},
		},
		{
			name:         "high respiratory rate derives threshold feature",
			presentation: domain.Presentation{"respiratory_rate": domain.NumberValue(35)},
			want:         []string{"respiratory_rate", "respiratory_rate_above_30"},
		},
		{
			name:         "tachycardia derives threshold feature",
			presentation: domain.Presentation{"heart_rate": domain.NumberValue(130)},
			want:         []string{"heart_rate", "tachycardia_above_120"},
		},
		{
			// Vitals are applied mechanically: no plausibility validation.
			name:         "negative age still derives age_below_2",
			presentation: domain.Presentation{"age": domain.NumberValue(-3)},
			want:         []string{"age", "age_below_2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			features := DeriveFeatures(tt.presentation)
			for _, f := range tt.want {
				assert.Contains(t, features, f)
			}
			for _, f := range tt.absent {
				assert.NotContains(t, features, f)
			}
		})
	}
}

func TestCheckCardiacEmergency(t *testing.T) {
	matcher := newTestMatcher()

	flags := matcher.Check(domain.Presentation{
		"chest_pain":       domain.BoolValue(true),
		"sweating":         domain.BoolValue(true),
		"radiation_to_arm": domain.BoolValue(true),
		"age":              domain.NumberValue(55),
	})
	require.NotEmpty(t, flags)

	cardiac := flags[0]
	assert.Equal(t, "CARDIAC", cardiac.Category)
	assert.Equal(t, domain.EMERGENCY, cardiac.Urgency)
	for _, f := range []string{"chest_pain", "sweating", "radiation_to_arm"} {
		assert.Contains(t, cardiac.MatchingFeatures, f)
	}
	assert.Equal(t, domain.TriageEmergency, matcher.TriageLevel(flags))
}

func TestCheckDengueWarningSigns(t *testing.T) {
	matcher := newTestMatcher()

	flags := matcher.Check(domain.Presentation{
		"fever":               domain.BoolValue(true),
		"dengue_suspected":    domain.BoolValue(true),
		"abdominal_pain":      domain.BoolValue(true),
		"persistent_vomiting": domain.BoolValue(true),
	})
	require.Len(t, flags, 1)

	assert.Equal(t, domain.WARNING, flags[0].Urgency)
	assert.Contains(t, flags[0].MatchingFeatures, "abdominal_pain")
	assert.Contains(t, flags[0].MatchingFeatures, "persistent_vomiting")
	assert.Equal(t, domain.TriageSemiUrgent, matcher.TriageLevel(flags))
	assert.Equal(t, "Semi-urgent (Yellow)", matcher.TriageLevel(flags).String())
}

func TestCheckEmptyPresentation(t *testing.T) {
	matcher := newTestMatcher()

	assert.Empty(t, matcher.Check(domain.Presentation{}))
	assert.Empty(t, matcher.Check(nil))
	assert.Equal(t, domain.TriageStandard, matcher.TriageLevel(nil))
	assert.Equal(t, "Standard", matcher.TriageLevel(nil).String())
}

func TestThresholdZeroRuleFiresOnRequiredAlone(t *testing.T) {
	matcher := newTestMatcher()

	flags := matcher.Check(domain.Presentation{
		"severe_hypertension": domain.BoolValue(true),
	})
	require.Len(t, flags, 1)
	assert.Equal(t, "CARDIOVASCULAR", flags[0].Category)
	assert.Equal(t, []string{"severe_hypertension"}, flags[0].MatchingFeatures)

	// Advisory any_of features still show up in matching_features.
	flags = matcher.Check(domain.Presentation{
		"severe_hypertension": domain.BoolValue(true),
		"blurred_vision":      domain.BoolValue(true),
	})
	require.Len(t, flags, 1)
	assert.Contains(t, flags[0].MatchingFeatures, "blurred_vision")
}

func TestAnyOfThresholdGate(t *testing.T) {
	matcher := newTestMatcher()

	// Sepsis needs fever plus two systemic signs; one is not enough.
	flags := matcher.Check(domain.Presentation{
		"fever":      domain.BoolValue(true),
		"heart_rate": domain.NumberValue(130),
	})
	for _, flag := range flags {
		assert.NotEqual(t, "SEPSIS", flag.Category)
	}

	flags = matcher.Check(domain.Presentation{
		"fever":            domain.BoolValue(true),
		"heart_rate":       domain.NumberValue(130),
		"respiratory_rate": domain.NumberValue(34),
	})
	var sepsis *domain.RedFlag
	for i := range flags {
		if flags[i].Category == "SEPSIS" {
			sepsis = &flags[i]
		}
	}
	require.NotNil(t, sepsis, "two derived vital-sign features must satisfy the sepsis threshold")
	assert.Contains(t, sepsis.MatchingFeatures, "tachycardia_above_120")
	assert.Contains(t, sepsis.MatchingFeatures, "respiratory_rate_above_30")
}

func TestCheckOrdersByUrgencyThenRuleOrder(t *testing.T) {
	matcher := newTestMatcher()

	flags := matcher.Check(domain.Presentation{
		// CARDIAC emergency.
		"chest_pain": domain.BoolValue(true),
		"sweating":   domain.BoolValue(true),
		// RESPIRATORY and GI urgent; respiratory is authored earlier.
		"breathlessness": domain.BoolValue(true),
		"spo2":           domain.NumberValue(85),
		"blood_in_vomit": domain.BoolValue(true),
		// CARDIOVASCULAR warning.
		"severe_hypertension": domain.BoolValue(true),
	})
	require.GreaterOrEqual(t, len(flags), 4)

	var categories []string
	for _, f := range flags {
		categories = append(categories, f.Category)
	}
	assert.Equal(t, "CARDIAC", categories[0])

	lastOrdinal := flags[0].Urgency.Ordinal()
	for _, f := range flags[1:] {
		assert.LessOrEqual(t, f.Urgency.Ordinal(), lastOrdinal)
		lastOrdinal = f.Urgency.Ordinal()
	}

	respIdx, giIdx := indexOf(categories, "RESPIRATORY"), indexOf(categories, "GI")
	require.NotEqual(t, -1, respIdx)
	require.NotEqual(t, -1, giIdx)
	assert.Less(t, respIdx, giIdx, "equal urgencies keep rule-table order")
}

func TestCheckIdempotent(t *testing.T) {
	matcher := newTestMatcher()

	presentation := domain.Presentation{
		"fever":            domain.BoolValue(true),
		"dengue_suspected": domain.BoolValue(true),
		"abdominal_pain":   domain.BoolValue(true),
		"bleeding_gums":    domain.BoolValue(true),
		"heart_rate":       domain.NumberValue(128),
	}
	assert.Equal(t, matcher.Check(presentation), matcher.Check(presentation))
}

func TestImmediateActionFormatting(t *testing.T) {
	matcher := newTestMatcher()

	flag := domain.RedFlag{
		Category:             "CARDIAC",
		Description:          "Suspected acute coronary syndrome",
		Urgency:              domain.EMERGENCY,
		RecommendedAction:    "Give aspirin and refer",
		TimeCritical:         "Door-to-ECG within 10 minutes",
		DifferentialConcerns: []string{"Acute myocardial infarction", "Unstable angina"},
	}

	text := matcher.ImmediateAction(flag)
	assert.Contains(t, text, "[EMERGENCY]")
	assert.Contains(t, text, "Suspected acute coronary syndrome")
	assert.Contains(t, text, "Give aspirin and refer")
	assert.Contains(t, text, "Door-to-ECG within 10 minutes")
	assert.Contains(t, text, "Acute myocardial infarction, Unstable angina")

	// Optional sections are omitted when empty.
	minimal := matcher.ImmediateAction(domain.RedFlag{
		Urgency:           domain.WARNING,
		Description:       "Severely elevated blood pressure",
		RecommendedAction: "Recheck after rest",
	})
	assert.NotContains(t, minimal, "Time critical")
	assert.NotContains(t, minimal, "Consider:")
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
