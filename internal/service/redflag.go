package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/clinical-dss-server/internal/domain"
	"github.com/clinical-dss-server/internal/knowledge"
)

// RedFlagMatcher evaluates the ordered red-flag rule list against a derived
// feature set. Like the calculator it is pure over the immutable knowledge
// base and safe for concurrent use.
type RedFlagMatcher struct {
	logger *logrus.Logger
	kb     *knowledge.Base
}

// NewRedFlagMatcher creates a matcher over the given knowledge base.
func NewRedFlagMatcher(logger *logrus.Logger, kb *knowledge.Base) *RedFlagMatcher {
	return &RedFlagMatcher{logger: logger, kb: kb}
}

// DeriveFeatures converts a presentation map into the flat feature set the
// rules are written against:
//
//   - a true boolean entry contributes its key;
//   - a string entry contributes the key plus the lower-cased,
//     underscore-normalized value;
//   - a numeric entry contributes the key plus any derived threshold
//     features from the fixed cut points below.
//
// Numeric vitals are applied mechanically, with no plausibility validation;
// a negative age still derives age_below_2. The cut-point set is closed on
// purpose so new thresholds are added here, never inside rule evaluation.
func DeriveFeatures(presentation domain.Presentation) map[string]struct{} {
	features := make(map[string]struct{}, len(presentation)*2)
	for key, value := range presentation {
		switch value.Kind {
		case domain.PresentationBool:
			if value.Bool {
				features[key] = struct{}{}
			}
		case domain.PresentationString:
			features[key] = struct{}{}
			features[normalizeFeature(value.String)] = struct{}{}
		case domain.PresentationNumber:
			features[key] = struct{}{}
			for _, derived := range deriveThresholdFeatures(key, value.Number) {
				features[derived] = struct{}{}
			}
		}
	}
	return features
}

// deriveThresholdFeatures applies the fixed vital-sign cut points.
func deriveThresholdFeatures(key string, value float64) []string {
	switch key {
	case "age":
		if value < 2 {
			return []string{"age_below_2"}
		}
	case "spo2":
		if value < 90 {
			return []string{"spo2_below_90"}
		}
	case "respiratory_rate":
		if value > 30 {
			return []string{"respiratory_rate_above_30"}
		}
	case "heart_rate":
		if value > 120 {
			return []string{"tachycardia_above_120"}
		}
	}
	return nil
}

func normalizeFeature(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}

// Check evaluates every rule against the presentation and returns the fired
// rules sorted EMERGENCY first, then URGENT, then WARNING. Among equal
// urgencies the authoring order of the rule list is preserved. An empty
// presentation returns an empty result.
func (m *RedFlagMatcher) Check(presentation domain.Presentation) []domain.RedFlag {
	features := DeriveFeatures(presentation)

	var fired []domain.RedFlag
	for _, rule := range m.kb.RedFlagRules() {
		flag, ok := evaluateRule(rule, features)
		if ok {
			fired = append(fired, flag)
		}
	}

	// Stable by urgency ordinal only; rule-table order is the tie-break.
	sort.SliceStable(fired, func(i, j int) bool {
		return fired[i].Urgency.Ordinal() > fired[j].Urgency.Ordinal()
	})

	if len(fired) > 0 {
		m.logger.WithFields(logrus.Fields{
			"flag_count":  len(fired),
			"top_urgency": fired[0].Urgency,
		}).Info("Red flags detected")
	}

	return fired
}

// evaluateRule fires a rule when every required feature is present and at
// least Threshold of the any_of features are present. Threshold 0 makes the
// any_of list purely advisory. The returned flag carries only the features
// that were actually observed, for explainability.
func evaluateRule(rule domain.RedFlagRule, features map[string]struct{}) (domain.RedFlag, bool) {
	var matching []string

	for _, required := range rule.Required {
		if _, ok := features[required]; !ok {
			return domain.RedFlag{}, false
		}
		matching = append(matching, required)
	}

	anyOfCount := 0
	for _, candidate := range rule.AnyOf {
		if _, ok := features[candidate]; ok {
			anyOfCount++
			matching = append(matching, candidate)
		}
	}
	if anyOfCount < rule.Threshold {
		return domain.RedFlag{}, false
	}

	return domain.RedFlag{
		Category:             rule.Category,
		Description:          rule.Description,
		Urgency:              rule.Urgency,
		RecommendedAction:    rule.Action,
		TimeCritical:         rule.TimeCritical,
		MatchingFeatures:     matching,
		DifferentialConcerns: rule.DifferentialConcerns,
	}, true
}

// TriageLevel reduces a set of fired flags to one categorical level: the
// highest urgency wins, and no flags means standard care.
func (m *RedFlagMatcher) TriageLevel(flags []domain.RedFlag) domain.TriageLevel {
	level := domain.TriageStandard
	best := 0
	for _, flag := range flags {
		if ord := flag.Urgency.Ordinal(); ord > best {
			best = ord
			level = flag.Urgency.TriageLevel()
		}
	}
	return level
}

// ImmediateAction formats one flag as a single display string for the
// consulting clinician. Pure formatting; no decision logic.
func (m *RedFlagMatcher) ImmediateAction(flag domain.RedFlag) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", flag.Urgency, flag.Description)
	fmt.Fprintf(&b, "Action: %s", flag.RecommendedAction)
	if flag.TimeCritical != "" {
		fmt.Fprintf(&b, "\nTime critical: %s", flag.TimeCritical)
	}
	if len(flag.DifferentialConcerns) > 0 {
		fmt.Fprintf(&b, "\nConsider: %s", strings.Join(flag.DifferentialConcerns, ", "))
	}
	return b.String()
}
