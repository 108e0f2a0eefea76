package domain

import (
	"encoding/json"
	"fmt"
)

// Differential is one ranked candidate diagnosis. Across a single returned
// list, probabilities are normalized to sum to 1.0 over the returned set
// only, not over the full disease universe.
type Differential struct {
	DiagnosisID        string       `json:"diagnosis_id"`
	Probability        float64      `json:"probability"`
	SupportingFeatures []SymptomKey `json:"supporting_features,omitempty"`
	AgainstFeatures    []SymptomKey `json:"against_features,omitempty"`
	SuggestedTests     []string     `json:"suggested_tests,omitempty"`
	Severity           Severity     `json:"severity"`
}

// RedFlagRule is one declarative red-flag rule. A rule fires when every
// Required feature is present and at least Threshold of the AnyOf features
// are present. Threshold 0 means the AnyOf list is advisory and the rule
// fires on Required alone. Rules live in an ordered slice; authoring order
// is the tie-break priority among equal urgencies and must not be reordered.
type RedFlagRule struct {
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	Required             []string `json:"required,omitempty"`
	AnyOf                []string `json:"any_of,omitempty"`
	Threshold            int      `json:"threshold"`
	Urgency              Urgency  `json:"urgency"`
	Action               string   `json:"action"`
	TimeCritical         string   `json:"time_critical,omitempty"`
	DifferentialConcerns []string `json:"differential_concerns,omitempty"`
}

// Validate checks the structural integrity of an authored rule: a known
// urgency level and a threshold the any_of list can actually satisfy.
func (r RedFlagRule) Validate() error {
	if !r.Urgency.IsValid() {
		return fmt.Errorf("%w: %q in rule %s", ErrInvalidUrgency, r.Urgency, r.Category)
	}
	if r.Threshold < 0 || r.Threshold > len(r.AnyOf) {
		return fmt.Errorf("rule %s: threshold %d unsatisfiable with %d any_of features",
			r.Category, r.Threshold, len(r.AnyOf))
	}
	return nil
}

// RedFlag is a fired rule together with the features that were actually
// observed, for explainability.
type RedFlag struct {
	Category             string   `json:"category"`
	Description          string   `json:"description"`
	Urgency              Urgency  `json:"urgency"`
	RecommendedAction    string   `json:"recommended_action"`
	TimeCritical         string   `json:"time_critical,omitempty"`
	MatchingFeatures     []string `json:"matching_features"`
	DifferentialConcerns []string `json:"differential_concerns,omitempty"`
}

// FeatureContrast is one row of the distinguishing-feature table for a pair
// of diagnoses: what the feature means for the first diagnosis versus the
// second.
type FeatureContrast struct {
	Feature       string `json:"feature"`
	MeaningForDx1 string `json:"meaning_for_dx1"`
	MeaningForDx2 string `json:"meaning_for_dx2"`
}

// PresentationKind discriminates the PresentationValue tagged union.
type PresentationKind int

const (
	PresentationBool PresentationKind = iota
	PresentationString
	PresentationNumber
)

// PresentationValue is one entry of a clinical presentation map: a tagged
// bool | string | number union. Feature derivation switches exhaustively on
// Kind, so adding a variant forces every derivation site to be revisited.
type PresentationValue struct {
	Kind   PresentationKind
	Bool   bool
	String string
	Number float64
}

// BoolValue builds a boolean presentation entry.
func BoolValue(v bool) PresentationValue {
	return PresentationValue{Kind: PresentationBool, Bool: v}
}

// StringValue builds a string presentation entry.
func StringValue(v string) PresentationValue {
	return PresentationValue{Kind: PresentationString, String: v}
}

// NumberValue builds a numeric presentation entry.
func NumberValue(v float64) PresentationValue {
	return PresentationValue{Kind: PresentationNumber, Number: v}
}

// Presentation is the assembled findings-plus-vitals map consumed by the
// red-flag matcher.
type Presentation map[string]PresentationValue

// UnmarshalJSON decodes a JSON bool, string, or number into the tagged
// union. Any other JSON type is rejected.
func (v *PresentationValue) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch value := raw.(type) {
	case bool:
		*v = BoolValue(value)
	case string:
		*v = StringValue(value)
	case float64:
		*v = NumberValue(value)
	default:
		return fmt.Errorf("presentation value must be bool, string or number, got %T", raw)
	}
	return nil
}

// MarshalJSON encodes the active variant of the union.
func (v PresentationValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case PresentationBool:
		return json.Marshal(v.Bool)
	case PresentationString:
		return json.Marshal(v.String)
	case PresentationNumber:
		return json.Marshal(v.Number)
	default:
		return nil, fmt.Errorf("unknown presentation value kind %d", v.Kind)
	}
}
