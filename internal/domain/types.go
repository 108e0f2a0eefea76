// Package domain contains the core value types for clinical decision support:
// ranked differential diagnoses produced by Bayesian-style evidence
// combination, and red flags produced by declarative rule matching.
//
// All types here are transport-agnostic. Engines in internal/service operate
// on these values and on the immutable tables in internal/knowledge.
package domain

import (
	"errors"
	"fmt"
)

// SymptomKey is a normalized symptom identifier from the controlled
// vocabulary (e.g. "fever_with_rash"). Keys are produced by an out-of-scope
// clinical-note parser; unknown keys simply carry no evidence.
type SymptomKey string

// Gender is the patient gender used for prior adjustment.
type Gender string

const (
	MALE   Gender = "M"
	FEMALE Gender = "F"
)

// Season is the local season at presentation time.
type Season string

const (
	SUMMER  Season = "summer"
	MONSOON Season = "monsoon"
	WINTER  Season = "winter"
)

// Location is the coarse practice-location classification.
type Location string

const (
	URBAN Location = "urban"
	RURAL Location = "rural"
)

// Urgency is the ordinal severity of a red flag. Higher ordinal means more
// urgent; EMERGENCY > URGENT > WARNING.
type Urgency string

const (
	EMERGENCY Urgency = "EMERGENCY"
	URGENT    Urgency = "URGENT"
	WARNING   Urgency = "WARNING"
)

// TriageLevel is the categorical triage classification derived from the
// highest-urgency red flag present.
type TriageLevel string

const (
	TriageEmergency  TriageLevel = "Emergency (Red)"
	TriageUrgent     TriageLevel = "Urgent (Orange)"
	TriageSemiUrgent TriageLevel = "Semi-urgent (Yellow)"
	TriageStandard   TriageLevel = "Standard"
)

// Severity tags a diagnosis with its typical clinical gravity.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityCritical Severity = "critical"
)

// Validation errors for clinical data integrity.
var (
	ErrInvalidGender   = errors.New("invalid gender")
	ErrInvalidSeason   = errors.New("invalid season")
	ErrInvalidLocation = errors.New("invalid location")
	ErrInvalidUrgency  = errors.New("invalid urgency")
)

// IsValid reports whether the gender is part of the controlled vocabulary.
func (g Gender) IsValid() bool {
	switch g {
	case MALE, FEMALE:
		return true
	default:
		return false
	}
}

// IsValid reports whether the season is part of the controlled vocabulary.
func (s Season) IsValid() bool {
	switch s {
	case SUMMER, MONSOON, WINTER:
		return true
	default:
		return false
	}
}

// IsValid reports whether the location is part of the controlled vocabulary.
func (l Location) IsValid() bool {
	switch l {
	case URBAN, RURAL:
		return true
	default:
		return false
	}
}

// IsValid reports whether the urgency is one of the three defined levels.
func (u Urgency) IsValid() bool {
	switch u {
	case EMERGENCY, URGENT, WARNING:
		return true
	default:
		return false
	}
}

// Ordinal returns the numeric rank of the urgency for sorting. EMERGENCY is
// highest. Unknown values rank below WARNING so malformed rules never
// outrank authored ones.
func (u Urgency) Ordinal() int {
	switch u {
	case EMERGENCY:
		return 3
	case URGENT:
		return 2
	case WARNING:
		return 1
	default:
		return 0
	}
}

// TriageLevel maps a single urgency to its triage category.
func (u Urgency) TriageLevel() TriageLevel {
	switch u {
	case EMERGENCY:
		return TriageEmergency
	case URGENT:
		return TriageUrgent
	case WARNING:
		return TriageSemiUrgent
	default:
		return TriageStandard
	}
}

// String returns the string representation of the urgency.
func (u Urgency) String() string {
	return string(u)
}

// String returns the string representation of the triage level.
func (t TriageLevel) String() string {
	return string(t)
}

// PatientContext carries the optional demographic and environmental
// attributes used for prior adjustment. Every field is independently
// optional; a nil field simply skips the corresponding multiplier.
type PatientContext struct {
	AgeYears *float64  `json:"age_years,omitempty"`
	Gender   *Gender   `json:"gender,omitempty"`
	Season   *Season   `json:"season,omitempty"`
	Location *Location `json:"location,omitempty"`
}

// Validate checks every populated context field against its controlled
// vocabulary. A nil context is valid; so is an entirely empty one.
func (c *PatientContext) Validate() error {
	if c == nil {
		return nil
	}
	if c.Gender != nil && !c.Gender.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidGender, *c.Gender)
	}
	if c.Season != nil && !c.Season.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSeason, *c.Season)
	}
	if c.Location != nil && !c.Location.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidLocation, *c.Location)
	}
	return nil
}
