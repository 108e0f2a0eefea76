package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUrgencyOrdinal(t *testing.T) {
	assert.Greater(t, EMERGENCY.Ordinal(), URGENT.Ordinal())
	assert.Greater(t, URGENT.Ordinal(), WARNING.Ordinal())
	assert.Greater(t, WARNING.Ordinal(), Urgency("bogus").Ordinal())
}

func TestUrgencyTriageLevel(t *testing.T) {
	tests := []struct {
		urgency Urgency
		want    TriageLevel
	}{
		{EMERGENCY, TriageEmergency},
		{URGENT, TriageUrgent},
		{WARNING, TriageSemiUrgent},
		{Urgency("bogus"), TriageStandard},
	}

	for _, tt := range tests {
		t.Run(string(tt.urgency), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.urgency.TriageLevel())
		})
	}
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, MALE.IsValid())
	assert.True(t, FEMALE.IsValid())
	assert.False(t, Gender("X").IsValid())

	assert.True(t, MONSOON.IsValid())
	assert.False(t, Season("spring").IsValid())

	assert.True(t, URBAN.IsValid())
	assert.True(t, RURAL.IsValid())
	assert.False(t, Location("suburban").IsValid())

	assert.True(t, EMERGENCY.IsValid())
	assert.False(t, Urgency("PANIC").IsValid())
}

func TestTriageLevelStrings(t *testing.T) {
	// These exact strings are part of the triage contract consumed by the
	// EMR front end; changing them breaks downstream rendering.
	assert.Equal(t, "Emergency (Red)", TriageEmergency.String())
	assert.Equal(t, "Urgent (Orange)", TriageUrgent.String())
	assert.Equal(t, "Semi-urgent (Yellow)", TriageSemiUrgent.String())
	assert.Equal(t, "Standard", TriageStandard.String())
}

func TestPatientContextValidate(t *testing.T) {
	gender := MALE
	badGender := Gender("X")
	season := MONSOON
	badSeason := Season("spring")
	badLocation := Location("suburban")

	tests := []struct {
		name string
		ctx  *PatientContext
		want error
	}{
		{"nil context", nil, nil},
		{"empty context", &PatientContext{}, nil},
		{"valid fields", &PatientContext{Gender: &gender, Season: &season}, nil},
		{"bad gender", &PatientContext{Gender: &badGender}, ErrInvalidGender},
		{"bad season", &PatientContext{Season: &badSeason}, ErrInvalidSeason},
		{"bad location", &PatientContext{Location: &badLocation}, ErrInvalidLocation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ctx.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestRedFlagRuleValidate(t *testing.T) {
	valid := RedFlagRule{Category: "CARDIAC", AnyOf: []string{"sweating"}, Threshold: 1, Urgency: EMERGENCY}
	assert.NoError(t, valid.Validate())

	badUrgency := valid
	badUrgency.Urgency = Urgency("SEVERE")
	assert.ErrorIs(t, badUrgency.Validate(), ErrInvalidUrgency)

	badThreshold := valid
	badThreshold.Threshold = 2
	assert.ErrorContains(t, badThreshold.Validate(), "unsatisfiable")
}
