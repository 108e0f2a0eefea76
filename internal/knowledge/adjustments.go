package knowledge

import "github.com/clinical-dss-server/internal/domain"

// adjustmentTables holds the multiplicative prior adjustment factors keyed
// by patient-context attributes. Factors for the same disease from different
// attributes compound multiplicatively; a disease absent from a table keeps
// a factor of 1 for that attribute.
type adjustmentTables struct {
	ageBrackets []ageBracket
	season      map[domain.Season]map[string]float64
	location    map[domain.Location]map[string]float64
	gender      map[domain.Gender]map[string]float64
}

// ageBracket applies its factors to patients with Min <= age < Max.
type ageBracket struct {
	Min     float64
	Max     float64
	Factors map[string]float64
}

var adjustments = adjustmentTables{
	ageBrackets: []ageBracket{
		{Min: 0, Max: 5, Factors: map[string]float64{
			"viral_fever":     1.3,
			"gastroenteritis": 1.4,
			"pneumonia":       1.5,
			"meningitis":      2.0,
		}},
		{Min: 5, Max: 16, Factors: map[string]float64{
			"viral_fever": 1.2,
			"typhoid":     1.3,
		}},
		{Min: 16, Max: 40, Factors: map[string]float64{
			"dengue":      1.2,
			"chikungunya": 1.1,
			"migraine":    1.3,
		}},
		{Min: 40, Max: 60, Factors: map[string]float64{
			"acute_coronary_syndrome": 2.0,
			"tuberculosis":            1.2,
		}},
		{Min: 60, Max: 150, Factors: map[string]float64{
			"acute_coronary_syndrome": 3.0,
			"pneumonia":               1.8,
			"uti":                     1.3,
		}},
	},
	season: map[domain.Season]map[string]float64{
		domain.MONSOON: {
			"dengue":          3.0,
			"malaria":         2.5,
			"leptospirosis":   4.0,
			"chikungunya":     2.0,
			"hepatitis_a":     1.6,
			"typhoid":         1.5,
			"gastroenteritis": 1.5,
		},
		domain.WINTER: {
			"influenza":   2.0,
			"pneumonia":   1.6,
			"covid19":     1.3,
			"viral_fever": 1.2,
		},
		domain.SUMMER: {
			"gastroenteritis": 1.8,
			"typhoid":         1.4,
			"hepatitis_a":     1.3,
		},
	},
	location: map[domain.Location]map[string]float64{
		domain.URBAN: {
			"dengue":      1.5,
			"covid19":     1.3,
			"chikungunya": 1.2,
		},
		domain.RURAL: {
			"leptospirosis": 1.8,
			"malaria":       1.6,
			"tuberculosis":  1.3,
			"typhoid":       1.2,
		},
	},
	gender: map[domain.Gender]map[string]float64{
		domain.FEMALE: {
			"uti":      2.5,
			"migraine": 1.5,
		},
		domain.MALE: {
			"acute_coronary_syndrome": 1.4,
		},
	},
}

// FactorsFor returns the compounded adjustment factor for one disease given
// an optional patient context. Absent context fields skip their table.
func (a adjustmentTables) FactorsFor(ctx *domain.PatientContext, diseaseID string) float64 {
	if ctx == nil {
		return 1.0
	}

	factor := 1.0
	if ctx.AgeYears != nil {
		age := *ctx.AgeYears
		for _, bracket := range a.ageBrackets {
			if age >= bracket.Min && age < bracket.Max {
				if f, ok := bracket.Factors[diseaseID]; ok {
					factor *= f
				}
				break
			}
		}
	}
	if ctx.Season != nil {
		if f, ok := a.season[*ctx.Season][diseaseID]; ok {
			factor *= f
		}
	}
	if ctx.Location != nil {
		if f, ok := a.location[*ctx.Location][diseaseID]; ok {
			factor *= f
		}
	}
	if ctx.Gender != nil {
		if f, ok := a.gender[*ctx.Gender][diseaseID]; ok {
			factor *= f
		}
	}
	return factor
}

// AdjustmentFactor exposes the compounded context factor for a disease.
func (b *Base) AdjustmentFactor(ctx *domain.PatientContext, diseaseID string) float64 {
	return b.adjustments.FactorsFor(ctx, diseaseID)
}
