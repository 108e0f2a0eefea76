package knowledge

import "github.com/clinical-dss-server/internal/domain"

// diseasePriors holds the base-rate probability of each diagnosis among
// presenting outpatients, before any findings are considered. Values are
// domain constants authored with clinical review, not learned from data.
var diseasePriors = map[string]float64{
	"viral_fever":             0.70,
	"gastroenteritis":         0.05,
	"influenza":               0.05,
	"uti":                     0.04,
	"typhoid":                 0.03,
	"migraine":                0.03,
	"dengue":                  0.02,
	"malaria":                 0.02,
	"covid19":                 0.02,
	"pneumonia":               0.015,
	"chikungunya":             0.008,
	"tuberculosis":            0.008,
	"appendicitis":            0.005,
	"hepatitis_a":             0.004,
	"leptospirosis":           0.003,
	"acute_coronary_syndrome": 0.002,
	"meningitis":              0.000025,
}

// diseaseSeverity tags each diagnosis with its typical clinical gravity.
var diseaseSeverity = map[string]domain.Severity{
	"viral_fever":             domain.SeverityMild,
	"gastroenteritis":         domain.SeverityMild,
	"influenza":               domain.SeverityMild,
	"migraine":                domain.SeverityMild,
	"uti":                     domain.SeverityModerate,
	"typhoid":                 domain.SeverityModerate,
	"covid19":                 domain.SeverityModerate,
	"chikungunya":             domain.SeverityModerate,
	"hepatitis_a":             domain.SeverityModerate,
	"dengue":                  domain.SeveritySevere,
	"malaria":                 domain.SeveritySevere,
	"pneumonia":               domain.SeveritySevere,
	"tuberculosis":            domain.SeveritySevere,
	"appendicitis":            domain.SeveritySevere,
	"leptospirosis":           domain.SeveritySevere,
	"acute_coronary_syndrome": domain.SeverityCritical,
	"meningitis":              domain.SeverityCritical,
}
