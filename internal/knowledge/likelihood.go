package knowledge

import "github.com/clinical-dss-server/internal/domain"

// likelihoodTable maps (symptom key, disease id) to the positive likelihood
// ratio LR+: the factor by which the odds of the diagnosis multiply when the
// finding is present. LR+ > 1 favors the diagnosis, LR+ < 1 argues against
// it, and a missing entry carries no evidence (treated as 1).
var likelihoodTable = map[domain.SymptomKey]map[string]float64{
	"fever": {
		"viral_fever":   1.6,
		"dengue":        1.8,
		"malaria":       1.9,
		"typhoid":       1.8,
		"influenza":     1.7,
		"chikungunya":   1.7,
		"leptospirosis": 1.8,
		"covid19":       1.5,
		"meningitis":    2.0,
		"hepatitis_a":   1.4,
		"uti":           1.3,
		"pneumonia":     1.6,
	},
	"fever_with_body_ache": {
		"dengue":        3.5,
		"chikungunya":   3.0,
		"influenza":     2.5,
		"leptospirosis": 2.2,
		"malaria":       2.0,
		"viral_fever":   1.5,
	},
	"fever_with_headache": {
		"meningitis":  4.0,
		"dengue":      2.5,
		"typhoid":     2.2,
		"malaria":     2.0,
		"influenza":   1.8,
		"viral_fever": 1.2,
	},
	"fever_with_rash": {
		"dengue":      4.0,
		"chikungunya": 2.8,
		"meningitis":  2.5,
		"viral_fever": 1.3,
		"malaria":     0.5, // rash argues against malaria
	},
	"fever_with_chills": {
		"malaria":       4.5,
		"leptospirosis": 2.0,
		"uti":           1.8,
		"pneumonia":     1.7,
	},
	"periodic_fever": {
		"malaria": 5.0,
	},
	"step_ladder_fever": {
		"typhoid": 4.8,
	},
	"retro_orbital_pain": {
		"dengue": 4.2,
	},
	"joint_pain": {
		"chikungunya": 4.5,
		"dengue":      2.0,
		"viral_fever": 1.1,
	},
	"bleeding_gums": {
		"dengue": 3.8,
	},
	"muscle_pain": {
		"leptospirosis": 3.0,
		"dengue":        1.6,
		"influenza":     1.6,
	},
	"headache": {
		"migraine":    2.8,
		"meningitis":  2.0,
		"typhoid":     1.4,
		"viral_fever": 1.2,
	},
	"one_sided_headache": {
		"migraine": 4.0,
	},
	"photophobia": {
		"meningitis": 3.5,
		"migraine":   3.0,
	},
	"neck_stiffness": {
		"meningitis": 6.0,
	},
	"abdominal_pain": {
		"appendicitis":    3.5,
		"gastroenteritis": 2.2,
		"typhoid":         2.0,
		"hepatitis_a":     1.8,
		"uti":             1.5,
	},
	"right_lower_abdominal_pain": {
		"appendicitis": 6.0,
	},
	"loose_stools": {
		"gastroenteritis": 4.0,
		"typhoid":         1.8,
		"covid19":         1.2,
		"appendicitis":    0.7,
	},
	"vomiting": {
		"gastroenteritis": 2.5,
		"meningitis":      2.2,
		"appendicitis":    2.0,
		"hepatitis_a":     1.8,
		"migraine":        1.8,
	},
	"loss_of_appetite": {
		"hepatitis_a":  2.0,
		"appendicitis": 1.8,
		"tuberculosis": 1.5,
	},
	"jaundice": {
		"hepatitis_a":   5.5,
		"leptospirosis": 2.5,
		"malaria":       1.6,
	},
	"dark_urine": {
		"hepatitis_a": 3.0,
	},
	"burning_urination": {
		"uti": 5.0,
	},
	"urinary_frequency": {
		"uti": 3.5,
	},
	"cough": {
		"tuberculosis": 3.0,
		"pneumonia":    2.8,
		"covid19":      2.5,
		"influenza":    2.2,
		"viral_fever":  1.4,
	},
	"cough_more_than_2_weeks": {
		"tuberculosis": 6.0,
	},
	"night_sweats": {
		"tuberculosis": 3.5,
	},
	"weight_loss": {
		"tuberculosis": 3.0,
	},
	"breathlessness": {
		"pneumonia":               3.0,
		"acute_coronary_syndrome": 2.2,
		"covid19":                 2.0,
		"tuberculosis":            1.8,
	},
	"chest_pain": {
		"acute_coronary_syndrome": 4.0,
		"pneumonia":               1.8,
	},
	"sweating": {
		"acute_coronary_syndrome": 2.5,
	},
	"radiation_to_arm": {
		"acute_coronary_syndrome": 5.5,
	},
	"loss_of_taste_smell": {
		"covid19": 6.0,
	},
	"sore_throat": {
		"influenza":   1.9,
		"viral_fever": 1.8,
		"covid19":     1.4,
	},
	"runny_nose": {
		"viral_fever": 2.0,
		"influenza":   1.7,
		"covid19":     0.8, // coryza modestly argues against covid
	},
}
