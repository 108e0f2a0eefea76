package knowledge

import "github.com/clinical-dss-server/internal/domain"

// redFlagRules is the ordered red-flag rule list. Authoring order is a de
// facto priority: among rules of equal urgency, earlier rules rank first in
// the matcher output. Never reorder entries or convert this to a map.
var redFlagRules = []domain.RedFlagRule{
	{
		Category:    "CARDIAC",
		Description: "Suspected acute coronary syndrome",
		Required:    []string{"chest_pain"},
		AnyOf:       []string{"sweating", "radiation_to_arm", "breathlessness", "nausea", "jaw_pain"},
		Threshold:   1,
		Urgency:     domain.EMERGENCY,
		Action: "Give aspirin 300 mg chewed unless contraindicated, obtain ECG, " +
			"and arrange immediate transfer to a cardiac-capable facility",
		TimeCritical: "Door-to-ECG within 10 minutes; reperfusion window is hours, not days",
		DifferentialConcerns: []string{
			"Acute myocardial infarction",
			"Unstable angina",
			"Aortic dissection",
		},
	},
	{
		Category:    "NEURO",
		Description: "Suspected acute stroke",
		AnyOf: []string{
			"facial_droop", "slurred_speech", "one_sided_weakness",
			"sudden_severe_headache", "loss_of_consciousness",
		},
		Threshold:    2,
		Urgency:      domain.EMERGENCY,
		Action:       "Activate stroke protocol and transfer to a center with CT capability; note time of symptom onset",
		TimeCritical: "Thrombolysis window is 4.5 hours from symptom onset",
		DifferentialConcerns: []string{
			"Ischemic stroke",
			"Intracranial hemorrhage",
			"Transient ischemic attack",
		},
	},
	{
		Category:     "ALLERGY",
		Description:  "Suspected anaphylaxis",
		Required:     []string{"breathing_difficulty"},
		AnyOf:        []string{"swelling_of_lips", "swelling_of_tongue", "hives", "known_allergen_exposure"},
		Threshold:    1,
		Urgency:      domain.EMERGENCY,
		Action:       "Administer IM adrenaline 0.5 mg into the lateral thigh; lay patient flat; secure airway",
		TimeCritical: "Adrenaline within minutes of onset; do not wait for deterioration",
		DifferentialConcerns: []string{
			"Anaphylaxis",
			"Angioedema",
		},
	},
	{
		Category:    "SEPSIS",
		Description: "Fever with signs of systemic compromise",
		Required:    []string{"fever"},
		AnyOf: []string{
			"spo2_below_90", "tachycardia_above_120",
			"respiratory_rate_above_30", "confusion", "low_urine_output",
		},
		Threshold:    2,
		Urgency:      domain.EMERGENCY,
		Action:       "Start sepsis bundle: IV access, fluid bolus, blood cultures, broad-spectrum antibiotics, urgent referral",
		TimeCritical: "Antibiotics within 1 hour of recognition",
		DifferentialConcerns: []string{
			"Sepsis",
			"Septic shock",
		},
	},
	{
		Category:     "NEURO",
		Description:  "Fever with meningeal signs",
		Required:     []string{"fever", "severe_headache"},
		AnyOf:        []string{"neck_stiffness", "photophobia", "altered_consciousness", "petechial_rash"},
		Threshold:    1,
		Urgency:      domain.EMERGENCY,
		Action:       "Give first dose of parenteral antibiotic and refer immediately; do not delay for investigations",
		TimeCritical: "Antibiotics within 30 minutes if meningococcal disease is suspected",
		DifferentialConcerns: []string{
			"Bacterial meningitis",
			"Encephalitis",
			"Subarachnoid hemorrhage",
		},
	},
	{
		Category:    "RESPIRATORY",
		Description: "Respiratory distress",
		Required:    []string{"breathlessness"},
		AnyOf: []string{
			"spo2_below_90", "respiratory_rate_above_30",
			"unable_to_speak_full_sentences", "cyanosis",
		},
		Threshold: 1,
		Urgency:   domain.URGENT,
		Action:    "Start oxygen, give bronchodilator nebulization if wheeze, reassess within 15 minutes",
		DifferentialConcerns: []string{
			"Severe asthma",
			"Pneumonia",
			"Pulmonary embolism",
		},
	},
	{
		Category:     "PEDIATRIC",
		Description:  "Febrile infant under 2 years with danger signs",
		Required:     []string{"fever", "age_below_2"},
		AnyOf:        []string{"lethargy", "poor_feeding", "bulging_fontanelle", "seizure"},
		Threshold:    1,
		Urgency:      domain.URGENT,
		Action:       "Full septic screen and same-day pediatric referral",
		TimeCritical: "Infants deteriorate rapidly; reassess hourly until transfer",
		DifferentialConcerns: []string{
			"Serious bacterial infection",
			"Meningitis",
		},
	},
	{
		Category:    "GI",
		Description: "Gastrointestinal bleeding",
		AnyOf:       []string{"blood_in_vomit", "black_tarry_stools", "fresh_rectal_bleeding"},
		Threshold:   1,
		Urgency:     domain.URGENT,
		Action:      "IV access, crossmatch blood, refer for endoscopic evaluation",
		DifferentialConcerns: []string{
			"Upper GI bleed",
			"Peptic ulcer disease",
			"Variceal bleed",
		},
	},
	{
		Category:    "OBSTETRIC",
		Description: "Pregnancy with danger signs",
		Required:    []string{"pregnancy"},
		AnyOf:       []string{"vaginal_bleeding", "severe_abdominal_pain", "reduced_fetal_movements"},
		Threshold:   1,
		Urgency:     domain.URGENT,
		Action:      "Immediate obstetric referral; do not perform vaginal examination if bleeding",
		DifferentialConcerns: []string{
			"Ectopic pregnancy",
			"Placental abruption",
			"Miscarriage",
		},
	},
	{
		Category:    "INFECTION",
		Description: "Dengue warning signs",
		Required:    []string{"fever", "dengue_suspected"},
		AnyOf: []string{
			"abdominal_pain", "persistent_vomiting",
			"bleeding_gums", "lethargy", "fluid_accumulation",
		},
		Threshold:    2,
		Urgency:      domain.WARNING,
		Action:       "Daily CBC with platelet count; admit if platelets fall below 100,000 or hematocrit rises",
		TimeCritical: "Critical phase is days 3-7 of illness, often after the fever settles",
		DifferentialConcerns: []string{
			"Dengue hemorrhagic fever",
			"Dengue shock syndrome",
		},
	},
	{
		Category:    "CARDIOVASCULAR",
		Description: "Severely elevated blood pressure",
		Required:    []string{"severe_hypertension"},
		// Advisory any_of: a threshold of 0 means the rule fires on the
		// required feature alone; the listed features only enrich the
		// matching_features explanation when present.
		AnyOf:     []string{"headache", "blurred_vision", "chest_pain"},
		Threshold: 0,
		Urgency:   domain.WARNING,
		Action:    "Recheck after 15 minutes of rest; if persistent, start oral antihypertensive and arrange follow-up within 24 hours",
		DifferentialConcerns: []string{
			"Hypertensive urgency",
			"Hypertensive emergency",
		},
	},
}
