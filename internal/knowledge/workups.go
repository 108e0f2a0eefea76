package knowledge

// diseaseWorkups holds the authored disease-specific diagnostic workups,
// ordered by clinical priority.
var diseaseWorkups = map[string][]string{
	"dengue": {
		"NS1 antigen test",
		"Dengue IgM serology",
		"CBC with platelet count",
	},
	"malaria": {
		"Peripheral blood smear",
		"Rapid malaria antigen test",
	},
	"typhoid": {
		"Blood culture",
		"Widal test",
	},
	"chikungunya": {
		"Chikungunya IgM serology",
		"CBC",
	},
	"uti": {
		"Urinalysis",
		"Urine culture and sensitivity",
	},
	"tuberculosis": {
		"Sputum for AFB",
		"Chest X-ray",
		"CBNAAT (GeneXpert)",
	},
	"pneumonia": {
		"Chest X-ray",
		"CBC",
		"Sputum culture",
	},
	"covid19": {
		"RT-PCR for SARS-CoV-2",
	},
	"influenza": {
		"Rapid influenza antigen test",
	},
	"hepatitis_a": {
		"Liver function tests",
		"Hepatitis A IgM",
	},
	"leptospirosis": {
		"Leptospira IgM (MAT)",
		"Liver function tests",
		"Renal function tests",
	},
	"appendicitis": {
		"Abdominal ultrasound",
		"CBC",
	},
	"acute_coronary_syndrome": {
		"ECG",
		"Troponin I",
		"Chest X-ray",
	},
	"meningitis": {
		"Lumbar puncture",
		"Blood culture",
		"CT head",
	},
}

// workupHeuristics are checked in order when a disease has no authored
// workup; the first substring match wins.
var workupHeuristics = []workupHeuristic{
	{substring: "fever", tests: []string{"CBC", "Peripheral blood smear", "Blood culture"}},
	{substring: "itis", tests: []string{"CBC", "CRP"}},
}

// defaultWorkup is returned when neither an authored workup nor a heuristic
// panel applies.
var defaultWorkup = []string{"CBC", "Basic metabolic panel"}
